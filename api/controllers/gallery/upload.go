package gallery_controller

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	gallerymodel "github.com/harnoor-dev/event-cert-api/api/model/galleryModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/type/response"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MiB

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Upload stores one gallery image in object storage and records it. Event
// admins can always upload; participants only when the event allows it.
func Upload(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	eventId := c.Params("eventId")

	event, err := eventmodel.NewEventRepository(common.Gorm).GetById(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}

	canUpload := event.CanEdit(userId) ||
		(event.AttendeeUploadEnabled && event.IsParticipant(userId))
	if !canUpload {
		return response.SendForbidden(c, "Uploads are not enabled for attendees of this event")
	}

	file, fileErr := c.FormFile("image")
	if fileErr != nil {
		return response.SendFailed(c, "image file is required")
	}
	if file.Size > maxUploadSize {
		return response.SendFailed(c, "Image must be 10MB or smaller")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return response.SendFailed(c, "Only jpg, jpeg, png and webp images are allowed")
	}

	if common.MinIOClient == nil || common.Config.BucketGallery == nil {
		return response.SendError(c, "Object storage is not configured")
	}

	objectName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	url, objectKey, uploadErr := util.UploadMultipartFile(c.Context(), *common.Config.BucketGallery, eventId, objectName, file)
	if uploadErr != nil {
		slog.Error("Gallery Upload storage failed", "error", uploadErr, "event_id", eventId)
		return response.SendError(c, "Failed to store image")
	}

	image, createErr := gallerymodel.NewGalleryRepository(common.Gorm).Create(&model.GalleryImage{
		EventID:    eventId,
		UploaderID: userId,
		ImageURL:   url,
		ObjectKey:  objectKey,
		Caption:    c.FormValue("caption"),
	})
	if createErr != nil {
		return response.SendError(c, "Failed to record image")
	}

	slog.Info("Gallery Upload successful", "event_id", eventId, "image_id", image.ID)
	return response.SendSuccess(c, "Image uploaded", image)
}
