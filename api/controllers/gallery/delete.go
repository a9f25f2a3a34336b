package gallery_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	gallerymodel "github.com/harnoor-dev/event-cert-api/api/model/galleryModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// Delete removes a gallery image. The uploader and event admins may delete.
func Delete(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	imageId := c.Params("imageId")
	gallery := gallerymodel.NewGalleryRepository(common.Gorm)

	image, err := gallery.GetById(imageId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if image == nil {
		return response.SendNotFound(c, "Image not found")
	}

	if image.UploaderID != userId {
		event, eventErr := eventmodel.NewEventRepository(common.Gorm).GetById(image.EventID)
		if eventErr != nil {
			return response.SendInternalError(c, eventErr)
		}
		if event == nil || !event.CanEdit(userId) {
			return response.SendForbidden(c, "Only the uploader or an event admin can delete this image")
		}
	}

	if image.ObjectKey != "" && common.MinIOClient != nil && common.Config.BucketGallery != nil {
		if err := util.RemoveObject(c.Context(), *common.Config.BucketGallery, image.ObjectKey); err != nil {
			// The DB record still goes away; a stranded object is cleaned
			// up by bucket lifecycle rules.
			slog.Warn("Gallery Delete storage removal failed", "error", err, "image_id", imageId)
		}
	}

	if err := gallery.Delete(imageId); err != nil {
		return response.SendError(c, "Failed to delete image")
	}

	slog.Info("Gallery Delete successful", "image_id", imageId, "user_id", userId)
	return response.SendSuccess(c, "Image deleted")
}
