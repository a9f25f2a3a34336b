package gallerymodel

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"gorm.io/gorm"
)

// GalleryRepository handles gallery image database operations
type GalleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new gallery repository with dependency injection
func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// Create records one uploaded image
func (r *GalleryRepository) Create(image *model.GalleryImage) (*model.GalleryImage, error) {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}

	if err := r.db.Create(image).Error; err != nil {
		slog.Error("GalleryModel Create failed", "error", err, "event_id", image.EventID)
		return nil, err
	}

	slog.Info("GalleryModel Create success", "image_id", image.ID, "event_id", image.EventID)
	return image, nil
}

// GetById returns one image or nil when absent
func (r *GalleryRepository) GetById(imageId string) (*model.GalleryImage, error) {
	var image model.GalleryImage
	err := r.db.Where("id = ?", imageId).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("GalleryModel GetById failed", "error", err, "image_id", imageId)
		return nil, err
	}
	return &image, nil
}

// ListByEvent returns the event's images newest first
func (r *GalleryRepository) ListByEvent(eventId string) ([]*model.GalleryImage, error) {
	var images []*model.GalleryImage
	err := r.db.
		Where("event_id = ?", eventId).
		Order("created_at DESC").
		Find(&images).Error
	if err != nil {
		slog.Error("GalleryModel ListByEvent failed", "error", err, "event_id", eventId)
		return nil, err
	}
	return images, nil
}

// Delete removes one image record
func (r *GalleryRepository) Delete(imageId string) error {
	result := r.db.Where("id = ?", imageId).Delete(&model.GalleryImage{})
	if result.Error != nil {
		slog.Error("GalleryModel Delete failed", "error", result.Error, "image_id", imageId)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("image not found")
	}

	slog.Info("GalleryModel Delete success", "image_id", imageId)
	return nil
}
