package settingmodel

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"gorm.io/gorm"
)

// SettingRepository handles certificate settings database operations
type SettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository with dependency injection
func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetByEvent returns the stored settings or nil when the event still runs
// on pure defaults
func (r *SettingRepository) GetByEvent(eventId string) (*model.CertificateSetting, error) {
	var settings model.CertificateSetting
	err := r.db.Where("event_id = ?", eventId).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("SettingModel GetByEvent failed", "error", err, "event_id", eventId)
		return nil, err
	}
	return &settings, nil
}

// Upsert stores the settings, replacing any previous record for the event
func (r *SettingRepository) Upsert(settings *model.CertificateSetting) (*model.CertificateSetting, error) {
	existing, err := r.GetByEvent(settings.EventID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		settings.ID = uuid.New().String()
		if err := r.db.Create(settings).Error; err != nil {
			slog.Error("SettingModel Upsert create failed", "error", err, "event_id", settings.EventID)
			return nil, err
		}
		slog.Info("SettingModel Upsert created", "event_id", settings.EventID)
		return settings, nil
	}

	settings.ID = existing.ID
	settings.CreatedAt = existing.CreatedAt
	if err := r.db.Save(settings).Error; err != nil {
		slog.Error("SettingModel Upsert save failed", "error", err, "event_id", settings.EventID)
		return nil, err
	}

	slog.Info("SettingModel Upsert updated", "event_id", settings.EventID)
	return settings, nil
}
