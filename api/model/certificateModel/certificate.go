package certificatemodel

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"gorm.io/gorm"
)

// CertificateRepository handles all certificate database operations
type CertificateRepository struct {
	db *gorm.DB
}

// Stats summarizes delivery outcomes for one event.
type Stats struct {
	Total       int64   `json:"total"`
	Sent        int64   `json:"sent"`
	Failed      int64   `json:"failed"`
	Pending     int64   `json:"pending"`
	SuccessRate float64 `json:"success_rate"`
}

// NewCertificateRepository creates a new certificate repository with dependency injection
func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Create inserts a new certificate record
func (r *CertificateRepository) Create(cert *model.Certificate) error {
	if cert.ID == "" {
		cert.ID = uuid.New().String()
	}

	if err := r.db.Create(cert).Error; err != nil {
		slog.Error("CertificateModel Create failed", "error", err, "certificate_id", cert.CertificateID)
		return err
	}

	slog.Info("CertificateModel Create success", "certificate_id", cert.CertificateID, "event_id", cert.EventID)
	return nil
}

// Save persists the full record, including delivery bookkeeping fields
func (r *CertificateRepository) Save(cert *model.Certificate) error {
	if err := r.db.Save(cert).Error; err != nil {
		slog.Error("CertificateModel Save failed", "error", err, "certificate_id", cert.CertificateID)
		return err
	}
	return nil
}

// GetByEventAndUser returns one certificate or nil when absent
func (r *CertificateRepository) GetByEventAndUser(eventId string, userId string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.db.Where("event_id = ? AND user_id = ?", eventId, userId).First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("CertificateModel GetByEventAndUser failed", "error", err, "event_id", eventId, "user_id", userId)
		return nil, err
	}
	return &cert, nil
}

// GetByCertificateId resolves a certificate by its public id, with the
// recipient loaded for verification responses
func (r *CertificateRepository) GetByCertificateId(certificateId string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.db.Preload("User").Where("certificate_id = ?", certificateId).First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("CertificateModel GetByCertificateId failed", "error", err, "certificate_id", certificateId)
		return nil, err
	}
	return &cert, nil
}

// ExistsByCertificateId reports whether the public id is already taken
func (r *CertificateRepository) ExistsByCertificateId(certificateId string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Certificate{}).Where("certificate_id = ?", certificateId).Count(&count).Error
	if err != nil {
		slog.Error("CertificateModel ExistsByCertificateId failed", "error", err, "certificate_id", certificateId)
		return false, err
	}
	return count > 0, nil
}

// ListFailedForRetry returns failed deliveries still under the retry ceiling
func (r *CertificateRepository) ListFailedForRetry(eventId string, maxRetries int) ([]*model.Certificate, error) {
	var certs []*model.Certificate
	err := r.db.
		Preload("User").
		Where("event_id = ?", eventId).
		Where("delivery_status = ?", model.DeliveryFailed).
		Where("retry_count < ?", maxRetries).
		Find(&certs).Error
	if err != nil {
		slog.Error("CertificateModel ListFailedForRetry failed", "error", err, "event_id", eventId)
		return nil, err
	}

	slog.Info("CertificateModel ListFailedForRetry", "event_id", eventId, "count", len(certs))
	return certs, nil
}

// ListByEvent returns the most recent certificates for an event, capped at
// limit records
func (r *CertificateRepository) ListByEvent(eventId string, limit int) ([]*model.Certificate, error) {
	if limit <= 0 {
		limit = 100
	}

	var certs []*model.Certificate
	err := r.db.
		Preload("User").
		Where("event_id = ?", eventId).
		Order("created_at DESC").
		Limit(limit).
		Find(&certs).Error
	if err != nil {
		slog.Error("CertificateModel ListByEvent failed", "error", err, "event_id", eventId)
		return nil, err
	}
	return certs, nil
}

// StatsByEvent aggregates delivery counters for an event
func (r *CertificateRepository) StatsByEvent(eventId string) (*Stats, error) {
	stats := &Stats{}

	base := func() *gorm.DB {
		return r.db.Model(&model.Certificate{}).Where("event_id = ?", eventId)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		slog.Error("CertificateModel StatsByEvent total failed", "error", err, "event_id", eventId)
		return nil, err
	}
	if err := base().Where("delivery_status = ?", model.DeliverySent).Count(&stats.Sent).Error; err != nil {
		return nil, err
	}
	if err := base().Where("delivery_status = ?", model.DeliveryFailed).Count(&stats.Failed).Error; err != nil {
		return nil, err
	}
	if err := base().Where("delivery_status = ?", model.DeliveryPending).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Sent) / float64(stats.Total) * 100
	}
	return stats, nil
}
