package eventmodel

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"gorm.io/gorm"
)

const maxCoAdmins = 3

var (
	ErrCoAdminLimit     = errors.New("an event can have at most 3 co-admins")
	ErrCreatorCoAdmin   = errors.New("the event creator cannot be added as a co-admin")
	ErrAdminParticipant = errors.New("event admins cannot join as participants")
)

// EventRepository handles all event database operations
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository with dependency injection
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event, generating a short join code when absent
func (r *EventRepository) Create(event *model.Event) (*model.Event, error) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.EventCode == "" {
		event.EventCode = generateEventCode()
	}

	if err := r.db.Create(event).Error; err != nil {
		slog.Error("EventModel Create failed", "error", err, "title", event.Title)
		return nil, err
	}

	slog.Info("EventModel Create success", "event_id", event.ID, "code", event.EventCode)
	return event, nil
}

// GetById returns the event with co-admins and participants loaded, or nil
// when no record exists
func (r *EventRepository) GetById(eventId string) (*model.Event, error) {
	var event model.Event
	err := r.db.
		Preload("CoAdmins").
		Preload("Participants").
		Where("id = ?", eventId).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("EventModel GetById failed", "error", err, "event_id", eventId)
		return nil, err
	}
	return &event, nil
}

// GetByCode resolves an event by its short join code, or nil when unknown
func (r *EventRepository) GetByCode(code string) (*model.Event, error) {
	var event model.Event
	err := r.db.Where("event_code = ?", strings.ToUpper(code)).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("EventModel GetByCode failed", "error", err, "code", code)
		return nil, err
	}
	return &event, nil
}

// ListVisible returns public events plus every event the user created,
// co-administers, or joined
func (r *EventRepository) ListVisible(userId string) ([]*model.Event, error) {
	var events []*model.Event
	err := r.db.
		Preload("CoAdmins").
		Distinct("events.*").
		Joins("LEFT JOIN event_co_admins ON event_co_admins.event_id = events.id").
		Joins("LEFT JOIN event_participants ON event_participants.event_id = events.id").
		Where("events.privacy = ?", "public").
		Or("events.created_by = ?", userId).
		Or("event_co_admins.user_id = ?", userId).
		Or("event_participants.user_id = ?", userId).
		Order("events.event_date DESC").
		Find(&events).Error
	if err != nil {
		slog.Error("EventModel ListVisible failed", "error", err, "user_id", userId)
		return nil, err
	}
	return events, nil
}

// Update applies the given field updates and returns the fresh record
func (r *EventRepository) Update(eventId string, updates map[string]any) (*model.Event, error) {
	result := r.db.Model(&model.Event{}).Where("id = ?", eventId).Updates(updates)
	if result.Error != nil {
		slog.Error("EventModel Update failed", "error", result.Error, "event_id", eventId)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	slog.Info("EventModel Update success", "event_id", eventId)
	return r.GetById(eventId)
}

// Delete removes the event and its association rows
func (r *EventRepository) Delete(eventId string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		event := &model.Event{ID: eventId}
		if err := tx.Model(event).Association("CoAdmins").Clear(); err != nil {
			return err
		}
		if err := tx.Model(event).Association("Participants").Clear(); err != nil {
			return err
		}

		result := tx.Where("id = ?", eventId).Delete(&model.Event{})
		if result.Error != nil {
			slog.Error("EventModel Delete failed", "error", result.Error, "event_id", eventId)
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("event not found")
		}

		slog.Info("EventModel Delete success", "event_id", eventId)
		return nil
	})
}

// AddCoAdmin appends a co-admin, enforcing the slot limit and keeping the
// creator out of the co-admin list
func (r *EventRepository) AddCoAdmin(eventId string, userId string) error {
	event, err := r.GetById(eventId)
	if err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("event not found")
	}

	if event.CreatedBy == userId {
		return ErrCreatorCoAdmin
	}
	if event.IsCoAdmin(userId) {
		return nil
	}
	if len(event.CoAdmins) >= maxCoAdmins {
		return ErrCoAdminLimit
	}

	if err := r.db.Model(event).Association("CoAdmins").Append(&model.User{ID: userId}); err != nil {
		slog.Error("EventModel AddCoAdmin failed", "error", err, "event_id", eventId, "user_id", userId)
		return err
	}

	slog.Info("EventModel AddCoAdmin success", "event_id", eventId, "user_id", userId)
	return nil
}

// RemoveCoAdmin detaches one co-admin from the event
func (r *EventRepository) RemoveCoAdmin(eventId string, userId string) error {
	err := r.db.Model(&model.Event{ID: eventId}).Association("CoAdmins").Delete(&model.User{ID: userId})
	if err != nil {
		slog.Error("EventModel RemoveCoAdmin failed", "error", err, "event_id", eventId, "user_id", userId)
		return err
	}

	slog.Info("EventModel RemoveCoAdmin success", "event_id", eventId, "user_id", userId)
	return nil
}

// AddParticipant registers a user for the event, no-op when already
// joined. The creator and co-admins already hold admin rights and are
// never listed as participants.
func (r *EventRepository) AddParticipant(eventId string, userId string) error {
	event, err := r.GetById(eventId)
	if err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("event not found")
	}
	if event.CreatedBy == userId || event.IsCoAdmin(userId) {
		return ErrAdminParticipant
	}
	if event.IsParticipant(userId) {
		return nil
	}

	if err := r.db.Model(event).Association("Participants").Append(&model.User{ID: userId}); err != nil {
		slog.Error("EventModel AddParticipant failed", "error", err, "event_id", eventId, "user_id", userId)
		return err
	}

	slog.Info("EventModel AddParticipant success", "event_id", eventId, "user_id", userId)
	return nil
}

// MarkCertificatesSent flips the one-shot sent flag and clears the
// processing claim
func (r *EventRepository) MarkCertificatesSent(eventId string, at time.Time) error {
	err := r.db.Model(&model.Event{}).
		Where("id = ?", eventId).
		Updates(map[string]any{
			"certificates_sent":     true,
			"certificates_sent_at":  at,
			"processing_started_at": nil,
		}).Error
	if err != nil {
		slog.Error("EventModel MarkCertificatesSent failed", "error", err, "event_id", eventId)
		return err
	}
	return nil
}

// ListAutoSendPending returns ended events flagged for auto-send whose
// certificates have not gone out. Stale claims older than an hour are
// treated as abandoned and picked up again.
func (r *EventRepository) ListAutoSendPending(now time.Time) ([]*model.Event, error) {
	staleBefore := now.Add(-time.Hour)

	var events []*model.Event
	err := r.db.
		Where("event_date < ?", now).
		Where("auto_send_after_event_end = ?", true).
		Where("certificates_sent = ?", false).
		Where("processing_started_at IS NULL OR processing_started_at < ?", staleBefore).
		Order("event_date ASC").
		Find(&events).Error
	if err != nil {
		slog.Error("EventModel ListAutoSendPending failed", "error", err)
		return nil, err
	}
	return events, nil
}

// ClaimForProcessing takes the processing claim with a conditional update.
// It returns false when another instance holds a fresh claim or the event
// was already completed.
func (r *EventRepository) ClaimForProcessing(eventId string, at time.Time) (bool, error) {
	staleBefore := at.Add(-time.Hour)

	result := r.db.Model(&model.Event{}).
		Where("id = ?", eventId).
		Where("certificates_sent = ?", false).
		Where("processing_started_at IS NULL OR processing_started_at < ?", staleBefore).
		Update("processing_started_at", at)
	if result.Error != nil {
		slog.Error("EventModel ClaimForProcessing failed", "error", result.Error, "event_id", eventId)
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// generateEventCode builds a short uppercase join code from a fresh UUID
func generateEventCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:8])
}
