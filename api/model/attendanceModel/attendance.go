package attendancemodel

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceRepository handles all attendance database operations
type AttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository with dependency injection
func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Mark records attendance for one user. A repeat mark updates the status
// instead of inserting a duplicate row.
func (r *AttendanceRepository) Mark(eventId string, userId string, status string) (*model.Attendance, error) {
	if status == "" {
		status = model.AttendancePresent
	}

	record := &model.Attendance{
		ID:       uuid.New().String(),
		EventID:  eventId,
		UserID:   userId,
		Status:   status,
		MarkedAt: time.Now(),
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "marked_at", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		slog.Error("AttendanceModel Mark failed", "error", err, "event_id", eventId, "user_id", userId)
		return nil, err
	}

	slog.Info("AttendanceModel Mark success", "event_id", eventId, "user_id", userId, "status", status)
	return r.GetByEventAndUser(eventId, userId)
}

// GetByEventAndUser returns one attendance record or nil when absent
func (r *AttendanceRepository) GetByEventAndUser(eventId string, userId string) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.Where("event_id = ? AND user_id = ?", eventId, userId).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("AttendanceModel GetByEventAndUser failed", "error", err, "event_id", eventId, "user_id", userId)
		return nil, err
	}
	return &record, nil
}

// ListByEvent returns every attendance record for the event with user data
func (r *AttendanceRepository) ListByEvent(eventId string) ([]*model.Attendance, error) {
	var records []*model.Attendance
	err := r.db.
		Preload("User").
		Where("event_id = ?", eventId).
		Order("marked_at ASC").
		Find(&records).Error
	if err != nil {
		slog.Error("AttendanceModel ListByEvent failed", "error", err, "event_id", eventId)
		return nil, err
	}
	return records, nil
}

// ListPresentWithUsers returns attendees marked present with their user
// records loaded for certificate generation. Late and excused attendees
// are not eligible.
func (r *AttendanceRepository) ListPresentWithUsers(eventId string) ([]*model.Attendance, error) {
	var records []*model.Attendance
	err := r.db.
		Preload("User").
		Where("event_id = ?", eventId).
		Where("status = ?", model.AttendancePresent).
		Order("marked_at ASC").
		Find(&records).Error
	if err != nil {
		slog.Error("AttendanceModel ListPresentWithUsers failed", "error", err, "event_id", eventId)
		return nil, err
	}

	slog.Info("AttendanceModel ListPresentWithUsers", "event_id", eventId, "count", len(records))
	return records, nil
}
