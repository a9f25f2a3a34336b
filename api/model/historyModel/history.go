package historymodel

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "user_history"

// Entry is one append-only audit record of a user action.
type Entry struct {
	ID        string         `bson:"_id" json:"id"`
	UserID    string         `bson:"user_id" json:"user_id"`
	Action    string         `bson:"action" json:"action"`
	EventID   string         `bson:"event_id,omitempty" json:"event_id,omitempty"`
	Detail    map[string]any `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}

// HistoryRepository appends user activity to MongoDB. Writes are best
// effort; a failed audit write never fails the triggering request.
type HistoryRepository struct {
	db *mongo.Database
}

// NewHistoryRepository creates a new history repository with dependency injection
func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record appends one audit entry
func (r *HistoryRepository) Record(userId string, action string, eventId string, detail map[string]any) {
	if r.db == nil {
		return
	}

	entry := Entry{
		ID:        uuid.New().String(),
		UserID:    userId,
		Action:    action,
		EventID:   eventId,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.db.Collection(collectionName).InsertOne(ctx, entry); err != nil {
		slog.Warn("HistoryModel Record failed", "error", err, "user_id", userId, "action", action)
		return
	}

	slog.Debug("HistoryModel Record success", "user_id", userId, "action", action)
}

// ListByUser returns the user's most recent activity, capped at limit entries
func (r *HistoryRepository) ListByUser(userId string, limit int64) ([]Entry, error) {
	if r.db == nil {
		return []Entry{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.db.Collection(collectionName).Find(ctx, bson.M{"user_id": userId}, opts)
	if err != nil {
		slog.Error("HistoryModel ListByUser find failed", "error", err, "user_id", userId)
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		slog.Error("HistoryModel ListByUser cursor failed", "error", err, "user_id", userId)
		return nil, err
	}
	return entries, nil
}
