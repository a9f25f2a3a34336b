package usermodel

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"gorm.io/gorm"
)

// UserRepository handles all user database operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository with dependency injection
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user record
func (r *UserRepository) Create(user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	if err := r.db.Create(user).Error; err != nil {
		slog.Error("UserModel Create failed", "error", err, "email", user.Email)
		return nil, err
	}

	slog.Info("UserModel Create success", "user_id", user.ID)
	return user, nil
}

// GetById returns the user or nil when no record exists
func (r *UserRepository) GetById(userId string) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", userId).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("UserModel GetById failed", "error", err, "user_id", userId)
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns the user or nil when no record exists
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("UserModel GetByEmail failed", "error", err, "email", email)
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the given field updates to the user record
func (r *UserRepository) UpdateProfile(userId string, updates map[string]any) (*model.User, error) {
	result := r.db.Model(&model.User{}).Where("id = ?", userId).Updates(updates)
	if result.Error != nil {
		slog.Error("UserModel UpdateProfile failed", "error", result.Error, "user_id", userId)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	slog.Info("UserModel UpdateProfile success", "user_id", userId)
	return r.GetById(userId)
}
