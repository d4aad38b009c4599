package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Preload("Sessions").
		Preload("Requests").
		Preload("Friends.Sessions").
		Preload("Friends.Requests").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Preload("Sessions").
		Preload("Requests").
		Preload("Friends.Sessions").
		Preload("Friends.Requests").
		First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.WithContext(ctx).
		Preload("Sessions").
		Preload("Requests").
		Preload("Friends.Sessions").
		Preload("Friends.Requests").
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).
		Omit("Sessions", "Requests", "Friends").
		Save(user).Error
}

// Delete removes the user and, via Select(clause.Associations) plus the
// OnDelete:CASCADE constraints, the user's sessions, incoming requests
// and friendship join rows in both directions.
func (r *userRepository) Delete(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(user).Error
}

func (r *userRepository) TopByTotalTime(ctx context.Context, limit int) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.WithContext(ctx).
		Order("total_time DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
