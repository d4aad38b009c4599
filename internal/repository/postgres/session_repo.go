package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.WorkSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error) {
	var session domain.WorkSession
	err := r.db.WithContext(ctx).
		First(&session, "user_id = ? AND active", userID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.WorkSession, error) {
	var sessions []*domain.WorkSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *domain.WorkSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.WorkSession{}, "id = ?", id).Error
}
