package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"gorm.io/gorm"
)

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *friendshipRepository {
	return &friendshipRepository{db: db}
}

// Link writes both directed edges so the friendship reads symmetrically
// from either side. Callers run it inside a TxManager unit.
func (r *friendshipRepository) Link(ctx context.Context, a, b *domain.User) error {
	edges := []domain.Friendship{
		{UserID: a.ID, FriendID: b.ID},
		{UserID: b.ID, FriendID: a.ID},
	}
	return r.db.WithContext(ctx).Create(&edges).Error
}

func (r *friendshipRepository) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Friendship{}).
		Where("user_id = ? AND friend_id = ?", a, b).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *friendshipRepository) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Friendship{}).
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *friendshipRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Friendship{}, "user_id = ? OR friend_id = ?", userID, userID).Error
}
