package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"gorm.io/gorm"
)

type friendRequestRepository struct {
	db *gorm.DB
}

func NewFriendRequestRepository(db *gorm.DB) *friendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) Create(ctx context.Context, request *domain.FriendRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *friendRequestRepository) GetPending(ctx context.Context, receiverID, senderID uuid.UUID) (*domain.FriendRequest, error) {
	var request domain.FriendRequest
	err := r.db.WithContext(ctx).
		First(&request, "receiver_id = ? AND sender_id = ?", receiverID, senderID).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// PendingBetween reports whether a request exists between the unordered
// pair, in either direction.
func (r *friendRequestRepository) PendingBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.FriendRequest{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *friendRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.FriendRequest{}, "id = ?", id).Error
}

func (r *friendRequestRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.FriendRequest{}, "sender_id = ? OR receiver_id = ?", userID, userID).Error
}
