package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, user *domain.User) error
	TopByTotalTime(ctx context.Context, limit int) ([]*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkSession) error
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.WorkSession, error)
	Update(ctx context.Context, session *domain.WorkSession) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type FriendRequestRepository interface {
	Create(ctx context.Context, request *domain.FriendRequest) error
	GetPending(ctx context.Context, receiverID, senderID uuid.UUID) (*domain.FriendRequest, error)
	PendingBetween(ctx context.Context, a, b uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type FriendshipRepository interface {
	Link(ctx context.Context, a, b *domain.User) error
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
	FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// TxManager runs fn against repositories bound to one transaction;
// fn returning an error rolls the whole unit back. Services use it for
// every read-check-write so no check-then-act escapes a commit boundary.
type TxManager interface {
	Do(ctx context.Context, fn func(r *Repositories) error) error
}

type Repositories struct {
	User          UserRepository
	Session       SessionRepository
	FriendRequest FriendRequestRepository
	Friendship    FriendshipRepository
	Tx            TxManager
}
