package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"github.com/larrytao05/forum-backend/internal/repository"
	"gorm.io/gorm"
)

type FriendService struct {
	repos *repository.Repositories
}

func NewFriendService(repos *repository.Repositories) *FriendService {
	return &FriendService{repos: repos}
}

// SendRequest creates a pending request from sender to receiver and
// returns the sender with their nested data refreshed. Only one pending
// request may exist per unordered pair.
func (s *FriendService) SendRequest(ctx context.Context, senderUsername, receiverUsername string) (*domain.User, error) {
	var senderID uuid.UUID
	err := s.repos.Tx.Do(ctx, func(r *repository.Repositories) error {
		sender, receiver, err := lookupPair(ctx, r, senderUsername, receiverUsername)
		if err != nil {
			return err
		}
		if sender.ID == receiver.ID {
			return domain.ErrSelfFriendRequest
		}

		friends, err := r.Friendship.AreFriends(ctx, sender.ID, receiver.ID)
		if err != nil {
			return err
		}
		if friends {
			return domain.ErrAlreadyFriends
		}

		pending, err := r.FriendRequest.PendingBetween(ctx, sender.ID, receiver.ID)
		if err != nil {
			return err
		}
		if pending {
			return domain.ErrRequestPending
		}

		senderID = sender.ID
		return r.FriendRequest.Create(ctx, &domain.FriendRequest{
			ID:         uuid.New(),
			SenderID:   sender.ID,
			ReceiverID: receiver.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.repos.User.GetByID(ctx, senderID)
}

// AcceptRequest consumes the pending request matched by
// (receiver=accepter, sender=requester), writes both friendship edges and
// returns the accepter with their friends list refreshed.
func (s *FriendService) AcceptRequest(ctx context.Context, accepterUsername, requesterUsername string) (*domain.User, error) {
	var accepterID uuid.UUID
	err := s.repos.Tx.Do(ctx, func(r *repository.Repositories) error {
		accepter, requester, err := lookupPair(ctx, r, accepterUsername, requesterUsername)
		if err != nil {
			return err
		}

		friends, err := r.Friendship.AreFriends(ctx, accepter.ID, requester.ID)
		if err != nil {
			return err
		}
		if friends {
			return domain.ErrAlreadyFriends
		}

		request, err := r.FriendRequest.GetPending(ctx, accepter.ID, requester.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRequestNotFound
			}
			return err
		}

		if err := r.Friendship.Link(ctx, accepter, requester); err != nil {
			return err
		}

		accepterID = accepter.ID
		return r.FriendRequest.Delete(ctx, request.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.repos.User.GetByID(ctx, accepterID)
}

// FriendIDs lists the ids of a user's friends, for presence fan-out.
func (s *FriendService) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repos.Friendship.FriendIDs(ctx, userID)
}

func lookupPair(ctx context.Context, r *repository.Repositories, first, second string) (*domain.User, *domain.User, error) {
	a, err := r.User.GetByUsername(ctx, first)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}
	b, err := r.User.GetByUsername(ctx, second)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}
	return a, b, nil
}
