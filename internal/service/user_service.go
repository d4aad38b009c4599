package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"github.com/larrytao05/forum-backend/internal/repository"
	"gorm.io/gorm"
)

type UserService struct {
	repos       *repository.Repositories
	leaderboard *LeaderboardService
}

func NewUserService(repos *repository.Repositories, leaderboard *LeaderboardService) *UserService {
	return &UserService{
		repos:       repos,
		leaderboard: leaderboard,
	}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repos.User.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repos.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user plus everything hanging off them: sessions
// (cascade), friend requests in either direction, and both directions of
// every friendship edge. One transaction so a half-deleted user can never
// be observed.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var deleted *domain.User
	err := s.repos.Tx.Do(ctx, func(r *repository.Repositories) error {
		user, err := r.User.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		if err := r.Friendship.DeleteByUserID(ctx, id); err != nil {
			return err
		}
		if err := r.FriendRequest.DeleteByUserID(ctx, id); err != nil {
			return err
		}
		if err := r.User.Delete(ctx, user); err != nil {
			return err
		}

		deleted = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.leaderboard.RemoveUser(ctx, id)
	return deleted, nil
}
