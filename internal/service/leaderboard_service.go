package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/redis"
	"github.com/larrytao05/forum-backend/internal/repository"
	"gorm.io/gorm"
)

type LeaderboardService struct {
	userRepo repository.UserRepository
	rdb      *redis.Client
}

func NewLeaderboardService(userRepo repository.UserRepository, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		userRepo: userRepo,
		rdb:      rdb,
	}
}

type LeaderboardEntry struct {
	UserID    uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	TotalTime float64   `json:"time"`
	Rank      int       `json:"rank"`
}

// Top returns up to limit users ordered by accumulated study time.
// Served from the Redis sorted set when available, otherwise straight
// from the users table.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if s.rdb != nil {
		return s.topFromRedis(ctx, limit)
	}
	return s.topFromSQL(ctx, limit)
}

func (s *LeaderboardService) topFromRedis(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	scores, order, err := s.rdb.TopStudyTimes(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(order))
	for _, id := range order {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			// Stale leaderboard member; the user row wins.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, LeaderboardEntry{
			UserID:    user.ID,
			Username:  user.Username,
			TotalTime: scores[id],
			Rank:      len(entries) + 1,
		})
	}
	return entries, nil
}

func (s *LeaderboardService) topFromSQL(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	users, err := s.userRepo.TopByTotalTime(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, LeaderboardEntry{
			UserID:    user.ID,
			Username:  user.Username,
			TotalTime: user.TotalTime,
			Rank:      i + 1,
		})
	}
	return entries, nil
}

// RecordStudyTime is best effort; a leaderboard write never fails the
// session end that produced it.
func (s *LeaderboardService) RecordStudyTime(ctx context.Context, userID uuid.UUID, seconds float64) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.RecordStudyTime(ctx, userID, seconds); err != nil {
		log.Printf("ERROR [leaderboard.RecordStudyTime] %v", err)
	}
}

func (s *LeaderboardService) RemoveUser(ctx context.Context, userID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.RemoveUser(ctx, userID); err != nil {
		log.Printf("ERROR [leaderboard.RemoveUser] %v", err)
	}
}
