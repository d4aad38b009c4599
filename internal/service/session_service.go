package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"github.com/larrytao05/forum-backend/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionService struct {
	repos       *repository.Repositories
	leaderboard *LeaderboardService
	now         func() time.Time
}

func NewSessionService(repos *repository.Repositories, leaderboard *LeaderboardService) *SessionService {
	return &SessionService{
		repos:       repos,
		leaderboard: leaderboard,
		now:         time.Now,
	}
}

// SessionResult carries the affected session together with its owner,
// which callers push out over the presence feed.
type SessionResult struct {
	Session *domain.WorkSession
	User    *domain.User
}

// Start opens a session for the user. The existence check runs inside the
// transaction, and the partial unique index on (user_id) WHERE active
// turns a lost race into gorm.ErrDuplicatedKey, reported as the same
// conflict.
func (s *SessionService) Start(ctx context.Context, userID uuid.UUID, tags []string) (*SessionResult, error) {
	var result *SessionResult
	err := s.repos.Tx.Do(ctx, func(r *repository.Repositories) error {
		user, err := r.User.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		if _, err := r.Session.GetActiveByUserID(ctx, userID); err == nil {
			return domain.ErrSessionActive
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		session := &domain.WorkSession{
			ID:     uuid.New(),
			UserID: userID,
			Start:  epochSeconds(s.now()),
			Active: true,
		}
		if len(tags) > 0 {
			raw, err := json.Marshal(tags)
			if err != nil {
				return err
			}
			session.Tags = datatypes.JSON(raw)
		}

		if err := r.Session.Create(ctx, session); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrSessionActive
			}
			return err
		}

		result = &SessionResult{Session: session, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// End closes the active session, accrues its elapsed time onto the user
// and recomputes the level as floor(totalTime / 3600).
func (s *SessionService) End(ctx context.Context, userID uuid.UUID) (*SessionResult, error) {
	var result *SessionResult
	err := s.repos.Tx.Do(ctx, func(r *repository.Repositories) error {
		user, err := r.User.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		session, err := r.Session.GetActiveByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNoActiveSession
			}
			return err
		}

		session.Active = false
		session.TimeElapsed = epochSeconds(s.now()) - session.Start
		if err := r.Session.Update(ctx, session); err != nil {
			return err
		}

		user.TotalTime += session.TimeElapsed
		user.Level = int(math.Floor(user.TotalTime / domain.SecondsPerLevel))
		if err := r.User.Update(ctx, user); err != nil {
			return err
		}

		result = &SessionResult{Session: session, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.leaderboard.RecordStudyTime(ctx, userID, result.Session.TimeElapsed)
	return result, nil
}

// Cancel discards the active session without touching the user's totals.
func (s *SessionService) Cancel(ctx context.Context, userID uuid.UUID) (*SessionResult, error) {
	var result *SessionResult
	err := s.repos.Tx.Do(ctx, func(r *repository.Repositories) error {
		user, err := r.User.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		session, err := r.Session.GetActiveByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNoActiveSession
			}
			return err
		}

		if err := r.Session.Delete(ctx, session.ID); err != nil {
			return err
		}

		result = &SessionResult{Session: session, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
