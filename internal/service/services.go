package service

import (
	"github.com/larrytao05/forum-backend/internal/config"
	"github.com/larrytao05/forum-backend/internal/redis"
	"github.com/larrytao05/forum-backend/internal/repository"
)

type Services struct {
	Auth        *AuthService
	User        *UserService
	Session     *SessionService
	Friend      *FriendService
	Leaderboard *LeaderboardService
}

// NewServices wires the service layer. rdb may be nil; the leaderboard
// then answers from SQL only.
func NewServices(repos *repository.Repositories, cfg *config.Config, rdb *redis.Client) *Services {
	leaderboard := NewLeaderboardService(repos.User, rdb)
	return &Services{
		Auth:        NewAuthService(repos.User, cfg),
		User:        NewUserService(repos, leaderboard),
		Session:     NewSessionService(repos, leaderboard),
		Friend:      NewFriendService(repos),
		Leaderboard: leaderboard,
	}
}
