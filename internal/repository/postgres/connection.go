package postgres

import (
	"context"
	"strings"

	"github.com/larrytao05/forum-backend/internal/domain"
	"github.com/larrytao05/forum-backend/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(openDialector(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// openDialector picks the driver from the URL. sqlite keeps the local
// single-file mode working; anything else is treated as postgres.
func openDialector(databaseURL string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, "sqlite://") {
		return sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://"))
	}
	if strings.HasSuffix(databaseURL, ".db") {
		return sqlite.Open(databaseURL)
	}
	return postgres.Open(databaseURL)
}

// Migrate creates the schema plus the partial unique index that enforces
// at most one active session per user. The index, not the service-level
// check, is what makes two concurrent session starts safe.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&domain.User{}, "Friends", &domain.Friendship{}); err != nil {
		return err
	}

	err := db.AutoMigrate(
		&domain.User{},
		&domain.WorkSession{},
		&domain.FriendRequest{},
		&domain.Friendship{},
	)
	if err != nil {
		return err
	}

	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_work_sessions_one_active " +
			"ON work_sessions (user_id) WHERE active",
	).Error
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:          NewUserRepository(db),
		Session:       NewSessionRepository(db),
		FriendRequest: NewFriendRequestRepository(db),
		Friendship:    NewFriendshipRepository(db),
		Tx:            NewTxManager(db),
	}
}

type txManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *txManager {
	return &txManager{db: db}
}

func (m *txManager) Do(ctx context.Context, fn func(r *repository.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
