package postgres_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"github.com/larrytao05/forum-backend/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The local single-file mode: a sqlite DSN must migrate and serve the
// same repositories as postgres, one-active-session index included.
func TestNewConnection_SQLiteFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "forum.db")

	db, err := postgres.NewConnection(dsn)
	require.NoError(t, err)

	repos := postgres.NewRepositories(db)
	ctx := context.Background()

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "sqlite_local",
		PasswordHash: "hash",
		Skin:         "default",
	}
	require.NoError(t, repos.User.Create(ctx, user))

	stored, err := repos.User.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "sqlite_local", stored.Username)

	first := &domain.WorkSession{ID: uuid.New(), UserID: user.ID, Start: 1000, Active: true}
	require.NoError(t, repos.Session.Create(ctx, first))

	second := &domain.WorkSession{ID: uuid.New(), UserID: user.ID, Start: 2000, Active: true}
	err = repos.Session.Create(ctx, second)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestNewConnection_SQLiteScheme(t *testing.T) {
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "forum.sqlite")

	db, err := postgres.NewConnection(dsn)
	require.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "sqlite_scheme",
		PasswordHash: "hash",
		Skin:         "default",
	}
	require.NoError(t, postgres.NewRepositories(db).User.Create(context.Background(), user))
}
