package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"github.com/larrytao05/forum-backend/internal/repository/postgres"
	"github.com/larrytao05/forum-backend/internal/service"
	"github.com/larrytao05/forum-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateThenGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig(), nil)
	ctx := context.Background()

	result, err := services.Auth.Register(ctx, service.RegisterInput{
		Username: "grace",
		Password: "secret123",
		Pfp:      "https://example.com/grace.png",
		Skin:     "dark",
	})
	require.NoError(t, err)

	fetched, err := services.User.Get(ctx, result.User.ID)
	require.NoError(t, err)

	assert.Equal(t, result.User.ID, fetched.ID)
	assert.Equal(t, "grace", fetched.Username)
	assert.Equal(t, "https://example.com/grace.png", fetched.Pfp)
	assert.Equal(t, "dark", fetched.Skin)
	assert.Equal(t, 0, fetched.Level)
	assert.Zero(t, fetched.TotalTime)
	assert.Empty(t, fetched.Sessions)
	assert.Empty(t, fetched.Requests)
	assert.Empty(t, fetched.Friends)
}

func TestUserService_Get_NotFound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig(), nil)

	_, err := services.User.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_Delete_Cascades(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig(), nil)
	ctx := context.Background()

	heidi, _ := testutil.NewUserBuilder().WithUsername("heidi").Build(t, testDB.DB)
	ivan, _ := testutil.NewUserBuilder().WithUsername("ivan").Build(t, testDB.DB)
	judy, _ := testutil.NewUserBuilder().WithUsername("judy").Build(t, testDB.DB)

	// Two sessions, one closed and one active.
	now := float64(time.Now().Unix())
	testutil.NewSessionBuilder(heidi.ID).WithStart(now - 7200).Ended(3600).Build(t, testDB.DB)
	testutil.NewSessionBuilder(heidi.ID).WithStart(now - 60).Build(t, testDB.DB)

	// An established friendship and a pending outgoing request.
	_, err := services.Friend.SendRequest(ctx, "heidi", "ivan")
	require.NoError(t, err)
	_, err = services.Friend.AcceptRequest(ctx, "ivan", "heidi")
	require.NoError(t, err)
	_, err = services.Friend.SendRequest(ctx, "heidi", "judy")
	require.NoError(t, err)

	deleted, err := services.User.Delete(ctx, heidi.ID)
	require.NoError(t, err)
	assert.Equal(t, heidi.ID, deleted.ID)

	_, err = services.User.Get(ctx, heidi.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Both sessions are unreachable.
	sessions, err := repos.Session.ListByUserID(ctx, heidi.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// Ivan no longer lists heidi as a friend.
	storedIvan, err := repos.User.GetByID(ctx, ivan.ID)
	require.NoError(t, err)
	assert.Empty(t, storedIvan.Friends)

	// Judy's pending request from heidi is gone too.
	storedJudy, err := repos.User.GetByID(ctx, judy.ID)
	require.NoError(t, err)
	assert.Empty(t, storedJudy.Requests)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig(), nil)

	_, err := services.User.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_List_NestsOneLevel(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig(), nil)
	ctx := context.Background()

	testutil.NewUserBuilder().WithUsername("mallory").Build(t, testDB.DB)
	testutil.NewUserBuilder().WithUsername("nick").Build(t, testDB.DB)

	_, err := services.Friend.SendRequest(ctx, "mallory", "nick")
	require.NoError(t, err)
	_, err = services.Friend.AcceptRequest(ctx, "nick", "mallory")
	require.NoError(t, err)

	users, err := services.User.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	for _, user := range users {
		require.Len(t, user.Friends, 1)
		// Friends are loaded one level deep; the friend's own friends
		// stay empty to keep the serialization bounded.
		assert.Empty(t, user.Friends[0].Friends)
	}
}
