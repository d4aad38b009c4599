package service_test

import (
	"context"
	"testing"

	"github.com/larrytao05/forum-backend/internal/repository/postgres"
	"github.com/larrytao05/forum-backend/internal/service"
	"github.com/larrytao05/forum-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without Redis the leaderboard reads straight from the users table.
func TestLeaderboardService_SQLFallback(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, testutil.TestConfig(), nil)
	ctx := context.Background()

	for _, fixture := range []struct {
		username string
		total    float64
	}{
		{"slow", 1200},
		{"fast", 9000},
		{"mid", 4500},
	} {
		user, _ := testutil.NewUserBuilder().WithUsername(fixture.username).Build(t, testDB.DB)
		user.TotalTime = fixture.total
		require.NoError(t, repos.User.Update(ctx, user))
	}

	entries, err := services.Leaderboard.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "fast", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.InDelta(t, 9000, entries[0].TotalTime, 0.001)
	assert.Equal(t, "mid", entries[1].Username)
	assert.Equal(t, 2, entries[1].Rank)
}
