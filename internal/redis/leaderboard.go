package redis

import (
	"context"

	"github.com/google/uuid"
)

const leaderboardKey = "leaderboard:study_time"

// RecordStudyTime adds elapsed seconds to the user's leaderboard score.
func (c *Client) RecordStudyTime(ctx context.Context, userID uuid.UUID, seconds float64) error {
	return c.ZIncrBy(ctx, leaderboardKey, seconds, userID.String()).Err()
}

// RemoveUser drops a deleted user from the leaderboard.
func (c *Client) RemoveUser(ctx context.Context, userID uuid.UUID) error {
	return c.ZRem(ctx, leaderboardKey, userID.String()).Err()
}

// TopStudyTimes returns up to limit (userID, totalSeconds) pairs, best first.
func (c *Client) TopStudyTimes(ctx context.Context, limit int) (map[uuid.UUID]float64, []uuid.UUID, error) {
	entries, err := c.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, nil, err
	}

	scores := make(map[uuid.UUID]float64, len(entries))
	order := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		member, ok := entry.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		scores[id] = entry.Score
		order = append(order, id)
	}
	return scores, order, nil
}
