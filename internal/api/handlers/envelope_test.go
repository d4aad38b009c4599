package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/larrytao05/forum-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every serialized user carries sessions, requests and friends as
// arrays, never a missing key.
func TestUserEnvelope_Friends(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ctx := context.Background()

	testutil.NewUserBuilder().WithUsername("ron").Build(t, ts.DB.DB)

	listUsers := func() []map[string]json.RawMessage {
		t.Helper()
		req := testutil.CreateJSONRequest(t, http.MethodGet, ts.APIURL("/users/"), nil, "")
		var body map[string][]map[string]json.RawMessage
		resp := doJSON(t, req, &body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return body["users"]
	}

	t.Run("friendless user still carries the friends key", func(t *testing.T) {
		users := listUsers()
		require.Len(t, users, 1)

		raw, ok := users[0]["friends"]
		require.True(t, ok)
		assert.JSONEq(t, "[]", string(raw))
	})

	t.Run("a friend's own friends list serializes empty", func(t *testing.T) {
		testutil.NewUserBuilder().WithUsername("sybill").Build(t, ts.DB.DB)
		_, err := ts.Services.Friend.SendRequest(ctx, "ron", "sybill")
		require.NoError(t, err)
		_, err = ts.Services.Friend.AcceptRequest(ctx, "sybill", "ron")
		require.NoError(t, err)

		users := listUsers()
		require.Len(t, users, 2)
		for _, user := range users {
			var friends []map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(user["friends"], &friends))
			require.Len(t, friends, 1)
			assert.JSONEq(t, "[]", string(friends[0]["friends"]))
		}
	})
}
