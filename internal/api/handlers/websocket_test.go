package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/larrytao05/forum-backend/internal/service"
	"github.com/larrytao05/forum-backend/internal/testutil"
	"github.com/larrytao05/forum-backend/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceFeed(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("zoe_alice").Build(t, ts.DB.DB)
	_, bobPassword := testutil.NewUserBuilder().WithUsername("zoe_bob").Build(t, ts.DB.DB)

	// Befriend them so bob is in alice's fan-out set.
	req := testutil.CreateJSONRequest(t, http.MethodPost, ts.APIURL("/users/friends/zoe_alice/zoe_bob/"), nil, "")
	resp := doJSON(t, req, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	req = testutil.CreateJSONRequest(t, http.MethodPut, ts.APIURL("/users/friends/zoe_bob/zoe_alice/"), nil, "")
	resp = doJSON(t, req, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Bob listens on the presence feed.
	bobLogin, err := ts.Services.Auth.Login(ctx, service.LoginInput{
		Username: "zoe_bob",
		Password: bobPassword,
	})
	require.NoError(t, err)

	conn, _, err := ws.DefaultDialer.Dial(ts.WebSocketURL(bobLogin.AccessToken), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Alice starts a session over HTTP.
	startReq := testutil.CreateJSONRequest(t, http.MethodPost, ts.APIURL("/sessions/"+alice.ID.String()+"/"), map[string][]string{
		"tags": {"physics"},
	}, "")
	startResp := doJSON(t, startReq, nil)
	require.Equal(t, http.StatusCreated, startResp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg websocket.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, websocket.EventSessionStarted, msg.Type)

	var payload websocket.SessionEventPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, alice.ID.String(), payload.UserID)
	assert.Equal(t, "zoe_alice", payload.Username)
	assert.Equal(t, []string{"physics"}, payload.Tags)
}

func TestPresenceFeed_RejectsBadToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, _, err := ws.DefaultDialer.Dial(ts.WebSocketURL("garbage"), nil)
	assert.Error(t, err)
}
