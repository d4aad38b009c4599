package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userBody struct {
	ID       string           `json:"id"`
	Username string           `json:"username"`
	Pfp      string           `json:"pfp"`
	Time     float64          `json:"time"`
	Lvl      int              `json:"lvl"`
	Skin     string           `json:"skin"`
	Sessions []sessionBody    `json:"sessions"`
	Requests []map[string]any `json:"requests"`
	Friends  []userBody       `json:"friends"`
}

type sessionBody struct {
	ID          string   `json:"id"`
	Start       float64  `json:"start"`
	Active      bool     `json:"active"`
	TimeElapsed float64  `json:"timeElapsed"`
	User        string   `json:"user"`
	Tags        []string `json:"tags"`
}

type errorBody struct {
	Error string `json:"error"`
}

func doJSON(t *testing.T, req *http.Request, out interface{}) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestUserEndpoints(t *testing.T) {
	ts := testutil.NewTestServer(t)

	var created userBody

	t.Run("create user", func(t *testing.T) {
		req := testutil.CreateJSONRequest(t, http.MethodPost, ts.APIURL("/users/"), map[string]string{
			"username": "sybil",
			"password": "secret123",
			"pfp":      "https://example.com/sybil.png",
		}, "")

		resp := doJSON(t, req, &created)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "sybil", created.Username)
		assert.Equal(t, "default", created.Skin)
		assert.Equal(t, 0, created.Lvl)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		req := testutil.CreateJSONRequest(t, http.MethodPost, ts.APIURL("/users/"), map[string]string{
			"username": "sybil",
			"password": "secret123",
		}, "")

		var body errorBody
		resp := doJSON(t, req, &body)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.NotEmpty(t, body.Error)
	})

	t.Run("missing password is a bad request", func(t *testing.T) {
		req := testutil.CreateJSONRequest(t, http.MethodPost, ts.APIURL("/users/"), map[string]string{
			"username": "trent",
		}, "")

		var body errorBody
		resp := doJSON(t, req, &body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, body.Error)
	})

	t.Run("get returns the created user", func(t *testing.T) {
		req := testutil.CreateJSONRequest(t, http.MethodGet, ts.APIURL("/users/"+created.ID+"/"), nil, "")

		var fetched userBody
		resp := doJSON(t, req, &fetched)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "sybil", fetched.Username)
		assert.Equal(t, "https://example.com/sybil.png", fetched.Pfp)
		assert.Empty(t, fetched.Sessions)
	})

	t.Run("unknown user is 404 with the error envelope", func(t *testing.T) {
		req := testutil.CreateJSONRequest(t, http.MethodGet, ts.APIURL("/users/"+uuid.NewString()+"/"), nil, "")

		var body errorBody
		resp := doJSON(t, req, &body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "user not found", body.Error)
	})

	t.Run("list includes the user", func(t *testing.T) {
		req := testutil.CreateJSONRequest(t, http.MethodGet, ts.APIURL("/users/"), nil, "")

		var list struct {
			Users []userBody `json:"users"`
		}
		resp := doJSON(t, req, &list)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, list.Users, 1)
		assert.Equal(t, "sybil", list.Users[0].Username)
	})

	t.Run("login returns the user and a token", func(t *testing.T) {
		req := testutil.CreateJSONRequest(t, http.MethodPost, ts.APIURL("/users/login/"), map[string]string{
			"username": "sybil",
			"password": "secret123",
		}, "")

		var body struct {
			User        userBody `json:"user"`
			AccessToken string   `json:"accessToken"`
		}
		resp := doJSON(t, req, &body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, created.ID, body.User.ID)
		require.NotEmpty(t, body.AccessToken)

		t.Run("me resolves the token", func(t *testing.T) {
			meReq := testutil.CreateJSONRequest(t, http.MethodGet, ts.APIURL("/users/me/"), nil, body.AccessToken)

			var me userBody
			meResp := doJSON(t, meReq, &me)
			assert.Equal(t, http.StatusOK, meResp.StatusCode)
			assert.Equal(t, created.ID, me.ID)
		})
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		req := testutil.CreateJSONRequest(t, http.MethodPost, ts.APIURL("/users/login/"), map[string]string{
			"username": "sybil",
			"password": "nope",
		}, "")

		var body errorBody
		resp := doJSON(t, req, &body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("delete removes the user", func(t *testing.T) {
		req := testutil.CreateJSONRequest(t, http.MethodDelete, ts.APIURL("/users/"+created.ID+"/"), nil, "")

		var deleted userBody
		resp := doJSON(t, req, &deleted)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, created.ID, deleted.ID)

		getReq := testutil.CreateJSONRequest(t, http.MethodGet, ts.APIURL("/users/"+created.ID+"/"), nil, "")
		getResp := doJSON(t, getReq, nil)
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})
}
