package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type Session struct {
	ID          string   `json:"id"`
	Start       float64  `json:"start"`
	Active      bool     `json:"active"`
	TimeElapsed float64  `json:"timeElapsed"`
	User        string   `json:"user"`
	Tags        []string `json:"tags"`
}

type FriendRequest struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Accepted   bool   `json:"accepted"`
}

type User struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Pfp      string          `json:"pfp"`
	Time     float64         `json:"time"`
	Lvl      int             `json:"lvl"`
	Skin     string          `json:"skin"`
	Sessions []Session       `json:"sessions"`
	Requests []FriendRequest `json:"requests"`
	Friends  []User          `json:"friends"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

type UserList struct {
	Users []User `json:"users"`
}

type LeaderboardEntry struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Time     float64 `json:"time"`
	Rank     int     `json:"rank"`
}

type Leaderboard struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type apiError struct {
	Error string `json:"error"`
}

func (c *APIClient) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var ae apiError
		if err := json.Unmarshal(data, &ae); err == nil && ae.Error != "" {
			return fmt.Errorf("%s %s: %d: %s", method, path, resp.StatusCode, ae.Error)
		}
		return fmt.Errorf("%s %s: %d", method, path, resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

func (c *APIClient) CreateUser(username, password, pfp, skin string) (*User, error) {
	var user User
	err := c.do(http.MethodPost, "/users/", map[string]string{
		"username": username,
		"password": password,
		"pfp":      pfp,
		"skin":     skin,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *APIClient) Login(username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(http.MethodPost, "/users/login/", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) ListUsers() (*UserList, error) {
	var list UserList
	if err := c.do(http.MethodGet, "/users/", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *APIClient) StartSession(userID string, tags []string) (*Session, error) {
	var session Session
	err := c.do(http.MethodPost, "/sessions/"+userID+"/", map[string][]string{"tags": tags}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *APIClient) EndSession(userID string) (*Session, error) {
	var session Session
	if err := c.do(http.MethodPut, "/sessions/"+userID+"/", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *APIClient) CancelSession(userID string) (*Session, error) {
	var session Session
	if err := c.do(http.MethodDelete, "/sessions/"+userID+"/", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *APIClient) SendFriendRequest(sender, receiver string) (*User, error) {
	var user User
	err := c.do(http.MethodPost, "/users/friends/"+sender+"/"+receiver+"/", nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *APIClient) AcceptFriendRequest(accepter, requester string) (*User, error) {
	var user User
	err := c.do(http.MethodPut, "/users/friends/"+accepter+"/"+requester+"/", nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *APIClient) Leaderboard() (*Leaderboard, error) {
	var board Leaderboard
	if err := c.do(http.MethodGet, "/leaderboard/", nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}
