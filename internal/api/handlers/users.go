package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/api/middleware"
	"github.com/larrytao05/forum-backend/internal/domain"
	"github.com/larrytao05/forum-backend/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Pfp      string `json:"pfp"`
	Skin     string `json:"skin"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse mirrors the session wire format: epoch-second floats
// and the owner's id under "user".
type SessionResponse struct {
	ID          string   `json:"id"`
	Start       float64  `json:"start"`
	Active      bool     `json:"active"`
	TimeElapsed float64  `json:"timeElapsed"`
	User        string   `json:"user"`
	Tags        []string `json:"tags,omitempty"`
}

type RequestResponse struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Accepted   bool   `json:"accepted"`
}

type UserResponse struct {
	ID       string            `json:"id"`
	Username string            `json:"username"`
	Pfp      string            `json:"pfp"`
	Time     float64           `json:"time"`
	Lvl      int               `json:"lvl"`
	Skin     string            `json:"skin"`
	Sessions []SessionResponse `json:"sessions"`
	Requests []RequestResponse `json:"requests"`
	Friends  []UserResponse    `json:"friends"`
}

type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

func buildSessionResponse(s *domain.WorkSession) SessionResponse {
	resp := SessionResponse{
		ID:          s.ID.String(),
		Start:       s.Start,
		Active:      s.Active,
		TimeElapsed: s.TimeElapsed,
		User:        s.UserID.String(),
	}
	if len(s.Tags) > 0 {
		// Tags were marshalled from []string on the way in.
		_ = json.Unmarshal(s.Tags, &resp.Tags)
	}
	return resp
}

func buildRequestResponse(r *domain.FriendRequest) RequestResponse {
	return RequestResponse{
		ID:         r.ID.String(),
		SenderID:   r.SenderID.String(),
		ReceiverID: r.ReceiverID.String(),
		Accepted:   r.Accepted,
	}
}

// buildUserResponse serializes a user with nested sessions and pending
// requests. Friends are included one level deep only; a friend's own
// friends list serializes empty.
func buildUserResponse(u *domain.User, includeFriends bool) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Pfp:      u.Pfp,
		Time:     u.TotalTime,
		Lvl:      u.Level,
		Skin:     u.Skin,
		Sessions: make([]SessionResponse, 0, len(u.Sessions)),
		Requests: make([]RequestResponse, 0, len(u.Requests)),
		Friends:  make([]UserResponse, 0, len(u.Friends)),
	}
	for i := range u.Sessions {
		resp.Sessions = append(resp.Sessions, buildSessionResponse(&u.Sessions[i]))
	}
	for i := range u.Requests {
		resp.Requests = append(resp.Requests, buildRequestResponse(&u.Requests[i]))
	}
	if includeFriends {
		for _, friend := range u.Friends {
			resp.Friends = append(resp.Friends, buildUserResponse(friend, false))
		}
	}
	return resp
}

// List returns every user with nested sessions, requests and friends.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, buildUserResponse(user, true))
	}
	respondJSON(w, http.StatusOK, map[string][]UserResponse{"users": resp})
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Pfp:      req.Pfp,
		Skin:     req.Skin,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, buildUserResponse(result.User, true))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, buildUserResponse(user, true))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.Delete(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, buildUserResponse(user, true))
}

// Login authenticates with credentials in the request body and returns
// the user plus a bearer token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, domain.ErrMissingFields.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		User:        buildUserResponse(result.User, true),
		AccessToken: result.AccessToken,
	})
}

// Me resolves the bearer token to the full user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, buildUserResponse(user, true))
}
