package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/service"
	"github.com/larrytao05/forum-backend/internal/websocket"
)

type SessionHandler struct {
	sessionService *service.SessionService
	friendService  *service.FriendService
	hub            *websocket.Hub
}

func NewSessionHandler(sessionService *service.SessionService, friendService *service.FriendService, hub *websocket.Hub) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		friendService:  friendService,
		hub:            hub,
	}
}

type StartSessionRequest struct {
	Tags []string `json:"tags"`
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	// The body is optional; an empty one means no tags.
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.sessionService.Start(r.Context(), userID, req.Tags)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notifyFriends(r, websocket.EventSessionStarted, result)
	respondJSON(w, http.StatusCreated, buildSessionResponse(result.Session))
}

func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	result, err := h.sessionService.End(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notifyFriends(r, websocket.EventSessionEnded, result)
	respondJSON(w, http.StatusOK, buildSessionResponse(result.Session))
}

func (h *SessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	result, err := h.sessionService.Cancel(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notifyFriends(r, websocket.EventSessionCancelled, result)
	respondJSON(w, http.StatusOK, buildSessionResponse(result.Session))
}

// notifyFriends pushes the session event to the owner's online friends.
// Best effort; a presence failure never fails the request.
func (h *SessionHandler) notifyFriends(r *http.Request, event string, result *service.SessionResult) {
	friendIDs, err := h.friendService.FriendIDs(r.Context(), result.User.ID)
	if err != nil {
		log.Printf("ERROR [sessions.notifyFriends] listing friends: %v", err)
		return
	}

	sessionResp := buildSessionResponse(result.Session)
	msg, err := websocket.NewMessage(event, websocket.SessionEventPayload{
		UserID:      result.User.ID.String(),
		Username:    result.User.Username,
		SessionID:   sessionResp.ID,
		Start:       sessionResp.Start,
		TimeElapsed: sessionResp.TimeElapsed,
		Level:       result.User.Level,
		Tags:        sessionResp.Tags,
	})
	if err != nil {
		log.Printf("ERROR [sessions.notifyFriends] building message: %v", err)
		return
	}
	h.hub.Broadcast(friendIDs, msg)
}
