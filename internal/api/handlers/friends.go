package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/larrytao05/forum-backend/internal/domain"
	"github.com/larrytao05/forum-backend/internal/service"
	"github.com/larrytao05/forum-backend/internal/websocket"
)

type FriendHandler struct {
	friendService *service.FriendService
	userService   *service.UserService
	hub           *websocket.Hub
}

func NewFriendHandler(friendService *service.FriendService, userService *service.UserService, hub *websocket.Hub) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
		userService:   userService,
		hub:           hub,
	}
}

// Send creates a pending friend request from {username1} to {username2}
// and returns the sender's refreshed profile.
func (h *FriendHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderName := chi.URLParam(r, "username1")
	receiverName := chi.URLParam(r, "username2")

	sender, err := h.friendService.SendRequest(r.Context(), senderName, receiverName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notifyUser(r, receiverName, websocket.EventFriendRequest, sender)
	respondJSON(w, http.StatusOK, buildUserResponse(sender, true))
}

// Accept consumes the pending request sent by {username2} to {username1}
// and returns the accepter's refreshed profile, friends included.
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	accepterName := chi.URLParam(r, "username1")
	requesterName := chi.URLParam(r, "username2")

	accepter, err := h.friendService.AcceptRequest(r.Context(), accepterName, requesterName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.notifyUser(r, requesterName, websocket.EventFriendAccepted, accepter)
	respondJSON(w, http.StatusOK, buildUserResponse(accepter, true))
}

func (h *FriendHandler) notifyUser(r *http.Request, username, event string, from *domain.User) {
	target, err := h.userService.GetByUsername(r.Context(), username)
	if err != nil {
		log.Printf("ERROR [friends.notifyUser] resolving %q: %v", username, err)
		return
	}

	msg, err := websocket.NewMessage(event, websocket.FriendEventPayload{
		FromUserID:   from.ID.String(),
		FromUsername: from.Username,
	})
	if err != nil {
		log.Printf("ERROR [friends.notifyUser] building message: %v", err)
		return
	}
	h.hub.Broadcast([]uuid.UUID{target.ID}, msg)
}
