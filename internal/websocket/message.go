package websocket

import "encoding/json"

const (
	EventSessionStarted   = "session_started"
	EventSessionEnded     = "session_ended"
	EventSessionCancelled = "session_cancelled"
	EventFriendRequest    = "friend_request"
	EventFriendAccepted   = "friend_accepted"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewMessage(msgType string, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: msgType, Payload: data}, nil
}

// SessionEventPayload accompanies the session_* events.
type SessionEventPayload struct {
	UserID      string   `json:"userId"`
	Username    string   `json:"username"`
	SessionID   string   `json:"sessionId"`
	Start       float64  `json:"start"`
	TimeElapsed float64  `json:"timeElapsed,omitempty"`
	Level       int      `json:"lvl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// FriendEventPayload accompanies the friend_* events.
type FriendEventPayload struct {
	FromUserID   string `json:"fromUserId"`
	FromUsername string `json:"fromUsername"`
}
