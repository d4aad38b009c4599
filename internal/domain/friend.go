package domain

import (
	"time"

	"github.com/google/uuid"
)

// FriendRequest is a pending handshake from sender to receiver. Accepting
// deletes the request and writes both friendship edges; Accepted only ever
// reads false while the row exists, kept for wire compatibility.
type FriendRequest struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	SenderID   uuid.UUID `json:"sender_id" gorm:"type:uuid;not null"`
	ReceiverID uuid.UUID `json:"receiver_id" gorm:"type:uuid;not null"`
	Accepted   bool      `json:"accepted" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"-"`

	Sender User `json:"-" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
}
