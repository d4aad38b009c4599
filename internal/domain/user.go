package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Pfp          string    `json:"pfp"`
	Skin         string    `json:"skin" gorm:"not null;default:'default'"`
	Level        int       `json:"lvl" gorm:"not null;default:0"`
	TotalTime    float64   `json:"time" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Sessions []WorkSession   `json:"sessions" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Requests []FriendRequest `json:"requests" gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	Friends  []*User         `json:"-" gorm:"many2many:friendships;joinForeignKey:UserID;joinReferences:FriendID"`
}

// Friendship is the join row behind User.Friends. Edges are directed;
// a friendship is stored as two rows, one per direction.
type Friendship struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	FriendID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}
