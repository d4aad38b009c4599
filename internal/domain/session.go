package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WorkSession is one study/work session. Start and TimeElapsed are Unix
// epoch seconds as floats, matching what clients display. At most one
// active session may exist per user; the partial unique index created in
// postgres.NewConnection backs that invariant at the database level.
type WorkSession struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID      `json:"user" gorm:"type:uuid;not null;index"`
	Start       float64        `json:"start" gorm:"not null"`
	TimeElapsed float64        `json:"timeElapsed" gorm:"not null;default:0"`
	Active      bool           `json:"active" gorm:"not null;default:true"`
	Tags        datatypes.JSON `json:"tags,omitempty"`
}

// SecondsPerLevel is the accrued active time needed per user level.
const SecondsPerLevel = 3600.0
