package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is one persisted transcript entry. TripID is nil for
// conversations not attached to a trip.
type ChatMessage struct {
	ID        uuid.UUID  `db:"id"`
	TripID    *uuid.UUID `db:"trip_id"`
	Role      string     `db:"role"`
	Content   string     `db:"content"`
	CreatedAt time.Time  `db:"created_at"`
}
