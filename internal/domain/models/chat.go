package models

import (
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

// ChatMessage is one transcript entry. Messages are append-only from the
// client's point of view: no local edits or deletes.
type ChatMessage struct {
	ID         uuid.UUID        `json:"id"`
	WalkID     uuid.UUID        `json:"walk_id"`
	Sender     types.SenderType `json:"sender"`
	SenderID   uuid.UUID        `json:"sender_id"`
	SenderName string           `json:"sender_name"`
	Text       string           `json:"text"`
	// Time is the short display form (HH:MM), TimeFull the complete stamp.
	Time     string    `json:"time"`
	TimeFull string    `json:"time_full"`
	SentAt   time.Time `json:"sent_at"`
	Read     bool      `json:"read"`
}

// NewOutgoingMessage builds the message payload for a send call.
type NewOutgoingMessage struct {
	WalkID     uuid.UUID        `json:"walk_id"`
	SenderID   uuid.UUID        `json:"sender_id"`
	Sender     types.SenderType `json:"sender"`
	SenderName string           `json:"sender_name"`
	Text       string           `json:"text"`
}
