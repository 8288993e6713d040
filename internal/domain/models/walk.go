package models

import (
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

// Walk is the read model this system needs: identity, participants and the
// lifecycle status everything else is gated on. Scheduling, payment and
// review data live in other services.
type Walk struct {
	ID       uuid.UUID        `json:"walk_id"`
	OwnerID  uuid.UUID        `json:"owner_id"`
	WalkerID uuid.UUID        `json:"walker_id"`
	PetName  string           `json:"pet_name,omitempty"`
	Status   types.WalkStatus `json:"status"`

	ScheduledAt time.Time  `json:"scheduled_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}
