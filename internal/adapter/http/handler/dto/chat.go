package dto

import (
	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
	"github.com/pasealo/walk-tracking-system/pkg/validator"
)

const maxMessageLength = 2000

type SendMessageRequest struct {
	Text string `json:"text"`
}

func (r *SendMessageRequest) Validate(v *validator.Validator) {
	v.Check(r.Text != "", "text", "must be provided")
	v.Check(len(r.Text) <= maxMessageLength, "text", "must not exceed 2000 characters")
}

// ToModel builds the outgoing message from the request and the caller's
// session. The sender role is derived from the session, never trusted
// from the body.
func (r *SendMessageRequest) ToModel(walkID uuid.UUID, session *models.Session) models.NewOutgoingMessage {
	sender := types.SenderOwner
	if session.Role == types.RoleWalker {
		sender = types.SenderWalker
	}

	return models.NewOutgoingMessage{
		WalkID:     walkID,
		SenderID:   session.UserID,
		Sender:     sender,
		SenderName: session.Name,
		Text:       r.Text,
	}
}
