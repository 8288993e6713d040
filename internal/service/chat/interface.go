package chat

import (
	"context"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

/*=================Remote chat API================================*/

// ChatAPI is the remote transcript contract. Implemented by the walkapi
// HTTP client on device and by Service on the server.
type ChatAPI interface {
	GetMessages(ctx context.Context, walkID uuid.UUID) ([]models.ChatMessage, error)
	SendMessage(ctx context.Context, msg models.NewOutgoingMessage) (models.ChatMessage, error)
	MarkMessagesRead(ctx context.Context, walkID, userID uuid.UUID) error
}

/*=================Server-side repository=========================*/

type ChatRepo interface {
	ListByWalk(ctx context.Context, walkID uuid.UUID) ([]models.ChatMessage, error)
	Create(ctx context.Context, msg models.NewOutgoingMessage) (models.ChatMessage, error)
	MarkRead(ctx context.Context, walkID, readerID uuid.UUID) (int64, error)
}

type WalkGetter interface {
	Get(ctx context.Context, walkID uuid.UUID) (*models.Walk, error)
}
