package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/internal/policy"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/metrics"
	"github.com/pasealo/walk-tracking-system/pkg/trm"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

/*
Service is the walk service's side of the chat: transcript reads, message
writes and read bookkeeping, gated by the same status policy the views use.
It implements ChatAPI.
*/
type Service struct {
	repo  ChatRepo
	walks WalkGetter
	trm   trm.TxManager
	l     logger.Logger
}

func NewService(repo ChatRepo, walks WalkGetter, trm trm.TxManager, l logger.Logger) *Service {
	return &Service{
		repo:  repo,
		walks: walks,
		trm:   trm,
		l:     l,
	}
}

// GetMessages returns the full transcript for a walk, oldest first.
func (s *Service) GetMessages(ctx context.Context, walkID uuid.UUID) ([]models.ChatMessage, error) {
	const op = "chat.Service.GetMessages"
	ctx = wrap.WithWalkID(ctx, walkID.String())

	walk, err := s.walks.Get(ctx, walkID)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	if !policy.IsChatVisible(walk.Status) {
		return nil, wrap.Error(ctx, types.ErrChatUnavailable)
	}

	msgs, err := s.repo.ListByWalk(ctx, walkID)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	return msgs, nil
}

// SendMessage validates and appends one message, returning the stored row.
func (s *Service) SendMessage(ctx context.Context, msg models.NewOutgoingMessage) (models.ChatMessage, error) {
	const op = "chat.Service.SendMessage"
	ctx = wrap.WithWalkID(ctx, msg.WalkID.String())

	if strings.TrimSpace(msg.Text) == "" {
		return models.ChatMessage{}, wrap.Error(ctx, types.ErrEmptyMessage)
	}
	if msg.Sender != types.SenderOwner && msg.Sender != types.SenderWalker {
		return models.ChatMessage{}, wrap.Error(ctx, types.ErrInvalidSender)
	}

	walk, err := s.walks.Get(ctx, msg.WalkID)
	if err != nil {
		return models.ChatMessage{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	if !policy.CanSendMessages(walk.Status) {
		return models.ChatMessage{}, wrap.Error(ctx, types.ErrChatUnavailable)
	}

	stored, err := s.repo.Create(ctx, msg)
	if err != nil {
		return models.ChatMessage{}, wrap.Error(ctx, fmt.Errorf("%s: failed to store message: %w", op, err))
	}
	metrics.ChatMessagesSent.Inc()

	return stored, nil
}

// MarkMessagesRead flags every message not written by readerID as read.
// Runs inside a transaction so a partial update never leaves the unread
// counters half-applied.
func (s *Service) MarkMessagesRead(ctx context.Context, walkID, readerID uuid.UUID) error {
	const op = "chat.Service.MarkMessagesRead"
	ctx = wrap.WithWalkID(ctx, walkID.String())

	fn := func(ctx context.Context) error {
		if _, err := s.walks.Get(ctx, walkID); err != nil {
			return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}

		n, err := s.repo.MarkRead(ctx, walkID, readerID)
		if err != nil {
			return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}

		s.l.Debug(ctx, "messages marked read", "count", n)
		return nil
	}

	return s.trm.Do(ctx, fn)
}
