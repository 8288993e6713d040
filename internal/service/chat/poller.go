package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/internal/policy"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/metrics"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

// DefaultPollInterval is the production refresh cadence.
const DefaultPollInterval = 180 * time.Second

// StatusFunc returns the walk's latest status. The poller re-reads it on
// every gating decision; nothing is cached.
type StatusFunc func() types.WalkStatus

/*
Poller keeps one walk's transcript fresh while the chat is visible.
Each tick fetches the full transcript and replaces the local list wholesale;
transcripts are small and the replace keeps the client trivially consistent.
The interval timer is the only timer this component owns and Stop always
clears it, tearing a view down without Stop leaks the timer.
*/
type Poller struct {
	api      ChatAPI
	walkID   uuid.UUID
	userID   uuid.UUID
	status   StatusFunc
	interval time.Duration
	l        logger.Logger

	mu       sync.Mutex
	messages []models.ChatMessage
	draft    string
	cancel   context.CancelFunc
}

func NewPoller(api ChatAPI, walkID, userID uuid.UUID, status StatusFunc, interval time.Duration, l logger.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		api:      api,
		walkID:   walkID,
		userID:   userID,
		status:   status,
		interval: interval,
		l:        l,
	}
}

// Start refreshes once and then polls on the configured interval until the
// context is done, Stop is called, or chat visibility turns off. Starting
// an already-started poller restarts its timer.
func (p *Poller) Start(ctx context.Context) error {
	if !policy.IsChatVisible(p.status()) {
		return wrap.Error(ctx, types.ErrChatUnavailable)
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	if err := p.Refresh(ctx); err != nil {
		p.l.Warn(wrap.WithAction(ctx, types.ActionChatPollFailed), "initial refresh failed", "err", err.Error())
	}

	go p.loop(ctx)
	return nil
}

func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !policy.IsChatVisible(p.status()) {
				p.l.Debug(ctx, "chat no longer visible, stopping poll")
				p.Stop()
				return
			}
			if err := p.Refresh(ctx); err != nil {
				// Transient failures never abort the loop.
				p.l.Warn(wrap.WithAction(ctx, types.ActionChatPollFailed), "refresh failed", "err", err.Error())
			}
		}
	}
}

// Stop clears the poll timer. Safe to call repeatedly or without Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Refresh fetches the transcript, replaces the local list wholesale and
// marks the fetched messages read for the current user.
func (p *Poller) Refresh(ctx context.Context) error {
	const op = "chat.Poller.Refresh"
	ctx = wrap.WithWalkID(ctx, p.walkID.String())

	msgs, err := p.api.GetMessages(ctx, p.walkID)
	if err != nil {
		metrics.ChatPollsTotal.WithLabelValues("error").Inc()
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	metrics.ChatPollsTotal.WithLabelValues("ok").Inc()

	p.mu.Lock()
	p.messages = msgs
	p.mu.Unlock()

	if len(msgs) > 0 {
		if err := p.api.MarkMessagesRead(ctx, p.walkID, p.userID); err != nil {
			// Read receipts are best-effort.
			p.l.Warn(ctx, "mark read failed", "err", err.Error())
		}
	}

	return nil
}

// Send submits the current draft. On success the stored message is appended
// to the local list and the draft cleared; on failure the draft survives so
// the user can retry.
func (p *Poller) Send(ctx context.Context, sender types.SenderType, senderName string) (models.ChatMessage, error) {
	const op = "chat.Poller.Send"
	ctx = wrap.WithWalkID(ctx, p.walkID.String())

	if !policy.CanSendMessages(p.status()) {
		return models.ChatMessage{}, wrap.Error(ctx, types.ErrChatUnavailable)
	}

	p.mu.Lock()
	draft := p.draft
	p.mu.Unlock()

	if draft == "" {
		return models.ChatMessage{}, wrap.Error(ctx, types.ErrEmptyMessage)
	}

	stored, err := p.api.SendMessage(ctx, models.NewOutgoingMessage{
		WalkID:     p.walkID,
		SenderID:   p.userID,
		Sender:     sender,
		SenderName: senderName,
		Text:       draft,
	})
	if err != nil {
		// Draft is kept for retry.
		return models.ChatMessage{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	p.mu.Lock()
	p.messages = append(p.messages, stored)
	p.draft = ""
	p.mu.Unlock()

	return stored, nil
}

// SetDraft stores the user's in-progress message text.
func (p *Poller) SetDraft(text string) {
	p.mu.Lock()
	p.draft = text
	p.mu.Unlock()
}

// Draft returns the in-progress message text.
func (p *Poller) Draft() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// Messages returns a copy of the current transcript.
func (p *Poller) Messages() []models.ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.ChatMessage, len(p.messages))
	copy(out, p.messages)
	return out
}
