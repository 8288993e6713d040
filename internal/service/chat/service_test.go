package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	"github.com/pasealo/walk-tracking-system/pkg/logger"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

type fakeChatRepo struct {
	msgs      []models.ChatMessage
	markCalls int
}

func (f *fakeChatRepo) ListByWalk(ctx context.Context, walkID uuid.UUID) ([]models.ChatMessage, error) {
	return f.msgs, nil
}

func (f *fakeChatRepo) Create(ctx context.Context, msg models.NewOutgoingMessage) (models.ChatMessage, error) {
	stored := models.ChatMessage{ID: uuid.MustNew(), WalkID: msg.WalkID, Sender: msg.Sender, Text: msg.Text}
	f.msgs = append(f.msgs, stored)
	return stored, nil
}

func (f *fakeChatRepo) MarkRead(ctx context.Context, walkID, readerID uuid.UUID) (int64, error) {
	f.markCalls++
	return int64(len(f.msgs)), nil
}

type fakeWalks struct {
	status types.WalkStatus
	err    error
}

func (f *fakeWalks) Get(ctx context.Context, walkID uuid.UUID) (*models.Walk, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Walk{ID: walkID, Status: f.status}, nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testService(repo *fakeChatRepo, walks *fakeWalks) *Service {
	return NewService(repo, walks, passthroughTx{}, logger.InitLogger("test", logger.LevelError))
}

func TestSendMessage_StatusGate(t *testing.T) {
	tests := []struct {
		status  types.WalkStatus
		wantErr bool
	}{
		{types.StatusScheduled, false},
		{types.StatusActive, false},
		{types.StatusRequested, true},
		{types.StatusAwaitingPay, true},
		{types.StatusFinished, true},
		{types.StatusRejected, true},
		{types.StatusCancelled, true},
	}

	for _, tt := range tests {
		svc := testService(&fakeChatRepo{}, &fakeWalks{status: tt.status})
		_, err := svc.SendMessage(context.Background(), models.NewOutgoingMessage{
			WalkID: uuid.MustNew(),
			Sender: types.SenderOwner,
			Text:   "hola",
		})
		if tt.wantErr && !errors.Is(err, types.ErrChatUnavailable) {
			t.Fatalf("status %q: want ErrChatUnavailable, got %v", tt.status, err)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("status %q: unexpected error %v", tt.status, err)
		}
	}
}

func TestSendMessage_Validation(t *testing.T) {
	svc := testService(&fakeChatRepo{}, &fakeWalks{status: types.StatusActive})

	_, err := svc.SendMessage(context.Background(), models.NewOutgoingMessage{
		WalkID: uuid.MustNew(), Sender: types.SenderOwner, Text: "   ",
	})
	if !errors.Is(err, types.ErrEmptyMessage) {
		t.Fatalf("want ErrEmptyMessage, got %v", err)
	}

	_, err = svc.SendMessage(context.Background(), models.NewOutgoingMessage{
		WalkID: uuid.MustNew(), Sender: "dog", Text: "guau",
	})
	if !errors.Is(err, types.ErrInvalidSender) {
		t.Fatalf("want ErrInvalidSender, got %v", err)
	}
}

func TestGetMessages_HiddenChat(t *testing.T) {
	svc := testService(&fakeChatRepo{}, &fakeWalks{status: types.StatusCancelled})

	if _, err := svc.GetMessages(context.Background(), uuid.MustNew()); !errors.Is(err, types.ErrChatUnavailable) {
		t.Fatalf("want ErrChatUnavailable, got %v", err)
	}
}

func TestGetMessages_FinishedWalkStillReadable(t *testing.T) {
	repo := &fakeChatRepo{msgs: []models.ChatMessage{{Text: "gracias!"}}}
	svc := testService(repo, &fakeWalks{status: types.StatusFinished})

	msgs, err := svc.GetMessages(context.Background(), uuid.MustNew())
	if err != nil {
		t.Fatalf("finished walk transcript must stay readable: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("want 1 message, got %d", len(msgs))
	}
}

func TestMarkMessagesRead(t *testing.T) {
	repo := &fakeChatRepo{msgs: []models.ChatMessage{{Text: "a"}, {Text: "b"}}}
	svc := testService(repo, &fakeWalks{status: types.StatusActive})

	if err := svc.MarkMessagesRead(context.Background(), uuid.MustNew(), uuid.MustNew()); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if repo.markCalls != 1 {
		t.Fatalf("repo.MarkRead called %d times, want 1", repo.markCalls)
	}
}

func TestMarkMessagesRead_WalkMissing(t *testing.T) {
	svc := testService(&fakeChatRepo{}, &fakeWalks{err: types.ErrWalkNotFound})

	if err := svc.MarkMessagesRead(context.Background(), uuid.MustNew(), uuid.MustNew()); !errors.Is(err, types.ErrWalkNotFound) {
		t.Fatalf("want ErrWalkNotFound, got %v", err)
	}
}
