package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/postgres"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

type ChatRepo struct {
	db *pgxpool.Pool
}

func NewChatRepo(db *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{db: db}
}

// ListByWalk returns the full transcript in sent order, oldest first.
// Display times are formatted here so every client renders them the same.
func (r *ChatRepo) ListByWalk(ctx context.Context, walkID uuid.UUID) ([]models.ChatMessage, error) {
	const op = "ChatRepo.ListByWalk"
	query := `
		SELECT id, walk_id, sender, sender_id, sender_name, text, sent_at, read
		FROM walk_messages
		WHERE walk_id = $1
		ORDER BY sent_at ASC;`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, walkID)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	var msgs []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.WalkID, &m.Sender, &m.SenderID, &m.SenderName, &m.Text, &m.SentAt, &m.Read); err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%s: scan: %w", op, err))
		}
		m.Time = m.SentAt.Format("15:04")
		m.TimeFull = m.SentAt.Format("02/01/2006 15:04")
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return msgs, nil
}

// Create appends one message and returns the stored row.
func (r *ChatRepo) Create(ctx context.Context, msg models.NewOutgoingMessage) (models.ChatMessage, error) {
	const op = "ChatRepo.Create"
	query := `
		INSERT INTO walk_messages(walk_id, sender, sender_id, sender_name, text)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, sent_at;`

	stored := models.ChatMessage{
		WalkID:     msg.WalkID,
		Sender:     msg.Sender,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		Text:       msg.Text,
	}
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, msg.WalkID, msg.Sender, msg.SenderID, msg.SenderName, msg.Text).
		Scan(&stored.ID, &stored.SentAt)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return models.ChatMessage{}, types.ErrWalkNotFound
		}
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return models.ChatMessage{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	stored.Time = stored.SentAt.Format("15:04")
	stored.TimeFull = stored.SentAt.Format("02/01/2006 15:04")
	return stored, nil
}

// MarkRead marks every message in the walk not authored by the reader.
// Re-running it is harmless.
func (r *ChatRepo) MarkRead(ctx context.Context, walkID, readerID uuid.UUID) (int64, error) {
	const op = "ChatRepo.MarkRead"
	query := `
		UPDATE walk_messages
		SET read = TRUE
		WHERE walk_id = $1 AND sender_id <> $2 AND read = FALSE;`

	tag, err := TxorDB(ctx, r.db).Exec(ctx, query, walkID, readerID)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return 0, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return tag.RowsAffected(), nil
}
