package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

type WalkRepo struct {
	db *pgxpool.Pool
}

func NewWalkRepo(db *pgxpool.Pool) *WalkRepo {
	return &WalkRepo{db: db}
}

// Get returns the walk read model. The status column stores the same
// display values the clients gate on, no mapping layer in between.
func (r *WalkRepo) Get(ctx context.Context, walkID uuid.UUID) (*models.Walk, error) {
	const op = "WalkRepo.Get"
	query := `
		SELECT id, owner_id, walker_id, pet_name, status, scheduled_at, started_at, finished_at
		FROM walks
		WHERE id = $1;`

	var walk models.Walk
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, walkID).Scan(
		&walk.ID,
		&walk.OwnerID,
		&walk.WalkerID,
		&walk.PetName,
		&walk.Status,
		&walk.ScheduledAt,
		&walk.StartedAt,
		&walk.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrWalkNotFound
		}
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return &walk, nil
}
