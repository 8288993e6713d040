package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pasealo/walk-tracking-system/internal/domain/models"
	"github.com/pasealo/walk-tracking-system/internal/domain/types"
	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/postgres"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

type CoordinateRepo struct {
	db *pgxpool.Pool
}

func NewCoordinateRepo(db *pgxpool.Pool) *CoordinateRepo {
	return &CoordinateRepo{
		db: db,
	}
}

// formatCoordinate renders a coordinate with the minimum digits that parse
// back to the same float64, so the stored text round-trips losslessly.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Create inserts one sample. Coordinates are stored as text columns to
// keep the values exactly as the device reported them.
func (r *CoordinateRepo) Create(ctx context.Context, sample models.LocationSample) (uuid.UUID, error) {
	const op = "CoordinateRepo.Create"
	query := `
		INSERT INTO walk_locations(walk_id, latitude, longitude, altitude, accuracy, recorded_at)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id;`

	recordedAt := time.UnixMilli(sample.TimestampMs).UTC()

	var id uuid.UUID
	if err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		sample.WalkID,
		formatCoordinate(sample.Latitude),
		formatCoordinate(sample.Longitude),
		sample.Altitude,
		sample.Accuracy,
		recordedAt,
	).Scan(&id); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return uuid.UUID{}, types.ErrWalkNotFound
		}
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return uuid.UUID{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return id, nil
}

// ListByWalk returns every point for a walk in recorded (ascending) order.
func (r *CoordinateRepo) ListByWalk(ctx context.Context, walkID uuid.UUID) ([]models.RoutePoint, error) {
	const op = "CoordinateRepo.ListByWalk"
	query := `
		SELECT id, latitude, longitude, recorded_at, COALESCE(address, '')
		FROM walk_locations
		WHERE walk_id = $1
		ORDER BY recorded_at ASC;`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, walkID)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	var points []models.RoutePoint
	for rows.Next() {
		var p models.RoutePoint
		if err := rows.Scan(&p.ID, &p.Lat, &p.Lng, &p.RecordedAt, &p.Address); err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%s: scan: %w", op, err))
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return points, nil
}
