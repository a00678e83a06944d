package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lnjp/matchday-api/internal/domain/prediction"
	qb "github.com/lnjp/matchday-api/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// UpsertAll writes the batch in one transaction: the caller's picks either
// all land or none do.
func (r *PredictionRepository) UpsertAll(ctx context.Context, rows []prediction.Prediction) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for prediction upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertQuery = `
INSERT INTO predictions (day_id, user_id, external_match_id, pick, updated_at)
VALUES (:day_id, :user_id, :external_match_id, :pick, :updated_at)
ON CONFLICT (day_id, user_id, external_match_id)
DO UPDATE SET
    pick = EXCLUDED.pick,
    updated_at = EXCLUDED.updated_at`

	for _, row := range rows {
		query, args, err := sqlx.Named(upsertQuery, map[string]any{
			"day_id":            row.DayID,
			"user_id":           row.UserID,
			"external_match_id": row.ExternalMatchID,
			"pick":              row.Pick,
			"updated_at":        row.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("bind upsert prediction match=%d query: %w", row.ExternalMatchID, err)
		}
		query = tx.Rebind(query)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert prediction match=%d: %w", row.ExternalMatchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit prediction upsert tx: %w", err)
	}

	return nil
}

func (r *PredictionRepository) DeleteByDay(ctx context.Context, dayID string) (int, error) {
	query, args, err := qb.DeleteFrom("predictions").
		Where(qb.Eq("day_id", dayID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete predictions query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete predictions: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted predictions: %w", err)
	}

	return int(deleted), nil
}

func (r *PredictionRepository) ListByDayAndUser(ctx context.Context, dayID, userID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("day_id", dayID),
			qb.Eq("user_id", userID),
		).
		OrderBy("external_match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions query: %w", err)
	}

	var rows []struct {
		DayID           string    `db:"day_id"`
		UserID          string    `db:"user_id"`
		ExternalMatchID int64     `db:"external_match_id"`
		Pick            string    `db:"pick"`
		UpdatedAt       time.Time `db:"updated_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.Prediction{
			DayID:           row.DayID,
			UserID:          row.UserID,
			ExternalMatchID: row.ExternalMatchID,
			Pick:            row.Pick,
			UpdatedAt:       row.UpdatedAt,
		})
	}

	return out, nil
}
