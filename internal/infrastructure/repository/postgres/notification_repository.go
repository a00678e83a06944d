package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lnjp/matchday-api/internal/domain/notification"
	qb "github.com/lnjp/matchday-api/internal/platform/querybuilder"
)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, item notification.Notification) error {
	query, args, err := qb.InsertInto("notifications").
		Columns("id", "league_code", "title", "body", "url", "created_by", "created_at").
		Values(item.ID, item.LeagueCode, item.Title, item.Body, item.URL, item.CreatedBy, item.CreatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert notification query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) ListByLeague(ctx context.Context, leagueCode string, limit int) ([]notification.Notification, error) {
	query, args, err := qb.Select("*").From("notifications").
		Where(qb.Eq("league_code", leagueCode)).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list notifications query: %w", err)
	}

	var rows []struct {
		ID         string    `db:"id"`
		LeagueCode string    `db:"league_code"`
		Title      string    `db:"title"`
		Body       string    `db:"body"`
		URL        string    `db:"url"`
		CreatedBy  string    `db:"created_by"`
		CreatedAt  time.Time `db:"created_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, notification.Notification{
			ID:         row.ID,
			LeagueCode: row.LeagueCode,
			Title:      row.Title,
			Body:       row.Body,
			URL:        row.URL,
			CreatedBy:  row.CreatedBy,
			CreatedAt:  row.CreatedAt,
		})
	}

	return out, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("notifications").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete notification query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	return nil
}
