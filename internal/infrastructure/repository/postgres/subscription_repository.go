package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lnjp/matchday-api/internal/domain/subscription"
	qb "github.com/lnjp/matchday-api/internal/platform/querybuilder"
)

type SubscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Upsert(ctx context.Context, item subscription.PushSubscription) error {
	query, args, err := qb.InsertInto("push_subscriptions").
		Columns("user_id", "device_id", "league_code", "endpoint", "p256dh", "auth", "created_at").
		Values(item.UserID, item.DeviceID, item.LeagueCode, item.Endpoint, item.P256dh, item.Auth, item.CreatedAt).
		Suffix(`ON CONFLICT (user_id, device_id)
DO UPDATE SET
    league_code = EXCLUDED.league_code,
    endpoint = EXCLUDED.endpoint,
    p256dh = EXCLUDED.p256dh,
    auth = EXCLUDED.auth`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert push subscription query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert push subscription: %w", err)
	}

	return nil
}

func (r *SubscriptionRepository) ListByLeague(ctx context.Context, leagueCode string) ([]subscription.PushSubscription, error) {
	query, args, err := qb.Select("*").From("push_subscriptions").
		Where(qb.Eq("league_code", leagueCode)).
		OrderBy("user_id", "device_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list push subscriptions query: %w", err)
	}

	return r.selectSubscriptions(ctx, query, args)
}

func (r *SubscriptionRepository) ListAll(ctx context.Context) ([]subscription.PushSubscription, error) {
	query, args, err := qb.Select("*").From("push_subscriptions").
		OrderBy("user_id", "device_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list all push subscriptions query: %w", err)
	}

	return r.selectSubscriptions(ctx, query, args)
}

func (r *SubscriptionRepository) Delete(ctx context.Context, userID, deviceID string) error {
	query, args, err := qb.DeleteFrom("push_subscriptions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("device_id", deviceID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete push subscription query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}

	return nil
}

func (r *SubscriptionRepository) selectSubscriptions(ctx context.Context, query string, args []any) ([]subscription.PushSubscription, error) {
	var rows []struct {
		UserID     string    `db:"user_id"`
		DeviceID   string    `db:"device_id"`
		LeagueCode string    `db:"league_code"`
		Endpoint   string    `db:"endpoint"`
		P256dh     string    `db:"p256dh"`
		Auth       string    `db:"auth"`
		CreatedAt  time.Time `db:"created_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select push subscriptions: %w", err)
	}

	out := make([]subscription.PushSubscription, 0, len(rows))
	for _, row := range rows {
		out = append(out, subscription.PushSubscription{
			UserID:     row.UserID,
			DeviceID:   row.DeviceID,
			LeagueCode: row.LeagueCode,
			Endpoint:   row.Endpoint,
			P256dh:     row.P256dh,
			Auth:       row.Auth,
			CreatedAt:  row.CreatedAt,
		})
	}

	return out, nil
}
