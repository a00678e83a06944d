package subscription

import "context"

type Repository interface {
	Upsert(ctx context.Context, item PushSubscription) error
	ListByLeague(ctx context.Context, leagueCode string) ([]PushSubscription, error)
	ListAll(ctx context.Context) ([]PushSubscription, error)
	Delete(ctx context.Context, userID, deviceID string) error
}
