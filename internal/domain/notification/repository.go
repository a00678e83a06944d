package notification

import "context"

type Repository interface {
	Insert(ctx context.Context, item Notification) error
	ListByLeague(ctx context.Context, leagueCode string, limit int) ([]Notification, error)
	Delete(ctx context.Context, id string) error
}
