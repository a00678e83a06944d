package chat

import "context"

type Repository interface {
	Insert(ctx context.Context, item Message) (Message, error)
	// ListRecent returns the latest messages in ascending creation order.
	ListRecent(ctx context.Context, leagueCode string, limit int) ([]Message, error)
}
