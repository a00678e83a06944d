package day

import "context"

// Repository exposes day and day-match persistence.
type Repository interface {
	GetByID(ctx context.Context, id string) (Day, bool, error)
	GetByKey(ctx context.Context, leagueCode, competitionCode string, matchday int) (Day, bool, error)
	ListByLeague(ctx context.Context, leagueCode string) ([]Day, error)
	Upsert(ctx context.Context, item Day) error
	// ReplaceMatches deletes every match linked to the day and inserts the
	// given set.
	ReplaceMatches(ctx context.Context, dayID string, matches []Match) error
	ListMatches(ctx context.Context, dayID string) ([]Match, error)
}
