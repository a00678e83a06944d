package prediction

import "context"

// Repository exposes prediction persistence.
type Repository interface {
	// UpsertAll writes the whole batch atomically, overwriting prior rows
	// with the same (day, user, match) key.
	UpsertAll(ctx context.Context, items []Prediction) error
	// DeleteByDay removes every prediction for a day and returns the count.
	DeleteByDay(ctx context.Context, dayID string) (int, error)
	ListByDayAndUser(ctx context.Context, dayID, userID string) ([]Prediction, error)
}
