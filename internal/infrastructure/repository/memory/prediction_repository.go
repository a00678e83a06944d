package memory

import (
	"context"
	"sync"

	"github.com/lnjp/matchday-api/internal/domain/prediction"
)

type predictionKey struct {
	dayID           string
	userID          string
	externalMatchID int64
}

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[predictionKey]prediction.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{items: make(map[predictionKey]prediction.Prediction)}
}

func (r *PredictionRepository) UpsertAll(_ context.Context, rows []prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		key := predictionKey{dayID: row.DayID, userID: row.UserID, externalMatchID: row.ExternalMatchID}
		r.items[key] = row
	}
	return nil
}

func (r *PredictionRepository) DeleteByDay(_ context.Context, dayID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for key := range r.items {
		if key.dayID == dayID {
			delete(r.items, key)
			deleted++
		}
	}
	return deleted, nil
}

func (r *PredictionRepository) ListByDayAndUser(_ context.Context, dayID, userID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for key, row := range r.items {
		if key.dayID == dayID && key.userID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}
