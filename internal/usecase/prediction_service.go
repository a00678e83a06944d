package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lnjp/matchday-api/internal/domain/day"
	"github.com/lnjp/matchday-api/internal/domain/prediction"
	"github.com/lnjp/matchday-api/internal/platform/logging"
)

type PickInput struct {
	ExternalMatchID int64
	Pick            string
}

type SubmitPredictionsInput struct {
	DayID  string
	UserID string
	Picks  []PickInput
}

// PredictionService enforces the submission window: picks are only accepted
// for a published day, before its deadline, and only when they cover the
// day's match set exactly.
type PredictionService struct {
	dayRepo        day.Repository
	predictionRepo prediction.Repository
	logger         *logging.Logger
	now            func() time.Time
}

func NewPredictionService(dayRepo day.Repository, predictionRepo prediction.Repository, logger *logging.Logger) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PredictionService{
		dayRepo:        dayRepo,
		predictionRepo: predictionRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit validates the whole batch before any write: either every normalized
// pick is persisted or none is. A resubmission before the deadline
// overwrites the prior picks row for row.
func (s *PredictionService) Submit(ctx context.Context, input SubmitPredictionsInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	dayID := strings.TrimSpace(input.DayID)
	if dayID == "" {
		return 0, fmt.Errorf("%w: day id is required", ErrInvalidInput)
	}
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, found, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		return 0, fmt.Errorf("get day: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("%w: day=%s", ErrNotFound, dayID)
	}

	now := s.now()
	if item.Status != day.StatusPublished {
		return 0, fmt.Errorf("%w: day is not published", ErrWindowClosed)
	}
	if !now.Before(item.DeadlineAt) {
		return 0, fmt.Errorf("%w: deadline was %s", ErrWindowClosed, item.DeadlineAt.UTC().Format(time.RFC3339))
	}

	matches, err := s.dayRepo.ListMatches(ctx, dayID)
	if err != nil {
		return 0, fmt.Errorf("list day matches: %w", err)
	}

	expected := make(map[int64]struct{}, len(matches))
	for _, m := range matches {
		expected[m.ExternalMatchID] = struct{}{}
	}

	covered := make(map[int64]struct{}, len(input.Picks))
	rows := make([]prediction.Prediction, 0, len(input.Picks))
	for _, p := range input.Picks {
		if _, dup := covered[p.ExternalMatchID]; dup {
			return 0, fmt.Errorf("%w: duplicate pick for match %d", ErrIncompleteSubmission, p.ExternalMatchID)
		}
		if _, ok := expected[p.ExternalMatchID]; !ok {
			return 0, fmt.Errorf("%w: match %d is not part of this day", ErrIncompleteSubmission, p.ExternalMatchID)
		}
		covered[p.ExternalMatchID] = struct{}{}

		pick, ok := prediction.NormalizePick(p.Pick)
		if !ok {
			return 0, fmt.Errorf("%w: %q is not one of 1, N, 2", ErrInvalidPick, p.Pick)
		}

		rows = append(rows, prediction.Prediction{
			DayID:           dayID,
			UserID:          userID,
			ExternalMatchID: p.ExternalMatchID,
			Pick:            pick,
			UpdatedAt:       now,
		})
	}
	if len(covered) != len(expected) {
		return 0, fmt.Errorf("%w: got picks for %d of %d matches", ErrIncompleteSubmission, len(covered), len(expected))
	}

	if err := s.predictionRepo.UpsertAll(ctx, rows); err != nil {
		return 0, fmt.Errorf("upsert predictions: %w", err)
	}

	s.logger.Debug("predictions saved",
		"day_id", dayID,
		"user_id", userID,
		"count", len(rows),
	)

	return len(rows), nil
}
