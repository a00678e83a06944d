package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/lnjp/matchday-api/internal/domain/day"
	"github.com/lnjp/matchday-api/internal/infrastructure/repository/memory"
	"github.com/lnjp/matchday-api/internal/platform/logging"
)

func seedPublishedDay(t *testing.T, dayRepo *memory.DayRepository, deadline time.Time) string {
	t.Helper()

	item := day.Day{
		ID:              "day-001",
		LeagueCode:      "lnjp",
		CompetitionCode: "FL1",
		Matchday:        3,
		Title:           "Ligue 1 - Journée 3",
		DeadlineAt:      deadline,
		FeaturedMatchID: 103,
		Status:          day.StatusPublished,
	}
	if err := dayRepo.Upsert(t.Context(), item); err != nil {
		t.Fatalf("seed day failed: %v", err)
	}

	kick := deadline.Add(time.Hour)
	matches := []day.Match{
		{DayID: item.ID, ExternalMatchID: 101, KickoffAt: kick},
		{DayID: item.ID, ExternalMatchID: 102, KickoffAt: kick.Add(time.Hour)},
		{DayID: item.ID, ExternalMatchID: 103, KickoffAt: kick.Add(2 * time.Hour), IsFeatured: true},
	}
	if err := dayRepo.ReplaceMatches(t.Context(), item.ID, matches); err != nil {
		t.Fatalf("seed matches failed: %v", err)
	}

	return item.ID
}

func TestPredictionService_Submit_SavesNormalizedPicks(t *testing.T) {
	dayRepo := memory.NewDayRepository()
	predictionRepo := memory.NewPredictionRepository()
	service := NewPredictionService(dayRepo, predictionRepo, logging.NewNop())

	deadline := time.Date(2026, 8, 22, 17, 0, 0, 0, time.UTC)
	dayID := seedPublishedDay(t, dayRepo, deadline)
	service.now = func() time.Time { return deadline.Add(-time.Minute) }

	saved, err := service.Submit(t.Context(), SubmitPredictionsInput{
		DayID:  dayID,
		UserID: "user-1",
		Picks: []PickInput{
			{ExternalMatchID: 101, Pick: "1"},
			{ExternalMatchID: 102, Pick: "n"},
			{ExternalMatchID: 103, Pick: "2"},
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if saved != 3 {
		t.Fatalf("expected 3 saved picks, got %d", saved)
	}

	rows, err := predictionRepo.ListByDayAndUser(t.Context(), dayID, "user-1")
	if err != nil {
		t.Fatalf("list predictions failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 stored rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.ExternalMatchID == 102 && row.Pick != "N" {
			t.Fatalf("expected lowercase n normalized to N, got %q", row.Pick)
		}
	}
}

func TestPredictionService_Submit_ResubmissionOverwrites(t *testing.T) {
	dayRepo := memory.NewDayRepository()
	predictionRepo := memory.NewPredictionRepository()
	service := NewPredictionService(dayRepo, predictionRepo, logging.NewNop())

	deadline := time.Date(2026, 8, 22, 17, 0, 0, 0, time.UTC)
	dayID := seedPublishedDay(t, dayRepo, deadline)
	service.now = func() time.Time { return deadline.Add(-time.Hour) }

	first := SubmitPredictionsInput{
		DayID:  dayID,
		UserID: "user-1",
		Picks: []PickInput{
			{ExternalMatchID: 101, Pick: "1"},
			{ExternalMatchID: 102, Pick: "1"},
			{ExternalMatchID: 103, Pick: "1"},
		},
	}
	if _, err := service.Submit(t.Context(), first); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	second := first
	second.Picks = []PickInput{
		{ExternalMatchID: 101, Pick: "2"},
		{ExternalMatchID: 102, Pick: "2"},
		{ExternalMatchID: 103, Pick: "2"},
	}
	if _, err := service.Submit(t.Context(), second); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	rows, err := predictionRepo.ListByDayAndUser(t.Context(), dayID, "user-1")
	if err != nil {
		t.Fatalf("list predictions failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows after resubmission, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Pick != "2" {
			t.Fatalf("expected overwritten pick 2 for match %d, got %q", row.ExternalMatchID, row.Pick)
		}
	}
}

func TestPredictionService_Submit_WindowClosed(t *testing.T) {
	dayRepo := memory.NewDayRepository()
	predictionRepo := memory.NewPredictionRepository()
	service := NewPredictionService(dayRepo, predictionRepo, logging.NewNop())

	deadline := time.Date(2026, 8, 22, 17, 0, 0, 0, time.UTC)
	dayID := seedPublishedDay(t, dayRepo, deadline)

	input := SubmitPredictionsInput{
		DayID:  dayID,
		UserID: "user-1",
		Picks: []PickInput{
			{ExternalMatchID: 101, Pick: "1"},
			{ExternalMatchID: 102, Pick: "N"},
			{ExternalMatchID: 103, Pick: "2"},
		},
	}

	// Exactly at the deadline counts as closed.
	service.now = func() time.Time { return deadline }
	if _, err := service.Submit(t.Context(), input); !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("expected ErrWindowClosed at deadline, got %v", err)
	}

	service.now = func() time.Time { return deadline.Add(time.Minute) }
	if _, err := service.Submit(t.Context(), input); !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("expected ErrWindowClosed after deadline, got %v", err)
	}

	rows, err := predictionRepo.ListByDayAndUser(t.Context(), dayID, "user-1")
	if err != nil {
		t.Fatalf("list predictions failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no writes on closed window, got %d rows", len(rows))
	}
}

func TestPredictionService_Submit_DraftDayIsClosed(t *testing.T) {
	dayRepo := memory.NewDayRepository()
	service := NewPredictionService(dayRepo, memory.NewPredictionRepository(), logging.NewNop())

	deadline := time.Date(2026, 8, 22, 17, 0, 0, 0, time.UTC)
	dayID := seedPublishedDay(t, dayRepo, deadline)

	item, _, _ := dayRepo.GetByID(t.Context(), dayID)
	item.Status = day.StatusDraft
	if err := dayRepo.Upsert(t.Context(), item); err != nil {
		t.Fatalf("downgrade day failed: %v", err)
	}

	service.now = func() time.Time { return deadline.Add(-time.Hour) }
	_, err := service.Submit(t.Context(), SubmitPredictionsInput{
		DayID:  dayID,
		UserID: "user-1",
		Picks:  []PickInput{{ExternalMatchID: 101, Pick: "1"}},
	})
	if !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("expected ErrWindowClosed for draft day, got %v", err)
	}
}

func TestPredictionService_Submit_RejectsBadBatches(t *testing.T) {
	dayRepo := memory.NewDayRepository()
	predictionRepo := memory.NewPredictionRepository()
	service := NewPredictionService(dayRepo, predictionRepo, logging.NewNop())

	deadline := time.Date(2026, 8, 22, 17, 0, 0, 0, time.UTC)
	dayID := seedPublishedDay(t, dayRepo, deadline)
	service.now = func() time.Time { return deadline.Add(-time.Hour) }

	cases := []struct {
		name  string
		picks []PickInput
		want  error
	}{
		{
			name: "missing one match",
			picks: []PickInput{
				{ExternalMatchID: 101, Pick: "1"},
				{ExternalMatchID: 102, Pick: "N"},
			},
			want: ErrIncompleteSubmission,
		},
		{
			name: "duplicate match",
			picks: []PickInput{
				{ExternalMatchID: 101, Pick: "1"},
				{ExternalMatchID: 101, Pick: "2"},
				{ExternalMatchID: 103, Pick: "N"},
			},
			want: ErrIncompleteSubmission,
		},
		{
			name: "unknown match",
			picks: []PickInput{
				{ExternalMatchID: 101, Pick: "1"},
				{ExternalMatchID: 102, Pick: "N"},
				{ExternalMatchID: 999, Pick: "2"},
			},
			want: ErrIncompleteSubmission,
		},
		{
			name: "invalid pick value",
			picks: []PickInput{
				{ExternalMatchID: 101, Pick: "X"},
				{ExternalMatchID: 102, Pick: "N"},
				{ExternalMatchID: 103, Pick: "2"},
			},
			want: ErrInvalidPick,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Submit(t.Context(), SubmitPredictionsInput{
				DayID:  dayID,
				UserID: "user-1",
				Picks:  tc.picks,
			})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	rows, err := predictionRepo.ListByDayAndUser(t.Context(), dayID, "user-1")
	if err != nil {
		t.Fatalf("list predictions failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected rejected batches to write nothing, got %d rows", len(rows))
	}
}

func TestPredictionService_Submit_UnknownDay(t *testing.T) {
	service := NewPredictionService(memory.NewDayRepository(), memory.NewPredictionRepository(), logging.NewNop())

	_, err := service.Submit(t.Context(), SubmitPredictionsInput{
		DayID:  "missing",
		UserID: "user-1",
		Picks:  []PickInput{{ExternalMatchID: 101, Pick: "1"}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
