package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lnjp/matchday-api/internal/domain/day"
)

type DayRepository struct {
	mu      sync.RWMutex
	items   map[string]day.Day
	matches map[string][]day.Match
}

func NewDayRepository() *DayRepository {
	return &DayRepository{
		items:   make(map[string]day.Day),
		matches: make(map[string][]day.Match),
	}
}

func (r *DayRepository) GetByID(_ context.Context, dayID string) (day.Day, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[dayID]
	if !ok {
		return day.Day{}, false, nil
	}
	return item, true, nil
}

func (r *DayRepository) GetByKey(_ context.Context, leagueCode, competitionCode string, matchday int) (day.Day, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.LeagueCode == leagueCode && item.CompetitionCode == competitionCode && item.Matchday == matchday {
			return item, true, nil
		}
	}
	return day.Day{}, false, nil
}

func (r *DayRepository) ListByLeague(_ context.Context, leagueCode string) ([]day.Day, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]day.Day, 0)
	for _, item := range r.items {
		if item.LeagueCode == leagueCode {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Matchday < out[j].Matchday })

	return out, nil
}

func (r *DayRepository) Upsert(_ context.Context, item day.Day) error {
	if item.ID == "" {
		return fmt.Errorf("day id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *DayRepository) ReplaceMatches(_ context.Context, dayID string, matches []day.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[dayID]; !ok {
		return fmt.Errorf("unknown day %s", dayID)
	}
	r.matches[dayID] = append([]day.Match(nil), matches...)
	return nil
}

func (r *DayRepository) ListMatches(_ context.Context, dayID string) ([]day.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]day.Match(nil), r.matches[dayID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].KickoffAt.Before(out[j].KickoffAt) })

	return out, nil
}
