package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lnjp/matchday-api/internal/platform/logging"
)

const (
	minUpcomingMatchdays = 1
	maxUpcomingMatchdays = 10
)

// FixtureMatch is one scheduled fixture as reported by the upstream feed.
type FixtureMatch struct {
	ExternalMatchID int64
	Matchday        int
	KickoffAt       time.Time
	HomeTeam        string
	AwayTeam        string
	HomeCrest       string
	AwayCrest       string
}

// FixtureProvider abstracts the football data feed.
type FixtureProvider interface {
	ScheduledMatches(ctx context.Context) ([]FixtureMatch, error)
}

type MatchdayGroup struct {
	Matchday int
	Matches  []FixtureMatch
}

type UpcomingFixtures struct {
	CurrentMatchday int
	Matchdays       []MatchdayGroup
}

// FixtureService shapes the raw feed into the admin's publish picker: the
// scheduled matches grouped per matchday, starting after the round currently
// in progress.
type FixtureService struct {
	provider FixtureProvider
	logger   *logging.Logger
}

func NewFixtureService(provider FixtureProvider, logger *logging.Logger) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureService{provider: provider, logger: logger}
}

// UpcomingMatchdays returns up to count matchday groups that start after the
// lowest matchday still holding scheduled fixtures. That lowest round is the
// one in progress, so it is reported separately and excluded from the groups.
func (s *FixtureService) UpcomingMatchdays(ctx context.Context, count int) (UpcomingFixtures, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpcomingMatchdays")
	defer span.End()

	if s.provider == nil {
		return UpcomingFixtures{}, fmt.Errorf("%w: fixture feed is not configured", ErrDependencyUnavailable)
	}

	if count < minUpcomingMatchdays {
		count = minUpcomingMatchdays
	}
	if count > maxUpcomingMatchdays {
		count = maxUpcomingMatchdays
	}

	matches, err := s.provider.ScheduledMatches(ctx)
	if err != nil {
		return UpcomingFixtures{}, fmt.Errorf("%w: fetch scheduled matches: %v", ErrDependencyUnavailable, err)
	}
	if len(matches) == 0 {
		return UpcomingFixtures{}, nil
	}

	byMatchday := make(map[int][]FixtureMatch)
	current := 0
	for _, m := range matches {
		if m.Matchday < 1 {
			continue
		}
		if current == 0 || m.Matchday < current {
			current = m.Matchday
		}
		byMatchday[m.Matchday] = append(byMatchday[m.Matchday], m)
	}

	upcoming := make([]int, 0, len(byMatchday))
	for md := range byMatchday {
		if md > current {
			upcoming = append(upcoming, md)
		}
	}
	sort.Ints(upcoming)
	if len(upcoming) > count {
		upcoming = upcoming[:count]
	}

	groups := make([]MatchdayGroup, 0, len(upcoming))
	for _, md := range upcoming {
		group := byMatchday[md]
		sort.Slice(group, func(i, j int) bool {
			return group[i].KickoffAt.Before(group[j].KickoffAt)
		})
		groups = append(groups, MatchdayGroup{Matchday: md, Matches: group})
	}

	s.logger.Debug("upcoming matchdays resolved",
		"current_matchday", current,
		"groups", len(groups),
	)

	return UpcomingFixtures{CurrentMatchday: current, Matchdays: groups}, nil
}
