package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lnjp/matchday-api/internal/domain/day"
	"github.com/lnjp/matchday-api/internal/domain/prediction"
	idgen "github.com/lnjp/matchday-api/internal/platform/id"
	"github.com/lnjp/matchday-api/internal/platform/logging"
)

const (
	PublishModeCreated = "created"
	PublishModeUpdated = "updated"

	// deadlineLead is how long before the earliest kickoff submissions close.
	deadlineLead = time.Hour
)

// LeagueNotifier is the slice of the fan-out engine the lifecycle manager
// needs.
type LeagueNotifier interface {
	NotifyLeague(ctx context.Context, leagueCode, title, body, url string) (NotifyResult, error)
}

// MatchSelection is the normalized form of one selected match, validated at
// the boundary before it reaches the service.
type MatchSelection struct {
	ExternalMatchID int64
	KickoffAt       time.Time
	HomeTeam        string
	AwayTeam        string
	HomeCrest       string
	AwayCrest       string
}

type PublishDayInput struct {
	LeagueCode string
	Matchday   int
	Matches    []MatchSelection
	// FeaturedMatchID is optional; zero means derive the default.
	FeaturedMatchID int64
	ActorID         string
}

type PublishDayResult struct {
	DayID              string
	Mode               string
	Title              string
	DeadlineAt         time.Time
	FeaturedMatchID    int64
	DeletedPredictions int
	NotificationID     string
	Push               NotifyResult
}

type DayDetail struct {
	Day         day.Day
	Matches     []day.Match
	Predictions []prediction.Prediction
}

// DayService owns the day lifecycle: it is the only writer of days and their
// match links.
type DayService struct {
	dayRepo         day.Repository
	predictionRepo  prediction.Repository
	notifier        LeagueNotifier
	idGen           idgen.Generator
	competitionCode string
	titleFormat     string
	logger          *logging.Logger
	now             func() time.Time
}

func NewDayService(
	dayRepo day.Repository,
	predictionRepo prediction.Repository,
	notifier LeagueNotifier,
	idGen idgen.Generator,
	competitionCode string,
	titleFormat string,
	logger *logging.Logger,
) *DayService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DayService{
		dayRepo:         dayRepo,
		predictionRepo:  predictionRepo,
		notifier:        notifier,
		idGen:           idGen,
		competitionCode: competitionCode,
		titleFormat:     titleFormat,
		logger:          logger,
		now:             time.Now,
	}
}

// Publish creates or republishes the day for (league, competition, matchday).
// A republish keeps the day id, wipes every existing prediction and fully
// replaces the linked matches. The steps are independent store calls; a
// failure mid-way can leave a partial update and is surfaced to the caller
// for a manual retry.
func (s *DayService) Publish(ctx context.Context, input PublishDayInput) (PublishDayResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DayService.Publish")
	defer span.End()

	leagueCode := strings.TrimSpace(input.LeagueCode)
	if leagueCode == "" {
		return PublishDayResult{}, fmt.Errorf("%w: league code is required", ErrInvalidInput)
	}
	if input.Matchday < 1 {
		return PublishDayResult{}, fmt.Errorf("%w: matchday must be >= 1", ErrInvalidInput)
	}
	if len(input.Matches) == 0 {
		return PublishDayResult{}, fmt.Errorf("%w: at least one match is required", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(input.Matches))
	for _, m := range input.Matches {
		if m.ExternalMatchID <= 0 {
			return PublishDayResult{}, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
		}
		if _, dup := seen[m.ExternalMatchID]; dup {
			return PublishDayResult{}, fmt.Errorf("%w: duplicate match id %d", ErrInvalidInput, m.ExternalMatchID)
		}
		seen[m.ExternalMatchID] = struct{}{}
	}

	deadlineAt, err := deriveDeadline(input.Matches)
	if err != nil {
		return PublishDayResult{}, err
	}

	featuredID := input.FeaturedMatchID
	if featuredID != 0 {
		if _, ok := seen[featuredID]; !ok {
			return PublishDayResult{}, fmt.Errorf("%w: featured match %d is not in the selected set", ErrInvalidInput, featuredID)
		}
	} else {
		featuredID = defaultFeaturedMatch(input.Matches)
	}

	now := s.now()
	existing, found, err := s.dayRepo.GetByKey(ctx, leagueCode, s.competitionCode, input.Matchday)
	if err != nil {
		return PublishDayResult{}, fmt.Errorf("get day by key: %w", err)
	}

	item := day.Day{
		LeagueCode:      leagueCode,
		CompetitionCode: s.competitionCode,
		Matchday:        input.Matchday,
		Title:           fmt.Sprintf(s.titleFormat, input.Matchday),
		DeadlineAt:      deadlineAt,
		FeaturedMatchID: featuredID,
		Status:          day.StatusPublished,
		PublishedAt:     &now,
		CreatedBy:       strings.TrimSpace(input.ActorID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	mode := PublishModeCreated
	if found {
		mode = PublishModeUpdated
		item.ID = existing.ID
		item.CreatedBy = existing.CreatedBy
		item.CreatedAt = existing.CreatedAt
	} else {
		newID, idErr := s.idGen.NewID()
		if idErr != nil {
			return PublishDayResult{}, fmt.Errorf("generate day id: %w", idErr)
		}
		item.ID = newID
	}
	if item.CreatedBy == "" {
		item.CreatedBy = "admin_system"
	}

	if err := s.dayRepo.Upsert(ctx, item); err != nil {
		return PublishDayResult{}, fmt.Errorf("upsert day: %w", err)
	}

	// A changed match list invalidates prior picks, so a republish always
	// wipes them before the new links land.
	deletedPredictions := 0
	if mode == PublishModeUpdated {
		deletedPredictions, err = s.predictionRepo.DeleteByDay(ctx, item.ID)
		if err != nil {
			return PublishDayResult{}, fmt.Errorf("delete predictions for republished day: %w", err)
		}
	}

	links := make([]day.Match, 0, len(input.Matches))
	for _, m := range input.Matches {
		links = append(links, day.Match{
			DayID:           item.ID,
			ExternalMatchID: m.ExternalMatchID,
			KickoffAt:       m.KickoffAt,
			HomeTeam:        m.HomeTeam,
			AwayTeam:        m.AwayTeam,
			HomeCrest:       m.HomeCrest,
			AwayCrest:       m.AwayCrest,
			IsFeatured:      m.ExternalMatchID == featuredID,
		})
	}
	if err := s.dayRepo.ReplaceMatches(ctx, item.ID, links); err != nil {
		return PublishDayResult{}, fmt.Errorf("replace day matches: %w", err)
	}

	notifTitle, notifBody := publishNotificationCopy(mode, item.Title, deadlineAt)
	pushStats, err := s.notifier.NotifyLeague(ctx, leagueCode, notifTitle, notifBody, "/days/"+item.ID)
	if err != nil {
		return PublishDayResult{}, fmt.Errorf("notify league after publish: %w", err)
	}

	s.logger.Info("day published",
		"day_id", item.ID,
		"league_code", leagueCode,
		"matchday", input.Matchday,
		"mode", mode,
		"deleted_predictions", deletedPredictions,
		"push_sent", pushStats.Sent,
		"push_failed", pushStats.Failed,
	)

	return PublishDayResult{
		DayID:              item.ID,
		Mode:               mode,
		Title:              item.Title,
		DeadlineAt:         deadlineAt,
		FeaturedMatchID:    featuredID,
		DeletedPredictions: deletedPredictions,
		NotificationID:     pushStats.NotificationID,
		Push:               pushStats,
	}, nil
}

func (s *DayService) ListByLeague(ctx context.Context, leagueCode string) ([]day.Day, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DayService.ListByLeague")
	defer span.End()

	leagueCode = strings.TrimSpace(leagueCode)
	if leagueCode == "" {
		return nil, fmt.Errorf("%w: league code is required", ErrInvalidInput)
	}

	days, err := s.dayRepo.ListByLeague(ctx, leagueCode)
	if err != nil {
		return nil, fmt.Errorf("list days by league: %w", err)
	}
	return days, nil
}

// GetDetail returns the day with its matches and, when userID is given, the
// caller's predictions for it.
func (s *DayService) GetDetail(ctx context.Context, dayID, userID string) (DayDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DayService.GetDetail")
	defer span.End()

	dayID = strings.TrimSpace(dayID)
	if dayID == "" {
		return DayDetail{}, fmt.Errorf("%w: day id is required", ErrInvalidInput)
	}

	item, found, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		return DayDetail{}, fmt.Errorf("get day: %w", err)
	}
	if !found {
		return DayDetail{}, fmt.Errorf("%w: day=%s", ErrNotFound, dayID)
	}

	matches, err := s.dayRepo.ListMatches(ctx, dayID)
	if err != nil {
		return DayDetail{}, fmt.Errorf("list day matches: %w", err)
	}

	detail := DayDetail{Day: item, Matches: matches}
	if userID = strings.TrimSpace(userID); userID != "" {
		picks, err := s.predictionRepo.ListByDayAndUser(ctx, dayID, userID)
		if err != nil {
			return DayDetail{}, fmt.Errorf("list predictions: %w", err)
		}
		detail.Predictions = picks
	}

	return detail, nil
}

func deriveDeadline(matches []MatchSelection) (time.Time, error) {
	var earliest time.Time
	for _, m := range matches {
		if m.KickoffAt.IsZero() {
			continue
		}
		if earliest.IsZero() || m.KickoffAt.Before(earliest) {
			earliest = m.KickoffAt
		}
	}
	if earliest.IsZero() {
		return time.Time{}, fmt.Errorf("%w: no selected match carries a kickoff time", ErrInvalidInput)
	}
	return earliest.Add(-deadlineLead), nil
}

// defaultFeaturedMatch picks the match with the latest kickoff: the headline
// fixture of a round is assumed to be the last one played.
func defaultFeaturedMatch(matches []MatchSelection) int64 {
	var featuredID int64
	var latest time.Time
	for _, m := range matches {
		if m.KickoffAt.IsZero() {
			continue
		}
		if featuredID == 0 || m.KickoffAt.After(latest) {
			featuredID = m.ExternalMatchID
			latest = m.KickoffAt
		}
	}
	return featuredID
}

func publishNotificationCopy(mode, dayTitle string, deadlineAt time.Time) (string, string) {
	deadline := deadlineAt.UTC().Format("02/01 15h04 UTC")
	if mode == PublishModeUpdated {
		return dayTitle + " mise à jour",
			"La liste des matchs a changé, vos pronostics ont été réinitialisés. Rejouez avant le " + deadline + "."
	}
	return dayTitle,
		"Les pronostics sont ouverts ! Validez vos choix avant le " + deadline + "."
}
