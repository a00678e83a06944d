package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lnjp/matchday-api/internal/domain/day"
	qb "github.com/lnjp/matchday-api/internal/platform/querybuilder"
)

type DayRepository struct {
	db *sqlx.DB
}

func NewDayRepository(db *sqlx.DB) *DayRepository {
	return &DayRepository{db: db}
}

func (r *DayRepository) GetByID(ctx context.Context, dayID string) (day.Day, bool, error) {
	query, args, err := qb.Select("*").From("days").
		Where(qb.Eq("id", dayID)).
		ToSQL()
	if err != nil {
		return day.Day{}, false, fmt.Errorf("build get day by id query: %w", err)
	}

	var row dayTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return day.Day{}, false, nil
		}
		return day.Day{}, false, fmt.Errorf("get day by id: %w", err)
	}

	return dayFromRow(row), true, nil
}

func (r *DayRepository) GetByKey(ctx context.Context, leagueCode, competitionCode string, matchday int) (day.Day, bool, error) {
	query, args, err := qb.Select("*").From("days").
		Where(
			qb.Eq("league_code", leagueCode),
			qb.Eq("competition_code", competitionCode),
			qb.Eq("matchday", matchday),
		).
		ToSQL()
	if err != nil {
		return day.Day{}, false, fmt.Errorf("build get day by key query: %w", err)
	}

	var row dayTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return day.Day{}, false, nil
		}
		return day.Day{}, false, fmt.Errorf("get day by key: %w", err)
	}

	return dayFromRow(row), true, nil
}

func (r *DayRepository) ListByLeague(ctx context.Context, leagueCode string) ([]day.Day, error) {
	query, args, err := qb.Select("*").From("days").
		Where(qb.Eq("league_code", leagueCode)).
		OrderBy("matchday").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list days query: %w", err)
	}

	var rows []dayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}

	out := make([]day.Day, 0, len(rows))
	for _, row := range rows {
		out = append(out, dayFromRow(row))
	}

	return out, nil
}

func (r *DayRepository) Upsert(ctx context.Context, item day.Day) error {
	const upsertQuery = `
INSERT INTO days (
    id, league_code, competition_code, matchday, title, deadline_at,
    featured_match_id, status, published_at, created_by, created_at, updated_at
) VALUES (
    :id, :league_code, :competition_code, :matchday, :title, :deadline_at,
    :featured_match_id, :status, :published_at, :created_by, :created_at, :updated_at
)
ON CONFLICT (league_code, competition_code, matchday)
DO UPDATE SET
    title = EXCLUDED.title,
    deadline_at = EXCLUDED.deadline_at,
    featured_match_id = EXCLUDED.featured_match_id,
    status = EXCLUDED.status,
    published_at = EXCLUDED.published_at,
    updated_at = EXCLUDED.updated_at`

	args := map[string]any{
		"id":                item.ID,
		"league_code":       item.LeagueCode,
		"competition_code":  item.CompetitionCode,
		"matchday":          item.Matchday,
		"title":             item.Title,
		"deadline_at":       item.DeadlineAt,
		"featured_match_id": item.FeaturedMatchID,
		"status":            item.Status,
		"published_at":      item.PublishedAt,
		"created_by":        item.CreatedBy,
		"created_at":        item.CreatedAt,
		"updated_at":        item.UpdatedAt,
	}
	query, queryArgs, err := sqlx.Named(upsertQuery, args)
	if err != nil {
		return fmt.Errorf("bind upsert day query: %w", err)
	}
	query = r.db.Rebind(query)

	if _, err := r.db.ExecContext(ctx, query, queryArgs...); err != nil {
		return fmt.Errorf("upsert day: %w", err)
	}

	return nil
}

// ReplaceMatches swaps the day's whole match list in one transaction so a
// reader never sees a half-replaced set.
func (r *DayRepository) ReplaceMatches(ctx context.Context, dayID string, matches []day.Match) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for replace day matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("day_matches").
		Where(qb.Eq("day_id", dayID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete day matches query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete existing day matches: %w", err)
	}

	if len(matches) > 0 {
		builder := qb.InsertInto("day_matches").
			Columns("day_id", "external_match_id", "kickoff_at", "home_team", "away_team", "home_crest", "away_crest", "is_featured")
		for _, m := range matches {
			builder.Values(dayID, m.ExternalMatchID, m.KickoffAt, m.HomeTeam, m.AwayTeam, m.HomeCrest, m.AwayCrest, m.IsFeatured)
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert day matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert day matches: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace day matches tx: %w", err)
	}

	return nil
}

func (r *DayRepository) ListMatches(ctx context.Context, dayID string) ([]day.Match, error) {
	query, args, err := qb.Select("*").From("day_matches").
		Where(qb.Eq("day_id", dayID)).
		OrderBy("kickoff_at", "external_match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list day matches query: %w", err)
	}

	var rows []dayMatchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list day matches: %w", err)
	}

	out := make([]day.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, dayMatchFromRow(row))
	}

	return out, nil
}
