package postgres

import (
	"time"

	"github.com/lnjp/matchday-api/internal/domain/day"
)

type dayTableModel struct {
	ID              string     `db:"id"`
	LeagueCode      string     `db:"league_code"`
	CompetitionCode string     `db:"competition_code"`
	Matchday        int        `db:"matchday"`
	Title           string     `db:"title"`
	DeadlineAt      time.Time  `db:"deadline_at"`
	FeaturedMatchID int64      `db:"featured_match_id"`
	Status          string     `db:"status"`
	PublishedAt     *time.Time `db:"published_at"`
	CreatedBy       string     `db:"created_by"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func dayFromRow(row dayTableModel) day.Day {
	return day.Day{
		ID:              row.ID,
		LeagueCode:      row.LeagueCode,
		CompetitionCode: row.CompetitionCode,
		Matchday:        row.Matchday,
		Title:           row.Title,
		DeadlineAt:      row.DeadlineAt,
		FeaturedMatchID: row.FeaturedMatchID,
		Status:          row.Status,
		PublishedAt:     row.PublishedAt,
		CreatedBy:       row.CreatedBy,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

type dayMatchTableModel struct {
	DayID           string    `db:"day_id"`
	ExternalMatchID int64     `db:"external_match_id"`
	KickoffAt       time.Time `db:"kickoff_at"`
	HomeTeam        string    `db:"home_team"`
	AwayTeam        string    `db:"away_team"`
	HomeCrest       string    `db:"home_crest"`
	AwayCrest       string    `db:"away_crest"`
	IsFeatured      bool      `db:"is_featured"`
}

func dayMatchFromRow(row dayMatchTableModel) day.Match {
	return day.Match{
		DayID:           row.DayID,
		ExternalMatchID: row.ExternalMatchID,
		KickoffAt:       row.KickoffAt,
		HomeTeam:        row.HomeTeam,
		AwayTeam:        row.AwayTeam,
		HomeCrest:       row.HomeCrest,
		AwayCrest:       row.AwayCrest,
		IsFeatured:      row.IsFeatured,
	}
}
