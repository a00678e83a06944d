package day

import "time"

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
)

// Day is one round of matches open for prediction under a league.
// There is at most one Day per (league, competition, matchday).
type Day struct {
	ID              string
	LeagueCode      string
	CompetitionCode string
	Matchday        int
	Title           string
	DeadlineAt      time.Time
	FeaturedMatchID int64
	Status          string
	PublishedAt     *time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Match is one fixture attached to a Day. The attached set is always
// replaced wholesale on publish, never patched.
type Match struct {
	DayID           string
	ExternalMatchID int64
	KickoffAt       time.Time
	HomeTeam        string
	AwayTeam        string
	HomeCrest       string
	AwayCrest       string
	IsFeatured      bool
}
