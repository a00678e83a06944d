package notification

import "time"

// Notification is the durable inbox record of one announcement. Immutable
// once created.
type Notification struct {
	ID         string
	LeagueCode string
	Title      string
	Body       string
	URL        string
	CreatedBy  string
	CreatedAt  time.Time
}
