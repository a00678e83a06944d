package chat

import "time"

const RoleAdmin = "admin"

// Message is one league chat entry.
type Message struct {
	ID          int64
	LeagueCode  string
	UserID      string
	DisplayName string
	Content     string
	CreatedAt   time.Time
}
