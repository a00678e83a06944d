package prediction

import (
	"strings"
	"time"
)

const (
	PickHome = "1"
	PickDraw = "N"
	PickAway = "2"
)

// Prediction is a user's 1/N/2 pick for one match of one day, keyed by
// (day, user, external match).
type Prediction struct {
	DayID           string
	UserID          string
	ExternalMatchID int64
	Pick            string
	UpdatedAt       time.Time
}

// NormalizePick uppercases the input and reports whether it is a valid pick.
func NormalizePick(value string) (string, bool) {
	pick := strings.ToUpper(strings.TrimSpace(value))
	switch pick {
	case PickHome, PickDraw, PickAway:
		return pick, true
	default:
		return "", false
	}
}
