package subscription

import "time"

// PushSubscription is one device's Web Push endpoint, keyed by
// (user, device). Rows are pruned when the push service reports the
// endpoint permanently gone.
type PushSubscription struct {
	UserID     string
	DeviceID   string
	LeagueCode string
	Endpoint   string
	P256dh     string
	Auth       string
	CreatedAt  time.Time
}
