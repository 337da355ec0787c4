package promos

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusExhausted Status = "exhausted"
)

// DeriveStatus computes the promotion status from the clock. It is derived
// on every read, never stored: the record has no status field to go stale.
func DeriveStatus(p Promotion, now time.Time) Status {
	if p.UsageCap > 0 && p.UsageCount >= p.UsageCap {
		return StatusExhausted
	}
	if now.Before(p.StartsAt) {
		return StatusScheduled
	}
	if now.After(p.EndsAt) {
		return StatusExpired
	}
	return StatusActive
}
