package promos

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	starts := time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)
	ends := time.Date(2023, time.July, 31, 23, 59, 59, 0, time.UTC)
	base := Promotion{Scope: ScopeAll, Kind: KindPercentage, Value: 10, StartsAt: starts, EndsAt: ends}

	tests := []struct {
		name       string
		now        time.Time
		usage, cap int
		want       Status
	}{
		{"before window", starts.Add(-time.Hour), 0, 0, StatusScheduled},
		{"at start", starts, 0, 0, StatusActive},
		{"inside window", starts.AddDate(0, 0, 14), 0, 0, StatusActive},
		{"at end", ends, 0, 0, StatusActive},
		{"after window", ends.Add(time.Second), 0, 0, StatusExpired},
		{"cap reached", starts.AddDate(0, 0, 14), 50, 50, StatusExhausted},
		{"cap exceeded", starts.AddDate(0, 0, 14), 51, 50, StatusExhausted},
		{"under cap", starts.AddDate(0, 0, 14), 49, 50, StatusActive},
		{"no cap means unlimited", starts.AddDate(0, 0, 14), 10000, 0, StatusActive},
		{"exhausted wins over expired", ends.Add(time.Hour), 50, 50, StatusExhausted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			p.UsageCount = tt.usage
			p.UsageCap = tt.cap
			if got := DeriveStatus(p, tt.now); got != tt.want {
				t.Errorf("DeriveStatus(usage=%d cap=%d now=%s) = %q, want %q",
					tt.usage, tt.cap, tt.now, got, tt.want)
			}
		})
	}
}
