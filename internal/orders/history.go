package orders

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type Granularity string

const (
	GroupByDay   Granularity = "day"
	GroupByMonth Granularity = "month"
	GroupByYear  Granularity = "year"
)

// GroupLabel is the grouping key for one order timestamp. Day keeps the
// dd/mm/yyyy form the dashboard always showed; month is "<m>/<year>" with the
// month unpadded.
func GroupLabel(t time.Time, g Granularity) string {
	switch g {
	case GroupByMonth:
		return strconv.Itoa(int(t.Month())) + "/" + strconv.Itoa(t.Year())
	case GroupByYear:
		return strconv.Itoa(t.Year())
	default:
		return t.Format("02/01/2006")
	}
}

type Group struct {
	Label  string  `json:"label"`
	Orders []Order `json:"orders"`
}

// GroupHistory partitions orders into groups by label. The filter, when
// non-empty, keeps only groups whose label contains it. Groups come back
// sorted by label descending — plain lexicographic, so multi-digit months
// and years do not sort chronologically. That quirk is load-bearing for the
// dashboard and is kept as is.
func GroupHistory(all []Order, g Granularity, filter string) []Group {
	byLabel := map[string][]Order{}
	var labels []string
	for _, o := range all {
		label := GroupLabel(o.CreatedAt, g)
		if _, seen := byLabel[label]; !seen {
			labels = append(labels, label)
		}
		byLabel[label] = append(byLabel[label], o)
	}

	sort.Slice(labels, func(i, j int) bool { return labels[i] > labels[j] })

	out := make([]Group, 0, len(labels))
	for _, label := range labels {
		if filter != "" && !strings.Contains(label, filter) {
			continue
		}
		out = append(out, Group{Label: label, Orders: byLabel[label]})
	}
	return out
}

type GroupSummary struct {
	TotalCents   int            `json:"total_cents"`
	StatusCounts map[Status]int `json:"status_counts"`
}

// Summarize sums the group's totals and counts orders per known status.
// Unknown status values are not counted anywhere; the count map covers
// exactly the four pipeline statuses.
func Summarize(g Group) GroupSummary {
	s := GroupSummary{StatusCounts: make(map[Status]int, len(KnownStatuses))}
	for _, st := range KnownStatuses {
		s.StatusCounts[st] = 0
	}
	for _, o := range g.Orders {
		s.TotalCents += o.TotalCents
		if _, ok := s.StatusCounts[o.Status]; ok {
			s.StatusCounts[o.Status]++
		}
	}
	return s
}

// OpenSet tracks which group labels are currently expanded. Purely
// in-memory; a reload starts collapsed again.
type OpenSet map[string]struct{}

func NewOpenSet() OpenSet { return OpenSet{} }

func (s OpenSet) Toggle(label string) {
	if _, ok := s[label]; ok {
		delete(s, label)
		return
	}
	s[label] = struct{}{}
}

func (s OpenSet) IsOpen(label string) bool {
	_, ok := s[label]
	return ok
}
