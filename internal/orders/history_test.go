package orders

import (
	"testing"
	"time"
)

func mkOrder(id string, created time.Time, status Status, totalCents int) Order {
	return Order{ID: id, ClientID: "c1", Status: status, TotalCents: totalCents, CreatedAt: created}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestGroupLabel(t *testing.T) {
	ts := date(2023, time.July, 15)
	tests := []struct {
		g    Granularity
		want string
	}{
		{GroupByDay, "15/07/2023"},
		{GroupByMonth, "7/2023"},
		{GroupByYear, "2023"},
	}
	for _, tt := range tests {
		if got := GroupLabel(ts, tt.g); got != tt.want {
			t.Errorf("GroupLabel(%s) = %q, want %q", tt.g, got, tt.want)
		}
	}
}

func TestGroupHistory_DayExample(t *testing.T) {
	all := []Order{
		mkOrder("a", date(2023, time.July, 15), StatusPending, 1000),
		mkOrder("b", date(2023, time.July, 14), StatusDelivered, 2000),
		mkOrder("c", date(2023, time.July, 15), StatusShipped, 3000),
	}
	groups := GroupHistory(all, GroupByDay, "")
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Label != "15/07/2023" || groups[1].Label != "14/07/2023" {
		t.Errorf("labels = %q, %q; want 15/07/2023 before 14/07/2023", groups[0].Label, groups[1].Label)
	}
	if len(groups[0].Orders) != 2 || len(groups[1].Orders) != 1 {
		t.Errorf("group sizes = %d, %d; want 2, 1", len(groups[0].Orders), len(groups[1].Orders))
	}
}

// Grouping must partition the input: every order lands in exactly one group.
func TestGroupHistory_Partition(t *testing.T) {
	all := []Order{
		mkOrder("a", date(2022, time.December, 31), StatusPending, 100),
		mkOrder("b", date(2023, time.January, 1), StatusProcessing, 200),
		mkOrder("c", date(2023, time.January, 1), StatusShipped, 300),
		mkOrder("d", date(2023, time.July, 15), StatusDelivered, 400),
		mkOrder("e", date(2024, time.February, 29), StatusPending, 500),
	}
	for _, g := range []Granularity{GroupByDay, GroupByMonth, GroupByYear} {
		t.Run(string(g), func(t *testing.T) {
			groups := GroupHistory(all, g, "")
			seen := map[string]int{}
			for _, grp := range groups {
				for _, o := range grp.Orders {
					seen[o.ID]++
				}
			}
			if len(seen) != len(all) {
				t.Fatalf("%d distinct orders across groups, want %d", len(seen), len(all))
			}
			for id, n := range seen {
				if n != 1 {
					t.Errorf("order %s appears %d times", id, n)
				}
			}
		})
	}
}

func TestGroupHistory_Filter(t *testing.T) {
	all := []Order{
		mkOrder("a", date(2023, time.July, 15), StatusPending, 100),
		mkOrder("b", date(2023, time.August, 2), StatusPending, 200),
		mkOrder("c", date(2022, time.July, 15), StatusPending, 300),
	}
	groups := GroupHistory(all, GroupByDay, "2023")
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	for _, g := range groups {
		if g.Label == "15/07/2022" {
			t.Errorf("filter kept label %q", g.Label)
		}
	}
}

// Descending lexicographic, not calendar order: "12/2023" sorts before
// "2/2023" even though February precedes December.
func TestGroupHistory_MonthSortQuirk(t *testing.T) {
	all := []Order{
		mkOrder("a", date(2023, time.February, 1), StatusPending, 100),
		mkOrder("b", date(2023, time.December, 1), StatusPending, 200),
	}
	groups := GroupHistory(all, GroupByMonth, "")
	if groups[0].Label != "2/2023" || groups[1].Label != "12/2023" {
		t.Errorf("labels = %q, %q; want lexicographic descending 2/2023 then 12/2023",
			groups[0].Label, groups[1].Label)
	}
}

func TestSummarize(t *testing.T) {
	g := Group{Label: "15/07/2023", Orders: []Order{
		mkOrder("a", date(2023, time.July, 15), StatusPending, 1000),
		mkOrder("b", date(2023, time.July, 15), StatusPending, 2500),
		mkOrder("c", date(2023, time.July, 15), StatusDelivered, 500),
	}}
	s := Summarize(g)
	if s.TotalCents != 4000 {
		t.Errorf("TotalCents = %d, want 4000", s.TotalCents)
	}
	if len(s.StatusCounts) != 4 {
		t.Errorf("StatusCounts has %d keys, want 4", len(s.StatusCounts))
	}
	if s.StatusCounts[StatusPending] != 2 || s.StatusCounts[StatusDelivered] != 1 {
		t.Errorf("counts = %v", s.StatusCounts)
	}

	sum := 0
	for _, n := range s.StatusCounts {
		sum += n
	}
	if sum != len(g.Orders) {
		t.Errorf("status counts sum to %d, want %d", sum, len(g.Orders))
	}
}

func TestOpenSet_Toggle(t *testing.T) {
	s := NewOpenSet()
	if s.IsOpen("15/07/2023") {
		t.Fatal("new set should start collapsed")
	}
	s.Toggle("15/07/2023")
	if !s.IsOpen("15/07/2023") {
		t.Fatal("toggle should open the label")
	}
	s.Toggle("15/07/2023")
	if s.IsOpen("15/07/2023") {
		t.Fatal("second toggle should close the label")
	}
}
