package orders

import (
	"testing"
	"time"
)

func orderWithItems(id string, items ...LineItem) Order {
	o := Order{ID: id, ClientID: "c1", Status: StatusDelivered, CreatedAt: time.Now()}
	for _, it := range items {
		o.Items = append(o.Items, it)
		o.TotalCents += it.TotalCents
	}
	return o
}

func item(pid, name string, qty, priceCents int) LineItem {
	return LineItem{ProductID: pid, Name: name, Qty: qty, PriceCents: priceCents, TotalCents: qty * priceCents}
}

// The sum of per-product quantities must equal the sum of all line-item
// quantities across all orders.
func TestTopProducts_QuantityTotals(t *testing.T) {
	all := []Order{
		orderWithItems("o1", item("p1", "Tomato", 3, 500), item("p2", "Lettuce", 1, 300)),
		orderWithItems("o2", item("p1", "Tomato", 2, 500), item("p3", "Carrot", 5, 200)),
		orderWithItems("o3", item("p2", "Lettuce", 4, 300)),
	}

	want := 0
	for _, o := range all {
		for _, it := range o.Items {
			want += it.Qty
		}
	}

	got := 0
	for _, p := range TopProducts(all, 0) {
		got += p.Quantity
	}
	if got != want {
		t.Errorf("aggregated quantity = %d, want %d", got, want)
	}
}

func TestTopProducts_SortAndLimit(t *testing.T) {
	all := []Order{
		orderWithItems("o1", item("p1", "Tomato", 3, 500)),
		orderWithItems("o2", item("p2", "Lettuce", 9, 300)),
		orderWithItems("o3", item("p3", "Carrot", 5, 200)),
	}
	top := TopProducts(all, 2)
	if len(top) != 2 {
		t.Fatalf("got %d products, want 2", len(top))
	}
	if top[0].ProductID != "p2" || top[1].ProductID != "p3" {
		t.Errorf("order = %s, %s; want p2, p3", top[0].ProductID, top[1].ProductID)
	}
	if top[0].RevenueCents != 9*300 {
		t.Errorf("p2 revenue = %d, want %d", top[0].RevenueCents, 9*300)
	}
}

// The catalog entry may be inconsistent across orders; the first line item
// seen wins for name and image.
func TestTopProducts_FirstSeenNameWins(t *testing.T) {
	all := []Order{
		orderWithItems("o1", item("p1", "Tomato", 1, 500)),
		orderWithItems("o2", item("p1", "Roma Tomato", 1, 500)),
	}
	top := TopProducts(all, 10)
	if len(top) != 1 {
		t.Fatalf("got %d products, want 1", len(top))
	}
	if top[0].Name != "Tomato" {
		t.Errorf("name = %q, want first-seen %q", top[0].Name, "Tomato")
	}
	if top[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", top[0].Quantity)
	}
}
