package notifications

// SeedFeed is the static dashboard feed. The generic feed has no writer in
// the app itself; the seeder loads these once and the per-client
// notifications are persisted separately by the notifier.
var SeedFeed = []struct {
	Title string
	Body  string
	Kind  string
}{
	{"Welcome", "Your AgroShop admin dashboard is ready.", "info"},
	{"Low stock alert", "Some products are below their minimum stock level.", "stock"},
	{"New orders", "You have new pending orders to review.", "order"},
	{"Weekly summary", "Check this week's top selling products.", "info"},
}
