package catalog

import "testing"

func TestMinStockFor(t *testing.T) {
	tests := []struct {
		max  int
		want int
	}{
		{60, 6},
		{100, 10},
		{15, 1},
		{9, 0},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := MinStockFor(tt.max); got != tt.want {
			t.Errorf("MinStockFor(%d) = %d, want %d", tt.max, got, tt.want)
		}
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		qty, max int
		want     StockStatus
	}{
		{"zero is out of stock", 0, 60, StockOut},
		{"at threshold is low", 6, 60, StockLow},
		{"above threshold is in stock", 7, 60, StockIn},
		{"well above threshold", 8, 60, StockIn},
		{"zero max, zero qty", 0, 0, StockOut},
		{"zero max, some qty", 3, 0, StockIn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min := MinStockFor(tt.max)
			if got := DeriveStatus(tt.qty, min); got != tt.want {
				t.Errorf("DeriveStatus(%d, %d) = %q, want %q", tt.qty, min, got, tt.want)
			}
		})
	}
}

func TestDeriveListedStatus(t *testing.T) {
	tests := []struct {
		name     string
		qty, max int
		want     StockStatus
	}{
		// two-way variant: no zero case, zero reads as low-stock
		{"zero is low", 0, 60, StockLow},
		{"at threshold is low", 6, 60, StockLow},
		{"above threshold is in stock", 7, 60, StockIn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min := MinStockFor(tt.max)
			if got := DeriveListedStatus(tt.qty, min); got != tt.want {
				t.Errorf("DeriveListedStatus(%d, %d) = %q, want %q", tt.qty, min, got, tt.want)
			}
		})
	}
}
