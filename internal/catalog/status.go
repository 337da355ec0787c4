package catalog

type StockStatus string

const (
	StockIn  StockStatus = "in-stock"
	StockLow StockStatus = "low-stock"
	StockOut StockStatus = "out-of-stock"
)

// MinStockFor is the low-stock threshold: 10% of the original max stock,
// floored to a whole unit.
func MinStockFor(maxStock int) int {
	if maxStock < 0 {
		return 0
	}
	return maxStock / 10
}

// DeriveStatus is the three-way rule used when creating a product and when
// editing stock: zero is out-of-stock, at or under the threshold is
// low-stock, anything else in-stock.
func DeriveStatus(qty, minStock int) StockStatus {
	switch {
	case qty == 0:
		return StockOut
	case qty <= minStock:
		return StockLow
	default:
		return StockIn
	}
}

// DeriveListedStatus is the two-way variant used on listing paths. It has no
// explicit zero case: an out-of-stock product reads as low-stock here. The
// two rules intentionally stay separate; callers pick the one their screen
// always used.
func DeriveListedStatus(qty, minStock int) StockStatus {
	if qty <= minStock {
		return StockLow
	}
	return StockIn
}
