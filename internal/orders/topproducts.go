package orders

import "sort"

type ProductSales struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	Quantity     int    `json:"quantity"`
	RevenueCents int    `json:"revenue_cents"`
}

// TopProducts accumulates quantity and revenue per product across every line
// item, then returns the limit highest by quantity. The first line item seen
// for a product supplies its name and image; later spellings are ignored.
// Ordering between products with equal quantity is not guaranteed.
func TopProducts(all []Order, limit int) []ProductSales {
	acc := map[string]*ProductSales{}
	for _, o := range all {
		for _, it := range o.Items {
			p, ok := acc[it.ProductID]
			if !ok {
				p = &ProductSales{ProductID: it.ProductID, Name: it.Name, Image: it.Image}
				acc[it.ProductID] = p
			}
			p.Quantity += it.Qty
			p.RevenueCents += it.TotalCents
		}
	}

	out := make([]ProductSales, 0, len(acc))
	for _, p := range acc {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
