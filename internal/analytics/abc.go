package analytics

import (
	"sort"

	"github.com/lucasmbr/deliverydash/internal/finance"
	"github.com/lucasmbr/deliverydash/internal/models"
)

// ProductRevenue is one product's sales performance with its Pareto class.
type ProductRevenue struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Revenue      float64 `json:"revenue"`
	RevenueShare float64 `json:"revenue_share"` // cumulative share at this row
	Class        string  `json:"class"`         // "A", "B" or "C"
}

// ClassifyABC ranks products by revenue and assigns Pareto classes on the
// running cumulative share: A up to 80%, B up to 95%, C for the tail. A
// product straddling a boundary is classified by where its cumulative total
// lands, which is standard ABC practice. Cancelled and rejected orders do
// not sell anything and are skipped.
func ClassifyABC(orders []models.Order) []ProductRevenue {
	revenue := make(map[string]*ProductRevenue)

	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusRejected {
			continue
		}
		for _, item := range order.Items {
			entry, ok := revenue[item.ID]
			if !ok {
				entry = &ProductRevenue{ProductID: item.ID, Name: item.Name}
				revenue[item.ID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.UnitPrice * float64(item.Quantity)
		}
	}

	products := make([]ProductRevenue, 0, len(revenue))
	var total float64
	for _, entry := range revenue {
		entry.Revenue = finance.Round(entry.Revenue)
		total += entry.Revenue
		products = append(products, *entry)
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].ProductID < products[j].ProductID
	})

	if total == 0 {
		for i := range products {
			products[i].Class = "C"
		}
		return products
	}

	cumulative := 0.0
	for i := range products {
		cumulative += products[i].Revenue / total
		products[i].RevenueShare = cumulative
		switch {
		case cumulative <= 0.80:
			products[i].Class = "A"
		case cumulative <= 0.95:
			products[i].Class = "B"
		default:
			products[i].Class = "C"
		}
	}
	return products
}
