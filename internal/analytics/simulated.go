package analytics

// Simulated metrics. Everything in this file combines real order-derived
// numerators with illustrative multipliers for data the platform does not
// actually capture (page views, ad spend, coupon distribution, future
// sales). They exist so dashboards have a complete shape; swapping in real
// instrumentation should only touch this file. Tests must treat the random
// pieces as shape-only.

import (
	"sort"
	"time"

	"github.com/lucasmbr/deliverydash/internal/finance"
	"github.com/lucasmbr/deliverydash/internal/models"
)

// Funnel estimation multipliers: carts per order, views per cart.
const (
	cartsPerOrder = 2.5
	viewsPerCart  = 3.3

	couponsDistributedPerUsed = 5

	forecastBuckets = 3
	trendBuckets    = 7
)

// SalesFunnel is an estimated view/cart/order funnel. Only Orders is
// measured; Carts and Views are extrapolated.
type SalesFunnel struct {
	EstimatedViews int  `json:"estimated_views"`
	EstimatedCarts int  `json:"estimated_carts"`
	Orders         int  `json:"orders"`
	Estimated      bool `json:"estimated"`
}

// ReasonCount is a cancellation reason with its assigned order count.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// TrendBucket is one slice of the revenue trend. Forecast buckets carry
// synthetic values.
type TrendBucket struct {
	Start    time.Time `json:"start"`
	Revenue  float64   `json:"revenue"`
	Forecast bool      `json:"forecast"`
}

// MarketingFunnel mixes real coupon usage with estimated distribution and
// return figures.
type MarketingFunnel struct {
	CouponOrders         int           `json:"coupon_orders"`
	CouponRevenue        float64       `json:"coupon_revenue"`
	CouponDiscounts      float64       `json:"coupon_discounts"`
	EstimatedDistributed int           `json:"estimated_distributed"`
	EstimatedROI         float64       `json:"estimated_roi"`
	Campaigns            []CampaignRow `json:"campaigns"`
}

// CampaignRow is one coupon code's retention line.
type CampaignRow struct {
	Coupon          string  `json:"coupon"`
	Orders          int     `json:"orders"`
	Revenue         float64 `json:"revenue"`
	ReturnCustomers int     `json:"return_customers"`
}

// cancellationReasons is a fixed taxonomy; real reason capture does not
// exist yet, so orders are spread across it round-robin.
var cancellationReasons = []string{
	"Cliente desistiu",
	"Endereço não encontrado",
	"Tempo de espera alto",
	"Item indisponível",
	"Pagamento recusado",
}

// SimulatedFunnel extrapolates views and carts from the measured order
// count.
func SimulatedFunnel(orderCount int) SalesFunnel {
	carts := int(float64(orderCount) * cartsPerOrder)
	return SalesFunnel{
		EstimatedViews: int(float64(carts) * viewsPerCart),
		EstimatedCarts: carts,
		Orders:         orderCount,
		Estimated:      true,
	}
}

// SimulatedCancellationReasons assigns cancelled orders to the fixed
// taxonomy by index modulo. Deterministic, but semantically arbitrary until
// cancellation flows record a real reason.
func SimulatedCancellationReasons(cancelled []models.Order) []ReasonCount {
	counts := make([]ReasonCount, len(cancellationReasons))
	for i, reason := range cancellationReasons {
		counts[i].Reason = reason
	}
	for i := range cancelled {
		counts[i%len(cancellationReasons)].Count++
	}
	return counts
}

// AcquisitionCostProxy estimates customer acquisition cost as the discount
// value handed to first-time customers divided by their count. Discounts
// stand in for ad spend, which is not tracked.
func AcquisitionCostProxy(allOrders, window []models.Order) float64 {
	firstOrderAt := make(map[string]time.Time)
	for _, order := range allOrders {
		key := order.CustomerKey()
		if first, ok := firstOrderAt[key]; !ok || order.CreatedAt.Before(first) {
			firstOrderAt[key] = order.CreatedAt
		}
	}

	var totalDiscount float64
	var firstTimers int
	for _, order := range window {
		if !order.CreatedAt.Equal(firstOrderAt[order.CustomerKey()]) {
			continue
		}
		firstTimers++
		totalDiscount += order.Discount
	}

	if firstTimers == 0 {
		return 0
	}
	return finance.Round(totalDiscount / float64(firstTimers))
}

// TrendForecast splits the window into seven equal buckets of real
// delivered revenue and appends three synthetic forward buckets at
// lastReal × U(0.9, 1.2). The forecast is a placeholder, not a statistical
// model; assert on shape, never on values.
func (a *Analyzer) TrendForecast(delivered []models.Order, start, end time.Time) []TrendBucket {
	buckets := make([]TrendBucket, trendBuckets, trendBuckets+forecastBuckets)

	span := end.Sub(start)
	if span <= 0 {
		span = time.Hour
	}
	bucketSpan := span / trendBuckets

	for i := range buckets {
		buckets[i].Start = start.Add(time.Duration(i) * bucketSpan)
	}
	for _, order := range delivered {
		idx := int(order.CreatedAt.Sub(start) / bucketSpan)
		if idx < 0 {
			idx = 0
		}
		if idx >= trendBuckets {
			idx = trendBuckets - 1
		}
		buckets[idx].Revenue += order.Total
	}
	for i := range buckets {
		buckets[i].Revenue = finance.Round(buckets[i].Revenue)
	}

	last := buckets[trendBuckets-1].Revenue
	for i := 0; i < forecastBuckets; i++ {
		factor := 0.9 + a.rng.Float64()*0.3
		buckets = append(buckets, TrendBucket{
			Start:    end.Add(time.Duration(i) * bucketSpan),
			Revenue:  finance.Round(last * factor),
			Forecast: true,
		})
	}
	return buckets
}

// SimulatedMarketing derives coupon performance from real orders and fills
// the untracked parts (distribution volume, ROI) with the usual
// multipliers.
func SimulatedMarketing(orders []models.Order) MarketingFunnel {
	funnel := MarketingFunnel{}
	type campaign struct {
		orders    int
		revenue   float64
		customers map[string]int
	}
	campaigns := make(map[string]*campaign)

	for _, order := range orders {
		if order.Coupon == "" || order.Status == models.OrderStatusCancelled {
			continue
		}
		funnel.CouponOrders++
		funnel.CouponRevenue += order.Total
		funnel.CouponDiscounts += order.Discount

		c, ok := campaigns[order.Coupon]
		if !ok {
			c = &campaign{customers: make(map[string]int)}
			campaigns[order.Coupon] = c
		}
		c.orders++
		c.revenue += order.Total
		c.customers[order.CustomerKey()]++
	}

	funnel.CouponRevenue = finance.Round(funnel.CouponRevenue)
	funnel.CouponDiscounts = finance.Round(funnel.CouponDiscounts)
	funnel.EstimatedDistributed = funnel.CouponOrders * couponsDistributedPerUsed
	if funnel.CouponDiscounts > 0 {
		funnel.EstimatedROI = finance.Round(funnel.CouponRevenue / funnel.CouponDiscounts)
	}

	for coupon, c := range campaigns {
		row := CampaignRow{Coupon: coupon, Orders: c.orders, Revenue: finance.Round(c.revenue)}
		for _, n := range c.customers {
			if n > 1 {
				row.ReturnCustomers++
			}
		}
		funnel.Campaigns = append(funnel.Campaigns, row)
	}
	sort.Slice(funnel.Campaigns, func(i, j int) bool {
		return funnel.Campaigns[i].Revenue > funnel.Campaigns[j].Revenue
	})
	return funnel
}
