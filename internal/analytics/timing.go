package analytics

import (
	"math"
	"sort"

	"github.com/lucasmbr/deliverydash/internal/models"
)

// StageTiming holds average per-stage durations in minutes. The averages
// blend measured timestamps with the assumed defaults in models when stage
// timestamps are missing, so they are estimates, not pure telemetry.
type StageTiming struct {
	AvgAcceptMinutes   float64 `json:"avg_accept_minutes"`
	AvgPrepMinutes     float64 `json:"avg_prep_minutes"`
	AvgDeliveryMinutes float64 `json:"avg_delivery_minutes"`
}

// CategoryTiming is the average prep time attributed to one item category.
type CategoryTiming struct {
	Category   string  `json:"category"`
	AvgMinutes float64 `json:"avg_minutes"`
	Orders     int     `json:"orders"`
}

// DispatchPerformance tracks how fast bags leave the store and which
// couriers are saturated.
type DispatchPerformance struct {
	FastDispatches int            `json:"fast_dispatches"` // under FastDispatchMinutes
	SlowDispatches int            `json:"slow_dispatches"` // over SlowDispatchMinutes
	CourierLoad    map[string]int `json:"courier_load"`    // concurrent dispatched orders
	AtCapacity     []string       `json:"at_capacity"`     // couriers at or past bag capacity
}

// acceptMinutes measures order acceptance. Falls back to
// DefaultAcceptMinutes when the kitchen never stamped the order.
func acceptMinutes(order models.Order) float64 {
	if order.PreparedAt != nil {
		return order.PreparedAt.Sub(order.CreatedAt).Minutes()
	}
	return models.DefaultAcceptMinutes
}

// prepMinutes measures kitchen time. When PreparedAt is missing it assumes
// prep took PrepShareOfDispatch of the creation-to-dispatch span; with no
// dispatch data at all it falls back to the flat DefaultPrepMinutes.
func prepMinutes(order models.Order) float64 {
	if order.PreparedAt != nil && order.DispatchedAt != nil {
		return order.DispatchedAt.Sub(*order.PreparedAt).Minutes()
	}
	if order.DispatchedAt != nil {
		return order.DispatchedAt.Sub(order.CreatedAt).Minutes() * models.PrepShareOfDispatch
	}
	return models.DefaultPrepMinutes
}

// ComputeStageTiming averages acceptance, kitchen and delivery durations
// over the snapshot. Delivery time is only measurable, never assumed.
func ComputeStageTiming(orders []models.Order) StageTiming {
	var timing StageTiming
	var timed int
	var deliveryTotal float64
	var deliveryCount int

	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusRejected {
			continue
		}
		timing.AvgAcceptMinutes += acceptMinutes(order)
		timing.AvgPrepMinutes += prepMinutes(order)
		timed++

		if order.DeliveredAt != nil && order.DispatchedAt != nil {
			deliveryTotal += order.DeliveredAt.Sub(*order.DispatchedAt).Minutes()
			deliveryCount++
		}
	}

	if timed > 0 {
		timing.AvgAcceptMinutes /= float64(timed)
		timing.AvgPrepMinutes /= float64(timed)
	}
	if deliveryCount > 0 {
		timing.AvgDeliveryMinutes = deliveryTotal / float64(deliveryCount)
	}
	return timing
}

// CategoryEfficiency attributes each order's full prep time to every
// distinct category among its items, averages per category and returns the
// four fastest.
func CategoryEfficiency(orders []models.Order) []CategoryTiming {
	totals := make(map[string]float64)
	counts := make(map[string]int)

	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusRejected {
			continue
		}
		prep := prepMinutes(order)
		for _, category := range order.Categories() {
			totals[category] += prep
			counts[category]++
		}
	}

	timings := make([]CategoryTiming, 0, len(totals))
	for category, total := range totals {
		timings = append(timings, CategoryTiming{
			Category:   category,
			AvgMinutes: total / float64(counts[category]),
			Orders:     counts[category],
		})
	}

	// fastest first
	sort.Slice(timings, func(i, j int) bool {
		if timings[i].AvgMinutes != timings[j].AvgMinutes {
			return timings[i].AvgMinutes < timings[j].AvgMinutes
		}
		return timings[i].Category < timings[j].Category
	})

	if len(timings) > 4 {
		timings = timings[:4]
	}
	return timings
}

// ComputeDispatchPerformance counts fast and slow dispatches and flags
// couriers carrying a full bag of concurrent dispatched orders.
func ComputeDispatchPerformance(orders []models.Order) DispatchPerformance {
	perf := DispatchPerformance{CourierLoad: make(map[string]int)}

	for _, order := range orders {
		if order.DispatchedAt != nil {
			elapsed := order.DispatchedAt.Sub(order.CreatedAt).Minutes()
			if elapsed < models.FastDispatchMinutes {
				perf.FastDispatches++
			} else if elapsed > models.SlowDispatchMinutes {
				perf.SlowDispatches++
			}
		}

		if order.Status == models.OrderStatusDispatched && order.CourierID != "" {
			perf.CourierLoad[order.CourierID]++
		}
	}

	for courier, load := range perf.CourierLoad {
		if load >= models.CourierBagCapacity {
			perf.AtCapacity = append(perf.AtCapacity, courier)
		}
	}
	sort.Strings(perf.AtCapacity)
	return perf
}

// QualityScore blends on-time ratio (70%) with completion ratio (30%) into
// a 0-100 score. On-time means creation to delivery within OnTimeMinutes.
// With no completed orders the score is an optimistic 100.
func QualityScore(orders []models.Order) float64 {
	var completed, onTime, cancelled, considered int

	for _, order := range orders {
		switch order.Status {
		case models.OrderStatusDelivered:
			completed++
			considered++
			if order.DeliveredAt != nil && order.DeliveredAt.Sub(order.CreatedAt).Minutes() <= models.OnTimeMinutes {
				onTime++
			}
		case models.OrderStatusCancelled:
			cancelled++
			considered++
		}
	}

	if completed == 0 {
		return 100
	}

	onTimeRatio := float64(onTime) / float64(completed)
	cancelRatio := float64(cancelled) / float64(considered)
	score := (onTimeRatio*0.7 + (1-cancelRatio)*0.3) * 100
	return math.Round(score)
}
