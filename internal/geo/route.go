package geo

import (
	"math"

	"github.com/lucasmbr/deliverydash/internal/models"
)

// OptimizeRoute orders delivery stops by greedy nearest neighbour starting
// from the store coordinate. The result is a permutation of the input.
// O(n²), fine for the single-digit stop counts a courier actually carries;
// there is no global improvement pass. Orders without a coordinate keep the
// current position, so they sort by pool order. Ties go to the earliest
// index because the comparison is strict.
func OptimizeRoute(orders []models.Order, start models.Location) []models.Order {
	if len(orders) <= 1 {
		return orders
	}

	pool := make([]models.Order, len(orders))
	copy(pool, orders)

	route := make([]models.Order, 0, len(pool))
	position := start

	for len(pool) > 0 {
		nearest := 0
		minDistance := math.Inf(1)
		for i, order := range pool {
			d := 0.0
			if order.Location != nil {
				d = Distance(position, *order.Location)
			}
			if d < minDistance {
				minDistance = d
				nearest = i
			}
		}

		next := pool[nearest]
		route = append(route, next)
		if next.Location != nil {
			position = *next.Location
		}
		pool = append(pool[:nearest], pool[nearest+1:]...)
	}

	return route
}

// RouteLength returns the total km travelled visiting the orders in the
// given sequence from the start coordinate.
func RouteLength(orders []models.Order, start models.Location) float64 {
	total := 0.0
	position := start
	for _, order := range orders {
		if order.Location == nil {
			continue
		}
		total += Distance(position, *order.Location)
		position = *order.Location
	}
	return total
}
