package analytics

import (
	"github.com/lucasmbr/deliverydash/internal/geo"
	"github.com/lucasmbr/deliverydash/internal/models"
)

// jitterDegrees spreads coordinate-less orders around the store on the map,
// about 500m, so they remain visible without stacking on one pixel.
const jitterDegrees = 0.005

// Heatmap holds demand bucketed by time and by place.
type Heatmap struct {
	// HourMatrix counts orders per day-of-week (Sunday = 0) and hour.
	HourMatrix [7][24]int `json:"hour_matrix"`
	// Points are delivered-order coordinates weighted by order total.
	// Orders without a coordinate get a jittered point near the store and
	// are therefore approximate.
	Points []models.WeightedPoint `json:"points"`
	// SectorCounts is delivered-order volume per delivery sector.
	SectorCounts map[string]int `json:"sector_counts"`
}

// BuildHeatmap buckets every order by creation time and every delivered
// order by place.
func (a *Analyzer) BuildHeatmap(orders []models.Order) Heatmap {
	heatmap := Heatmap{SectorCounts: make(map[string]int)}

	for _, order := range orders {
		day := int(order.CreatedAt.Weekday())
		hour := order.CreatedAt.Hour()
		heatmap.HourMatrix[day][hour]++

		if order.Status != models.OrderStatusDelivered {
			continue
		}

		var point models.Location
		if order.Location != nil {
			point = *order.Location
		} else {
			point = models.Location{
				Lat: a.store.Lat + (a.rng.Float64()-0.5)*jitterDegrees,
				Lng: a.store.Lng + (a.rng.Float64()-0.5)*jitterDegrees,
			}
		}

		heatmap.Points = append(heatmap.Points, models.WeightedPoint{
			Location: point,
			Weight:   order.Total,
		})
		heatmap.SectorCounts[geo.Sector(point, a.store)]++
	}

	return heatmap
}
