package geo

import (
	"math"

	"github.com/lucasmbr/deliverydash/internal/models"
)

const earthRadiusKm = 6371.0 // Earth's radius in kilometers

// Delivery sectors relative to the store coordinate.
const (
	SectorCentro = "CENTRO"
	SectorNorte  = "NORTE"
	SectorSul    = "SUL"
	SectorLeste  = "LESTE"
	SectorOeste  = "OESTE"
)

// centroDeadband is the degree band around the store, on both axes, that
// still counts as CENTRO.
const centroDeadband = 0.005

// Distance returns the great-circle distance between two coordinates in km.
func Distance(a, b models.Location) float64 {
	lat1 := degreesToRadians(a.Lat)
	lng1 := degreesToRadians(a.Lng)
	lat2 := degreesToRadians(b.Lat)
	lng2 := degreesToRadians(b.Lng)

	// Haversine formula
	dlat := lat2 - lat1
	dlng := lng2 - lng1
	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Sector classifies a coordinate into one of five delivery sectors relative
// to the store. Within the deadband on both axes it is CENTRO; otherwise
// the axis with the larger offset decides between north/south and
// east/west.
func Sector(loc, store models.Location) string {
	dLat := loc.Lat - store.Lat
	dLng := loc.Lng - store.Lng

	if math.Abs(dLat) <= centroDeadband && math.Abs(dLng) <= centroDeadband {
		return SectorCentro
	}

	if math.Abs(dLat) >= math.Abs(dLng) {
		if dLat > 0 {
			return SectorNorte
		}
		return SectorSul
	}
	if dLng > 0 {
		return SectorLeste
	}
	return SectorOeste
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
