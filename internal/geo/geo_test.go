package geo

import (
	"math"
	"testing"

	"github.com/lucasmbr/deliverydash/internal/models"
)

var store = models.Location{Lat: -23.5505, Lng: -46.6333}

func TestDistanceIdentity(t *testing.T) {
	points := []models.Location{store, {Lat: 0, Lng: 0}, {Lat: 51.5, Lng: -0.12}}
	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := store
	b := models.Location{Lat: -23.60, Lng: -46.70}
	if d1, d2 := Distance(a, b), Distance(b, a); math.Abs(d1-d2) > 1e-12 {
		t.Errorf("Distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// roughly one degree of latitude
	a := models.Location{Lat: -23.0, Lng: -46.0}
	b := models.Location{Lat: -24.0, Lng: -46.0}
	d := Distance(a, b)
	if d < 110 || d > 112 {
		t.Errorf("one degree of latitude = %v km, want ~111", d)
	}
}

func TestSector(t *testing.T) {
	cases := []struct {
		loc  models.Location
		want string
	}{
		{store, SectorCentro},
		{models.Location{Lat: store.Lat + 0.004, Lng: store.Lng + 0.004}, SectorCentro},
		{models.Location{Lat: store.Lat + 0.02, Lng: store.Lng}, SectorNorte},
		{models.Location{Lat: store.Lat - 0.02, Lng: store.Lng}, SectorSul},
		{models.Location{Lat: store.Lat, Lng: store.Lng + 0.02}, SectorLeste},
		{models.Location{Lat: store.Lat, Lng: store.Lng - 0.02}, SectorOeste},
		// equal offsets: the latitude axis wins
		{models.Location{Lat: store.Lat + 0.01, Lng: store.Lng + 0.01}, SectorNorte},
		// longitude offset dominates
		{models.Location{Lat: store.Lat + 0.006, Lng: store.Lng - 0.03}, SectorOeste},
	}
	for _, c := range cases {
		if got := Sector(c.loc, store); got != c.want {
			t.Errorf("Sector(%v) = %s, want %s", c.loc, got, c.want)
		}
	}
}

func orderAt(id string, lat, lng float64) models.Order {
	return models.Order{ID: id, Location: &models.Location{Lat: lat, Lng: lng}}
}

func TestOptimizeRouteEmptyAndSingle(t *testing.T) {
	if got := OptimizeRoute(nil, store); len(got) != 0 {
		t.Errorf("OptimizeRoute(nil) returned %d stops", len(got))
	}
	single := []models.Order{orderAt("a", -23.56, -46.64)}
	got := OptimizeRoute(single, store)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("OptimizeRoute(single) = %v", got)
	}
}

func TestOptimizeRouteIsPermutation(t *testing.T) {
	orders := []models.Order{
		orderAt("far", -23.70, -46.80),
		orderAt("near", -23.552, -46.635),
		orderAt("mid", -23.60, -46.70),
		{ID: "nowhere"}, // no coordinate
	}
	route := OptimizeRoute(orders, store)

	if len(route) != len(orders) {
		t.Fatalf("route has %d stops, want %d", len(route), len(orders))
	}
	seen := make(map[string]bool)
	for _, stop := range route {
		seen[stop.ID] = true
	}
	for _, order := range orders {
		if !seen[order.ID] {
			t.Errorf("order %s missing from route", order.ID)
		}
	}
}

func TestOptimizeRouteGreedyOrder(t *testing.T) {
	orders := []models.Order{
		orderAt("far", -23.70, -46.80),
		orderAt("near", -23.552, -46.635),
		orderAt("mid", -23.60, -46.70),
	}
	route := OptimizeRoute(orders, store)
	want := []string{"near", "mid", "far"}
	for i, id := range want {
		if route[i].ID != id {
			t.Errorf("stop %d = %s, want %s", i, route[i].ID, id)
		}
	}
}

func TestOptimizeRouteTiesKeepEarliestIndex(t *testing.T) {
	orders := []models.Order{
		orderAt("first", -23.56, -46.64),
		orderAt("second", -23.56, -46.64),
	}
	route := OptimizeRoute(orders, store)
	if route[0].ID != "first" {
		t.Errorf("tie broken against earliest index: got %s first", route[0].ID)
	}
}
