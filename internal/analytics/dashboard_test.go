package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lucasmbr/deliverydash/internal/geo"
	"github.com/lucasmbr/deliverydash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStore = models.Location{Lat: -23.5505, Lng: -46.6333}

func testAnalyzer() *Analyzer {
	return NewAnalyzer(testStore, rand.New(rand.NewSource(42)))
}

func ts(t time.Time) *time.Time { return &t }

func TestQualityScoreDefaultsTo100(t *testing.T) {
	assert.Equal(t, 100.0, QualityScore(nil))
	assert.Equal(t, 100.0, QualityScore([]models.Order{
		{Status: models.OrderStatusPending},
		{Status: models.OrderStatusPreparing},
	}))
}

func TestQualityScoreBlendsOnTimeAndCancellations(t *testing.T) {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{Status: models.OrderStatusDelivered, CreatedAt: base, DeliveredAt: ts(base.Add(30 * time.Minute))},
		{Status: models.OrderStatusDelivered, CreatedAt: base, DeliveredAt: ts(base.Add(60 * time.Minute))},
	}
	// one on-time of two completed, no cancellations:
	// 0.5*0.7 + 1.0*0.3 = 0.65 -> 65
	assert.Equal(t, 65.0, QualityScore(orders))

	orders = append(orders, models.Order{Status: models.OrderStatusCancelled, CreatedAt: base})
	// cancel ratio 1/3: 0.5*0.7 + (1-1/3)*0.3 = 0.55 -> 55
	assert.Equal(t, 55.0, QualityScore(orders))
}

func TestStageTimingFallbackConstants(t *testing.T) {
	// no stage timestamps at all: both averages come from the documented
	// fallback constants
	timing := ComputeStageTiming([]models.Order{
		{Status: models.OrderStatusPending, CreatedAt: time.Now()},
	})
	assert.Equal(t, models.DefaultAcceptMinutes, timing.AvgAcceptMinutes)
	assert.Equal(t, models.DefaultPrepMinutes, timing.AvgPrepMinutes)
}

func TestStageTimingMeasuredAndPartialFallback(t *testing.T) {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	measured := models.Order{
		Status:       models.OrderStatusDelivered,
		CreatedAt:    base,
		PreparedAt:   ts(base.Add(4 * time.Minute)),
		DispatchedAt: ts(base.Add(16 * time.Minute)),
		DeliveredAt:  ts(base.Add(40 * time.Minute)),
	}
	timing := ComputeStageTiming([]models.Order{measured})
	assert.Equal(t, 4.0, timing.AvgAcceptMinutes)
	assert.Equal(t, 12.0, timing.AvgPrepMinutes)
	assert.Equal(t, 24.0, timing.AvgDeliveryMinutes)

	// missing PreparedAt: prep estimated as 80% of creation-to-dispatch
	partial := models.Order{
		Status:       models.OrderStatusDelivered,
		CreatedAt:    base,
		DispatchedAt: ts(base.Add(20 * time.Minute)),
		DeliveredAt:  ts(base.Add(45 * time.Minute)),
	}
	timing = ComputeStageTiming([]models.Order{partial})
	assert.Equal(t, models.DefaultAcceptMinutes, timing.AvgAcceptMinutes)
	assert.InDelta(t, 16.0, timing.AvgPrepMinutes, 1e-9)
}

func TestCategoryEfficiencyAttributesFullPrepToEachCategory(t *testing.T) {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	order := models.Order{
		Status:       models.OrderStatusDelivered,
		CreatedAt:    base,
		PreparedAt:   ts(base),
		DispatchedAt: ts(base.Add(10 * time.Minute)),
		Items: []models.OrderItem{
			{ID: "p", Category: "Pizzas", Quantity: 1},
			{ID: "b", Category: "Bebidas", Quantity: 1},
		},
	}
	timings := CategoryEfficiency([]models.Order{order})

	require.Len(t, timings, 2)
	for _, timing := range timings {
		assert.Equal(t, 10.0, timing.AvgMinutes, "category %s", timing.Category)
	}
}

func TestCategoryEfficiencyKeepsFourFastest(t *testing.T) {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	categories := []string{"A", "B", "C", "D", "E", "F"}
	var orders []models.Order
	for i, category := range categories {
		orders = append(orders, models.Order{
			Status:       models.OrderStatusDelivered,
			CreatedAt:    base,
			PreparedAt:   ts(base),
			DispatchedAt: ts(base.Add(time.Duration(i+1) * 5 * time.Minute)),
			Items:        []models.OrderItem{{ID: category, Category: category, Quantity: 1}},
		})
	}

	timings := CategoryEfficiency(orders)

	require.Len(t, timings, 4)
	assert.Equal(t, "A", timings[0].Category)
	assert.True(t, timings[0].AvgMinutes <= timings[3].AvgMinutes, "ascending order")
}

func TestDispatchPerformance(t *testing.T) {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	var orders []models.Order

	orders = append(orders, models.Order{
		Status: models.OrderStatusDelivered, CreatedAt: base,
		DispatchedAt: ts(base.Add(5 * time.Minute)),
	})
	orders = append(orders, models.Order{
		Status: models.OrderStatusDelivered, CreatedAt: base,
		DispatchedAt: ts(base.Add(25 * time.Minute)),
	})
	// a courier at bag capacity
	for i := 0; i < models.CourierBagCapacity; i++ {
		orders = append(orders, models.Order{
			Status: models.OrderStatusDispatched, CourierID: "rider-ana",
			CreatedAt: base, DispatchedAt: ts(base.Add(12 * time.Minute)),
		})
	}

	perf := ComputeDispatchPerformance(orders)

	assert.Equal(t, 1, perf.FastDispatches)
	assert.Equal(t, 1, perf.SlowDispatches)
	assert.Equal(t, models.CourierBagCapacity, perf.CourierLoad["rider-ana"])
	assert.Equal(t, []string{"rider-ana"}, perf.AtCapacity)
}

func TestClassifyABC(t *testing.T) {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	order := models.Order{
		Status:    models.OrderStatusDelivered,
		CreatedAt: base,
		Items: []models.OrderItem{
			{ID: "top", Name: "Top", Quantity: 1, UnitPrice: 80},
			{ID: "mid", Name: "Mid", Quantity: 1, UnitPrice: 15},
			{ID: "tail", Name: "Tail", Quantity: 1, UnitPrice: 5},
		},
	}

	products := ClassifyABC([]models.Order{order})

	require.Len(t, products, 3, "one row per distinct product")
	assert.Equal(t, "top", products[0].ProductID)
	assert.Equal(t, "A", products[0].Class)
	assert.Equal(t, "B", products[1].Class)
	assert.Equal(t, "C", products[2].Class)
}

func TestClassifyABCBoundaryProduct(t *testing.T) {
	// the second product pushes the cumulative share past 80%, so it lands
	// in B even though most of its revenue sits inside the A band
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	order := models.Order{
		Status:    models.OrderStatusDelivered,
		CreatedAt: base,
		Items: []models.OrderItem{
			{ID: "a", Name: "A", Quantity: 1, UnitPrice: 50},
			{ID: "b", Name: "B", Quantity: 1, UnitPrice: 40},
			{ID: "c", Name: "C", Quantity: 1, UnitPrice: 10},
		},
	}

	products := ClassifyABC([]models.Order{order})

	assert.Equal(t, "A", products[0].Class)
	assert.Equal(t, "B", products[1].Class)
	assert.Equal(t, "C", products[2].Class)
}

func TestSimulatedFunnelMultipliers(t *testing.T) {
	funnel := SimulatedFunnel(10)
	assert.Equal(t, 10, funnel.Orders)
	assert.Equal(t, 25, funnel.EstimatedCarts)
	assert.Equal(t, 82, funnel.EstimatedViews)
	assert.True(t, funnel.Estimated, "funnel must be labeled as an estimate")
}

func TestSimulatedCancellationReasonsRoundRobin(t *testing.T) {
	cancelled := make([]models.Order, 7)
	counts := SimulatedCancellationReasons(cancelled)

	require.Len(t, counts, 5)
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, 2, counts[1].Count)
	assert.Equal(t, 1, counts[2].Count)
	assert.Equal(t, 1, counts[3].Count)
	assert.Equal(t, 1, counts[4].Count)
}

func TestAcquisitionCostProxy(t *testing.T) {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	repeatFirst := models.Order{
		ID: "old", CustomerPhone: "2", Status: models.OrderStatusDelivered,
		CreatedAt: base.AddDate(0, -1, 0),
	}
	all := []models.Order{
		{ID: "a", CustomerPhone: "1", Discount: 12, Status: models.OrderStatusDelivered, CreatedAt: base},
		repeatFirst,
		{ID: "b", CustomerPhone: "2", Discount: 99, Status: models.OrderStatusDelivered, CreatedAt: base},
	}
	window := []models.Order{all[0], all[2]}

	// only customer 1's order is a first order inside the window
	assert.Equal(t, 12.0, AcquisitionCostProxy(all, window))
}

func TestTrendForecastShape(t *testing.T) {
	analyzer := testAnalyzer()
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	delivered := []models.Order{
		{Status: models.OrderStatusDelivered, Total: 100, CreatedAt: start.Add(12 * time.Hour)},
		{Status: models.OrderStatusDelivered, Total: 200, CreatedAt: end.Add(-12 * time.Hour)},
	}

	buckets := analyzer.TrendForecast(delivered, start, end)

	require.Len(t, buckets, 10, "7 real + 3 forecast buckets")
	for i, bucket := range buckets {
		assert.GreaterOrEqual(t, bucket.Revenue, 0.0)
		assert.Equal(t, i >= 7, bucket.Forecast, "bucket %d forecast flag", i)
	}
	assert.Equal(t, 100.0, buckets[0].Revenue)
	assert.Equal(t, 200.0, buckets[6].Revenue)
}

func TestDashboardAssembly(t *testing.T) {
	analyzer := testAnalyzer()
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	start, end, err := ResolvePeriod(Period7Days, now, "", "")
	require.NoError(t, err)

	orders := []models.Order{
		{
			ID: "in", Status: models.OrderStatusDelivered, Total: 90,
			Channel: models.ChannelDelivery, CreatedAt: now.Add(-time.Hour),
			DeliveredAt: ts(now),
			Items:       []models.OrderItem{{ID: "x", Name: "X", Quantity: 4, UnitPrice: 20, Category: "Lanches"}},
		},
		{ID: "cancel", Status: models.OrderStatusCancelled, Channel: models.ChannelCounter, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "out", Status: models.OrderStatusDelivered, Total: 999, CreatedAt: now.AddDate(0, 0, -30)},
	}

	d := analyzer.Dashboard(orders, start, end)

	assert.Equal(t, 2, d.TotalOrders, "order outside the window is excluded")
	assert.Equal(t, 1, d.DeliveredOrders)
	assert.Equal(t, 1, d.CancelledOrders)
	assert.Equal(t, 90.0, d.Revenue)
	assert.Equal(t, 0.5, d.CancellationRate)
	assert.Equal(t, 1, d.ChannelOrders[models.ChannelDelivery])
	require.Len(t, d.Trend, 10)
	require.NotEmpty(t, d.Products)

	// 4 units of the top seller trips the trending insight
	require.NotEmpty(t, d.Insights)
	assert.Equal(t, "trending", d.Insights[0].Kind)
}

func TestHeatmapShape(t *testing.T) {
	analyzer := testAnalyzer()
	monday := time.Date(2026, 5, 11, 14, 0, 0, 0, time.UTC) // a Monday

	orders := []models.Order{
		{Status: models.OrderStatusDelivered, Total: 50, CreatedAt: monday,
			Location: &models.Location{Lat: testStore.Lat + 0.02, Lng: testStore.Lng}},
		{Status: models.OrderStatusDelivered, Total: 30, CreatedAt: monday}, // jittered near the store
		{Status: models.OrderStatusPending, CreatedAt: monday},
	}

	heatmap := analyzer.BuildHeatmap(orders)

	assert.Equal(t, 3, heatmap.HourMatrix[1][14], "all orders bucket by creation time")
	require.Len(t, heatmap.Points, 2, "only delivered orders become map points")
	assert.Equal(t, 50.0, heatmap.Points[0].Weight)
	assert.Equal(t, 1, heatmap.SectorCounts[geo.SectorNorte])
}

func TestLoyaltyLedger(t *testing.T) {
	orders := []models.Order{
		{CustomerPhone: "1", Status: models.OrderStatusDelivered, PointsEarned: 80, PointsUsed: 20},
		{CustomerPhone: "1", Status: models.OrderStatusDelivered, PointsEarned: 40},
		{CustomerPhone: "2", Status: models.OrderStatusCancelled, PointsEarned: 999},
	}

	ledger := BuildLoyaltyLedger(orders)

	assert.Equal(t, 120, ledger.PointsEarned)
	assert.Equal(t, 20, ledger.PointsUsed)
	assert.Equal(t, 1.00, ledger.DiscountValue)
	require.Len(t, ledger.Balances, 1, "cancelled order earns nothing")
	assert.Equal(t, 100, ledger.Balances[0].Balance)
}

func TestSimulatedMarketing(t *testing.T) {
	orders := []models.Order{
		{ID: "a", CustomerPhone: "1", Coupon: "BEMVINDO10", Total: 50, Discount: 5, Status: models.OrderStatusDelivered},
		{ID: "b", CustomerPhone: "1", Coupon: "BEMVINDO10", Total: 70, Discount: 7, Status: models.OrderStatusDelivered},
		{ID: "c", CustomerPhone: "2", Coupon: "BEMVINDO10", Total: 30, Discount: 3, Status: models.OrderStatusCancelled},
		{ID: "d", CustomerPhone: "3", Status: models.OrderStatusDelivered},
	}

	marketing := SimulatedMarketing(orders)

	assert.Equal(t, 2, marketing.CouponOrders, "cancelled and couponless orders excluded")
	assert.Equal(t, 120.0, marketing.CouponRevenue)
	assert.Equal(t, 10, marketing.EstimatedDistributed)
	require.Len(t, marketing.Campaigns, 1)
	assert.Equal(t, 1, marketing.Campaigns[0].ReturnCustomers)
}

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 30, 0, 0, time.UTC)

	start, end, err := ResolvePeriod(PeriodToday, now, "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 10, end.Day())

	start, _, err = ResolvePeriod(Period7Days, now, "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), start)

	start, end, err = ResolvePeriod(PeriodCustom, now, "2026-04-01", "2026-04-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 23, end.Hour())

	_, _, err = ResolvePeriod("whenever", now, "", "")
	assert.Error(t, err)

	_, _, err = ResolvePeriod(PeriodCustom, now, "not-a-date", "2026-04-15")
	assert.Error(t, err)
}

func TestBuildProfiles(t *testing.T) {
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	address := &models.Address{Street: "Rua Augusta", Number: "100"}
	orders := []models.Order{
		{ID: "a", CustomerName: "Maria", CustomerPhone: "11911111111", Total: 50,
			Status: models.OrderStatusDelivered, CreatedAt: base, PointsEarned: 50, Address: address},
		{ID: "b", CustomerName: "Maria S.", CustomerPhone: "11911111111", Total: 30,
			Status: models.OrderStatusDelivered, CreatedAt: base.AddDate(0, 0, 2), PointsEarned: 30, Address: address},
		{ID: "c", CustomerName: "João", Total: 20, Status: models.OrderStatusCancelled, CreatedAt: base},
	}

	profiles := BuildProfiles(orders)

	require.Len(t, profiles, 2)
	maria := profiles[0]
	assert.Equal(t, "Maria S.", maria.Name, "latest order wins the display name")
	assert.Equal(t, 2, maria.OrderCount)
	assert.Equal(t, 80.0, maria.TotalSpend)
	assert.Equal(t, 80, maria.PointsBalance)
	assert.Len(t, maria.SavedAddresses, 1, "duplicate addresses collapse")

	joao := profiles[1]
	assert.Equal(t, 0.0, joao.TotalSpend, "cancelled order does not spend")
	assert.Equal(t, 1, joao.OrderCount, "but still counts as an order")
}
