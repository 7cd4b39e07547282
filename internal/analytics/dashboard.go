package analytics

import (
	"math/rand"
	"time"

	"github.com/lucasmbr/deliverydash/internal/finance"
	"github.com/lucasmbr/deliverydash/internal/models"
)

// Dashboard is the full admin aggregation surface for one date window.
// Fields derived from placeholder heuristics rather than measured data are
// marked "simulated"; see simulated.go.
type Dashboard struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	TotalOrders      int     `json:"total_orders"`
	DeliveredOrders  int     `json:"delivered_orders"`
	CancelledOrders  int     `json:"cancelled_orders"`
	Revenue          float64 `json:"revenue"`
	AvgTicket        float64 `json:"avg_ticket"`
	CancellationRate float64 `json:"cancellation_rate"`

	StageTiming        StageTiming         `json:"stage_timing"`
	CategoryEfficiency []CategoryTiming    `json:"category_efficiency"`
	Dispatch           DispatchPerformance `json:"dispatch"`
	QualityScore       float64             `json:"quality_score"`
	ChannelOrders      map[string]int      `json:"channel_orders"`
	Products           []ProductRevenue    `json:"products"`
	Heatmap            Heatmap             `json:"heatmap"`
	Loyalty            LoyaltyLedger       `json:"loyalty"`
	Insights           []Insight           `json:"insights"`

	// simulated metrics; placeholders until real instrumentation lands
	Funnel              SalesFunnel     `json:"funnel"`
	CancellationReasons []ReasonCount   `json:"cancellation_reasons"`
	AcquisitionCost     float64         `json:"acquisition_cost"`
	Trend               []TrendBucket   `json:"trend"`
	Marketing           MarketingFunnel `json:"marketing"`
}

// Analyzer derives dashboards from order snapshots. The rand source feeds
// the simulated metrics only, so tests can seed it.
type Analyzer struct {
	store models.Location
	rng   *rand.Rand
}

func NewAnalyzer(store models.Location, rng *rand.Rand) *Analyzer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Analyzer{store: store, rng: rng}
}

// Dashboard aggregates every metric over the orders that fall inside the
// window. The input snapshot may contain orders of any status; cancelled
// orders are excluded from revenue but kept in cancellation denominators.
func (a *Analyzer) Dashboard(orders []models.Order, start, end time.Time) Dashboard {
	inWindow := filterWindow(orders, start, end)

	d := Dashboard{
		Start:         start,
		End:           end,
		TotalOrders:   len(inWindow),
		ChannelOrders: make(map[string]int),
	}

	var delivered, cancelled []models.Order
	for _, order := range inWindow {
		d.ChannelOrders[order.Channel]++
		switch order.Status {
		case models.OrderStatusDelivered:
			delivered = append(delivered, order)
			d.Revenue += order.Total
		case models.OrderStatusCancelled:
			cancelled = append(cancelled, order)
		}
	}
	d.DeliveredOrders = len(delivered)
	d.CancelledOrders = len(cancelled)
	d.Revenue = finance.Round(d.Revenue)
	if d.DeliveredOrders > 0 {
		d.AvgTicket = finance.Round(d.Revenue / float64(d.DeliveredOrders))
	}
	if d.TotalOrders > 0 {
		d.CancellationRate = float64(d.CancelledOrders) / float64(d.TotalOrders)
	}

	d.StageTiming = ComputeStageTiming(inWindow)
	d.CategoryEfficiency = CategoryEfficiency(inWindow)
	d.Dispatch = ComputeDispatchPerformance(inWindow)
	d.QualityScore = QualityScore(inWindow)
	d.Products = ClassifyABC(inWindow)
	d.Heatmap = a.BuildHeatmap(inWindow)
	d.Loyalty = BuildLoyaltyLedger(inWindow)

	d.Funnel = SimulatedFunnel(d.TotalOrders)
	d.CancellationReasons = SimulatedCancellationReasons(cancelled)
	d.AcquisitionCost = AcquisitionCostProxy(orders, inWindow)
	d.Trend = a.TrendForecast(delivered, start, end)
	d.Marketing = SimulatedMarketing(inWindow)

	d.Insights = GenerateInsights(d)

	return d
}

func filterWindow(orders []models.Order, start, end time.Time) []models.Order {
	var filtered []models.Order
	for _, order := range orders {
		if order.CreatedAt.Before(start) || order.CreatedAt.After(end) {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered
}
