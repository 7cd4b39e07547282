package analytics

import "fmt"

// Insight trigger thresholds.
const (
	trendingMinSales = 3
	slowPrepMinutes  = 25.0
	maxCancellations = 2
)

type Insight struct {
	Kind    string `json:"kind"` // "trending" or "operational"
	Message string `json:"message"`
}

// GenerateInsights applies the two rule triggers to an assembled dashboard:
// a trending-product callout when the top seller moved enough units, and an
// operational alert when the kitchen is slow or cancellations pile up.
func GenerateInsights(d Dashboard) []Insight {
	var insights []Insight

	if len(d.Products) > 0 && d.Products[0].Quantity >= trendingMinSales {
		insights = append(insights, Insight{
			Kind:    "trending",
			Message: fmt.Sprintf("%s está em alta: %d vendas no período", d.Products[0].Name, d.Products[0].Quantity),
		})
	}

	if d.StageTiming.AvgPrepMinutes > slowPrepMinutes {
		insights = append(insights, Insight{
			Kind:    "operational",
			Message: fmt.Sprintf("Tempo médio de preparo em %.0f min, acima do limite de %.0f min", d.StageTiming.AvgPrepMinutes, slowPrepMinutes),
		})
	} else if d.CancelledOrders > maxCancellations {
		insights = append(insights, Insight{
			Kind:    "operational",
			Message: fmt.Sprintf("%d cancelamentos no período", d.CancelledOrders),
		})
	}

	return insights
}
