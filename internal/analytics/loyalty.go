package analytics

import (
	"sort"

	"github.com/lucasmbr/deliverydash/internal/finance"
	"github.com/lucasmbr/deliverydash/internal/models"
)

// LoyaltyLedger summarises points movement over a window. Cancelled and
// rejected orders neither earn nor burn points.
type LoyaltyLedger struct {
	PointsEarned  int              `json:"points_earned"`
	PointsUsed    int              `json:"points_used"`
	DiscountValue float64          `json:"discount_value"` // currency value of used points
	Balances      []LoyaltyBalance `json:"balances"`
}

// LoyaltyBalance is one customer's net points over the window.
type LoyaltyBalance struct {
	Customer string `json:"customer"`
	Balance  int    `json:"balance"`
}

// BuildLoyaltyLedger totals points earned and used per customer.
func BuildLoyaltyLedger(orders []models.Order) LoyaltyLedger {
	ledger := LoyaltyLedger{}
	balances := make(map[string]int)

	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusRejected {
			continue
		}
		ledger.PointsEarned += order.PointsEarned
		ledger.PointsUsed += order.PointsUsed
		balances[order.CustomerKey()] += order.PointsEarned - order.PointsUsed
	}

	ledger.DiscountValue = finance.PointsDiscount(ledger.PointsUsed)

	for customer, balance := range balances {
		ledger.Balances = append(ledger.Balances, LoyaltyBalance{Customer: customer, Balance: balance})
	}
	sort.Slice(ledger.Balances, func(i, j int) bool {
		if ledger.Balances[i].Balance != ledger.Balances[j].Balance {
			return ledger.Balances[i].Balance > ledger.Balances[j].Balance
		}
		return ledger.Balances[i].Customer < ledger.Balances[j].Customer
	})
	return ledger
}
