package checkout

import (
	"github.com/lucasmbr/deliverydash/internal/finance"
	"github.com/lucasmbr/deliverydash/internal/models"
)

// CartTotals is the monetary breakdown shown at checkout.
type CartTotals struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryFee    float64 `json:"delivery_fee"`
	ServiceFee     float64 `json:"service_fee"`
	PointsDiscount float64 `json:"points_discount"`
	Total          float64 `json:"total"`
}

// ItemTotal prices one cart line: unit price plus chosen add-ons, times
// quantity.
func ItemTotal(item models.OrderItem) float64 {
	unit := item.UnitPrice
	for _, addOn := range item.AddOns {
		unit += addOn.Price
	}
	return finance.Round(unit * float64(item.Quantity))
}

// Subtotal sums the line totals of the cart.
func Subtotal(items []models.OrderItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += ItemTotal(item)
	}
	return finance.Round(subtotal)
}

// ComputeTotals assembles the cart breakdown. The service fee is a
// percentage of the subtotal, the points discount comes from the loyalty
// balance the customer chose to burn, and the total never goes negative.
func ComputeTotals(items []models.OrderItem, deliveryFee, serviceFeePct float64, pointsUsed int) CartTotals {
	subtotal := Subtotal(items)
	serviceFee := finance.Fee(subtotal, serviceFeePct*100, models.FeeTypePercentage)
	discount := finance.PointsDiscount(pointsUsed)

	return CartTotals{
		Subtotal:       subtotal,
		DeliveryFee:    finance.Round(deliveryFee),
		ServiceFee:     serviceFee,
		PointsDiscount: discount,
		Total:          finance.FinalTotal(subtotal, serviceFee, deliveryFee, discount),
	}
}

// SplitPayment divides a total across payers. Each share is rounded to
// cents; whatever rounding leaves over lands on the first payer, so the
// shares always sum exactly to the total.
func SplitPayment(total float64, payers int) []float64 {
	if payers <= 0 {
		return nil
	}

	share := finance.Round(total / float64(payers))
	shares := make([]float64, payers)
	for i := range shares {
		shares[i] = share
	}
	shares[0] = finance.Round(total - share*float64(payers-1))
	return shares
}
