package finance

import (
	"math"

	"github.com/lucasmbr/deliverydash/internal/models"
)

// epsilon is added before rounding to counter binary float drift, so values
// like 1.005 land on 1.01 instead of 1.00.
const epsilon = 2.220446049250313e-16

// Round rounds a monetary value to two decimals. Every money value in the
// system must pass through here before display or persistence.
func Round(x float64) float64 {
	return math.Round((x+epsilon)*100) / 100
}

// PointsDiscount converts a loyalty point balance into a currency discount.
func PointsDiscount(points int) float64 {
	return Round(float64(points) * models.PointValue)
}

// Fee computes a service fee or cover charge. A flat fee is the value
// itself; a percentage fee is taken from the subtotal.
func Fee(subtotal, value float64, kind string) float64 {
	if kind == models.FeeTypeFlat {
		return Round(value)
	}
	return Round(subtotal * value / 100)
}

// FinalTotal sums the charges, subtracts the discount and floors at zero.
func FinalTotal(subtotal, serviceFee, coverCharge, discount float64) float64 {
	total := subtotal + serviceFee + coverCharge - discount
	if total < 0 {
		total = 0
	}
	return Round(total)
}

// OrderTotal applies the order invariant: subtotal plus delivery fee minus
// discount, clamped at zero.
func OrderTotal(subtotal, deliveryFee, discount float64) float64 {
	return FinalTotal(subtotal, deliveryFee, 0, discount)
}

// Change returns the amount owed back to the customer. Differences at or
// below one cent are treated as exact payment.
func Change(paid, total float64) float64 {
	diff := paid - total
	if diff > models.PaidExactTolerance {
		return Round(diff)
	}
	return 0
}

// PointsEarned awards one loyalty point per whole currency unit spent.
func PointsEarned(total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(total))
}
