package checkout

import (
	"fmt"
	"time"

	"github.com/lucasmbr/deliverydash/internal/finance"
	"github.com/lucasmbr/deliverydash/internal/models"
	"github.com/lucsky/cuid"
)

// Request carries everything checkout needs to turn a cart into an order.
type Request struct {
	CustomerName  string
	CustomerPhone string
	Items         []models.OrderItem
	PaymentMethod string
	Channel       string
	Coupon        string
	Address       *models.Address
	Location      *models.Location
	DeliveryFee   float64
	ServiceFeePct float64
	PointsUsed    int
	ScheduledFor  *time.Time
}

// BuildOrder constructs a pending order from a checkout request. Orders
// scheduled for the future start in the scheduled holding status instead.
// Loyalty points are earned at one point per whole currency unit of the
// final total.
func BuildOrder(req Request, now time.Time) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, fmt.Errorf("cannot build an order from an empty cart")
	}
	if req.CustomerName == "" && req.CustomerPhone == "" {
		return models.Order{}, fmt.Errorf("order needs a customer name or phone")
	}

	totals := ComputeTotals(req.Items, req.DeliveryFee, req.ServiceFeePct, req.PointsUsed)

	status := models.OrderStatusPending
	if req.ScheduledFor != nil && req.ScheduledFor.After(now) {
		status = models.OrderStatusScheduled
	}

	order := models.Order{
		ID:            cuid.New(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         req.Items,
		Subtotal:      totals.Subtotal,
		DeliveryFee:   finance.Round(totals.DeliveryFee + totals.ServiceFee),
		Discount:      totals.PointsDiscount,
		Total:         totals.Total,
		Status:        status,
		PaymentMethod: req.PaymentMethod,
		Channel:       req.Channel,
		Coupon:        req.Coupon,
		Address:       req.Address,
		Location:      req.Location,
		CreatedAt:     now,
		ScheduledFor:  req.ScheduledFor,
		PointsUsed:    req.PointsUsed,
		PointsEarned:  finance.PointsEarned(totals.Total),
	}
	return order, nil
}
