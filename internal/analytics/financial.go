package analytics

import (
	"strings"

	"github.com/lucasmbr/deliverydash/internal/finance"
	"github.com/lucasmbr/deliverydash/internal/models"
)

const hoursPerDay = 24.0

// PaymentBreakdown buckets revenue by payment family.
type PaymentBreakdown struct {
	Pix   float64 `json:"pix"`
	Card  float64 `json:"card"`
	Cash  float64 `json:"cash"`
	Other float64 `json:"other"`
}

// FinancialSummary holds the top-line KPIs derived from delivered orders.
// Orders in any other status contribute nothing here.
type FinancialSummary struct {
	TotalRevenue     float64            `json:"total_revenue"`
	OrderCount       int                `json:"order_count"`
	AvgTicket        float64            `json:"avg_ticket"`
	Payments         PaymentBreakdown   `json:"payments"`
	ChannelRevenue   map[string]float64 `json:"channel_revenue"`
	RecurrenceDays   float64            `json:"recurrence_days"`
	TotalDiscounts   float64            `json:"total_discounts"`
	TotalDeliveryFee float64            `json:"total_delivery_fees"`
}

// Summarize computes the financial summary over a snapshot of orders.
func Summarize(orders []models.Order) FinancialSummary {
	summary := FinancialSummary{
		ChannelRevenue: make(map[string]float64),
	}

	var delivered []models.Order
	for _, order := range orders {
		if order.Status != models.OrderStatusDelivered {
			continue
		}
		delivered = append(delivered, order)

		summary.TotalRevenue += order.Total
		summary.TotalDiscounts += order.Discount
		summary.TotalDeliveryFee += order.DeliveryFee
		summary.ChannelRevenue[order.Channel] += order.Total

		switch paymentFamily(order.PaymentMethod) {
		case models.PaymentPix:
			summary.Payments.Pix += order.Total
		case models.PaymentCard:
			summary.Payments.Card += order.Total
		case models.PaymentCash:
			summary.Payments.Cash += order.Total
		default:
			summary.Payments.Other += order.Total
		}
	}

	summary.OrderCount = len(delivered)
	summary.TotalRevenue = finance.Round(summary.TotalRevenue)
	summary.TotalDiscounts = finance.Round(summary.TotalDiscounts)
	summary.TotalDeliveryFee = finance.Round(summary.TotalDeliveryFee)
	summary.Payments.Pix = finance.Round(summary.Payments.Pix)
	summary.Payments.Card = finance.Round(summary.Payments.Card)
	summary.Payments.Cash = finance.Round(summary.Payments.Cash)
	summary.Payments.Other = finance.Round(summary.Payments.Other)
	for channel, revenue := range summary.ChannelRevenue {
		summary.ChannelRevenue[channel] = finance.Round(revenue)
	}

	if summary.OrderCount > 0 {
		summary.AvgTicket = finance.Round(summary.TotalRevenue / float64(summary.OrderCount))
	}
	summary.RecurrenceDays = RecurrenceDays(delivered)

	return summary
}

// paymentFamily matches the stored payment-method string, case-insensitive,
// against the known families by substring.
func paymentFamily(method string) string {
	m := strings.ToLower(method)
	switch {
	case strings.Contains(m, "pix"):
		return models.PaymentPix
	case strings.Contains(m, "credit"), strings.Contains(m, "crédito"),
		strings.Contains(m, "debit"), strings.Contains(m, "débito"),
		strings.Contains(m, "cartão"), strings.Contains(m, "card"):
		return models.PaymentCard
	case strings.Contains(m, "dinheiro"), strings.Contains(m, "cash"):
		return models.PaymentCash
	default:
		return models.PaymentOther
	}
}

// RecurrenceDays computes the average inter-purchase gap across customers.
// Each customer with at least two delivered orders contributes
// (last-first)/(n-1) days; single-order customers are excluded from the
// average entirely, not counted as zero. Returns 0 when nobody qualifies.
func RecurrenceDays(delivered []models.Order) float64 {
	type span struct {
		first, last int64 // unix seconds
		count       int
	}
	spans := make(map[string]*span)

	for _, order := range delivered {
		key := order.CustomerKey()
		ts := order.CreatedAt.Unix()
		s, ok := spans[key]
		if !ok {
			spans[key] = &span{first: ts, last: ts, count: 1}
			continue
		}
		if ts < s.first {
			s.first = ts
		}
		if ts > s.last {
			s.last = ts
		}
		s.count++
	}

	var total float64
	var qualifying int
	for _, s := range spans {
		if s.count < 2 {
			continue
		}
		gapDays := float64(s.last-s.first) / 3600 / hoursPerDay / float64(s.count-1)
		total += gapDays
		qualifying++
	}

	if qualifying == 0 {
		return 0
	}
	return total / float64(qualifying)
}
