package analytics

import (
	"testing"
	"time"

	"github.com/lucasmbr/deliverydash/internal/models"
	"github.com/stretchr/testify/assert"
)

func deliveredOrder(id, phone string, total float64, createdAt time.Time) models.Order {
	return models.Order{
		ID:            id,
		CustomerName:  "Cliente " + id,
		CustomerPhone: phone,
		Total:         total,
		Status:        models.OrderStatusDelivered,
		Channel:       models.ChannelDelivery,
		CreatedAt:     createdAt,
	}
}

func TestSummarizeRevenueScenario(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		deliveredOrder("a", "11911111111", 50.00, now),
		deliveredOrder("b", "11922222222", 75.50, now),
		deliveredOrder("c", "11933333333", 24.49, now),
	}

	summary := Summarize(orders)

	assert.Equal(t, 149.99, summary.TotalRevenue)
	assert.Equal(t, 3, summary.OrderCount)
	assert.Equal(t, 50.00, summary.AvgTicket)
}

func TestSummarizeIgnoresNonDelivered(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		deliveredOrder("a", "11911111111", 100.00, now),
		{ID: "b", Total: 999, Status: models.OrderStatusCancelled, CreatedAt: now},
		{ID: "c", Total: 999, Status: models.OrderStatusPending, CreatedAt: now},
	}

	summary := Summarize(orders)

	assert.Equal(t, 100.00, summary.TotalRevenue)
	assert.Equal(t, 1, summary.OrderCount)
}

func TestPaymentBreakdownMatching(t *testing.T) {
	now := time.Now()
	orders := []models.Order{
		deliveredOrder("a", "1", 10, now),
		deliveredOrder("b", "2", 20, now),
		deliveredOrder("c", "3", 30, now),
		deliveredOrder("d", "4", 40, now),
		deliveredOrder("e", "5", 50, now),
	}
	orders[0].PaymentMethod = "PIX"
	orders[1].PaymentMethod = "Cartão de Crédito"
	orders[2].PaymentMethod = "debit card"
	orders[3].PaymentMethod = "Dinheiro"
	orders[4].PaymentMethod = "vale refeição"

	summary := Summarize(orders)

	assert.Equal(t, 10.00, summary.Payments.Pix)
	assert.Equal(t, 50.00, summary.Payments.Card)
	assert.Equal(t, 40.00, summary.Payments.Cash)
	assert.Equal(t, 50.00, summary.Payments.Other)
}

func TestRecurrenceDaysTenDayGap(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		deliveredOrder("a", "11999990000", 50, base),
		deliveredOrder("b", "11999990000", 60, base.AddDate(0, 0, 10)),
	}

	assert.Equal(t, 10.0, RecurrenceDays(orders))
}

func TestRecurrenceDaysExcludesSingleOrderCustomers(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		// qualifying customer: 10 day gap
		deliveredOrder("a", "11999990000", 50, base),
		deliveredOrder("b", "11999990000", 60, base.AddDate(0, 0, 10)),
		// single-order customer contributes to neither side of the average
		deliveredOrder("c", "11888880000", 70, base),
	}

	assert.Equal(t, 10.0, RecurrenceDays(orders))
}

func TestRecurrenceDaysNoQualifyingCustomers(t *testing.T) {
	orders := []models.Order{
		deliveredOrder("a", "11999990000", 50, time.Now()),
	}
	assert.Equal(t, 0.0, RecurrenceDays(orders))
	assert.Equal(t, 0.0, RecurrenceDays(nil))
}

func TestRecurrenceFallsBackToName(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{ID: "a", CustomerName: "Maria", Status: models.OrderStatusDelivered, CreatedAt: base},
		{ID: "b", CustomerName: "Maria", Status: models.OrderStatusDelivered, CreatedAt: base.AddDate(0, 0, 4)},
	}
	assert.Equal(t, 4.0, RecurrenceDays(orders))
}
