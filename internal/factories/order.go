package factories

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucasmbr/deliverydash/internal/finance"
	"github.com/lucasmbr/deliverydash/internal/models"
	"github.com/lucsky/cuid"
)

var fake = faker.New()

// menu is a small fixed catalogue for demo data, grouped by category.
var menu = []models.OrderItem{
	{ID: "burger-classic", Name: "X-Burger Clássico", UnitPrice: 28.90, Category: "Lanches"},
	{ID: "burger-bacon", Name: "X-Bacon Duplo", UnitPrice: 34.90, Category: "Lanches"},
	{ID: "pizza-margherita", Name: "Pizza Margherita", UnitPrice: 49.90, Category: "Pizzas"},
	{ID: "pizza-calabresa", Name: "Pizza Calabresa", UnitPrice: 52.90, Category: "Pizzas"},
	{ID: "salad-caesar", Name: "Salada Caesar", UnitPrice: 26.50, Category: "Saladas"},
	{ID: "fries-large", Name: "Batata Frita Grande", UnitPrice: 16.90, Category: "Acompanhamentos"},
	{ID: "soda-can", Name: "Refrigerante Lata", UnitPrice: 6.50, Category: "Bebidas"},
	{ID: "juice-orange", Name: "Suco de Laranja", UnitPrice: 9.90, Category: "Bebidas"},
	{ID: "pudim", Name: "Pudim de Leite", UnitPrice: 12.00, Category: "Sobremesas"},
}

var paymentMethods = []string{"PIX", "Cartão de Crédito", "Cartão de Débito", "Dinheiro"}
var channels = []string{models.ChannelDelivery, models.ChannelDelivery, models.ChannelTable, models.ChannelCounter}
var coupons = []string{"", "", "", "BEMVINDO10", "FRETEGRATIS"}
var couriers = []string{"rider-ana", "rider-bruno", "rider-carla"}

type OrderFactory struct {
	Store models.Location
	Rng   *rand.Rand
}

func NewOrderFactory(store models.Location, seed int64) *OrderFactory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &OrderFactory{Store: store, Rng: rand.New(rand.NewSource(seed))}
}

// CreateOrder produces one plausible historical order created at the given
// time. Roughly 85% end delivered, 10% cancelled somewhere along the way
// and the rest stay open.
func (f *OrderFactory) CreateOrder(createdAt time.Time) models.Order {
	items := f.pickItems()

	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	subtotal = finance.Round(subtotal)

	channel := channels[f.Rng.Intn(len(channels))]
	deliveryFee := 0.0
	var location *models.Location
	var address *models.Address
	if channel == models.ChannelDelivery {
		deliveryFee = finance.Round(6 + f.Rng.Float64()*8)
		loc := models.Location{
			Lat: f.Store.Lat + (f.Rng.Float64()-0.5)*0.06,
			Lng: f.Store.Lng + (f.Rng.Float64()-0.5)*0.06,
		}
		location = &loc
		address = &models.Address{
			Street:       fake.Address().StreetName(),
			Number:       fmt.Sprintf("%d", f.Rng.Intn(2000)+1),
			Neighborhood: fake.Address().City(),
			City:         "São Paulo",
			Postcode:     fake.Address().PostCode(),
			Latitude:     loc.Lat,
			Longitude:    loc.Lng,
		}
	}

	coupon := coupons[f.Rng.Intn(len(coupons))]
	discount := 0.0
	if coupon != "" {
		discount = finance.Round(subtotal * 0.1)
	}
	pointsUsed := 0
	if f.Rng.Float64() < 0.15 {
		pointsUsed = (f.Rng.Intn(10) + 1) * 10
		discount = finance.Round(discount + finance.PointsDiscount(pointsUsed))
	}

	total := finance.OrderTotal(subtotal, deliveryFee, discount)

	person := fake.Person()
	order := models.Order{
		ID:            cuid.New(),
		CustomerName:  person.Name(),
		CustomerPhone: fmt.Sprintf("119%08d", f.Rng.Intn(100000000)),
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFee,
		Discount:      discount,
		Total:         total,
		PaymentMethod: paymentMethods[f.Rng.Intn(len(paymentMethods))],
		Channel:       channel,
		Coupon:        coupon,
		Address:       address,
		Location:      location,
		CreatedAt:     createdAt,
		PointsUsed:    pointsUsed,
		PointsEarned:  finance.PointsEarned(total),
	}

	f.assignLifecycle(&order)
	return order
}

// CreateBatch spreads orders across the given number of days ending now.
func (f *OrderFactory) CreateBatch(count, days int, now time.Time) []models.Order {
	orders := make([]models.Order, 0, count)
	span := time.Duration(days) * 24 * time.Hour
	for i := 0; i < count; i++ {
		createdAt := now.Add(-time.Duration(f.Rng.Int63n(int64(span))))
		orders = append(orders, f.CreateOrder(createdAt))
	}
	return orders
}

func (f *OrderFactory) pickItems() []models.OrderItem {
	count := f.Rng.Intn(3) + 1
	items := make([]models.OrderItem, 0, count)
	for i := 0; i < count; i++ {
		item := menu[f.Rng.Intn(len(menu))]
		item.Quantity = f.Rng.Intn(2) + 1
		items = append(items, item)
	}
	return items
}

func (f *OrderFactory) assignLifecycle(order *models.Order) {
	roll := f.Rng.Float64()
	switch {
	case roll < 0.85:
		order.Status = models.OrderStatusDelivered
		prepared := order.CreatedAt.Add(time.Duration(2+f.Rng.Intn(8)) * time.Minute)
		dispatched := prepared.Add(time.Duration(8+f.Rng.Intn(18)) * time.Minute)
		delivered := dispatched.Add(time.Duration(10+f.Rng.Intn(30)) * time.Minute)
		order.PreparedAt = &prepared
		order.DispatchedAt = &dispatched
		order.DeliveredAt = &delivered
		if order.Channel == models.ChannelDelivery {
			order.CourierID = couriers[f.Rng.Intn(len(couriers))]
		}
	case roll < 0.95:
		order.Status = models.OrderStatusCancelled
	default:
		order.Status = models.OrderStatusPreparing
		prepared := order.CreatedAt.Add(time.Duration(2+f.Rng.Intn(8)) * time.Minute)
		order.PreparedAt = &prepared
	}
}
