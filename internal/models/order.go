package models

import "time"

// OrderItem is one line of an order.
type OrderItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Category  string  `json:"category"`
	AddOns    []AddOn `json:"add_ons,omitempty"`
}

// AddOn is an extra chosen for an order item, priced per unit of the item.
type AddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Order represents one customer transaction. Orders are never deleted:
// cancelled and rejected orders stay in the store for audit and analytics.
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	DeliveryFee   float64     `json:"delivery_fee"`
	Discount      float64     `json:"discount"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	Channel       string      `json:"channel"` // "table", "delivery" or "counter"
	Coupon        string      `json:"coupon,omitempty"`
	CourierID     string      `json:"courier_id,omitempty"`
	Address       *Address    `json:"address,omitempty"`
	Location      *Location   `json:"location,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	ScheduledFor  *time.Time  `json:"scheduled_for,omitempty"`
	PreparedAt    *time.Time  `json:"prepared_at,omitempty"`
	DispatchedAt  *time.Time  `json:"dispatched_at,omitempty"`
	DeliveredAt   *time.Time  `json:"delivered_at,omitempty"`
	PointsUsed    int         `json:"points_used"`
	PointsEarned  int         `json:"points_earned"`
}

// Categories returns the distinct item categories present on the order, in
// first-seen order.
func (o *Order) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, item := range o.Items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	return categories
}

// CustomerKey identifies the customer behind an order: the phone number when
// present, otherwise the name.
func (o *Order) CustomerKey() string {
	if o.CustomerPhone != "" {
		return o.CustomerPhone
	}
	return o.CustomerName
}
