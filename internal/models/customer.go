package models

import "time"

// CustomerProfile is a denormalised view derived by grouping orders per
// customer. It is never persisted independently.
type CustomerProfile struct {
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	PointsBalance  int       `json:"points_balance"`
	TotalSpend     float64   `json:"total_spend"`
	OrderCount     int       `json:"order_count"`
	LastOrderAt    time.Time `json:"last_order_at"`
	SavedAddresses []Address `json:"saved_addresses,omitempty"`
}
