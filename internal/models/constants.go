package models

const (
	OrderStatusScheduled  = "scheduled"
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusPreparing  = "preparing"
	OrderStatusDispatched = "dispatched"
	OrderStatusReady      = "ready"
	OrderStatusDelivered  = "delivered"
	OrderStatusRejected   = "rejected"
	OrderStatusCancelled  = "cancelled"

	ChannelTable    = "table"
	ChannelDelivery = "delivery"
	ChannelCounter  = "counter"

	PaymentPix   = "pix"
	PaymentCard  = "card"
	PaymentCash  = "cash"
	PaymentOther = "other"

	FeeTypeFlat       = "flat"
	FeeTypePercentage = "percentage"
)

// allowedTransitions encodes the order lifecycle. Rejected, delivered and
// cancelled are terminal. Cancellation is allowed up to and including
// dispatch; a cancelled dispatch still counts against the courier's daily
// total because the bag already left the store.
var allowedTransitions = map[string][]string{
	OrderStatusScheduled:  {OrderStatusPending, OrderStatusCancelled},
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusDispatched, OrderStatusReady, OrderStatusCancelled},
	OrderStatusDispatched: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further transitions exist for a status.
func IsTerminalStatus(status string) bool {
	return len(allowedTransitions[status]) == 0
}
