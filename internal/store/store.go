package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/lucasmbr/deliverydash/internal/models"
)

// Change describes one order mutation pushed to subscribers.
type Change struct {
	OrderID string
	From    string
	To      string
	At      time.Time
}

// OrderStore is the single in-memory writer for order state. Mutations go
// through validated transitions and are pushed to subscribers, so readers
// do not need to poll. Orders are never removed: cancelled and rejected
// orders stay for audit and analytics.
type OrderStore struct {
	mutex       sync.RWMutex
	orders      map[string]*models.Order
	sequence    []string // insertion order, for stable snapshots
	subscribers []chan Change
	schedule    *models.ScheduleQueue
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:   make(map[string]*models.Order),
		schedule: models.NewScheduleQueue(),
	}
}

// Add registers a new order. Scheduled orders are queued for later
// promotion to pending.
func (s *OrderStore) Add(order models.Order) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if order.ID == "" {
		return fmt.Errorf("order has no id")
	}
	if _, exists := s.orders[order.ID]; exists {
		return fmt.Errorf("order %s already exists", order.ID)
	}

	copied := order
	s.orders[order.ID] = &copied
	s.sequence = append(s.sequence, order.ID)

	if order.Status == models.OrderStatusScheduled && order.ScheduledFor != nil {
		s.schedule.Enqueue(&models.ScheduledActivation{Time: *order.ScheduledFor, OrderID: order.ID})
	}

	s.notify(Change{OrderID: order.ID, To: order.Status, At: order.CreatedAt})
	return nil
}

// Get returns a copy of one order.
func (s *OrderStore) Get(id string) (models.Order, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, false
	}
	return *order, true
}

// List returns a snapshot of every order in insertion order.
func (s *OrderStore) List() []models.Order {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	snapshot := make([]models.Order, 0, len(s.sequence))
	for _, id := range s.sequence {
		snapshot = append(snapshot, *s.orders[id])
	}
	return snapshot
}

// ListByStatus returns a snapshot of orders in one status.
func (s *OrderStore) ListByStatus(status string) []models.Order {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	var snapshot []models.Order
	for _, id := range s.sequence {
		if s.orders[id].Status == status {
			snapshot = append(snapshot, *s.orders[id])
		}
	}
	return snapshot
}

// Transition moves an order to a new status, stamping the matching stage
// timestamp. Invalid transitions are rejected; the original system let any
// caller set any status, which made the lifecycle invariants unenforceable.
func (s *OrderStore) Transition(id, to string, at time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	from := order.Status
	if !models.CanTransition(from, to) {
		return fmt.Errorf("invalid transition %s -> %s for order %s", from, to, id)
	}

	order.Status = to
	switch to {
	case models.OrderStatusPreparing:
		stamp := at
		order.PreparedAt = &stamp
	case models.OrderStatusDispatched:
		stamp := at
		order.DispatchedAt = &stamp
	case models.OrderStatusDelivered:
		stamp := at
		order.DeliveredAt = &stamp
	}

	s.notify(Change{OrderID: id, From: from, To: to, At: at})
	return nil
}

// AssignCourier sets the courier carrying a dispatched order.
func (s *OrderStore) AssignCourier(id, courierID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	order.CourierID = courierID
	return nil
}

// PromoteDue moves scheduled orders whose time has come into pending and
// returns their ids.
func (s *OrderStore) PromoteDue(now time.Time) []string {
	due := s.schedule.DequeueDue(now)

	var promoted []string
	for _, activation := range due {
		s.mutex.Lock()
		order, ok := s.orders[activation.OrderID]
		if ok && order.Status == models.OrderStatusScheduled {
			order.Status = models.OrderStatusPending
			promoted = append(promoted, order.ID)
			s.notify(Change{OrderID: order.ID, From: models.OrderStatusScheduled, To: models.OrderStatusPending, At: now})
		}
		s.mutex.Unlock()
	}
	return promoted
}

// Subscribe returns a channel that receives every subsequent order change.
// The channel is buffered; a subscriber that falls behind loses changes
// rather than blocking the writer.
func (s *OrderStore) Subscribe() <-chan Change {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	ch := make(chan Change, 64)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *OrderStore) notify(change Change) {
	for _, ch := range s.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
}

// Count returns the number of stored orders.
func (s *OrderStore) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.orders)
}
