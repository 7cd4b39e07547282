package export

import (
	"fmt"
	"time"

	"github.com/lucasmbr/deliverydash/internal/models"
	"github.com/xitongsys/parquet-go/schema"
)

// Topics carrying order lifecycle traffic.
const (
	TopicOrderPlaced    = "order_placed_events"
	TopicStatusChanged  = "order_status_events"
	TopicOrderDelivered = "order_delivered_events"
)

// BaseEvent is the common structure for all published events
type BaseEvent struct {
	Timestamp int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderID   string `json:"orderId" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// OrderPlacedEvent is published when checkout creates an order
type OrderPlacedEvent struct {
	BaseEvent
	CustomerPhone string  `json:"customerPhone" parquet:"name=customerPhone,type=BYTE_ARRAY,convertedtype=UTF8"`
	Channel       string  `json:"channel" parquet:"name=channel,type=BYTE_ARRAY,convertedtype=UTF8"`
	PaymentMethod string  `json:"paymentMethod" parquet:"name=paymentMethod,type=BYTE_ARRAY,convertedtype=UTF8"`
	Subtotal      float64 `json:"subtotal" parquet:"name=subtotal,type=DOUBLE"`
	Total         float64 `json:"total" parquet:"name=total,type=DOUBLE"`
	Status        string  `json:"status" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// StatusChangedEvent is published on every lifecycle transition
type StatusChangedEvent struct {
	BaseEvent
	FromStatus string `json:"fromStatus" parquet:"name=fromStatus,type=BYTE_ARRAY,convertedtype=UTF8"`
	ToStatus   string `json:"toStatus" parquet:"name=toStatus,type=BYTE_ARRAY,convertedtype=UTF8"`
	CourierID  string `json:"courierId,omitempty" parquet:"name=courierId,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
}

// OrderDeliveredEvent closes an order's lifecycle with its final timings
type OrderDeliveredEvent struct {
	BaseEvent
	Total          float64 `json:"total" parquet:"name=total,type=DOUBLE"`
	ElapsedMinutes float64 `json:"elapsedMinutes" parquet:"name=elapsedMinutes,type=DOUBLE"`
	DeliverySector string  `json:"deliverySector,omitempty" parquet:"name=deliverySector,type=BYTE_ARRAY,convertedtype=UTF8,repetitiontype=OPTIONAL"`
	PointsEarned   int32   `json:"pointsEarned" parquet:"name=pointsEarned,type=INT32"`
}

func GetSchema(topic string) (*schema.SchemaHandler, error) {
	var sh *schema.SchemaHandler
	var err error

	switch topic {
	case TopicOrderPlaced:
		sh, err = schema.NewSchemaHandlerFromStruct(new(OrderPlacedEvent))
	case TopicStatusChanged:
		sh, err = schema.NewSchemaHandlerFromStruct(new(StatusChangedEvent))
	case TopicOrderDelivered:
		sh, err = schema.NewSchemaHandlerFromStruct(new(OrderDeliveredEvent))
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}

	if err != nil {
		return nil, fmt.Errorf("error creating schema for %s: %w", topic, err)
	}
	return sh, nil
}

func NewBaseEvent(eventType, orderID string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		Timestamp: timestamp.Unix(),
		EventType: eventType,
		OrderID:   orderID,
	}
}

// NewOrderPlacedEvent builds the placed event for a fresh order.
func NewOrderPlacedEvent(order models.Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		BaseEvent:     NewBaseEvent("order_placed", order.ID, order.CreatedAt),
		CustomerPhone: order.CustomerPhone,
		Channel:       order.Channel,
		PaymentMethod: order.PaymentMethod,
		Subtotal:      order.Subtotal,
		Total:         order.Total,
		Status:        order.Status,
	}
}
