package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lucasmbr/deliverydash/internal/export/producers"
	"github.com/lucasmbr/deliverydash/internal/geo"
	"github.com/lucasmbr/deliverydash/internal/models"
	"github.com/lucasmbr/deliverydash/internal/store"
	"go.uber.org/zap"
)

// Publisher turns order store changes into serialized lifecycle events and
// pushes them to the configured destination. This replaces the original
// system's 5-second polling loop with store subscription.
type Publisher struct {
	output   OutputDestination
	storeLoc models.Location
	logger   *zap.Logger
}

func NewPublisher(output OutputDestination, storeLoc models.Location, logger *zap.Logger) *Publisher {
	return &Publisher{output: output, storeLoc: storeLoc, logger: logger}
}

// DetermineOutputDestination picks the event sink from config: Kafka when
// enabled, otherwise JSON or parquet files, otherwise the console.
func DetermineOutputDestination(cfg *models.Config, logger *zap.Logger) (OutputDestination, error) {
	if cfg.KafkaEnabled {
		return producers.NewSaramaProducer(cfg, logger)
	}
	if cfg.OutputPath != "" {
		switch cfg.OutputFormat {
		case "parquet":
			return NewParquetOutput(cfg, logger)
		case "json":
			return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder), nil
		default:
			return nil, fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
		}
	}
	return &ConsoleOutput{}, nil
}

// Run consumes store changes until the context ends. A change for an order
// that has since disappeared is skipped; serialization failures are logged
// and dropped rather than stopping the stream.
func (p *Publisher) Run(ctx context.Context, orders *store.OrderStore, changes <-chan store.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			order, found := orders.Get(change.OrderID)
			if !found {
				continue
			}
			if err := p.publish(change, order); err != nil {
				p.logger.Warn("failed to publish order event",
					zap.String("order_id", change.OrderID),
					zap.Error(err))
			}
		}
	}
}

func (p *Publisher) publish(change store.Change, order models.Order) error {
	topic, event := p.buildEvent(change, order)
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}
	return p.output.WriteMessage(topic, msg)
}

func (p *Publisher) buildEvent(change store.Change, order models.Order) (string, interface{}) {
	switch {
	case change.From == "":
		return TopicOrderPlaced, NewOrderPlacedEvent(order)
	case change.To == models.OrderStatusDelivered:
		event := OrderDeliveredEvent{
			BaseEvent:      NewBaseEvent("order_delivered", order.ID, change.At),
			Total:          order.Total,
			ElapsedMinutes: change.At.Sub(order.CreatedAt).Minutes(),
			PointsEarned:   int32(order.PointsEarned),
		}
		if order.Location != nil {
			event.DeliverySector = geo.Sector(*order.Location, p.storeLoc)
		}
		return TopicOrderDelivered, event
	default:
		return TopicStatusChanged, StatusChangedEvent{
			BaseEvent:  NewBaseEvent("order_status_changed", order.ID, change.At),
			FromStatus: change.From,
			ToStatus:   change.To,
			CourierID:  order.CourierID,
		}
	}
}
