package repositories

import (
	"context"

	"github.com/lucasmbr/deliverydash/internal/models"
)

// OrderRepository is the persistence boundary for orders. The in-memory
// store is the live working set; the repository is the durable copy.
type OrderRepository interface {
	Create(ctx context.Context, order models.Order) error
	BulkCreate(ctx context.Context, orders []models.Order) error
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByStatus(ctx context.Context, status string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, order models.Order) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
