package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucasmbr/deliverydash/internal/models"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `
        id, customer_name, customer_phone, items, subtotal, delivery_fee,
        discount, total, status, payment_method, channel, coupon, courier_id,
        delivery_address, location, created_at, scheduled_for, prepared_at,
        dispatched_at, delivered_at, points_used, points_earned`

func (r *OrderRepository) BulkCreate(ctx context.Context, orders []models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO orders (
            id, customer_name, customer_phone, items, subtotal, delivery_fee,
            discount, total, status, payment_method, channel, coupon, courier_id,
            delivery_address, location, created_at, scheduled_for, prepared_at,
            dispatched_at, delivered_at, points_used, points_earned
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
            ST_SetSRID(ST_MakePoint($15, $16), 4326), $17, $18, $19, $20, $21, $22, $23
        )`

	for _, order := range orders {
		items, address, err := marshalOrderDocs(order)
		if err != nil {
			return err
		}
		lat, lng := orderCoordinates(order)
		_, err = tx.Exec(ctx, stmt,
			order.ID,
			order.CustomerName,
			order.CustomerPhone,
			items,
			order.Subtotal,
			order.DeliveryFee,
			order.Discount,
			order.Total,
			order.Status,
			order.PaymentMethod,
			order.Channel,
			order.Coupon,
			order.CourierID,
			address,
			lng,
			lat,
			order.CreatedAt,
			order.ScheduledFor,
			order.PreparedAt,
			order.DispatchedAt,
			order.DeliveredAt,
			order.PointsUsed,
			order.PointsEarned,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) Create(ctx context.Context, order models.Order) error {
	return r.BulkCreate(ctx, []models.Order{order})
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `
        SELECT
            id, customer_name, customer_phone, items, subtotal, delivery_fee,
            discount, total, status, payment_method, channel, coupon, courier_id,
            delivery_address, ST_X(location::geometry) as longitude,
            ST_Y(location::geometry) as latitude, created_at, scheduled_for,
            prepared_at, dispatched_at, delivered_at, points_used, points_earned
        FROM orders
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var items, address []byte
		var lng, lat *float64
		err := rows.Scan(
			&order.ID,
			&order.CustomerName,
			&order.CustomerPhone,
			&items,
			&order.Subtotal,
			&order.DeliveryFee,
			&order.Discount,
			&order.Total,
			&order.Status,
			&order.PaymentMethod,
			&order.Channel,
			&order.Coupon,
			&order.CourierID,
			&address,
			&lng,
			&lat,
			&order.CreatedAt,
			&order.ScheduledFor,
			&order.PreparedAt,
			&order.DispatchedAt,
			&order.DeliveredAt,
			&order.PointsUsed,
			&order.PointsEarned,
		)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &order.Items); err != nil {
				return nil, fmt.Errorf("failed to decode items for order %s: %w", order.ID, err)
			}
		}
		if len(address) > 0 {
			order.Address = &models.Address{}
			if err := json.Unmarshal(address, order.Address); err != nil {
				return nil, fmt.Errorf("failed to decode address for order %s: %w", order.ID, err)
			}
		}
		if lng != nil && lat != nil {
			order.Location = &models.Location{Lat: *lat, Lng: *lng}
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) GetByStatus(ctx context.Context, status string) ([]models.Order, error) {
	orders, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var filtered []models.Order
	for _, order := range orders {
		if order.Status == status {
			filtered = append(filtered, order)
		}
	}
	return filtered, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, order models.Order) error {
	query := `
        UPDATE orders
        SET status = $2, courier_id = $3, prepared_at = $4, dispatched_at = $5, delivered_at = $6
        WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.Status,
		order.CourierID,
		order.PreparedAt,
		order.DispatchedAt,
		order.DeliveredAt,
	)
	return err
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE orders CASCADE")
	return err
}

func marshalOrderDocs(order models.Order) ([]byte, []byte, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode items for order %s: %w", order.ID, err)
	}
	var address []byte
	if order.Address != nil {
		address, err = json.Marshal(order.Address)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode address for order %s: %w", order.ID, err)
		}
	}
	return items, address, nil
}

// orderCoordinates returns nil pointers for orders without a coordinate so
// the location column stays NULL (ST_MakePoint propagates NULL args).
func orderCoordinates(order models.Order) (*float64, *float64) {
	if order.Location == nil {
		return nil, nil
	}
	return &order.Location.Lat, &order.Location.Lng
}
