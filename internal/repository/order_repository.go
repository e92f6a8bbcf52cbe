package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pizza-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
// The cart snapshot and delivery address are stored as JSONB documents on
// the order row.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func encodeOrderDocs(order *model.Order) (cartJSON, addressJSON []byte, err error) {
	cartJSON, err = json.Marshal(order.Cart)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	addressJSON, err = json.Marshal(order.Address)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode address: %w", err)
	}
	return cartJSON, addressJSON, nil
}

const orderColumns = `id, user_id, cart, phone, address, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var cartJSON, addressJSON []byte
	err := row.Scan(&o.ID, &o.UserID, &cartJSON, &o.Phone, &addressJSON,
		&o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cartJSON, &o.Cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if err := json.Unmarshal(addressJSON, &o.Address); err != nil {
		return nil, fmt.Errorf("failed to decode address: %w", err)
	}
	return &o, nil
}

// Insert creates a new order within the provided transaction.
func (r *orderRepository) Insert(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, cart, phone, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	cartJSON, addressJSON, err := encodeOrderDocs(order)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, query,
		order.ID, order.UserID, cartJSON, order.Phone, addressJSON,
		order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}

	r.logger.Debug().Str("order_id", order.ID.String()).Msg("order inserted")
	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// Update writes every order field.
func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	query := `
		UPDATE orders
		SET user_id = $2, cart = $3, phone = $4, address = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	cartJSON, addressJSON, err := encodeOrderDocs(order)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		order.ID, order.UserID, cartJSON, order.Phone, addressJSON,
		order.Status, order.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// Delete removes an order and returns the deleted record.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `DELETE FROM orders WHERE id = $1 RETURNING ` + orderColumns

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}

	r.logger.Debug().Str("order_id", id.String()).Msg("order deleted")
	return order, nil
}
