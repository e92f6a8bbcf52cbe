package service

import (
	"context"
	"fmt"
	"time"

	"pizza-shop/internal/model"
	"pizza-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Create snapshots the user's cart into a new CREATED order and
// atomically empties the cart. Both writes run in one transaction so the
// order and the cart reset commit or fail together.
func (s *orderService) Create(ctx context.Context, userID uuid.UUID, phone string, address model.Address) (*model.Order, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	if len(user.Cart.Products) == 0 {
		return nil, model.ErrEmptyCart
	}
	if !model.ValidPhone(phone) {
		return nil, model.ErrInvalidPhone
	}
	if !address.Complete() {
		return nil, model.ErrIncompleteAddress
	}

	now := time.Now()
	order := &model.Order{
		ID:        uuid.New(),
		UserID:    user.ID,
		Cart:      user.Cart.Clone(),
		Phone:     phone,
		Address:   address,
		Status:    model.StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.Insert(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.userRepo.ResetCart(ctx, tx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to reset cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", user.ID.String()).
		Float64("total", order.Cart.Total).
		Msg("order created")

	return order, nil
}

// Get returns an order, restricted to its owning user. Admins are not
// given a read bypass on this path.
func (s *orderService) Get(ctx context.Context, orderID uuid.UUID, requester *model.User) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.UserID != requester.ID {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("requester_id", requester.ID.String()).
			Msg("order read denied")
		return nil, model.ErrUnauthorised
	}
	return order, nil
}

// Update replaces the whole order with the supplied fields; omitted
// request fields overwrite the stored values with their zero values.
func (s *orderService) Update(ctx context.Context, orderID uuid.UUID, input OrderUpdate) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if input.Status != "" && !input.Status.Valid() {
		return nil, model.ErrInvalidOrderStatus
	}

	order.UserID = input.UserID
	order.Cart = input.Cart
	order.Phone = input.Phone
	order.Address = input.Address
	order.Status = input.Status
	order.UpdatedAt = time.Now()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", orderID.String()).Str("status", string(order.Status)).Msg("order replaced")
	return order, nil
}

// Patch overlays the supplied fields onto the stored order; unspecified
// fields keep their existing values.
func (s *orderService) Patch(ctx context.Context, orderID uuid.UUID, patch OrderPatch) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if patch.UserID != nil {
		order.UserID = *patch.UserID
	}
	if patch.Cart != nil {
		order.Cart = *patch.Cart
	}
	if patch.Phone != nil {
		order.Phone = *patch.Phone
	}
	if patch.Address != nil {
		order.Address = *patch.Address
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, model.ErrInvalidOrderStatus
		}
		order.Status = *patch.Status
	}
	order.UpdatedAt = time.Now()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", orderID.String()).Str("status", string(order.Status)).Msg("order patched")
	return order, nil
}

// Delete removes an order and returns the deleted record.
func (s *orderService) Delete(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.Delete(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", orderID.String()).Msg("order deleted")
	return order, nil
}
