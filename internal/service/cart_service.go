package service

import (
	"context"
	"fmt"

	"pizza-shop/internal/model"
	"pizza-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Concurrent mutations of the same cart race on the read-modify-write
// cycle; the version check in ReplaceCart detects the loser, which simply
// re-reads and retries.
const maxCartRetries = 3

// cartService implements CartService.
type cartService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		userRepo:    userRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Get returns the user's current cart.
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (model.Cart, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return model.Cart{}, err
	}
	if user == nil {
		return model.Cart{}, model.ErrUserNotFound
	}
	return user.Cart, nil
}

// AddProduct adds quantity of a product to the cart, merging with an
// existing line.
func (s *cartService) AddProduct(ctx context.Context, userID, productID uuid.UUID, quantity int) (model.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return model.Cart{}, err
	}

	cart, err := s.mutate(ctx, userID, func(c *model.Cart) error {
		if product == nil {
			return model.ErrProductNotFound
		}
		return c.Add(product, quantity)
	})
	if err != nil {
		return model.Cart{}, err
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Float64("total", cart.Total).
		Msg("product added to cart")

	return cart, nil
}

// RemoveProduct removes quantity of a product from the cart.
func (s *cartService) RemoveProduct(ctx context.Context, userID, productID uuid.UUID, quantity int) (model.Cart, error) {
	cart, err := s.mutate(ctx, userID, func(c *model.Cart) error {
		return c.Remove(productID, quantity)
	})
	if err != nil {
		return model.Cart{}, err
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Float64("total", cart.Total).
		Msg("product removed from cart")

	return cart, nil
}

// mutate applies fn to a fresh copy of the user's cart and persists it
// with an optimistic version check, retrying on conflict.
func (s *cartService) mutate(ctx context.Context, userID uuid.UUID, fn func(*model.Cart) error) (model.Cart, error) {
	for attempt := 0; attempt < maxCartRetries; attempt++ {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return model.Cart{}, err
		}
		if user == nil {
			return model.Cart{}, model.ErrUserNotFound
		}

		cart := user.Cart.Clone()
		if err := fn(&cart); err != nil {
			return model.Cart{}, err
		}

		ok, err := s.userRepo.ReplaceCart(ctx, userID, cart, user.CartVersion)
		if err != nil {
			return model.Cart{}, err
		}
		if ok {
			return cart, nil
		}

		s.logger.Debug().
			Str("user_id", userID.String()).
			Int("attempt", attempt+1).
			Msg("cart version conflict, retrying")
	}

	s.logger.Error().Str("user_id", userID.String()).Msg("cart mutation failed after retries")
	return model.Cart{}, fmt.Errorf("cart mutation conflict for user %s", userID)
}
