package repository

import (
	"context"

	"pizza-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data access operations.
// The embedded cart travels with the user document; cart writes are
// guarded by the user's cart version.
type UserRepository interface {
	// Create inserts a new user. Duplicate email or username surfaces as
	// the matching Conflict domain error.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by id. Returns nil when no user exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByUsername retrieves a user by username. Returns nil when no user exists.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// GetAll retrieves every user.
	GetAll(ctx context.Context) ([]model.User, error)

	// UpdateProfile writes the user's firstName, lastName and username.
	UpdateProfile(ctx context.Context, user *model.User) error

	// UpdatePassword replaces the user's password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// ReplaceCart writes the cart only if the stored version still equals
	// expectedVersion, bumping the version on success. Returns false
	// without error when the version check fails.
	ReplaceCart(ctx context.Context, id uuid.UUID, cart model.Cart, expectedVersion int64) (bool, error)

	// ResetCart replaces the user's cart with the empty cart within the
	// provided transaction.
	ResetCart(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	// Delete removes a user and returns the deleted record, or nil when
	// no user exists.
	Delete(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// ProductRepository defines the interface for catalog data access operations.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// GetAll retrieves every product.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a product by id. Returns nil when no product exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Update writes every product field.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction. Order creation inserts
	// the order and resets the owning user's cart in one transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Insert creates a new order within the provided transaction.
	Insert(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by id. Returns nil when no order exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// Update writes every order field.
	Update(ctx context.Context, order *model.Order) error

	// Delete removes an order and returns the deleted record, or nil when
	// no order exists.
	Delete(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// SessionRepository defines the interface for login session storage.
type SessionRepository interface {
	// Create inserts a new session.
	Create(ctx context.Context, session *model.Session) error

	// GetByID retrieves a session by id. Returns nil when no session exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)

	// Delete removes a session.
	Delete(ctx context.Context, id uuid.UUID) error
}
