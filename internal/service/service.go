package service

import (
	"context"
	"mime/multipart"

	"pizza-shop/internal/model"

	"github.com/google/uuid"
)

// RegisterInput carries the fields for creating a new account.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// AuthService handles registration, login sessions and passwords.
type AuthService interface {
	// Register creates a new user with an empty cart.
	Register(ctx context.Context, input RegisterInput) (*model.User, error)

	// Login verifies credentials and starts a session, returning the user
	// and a signed session token.
	Login(ctx context.Context, username, password string) (*model.User, string, error)

	// Logout ends the session, revoking its token.
	Logout(ctx context.Context, sessionID uuid.UUID) error

	// ChangePassword verifies the old password and replaces it.
	ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error

	// Authenticate resolves a session token into its user and session id.
	// Every failure mode surfaces uniformly as Unauthorized.
	Authenticate(ctx context.Context, token string) (*model.User, uuid.UUID, error)
}

// CartService mutates the cart embedded on a user.
type CartService interface {
	// Get returns the user's current cart.
	Get(ctx context.Context, userID uuid.UUID) (model.Cart, error)

	// AddProduct adds quantity of a product to the cart, merging with an
	// existing line, and returns the updated cart.
	AddProduct(ctx context.Context, userID, productID uuid.UUID, quantity int) (model.Cart, error)

	// RemoveProduct removes quantity of a product from the cart and
	// returns the updated cart.
	RemoveProduct(ctx context.Context, userID, productID uuid.UUID, quantity int) (model.Cart, error)
}

// OrderUpdate is a full-replace order write: every field is written as
// supplied, omitted fields included.
type OrderUpdate struct {
	UserID  uuid.UUID         `json:"userId"`
	Cart    model.Cart        `json:"cart"`
	Phone   string            `json:"phone"`
	Address model.Address     `json:"address"`
	Status  model.OrderStatus `json:"status"`
}

// OrderPatch is a partial order write: only non-nil fields replace the
// stored values.
type OrderPatch struct {
	UserID  *uuid.UUID         `json:"userId"`
	Cart    *model.Cart        `json:"cart"`
	Phone   *string            `json:"phone"`
	Address *model.Address     `json:"address"`
	Status  *model.OrderStatus `json:"status"`
}

// OrderService manages the order lifecycle.
type OrderService interface {
	// Create snapshots the user's cart into a new CREATED order and
	// atomically empties the cart.
	Create(ctx context.Context, userID uuid.UUID, phone string, address model.Address) (*model.Order, error)

	// Get returns an order, restricted to its owning user.
	Get(ctx context.Context, orderID uuid.UUID, requester *model.User) (*model.Order, error)

	// Update replaces the whole order with the supplied fields.
	Update(ctx context.Context, orderID uuid.UUID, input OrderUpdate) (*model.Order, error)

	// Patch overlays the supplied fields onto the stored order.
	Patch(ctx context.Context, orderID uuid.UUID, patch OrderPatch) (*model.Order, error)

	// Delete removes an order and returns the deleted record.
	Delete(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
}

// ProductInput carries the fields for creating or replacing a product.
type ProductInput struct {
	Name        string
	Description string
	Type        string
	Price       float64
}

// ProductPatch is a partial product write: only non-nil fields replace
// the stored values.
type ProductPatch struct {
	Name        *string
	Description *string
	Type        *string
	Price       *float64
}

// ProductService manages the catalog.
type ProductService interface {
	// List returns every product.
	List(ctx context.Context) ([]model.Product, error)

	// Get returns a single product.
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create adds a product with an optional image upload.
	Create(ctx context.Context, input ProductInput, image *multipart.FileHeader) (*model.Product, error)

	// Update replaces the whole product; a supplied image replaces the
	// stored one, an omitted image clears it.
	Update(ctx context.Context, id uuid.UUID, input ProductInput, image *multipart.FileHeader) (*model.Product, error)

	// Patch overlays the supplied fields; the image changes only when a
	// new one is uploaded.
	Patch(ctx context.Context, id uuid.UUID, patch ProductPatch, image *multipart.FileHeader) (*model.Product, error)

	// Delete removes a product and its stored image.
	Delete(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// UserPatch is a partial profile write.
type UserPatch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Username  *string `json:"username"`
}

// UserService manages user accounts.
type UserService interface {
	// List returns every user.
	List(ctx context.Context) ([]model.User, error)

	// Get returns a user along with whether the requester may see the
	// full record (owner or admin) or only the public projection.
	Get(ctx context.Context, id uuid.UUID, requester *model.User) (*model.User, bool, error)

	// Patch updates profile fields, restricted to the owner or an admin.
	Patch(ctx context.Context, id uuid.UUID, requester *model.User, patch UserPatch) (*model.User, error)

	// Delete removes a user and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// ImageStore abstracts product image persistence for the product service.
type ImageStore interface {
	Save(header *multipart.FileHeader) (string, error)
	Delete(relPath string) error
}
