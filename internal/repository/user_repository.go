package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pizza-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
// The cart is stored as a JSONB document on the user row.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const uniqueViolation = "23505"

// mapUniqueViolation translates a unique-constraint failure on the users
// table into the matching Conflict domain error.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return model.ErrEmailInUse
		}
		return model.ErrUsernameTaken
	}
	return nil
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, username, password_hash, admin, cart, cart_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	cartJSON, err := json.Marshal(user.Cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Username,
		user.PasswordHash, user.Admin, cartJSON, user.CartVersion)
	if err != nil {
		if conflict := mapUniqueViolation(err); conflict != nil {
			r.logger.Debug().Str("username", user.Username).Msg("duplicate user")
			return conflict
		}
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

const userColumns = `id, first_name, last_name, email, username, password_hash, admin, cart, cart_version`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var cartJSON []byte
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username,
		&u.PasswordHash, &u.Admin, &cartJSON, &u.CartVersion)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cartJSON, &u.Cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &u, nil
}

// GetByID retrieves a user by id.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", id.String()).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("username", username).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("username", username).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// GetAll retrieves every user.
func (r *userRepository) GetAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user rows")
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// UpdateProfile writes the user's firstName, lastName and username.
func (r *userRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, username = $4
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, user.ID, user.FirstName, user.LastName, user.Username)
	if err != nil {
		if conflict := mapUniqueViolation(err); conflict != nil {
			return conflict
		}
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to update user profile")
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// UpdatePassword replaces the user's password hash.
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update password")
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ReplaceCart writes the cart only if the stored version still equals
// expectedVersion. Returns false when a concurrent mutation won the race.
func (r *userRepository) ReplaceCart(ctx context.Context, id uuid.UUID, cart model.Cart, expectedVersion int64) (bool, error) {
	query := `
		UPDATE users
		SET cart = $2, cart_version = cart_version + 1
		WHERE id = $1 AND cart_version = $3
	`

	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return false, fmt.Errorf("failed to encode cart: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, id, cartJSON, expectedVersion)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to replace cart")
		return false, fmt.Errorf("failed to replace cart: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().
			Str("user_id", id.String()).
			Int64("expected_version", expectedVersion).
			Msg("cart version conflict")
		return false, nil
	}

	return true, nil
}

// ResetCart replaces the user's cart with the empty cart within the
// provided transaction.
func (r *userRepository) ResetCart(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE users
		SET cart = $2, cart_version = cart_version + 1
		WHERE id = $1
	`

	cartJSON, err := json.Marshal(model.EmptyCart())
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	_, err = tx.Exec(ctx, query, id, cartJSON)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to reset cart")
		return fmt.Errorf("failed to reset cart: %w", err)
	}

	return nil
}

// Delete removes a user and returns the deleted record.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to delete user")
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	r.logger.Debug().Str("user_id", id.String()).Msg("user deleted")
	return user, nil
}
