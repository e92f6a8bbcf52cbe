// Command seed wipes the users and products tables and loads the demo
// accounts and the pizza menu.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"pizza-shop/internal/config"
	"pizza-shop/internal/database"
	"pizza-shop/internal/model"
	"pizza-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	firstName string
	lastName  string
	email     string
	username  string
	password  string
	admin     bool
}

var seedUsers = []seedUser{
	{firstName: "User", lastName: "User", email: "user@example.com", username: "user", password: "user"},
	{firstName: "Admin", lastName: "Admin", email: "admin@example.com", username: "admin", password: "admin", admin: true},
}

var seedProducts = []model.Product{
	{Name: "Margherita", Description: "sos pomidorowy, mozzarella", Type: "pizza", Price: 24.0},
	{Name: "Neapolitana", Description: "sos pomidorowy, mozzarella, pieczarki", Type: "pizza", Price: 25.0},
	{Name: "Prosciutto", Description: "sos pomidorowy, mozzarella, szynka", Type: "pizza", Price: 27.0},
	{Name: "Capricciosa", Description: "sos pomidorowy, mozzarella, szynka, pieczarki", Type: "pizza", Price: 30.0},
	{Name: "Vegetariana", Description: "sos pomidorowy, mozzarella, kukurydza, pomidorki koktajlowe, papryka, cebula", Type: "pizza", Price: 32.0},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Wipe before loading so the seed is repeatable. Sessions go with
	// their users via the cascade.
	if _, err := pool.Exec(ctx, "DELETE FROM users"); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM products"); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	userRepo := repository.NewUserRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	return seed(ctx, userRepo, productRepo, logger)
}

func seed(
	ctx context.Context,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) error {
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", su.username, err)
		}

		user := &model.User{
			ID:           uuid.New(),
			FirstName:    su.firstName,
			LastName:     su.lastName,
			Email:        su.email,
			Username:     su.username,
			PasswordHash: string(hash),
			Admin:        su.admin,
			Cart:         model.EmptyCart(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", su.username, err)
		}
		logger.Info().Str("username", user.Username).Bool("admin", user.Admin).Msg("user seeded")
	}

	for _, sp := range seedProducts {
		product := sp
		product.ID = uuid.New()
		product.CreatedAt = time.Now()
		if err := productRepo.Create(ctx, &product); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", product.Name, err)
		}
		logger.Info().Str("name", product.Name).Msg("product seeded")
	}

	logger.Info().Msg("seeding completed")
	return nil
}
