package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents an item in the pizza catalog.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks the fields required for creating or replacing a product.
func (p *Product) Validate() error {
	if p.Name == "" {
		return NewMissingFieldError("name")
	}
	if p.Description == "" {
		return NewMissingFieldError("description")
	}
	if p.Type == "" {
		return NewMissingFieldError("type")
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}
