package model

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusCreated            OrderStatus = "CREATED"
	StatusCancelled          OrderStatus = "CANCELLED"
	StatusAccepted           OrderStatus = "ACCEPTED"
	StatusReadyForPickup     OrderStatus = "READY_FOR_PICKUP"
	StatusOutForDelivery     OrderStatus = "OUT_FOR_DELIVERY"
	StatusPickedUpByCustomer OrderStatus = "PICKED_UP_BY_CUSTOMER"
)

// Valid reports whether the status is a member of the enum. Transitions
// between states are not restricted; any valid status may be written by
// an admin update.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusCancelled, StatusAccepted,
		StatusReadyForPickup, StatusOutForDelivery, StatusPickedUpByCustomer:
		return true
	}
	return false
}

// Optional leading +, then 8-15 digits with a non-zero first digit.
var phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{7,14}$`)

// ValidPhone reports whether the phone number matches the accepted format.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Address is the delivery address attached to an order.
type Address struct {
	Street  string `json:"street"`
	Number  string `json:"number"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Complete reports whether every address field is present.
func (a Address) Complete() bool {
	return a.Street != "" && a.Number != "" && a.City != "" && a.Zip != "" && a.Country != ""
}

// Order is an immutable snapshot of a user's cart plus delivery details
// and a lifecycle status, created at checkout.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	Cart      Cart        `json:"cart"`
	Phone     string      `json:"phone"`
	Address   Address     `json:"address"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
