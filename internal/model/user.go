package model

import (
	"regexp"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

// User is a registered customer. The cart is embedded and owned
// exclusively by its user; CartVersion guards cart mutations against
// concurrent lost updates.
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"admin"`
	Cart         Cart      `json:"cart"`
	CartVersion  int64     `json:"-"`
}

// PublicUser is the restricted projection served to authenticated users
// reading somebody else's profile.
type PublicUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

// PublicView returns the projection of the user visible to non-owners.
func (u *User) PublicView() PublicUser {
	return PublicUser{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
	}
}

// ValidEmail reports whether the address matches the accepted format.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
