// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered shop account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"` // Stored lower case, unique.
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialised.
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Roles returns the roles carried in access tokens.
// Admins keep the customer role so they can use the storefront too.
func (u *User) Roles() Roles {
	if u.Role == RoleAdmin {
		return Roles{RoleCustomer, RoleAdmin}
	}

	return Roles{RoleCustomer}
}
