package domain

import (
	"time"
)

type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleBusiness UserRole = "business"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Password     string    `json:"-"` // Hashed password
	Role         UserRole  `json:"role"`
	ContactName  string    `json:"contact_name,omitempty"`
	BusinessName string    `json:"business_name,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the authenticated identity behind a scan. Role and business name
// come from the server-side user record loaded by the auth middleware, never
// from client input.
type Actor struct {
	ID           string
	Role         UserRole
	BusinessName string
}

// ActorFromUser derives the scan actor from an authenticated user record.
func ActorFromUser(u *User) Actor {
	return Actor{
		ID:           u.ID,
		Role:         u.Role,
		BusinessName: u.BusinessName,
	}
}
