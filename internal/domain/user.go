// Package domain contains the core entities of the user directory.
package domain

import "time"

// Role is a role tag attached to a user.
type Role string

// Known roles.
const (
	RoleUser     Role = "user"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

// User represents a user profile record.
//
// Enabled gates visibility: disabled records are invisible to lookups and
// listing but stay in storage and can be reactivated. Email is unique among
// enabled users only, so a deactivated user's email may be reused by a new
// signup.
type User struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Phone            string         `json:"phone,omitempty"`
	CustomAttributes map[string]any `json:"custom_attributes,omitempty"`
	Enabled          bool           `json:"enabled"`
	Roles            []Role         `json:"roles"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
