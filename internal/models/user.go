package models

import "time"

// Roles a user account can hold
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// User represents a player or admin account
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may call the reporting endpoints
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
