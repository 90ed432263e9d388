package models

import "time"

type UserRole string

// UserRoleAdmin is the only role the portfolio knows about; every account
// belongs to the site operator.
const UserRoleAdmin UserRole = "Admin"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	Role         UserRole
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
