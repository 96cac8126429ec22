package domain

import "time"

// Role separates travellers from trip administrators.
type Role string

const (
	RoleMusafir Role = "MUSAFIR"
	RoleAdmin   Role = "ADMIN"
)

// User represents an account in the system.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Verified     bool
	CreatedAt    time.Time
}
