package domain

import "time"

// User is the domain model for workspace members. The client supplies a
// fixed-length password digest; only its bcrypt hash is stored.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
