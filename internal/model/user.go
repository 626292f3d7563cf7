package model

import "time"

// UserID uniquely identifies a user account
type UserID int64

// User represents an account that can authenticate against the API
// PasswordHash is a bcrypt hash and is never serialized to clients
type User struct {
	ID           UserID
	Username     string // unique login name
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
