package domain

import "time"

// Account is the domain model for a registered account holder.
// PasswordHash is the bcrypt digest of the plaintext chosen at
// registration and is never surfaced through the API.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
