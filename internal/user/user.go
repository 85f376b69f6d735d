// Package user defines the user model used throughout the application,
// particularly for authentication and bookmark ownership.
package user

import "time"

// User represents a system user.
// PasswordHash holds the bcrypt hash of the user's password and must never
// leave the storage/auth layers; API responses use models.UserResponse instead.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
