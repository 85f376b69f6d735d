// Package models defines the data transfer objects and sentinel errors
// shared between the router, service and storage layers.
package models

import (
	"errors"
	"time"
)

// Bookmark is a single saved link owned by exactly one user.
// The owner never changes after creation.
type Bookmark struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateBookmarkRequest is the body of `POST /bookmarks`.
// The owner comes from the authenticated request context, never from the body.
type CreateBookmarkRequest struct {
	Title       string `json:"title" validate:"required"`
	Link        string `json:"link" validate:"required"`
	Description string `json:"description"`
}

// EditBookmarkRequest is the body of `PATCH /bookmarks/{id}`.
// Nil fields are left untouched.
type EditBookmarkRequest struct {
	Title       *string `json:"title,omitempty"`
	Link        *string `json:"link,omitempty"`
	Description *string `json:"description,omitempty"`
}

// RegisterRequest is the body of `POST /auth/signup`.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the body of `POST /auth/signin`.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued bearer token back to the client.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// EditUserRequest is the body of `PATCH /users`. Nil fields are left untouched.
type EditUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// UserResponse is the public projection of a user, without the password hash.
type UserResponse struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InternalStatsResponse is returned by `GET /api/internal/stats`.
type InternalStatsResponse struct {
	Users     int64 `json:"users"`
	Bookmarks int64 `json:"bookmarks"`
}

const (
	StorageTypeUnknown = iota
	StorageTypePostgresql
	StorageTypeFile
	StorageTypeMemory
)

// ErrAccessDenied is returned by edit/delete operations when the target
// bookmark does not exist or belongs to a different user. The two cases are
// folded into one outcome on purpose: callers must not be able to tell them apart.
var ErrAccessDenied = errors.New("access to resource denied")

// ErrEmailAlreadyTaken is returned on registration with an email
// that is already in use.
var ErrEmailAlreadyTaken = errors.New("email is already taken")

// ErrInvalidCredentials is returned on login with an unknown email
// or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")
