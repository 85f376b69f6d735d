// Package storage declares the interface implemented by every storage backend.
package storage

import (
	"context"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/user"
)

// Storage is the durable store behind the bookmarks service.
// Absence of a record is reported through the boolean flag, not through an error.
type Storage interface {
	CreateUser(ctx context.Context, usr *user.User) (*user.User, error)

	GetUserByID(ctx context.Context, userID int) (*user.User, bool, error)

	GetUserByEmail(ctx context.Context, email string) (*user.User, bool, error)

	UpdateUser(ctx context.Context, usr *user.User) (*user.User, error)

	InsertBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)

	FindUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error)

	FindUserBookmarkByID(ctx context.Context, userID, bookmarkID int) (*models.Bookmark, bool, error)

	FindBookmarkByID(ctx context.Context, bookmarkID int) (*models.Bookmark, bool, error)

	UpdateBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)

	DeleteBookmark(ctx context.Context, bookmarkID int) error

	GetNumberOfUsers(ctx context.Context) (int64, error)

	GetNumberOfBookmarks(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error

	Close() error
}
