// Package mockstorage provides a testify-based mock implementation
// of the storage interface consumed by the service and auth packages.
// It is used for unit testing error propagation without a real backend.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/user"
)

// StorageMock is a testify mock implementing the full storage interface.
type StorageMock struct {
	mock.Mock
}

// CreateUser mocks user creation.
func (m *StorageMock) CreateUser(ctx context.Context, usr *user.User) (*user.User, error) {
	args := m.Called(ctx, usr)
	created, _ := args.Get(0).(*user.User)
	return created, args.Error(1)
}

// GetUserByID mocks a user lookup by id.
func (m *StorageMock) GetUserByID(ctx context.Context, userID int) (*user.User, bool, error) {
	args := m.Called(ctx, userID)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// GetUserByEmail mocks a user lookup by email.
func (m *StorageMock) GetUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	args := m.Called(ctx, email)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// UpdateUser mocks a user profile update.
func (m *StorageMock) UpdateUser(ctx context.Context, usr *user.User) (*user.User, error) {
	args := m.Called(ctx, usr)
	updated, _ := args.Get(0).(*user.User)
	return updated, args.Error(1)
}

// InsertBookmark mocks bookmark creation.
func (m *StorageMock) InsertBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	args := m.Called(ctx, bookmark)
	created, _ := args.Get(0).(*models.Bookmark)
	return created, args.Error(1)
}

// FindUserBookmarks mocks listing a user's bookmarks.
func (m *StorageMock) FindUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error) {
	args := m.Called(ctx, userID)
	bookmarks, _ := args.Get(0).([]models.Bookmark)
	return bookmarks, args.Error(1)
}

// FindUserBookmarkByID mocks an owner-constrained bookmark lookup.
func (m *StorageMock) FindUserBookmarkByID(ctx context.Context, userID, bookmarkID int) (*models.Bookmark, bool, error) {
	args := m.Called(ctx, userID, bookmarkID)
	bookmark, _ := args.Get(0).(*models.Bookmark)
	return bookmark, args.Bool(1), args.Error(2)
}

// FindBookmarkByID mocks a bookmark lookup by id alone.
func (m *StorageMock) FindBookmarkByID(ctx context.Context, bookmarkID int) (*models.Bookmark, bool, error) {
	args := m.Called(ctx, bookmarkID)
	bookmark, _ := args.Get(0).(*models.Bookmark)
	return bookmark, args.Bool(1), args.Error(2)
}

// UpdateBookmark mocks a bookmark update.
func (m *StorageMock) UpdateBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	args := m.Called(ctx, bookmark)
	updated, _ := args.Get(0).(*models.Bookmark)
	return updated, args.Error(1)
}

// DeleteBookmark mocks a bookmark deletion.
func (m *StorageMock) DeleteBookmark(ctx context.Context, bookmarkID int) error {
	args := m.Called(ctx, bookmarkID)
	return args.Error(0)
}

// GetNumberOfUsers mocks the user counter.
func (m *StorageMock) GetNumberOfUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// GetNumberOfBookmarks mocks the bookmark counter.
func (m *StorageMock) GetNumberOfBookmarks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Ping mocks the storage health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks the storage shutdown.
func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
