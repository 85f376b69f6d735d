// Package memorystorage provides a purely in-memory storage backend.
// It reuses the jsondb cache without ever touching the filesystem,
// which makes it the default backend for tests and file-less runs.
package memorystorage

import (
	"context"

	"github.com/patric-chuzhbe/bookmarks/internal/db/jsondb"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/user"
)

// MemoryStorage is a jsondb without a backing file.
type MemoryStorage struct {
	*jsondb.JSONDB
}

// New returns an empty in-memory storage.
func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		JSONDB: &jsondb.JSONDB{
			Cache: jsondb.CacheStruct{
				Users:          map[int]*user.User{},
				Bookmarks:      map[int]*models.Bookmark{},
				NextUserID:     1,
				NextBookmarkID: 1,
			},
		},
	}, nil
}

// Close is a no-op: there is nothing to flush.
func (theStorage *MemoryStorage) Close() error {
	return nil
}

// Ping always succeeds.
func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}
