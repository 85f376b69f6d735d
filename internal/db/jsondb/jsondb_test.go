package jsondb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/user"
)

func TestPersistenceAcrossReopen(t *testing.T) {
	dbFileName := filepath.Join(t.TempDir(), "bookmarks_db.json")
	ctx := context.Background()

	db, err := New(dbFileName)
	require.NoError(t, err)

	usr, err := db.CreateUser(ctx, &user.User{
		Email:        "test@test.com",
		PasswordHash: "some hash",
	})
	require.NoError(t, err)
	require.NotZero(t, usr.ID)

	bookmark, err := db.InsertBookmark(ctx, &models.Bookmark{
		UserID:      usr.ID,
		Title:       "First Bookmark",
		Link:        "www.test.com",
		Description: "Sample bookmark",
	})
	require.NoError(t, err)
	require.NotZero(t, bookmark.ID)

	require.NoError(t, db.Close())

	reopened, err := New(dbFileName)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	persistedUser, found, err := reopened.GetUserByEmail(ctx, "test@test.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, usr.ID, persistedUser.ID)
	assert.Equal(t, "some hash", persistedUser.PasswordHash)

	persistedBookmark, found, err := reopened.FindUserBookmarkByID(ctx, usr.ID, bookmark.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "First Bookmark", persistedBookmark.Title)
	assert.Equal(t, "www.test.com", persistedBookmark.Link)

	// The id sequences continue where they left off.
	anotherUser, err := reopened.CreateUser(ctx, &user.User{
		Email:        "second@test.com",
		PasswordHash: "another hash",
	})
	require.NoError(t, err)
	assert.Greater(t, anotherUser.ID, usr.ID)

	anotherBookmark, err := reopened.InsertBookmark(ctx, &models.Bookmark{
		UserID: anotherUser.ID,
		Title:  "Second Bookmark",
		Link:   "www.test.com",
	})
	require.NoError(t, err)
	assert.Greater(t, anotherBookmark.ID, bookmark.ID)
}

func TestCreateUserForDuplicateEmail(t *testing.T) {
	dbFileName := filepath.Join(t.TempDir(), "bookmarks_db.json")
	ctx := context.Background()

	db, err := New(dbFileName)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	_, err = db.CreateUser(ctx, &user.User{Email: "test@test.com"})
	require.NoError(t, err)

	_, err = db.CreateUser(ctx, &user.User{Email: "test@test.com"})
	assert.ErrorIs(t, err, models.ErrEmailAlreadyTaken)
}

func TestUpdateBookmarkPreservesOwnership(t *testing.T) {
	dbFileName := filepath.Join(t.TempDir(), "bookmarks_db.json")
	ctx := context.Background()

	db, err := New(dbFileName)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	bookmark, err := db.InsertBookmark(ctx, &models.Bookmark{
		UserID: 1,
		Title:  "original",
		Link:   "https://example.com",
	})
	require.NoError(t, err)

	edited := *bookmark
	edited.Title = "edited"
	edited.UserID = 42

	updated, err := db.UpdateBookmark(ctx, &edited)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
	assert.Equal(t, 1, updated.UserID)
	assert.Equal(t, bookmark.CreatedAt, updated.CreatedAt)
}
