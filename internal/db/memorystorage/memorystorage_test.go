package memorystorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/user"
)

func TestBookmarkLifecycle(t *testing.T) {
	db, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	owner, err := db.CreateUser(ctx, &user.User{Email: "owner@test.com"})
	require.NoError(t, err)

	stranger, err := db.CreateUser(ctx, &user.User{Email: "stranger@test.com"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID+1, stranger.ID)

	first, err := db.InsertBookmark(ctx, &models.Bookmark{
		UserID: owner.ID,
		Title:  "first",
		Link:   "https://example.com/1",
	})
	require.NoError(t, err)

	second, err := db.InsertBookmark(ctx, &models.Bookmark{
		UserID: owner.ID,
		Title:  "second",
		Link:   "https://example.com/2",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)

	// Listing is owner-scoped and ordered by id.
	bookmarks, err := db.FindUserBookmarks(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, bookmarks, 2)
	assert.Equal(t, first.ID, bookmarks[0].ID)
	assert.Equal(t, second.ID, bookmarks[1].ID)

	bookmarks, err = db.FindUserBookmarks(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)

	// The owner-scoped lookup conceals foreign bookmarks.
	_, found, err := db.FindUserBookmarkByID(ctx, stranger.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, found)

	// The unscoped lookup finds them anyway.
	foreign, found, err := db.FindBookmarkByID(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, owner.ID, foreign.UserID)

	require.NoError(t, db.DeleteBookmark(ctx, first.ID))

	_, found, err = db.FindBookmarkByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing record is a no-op.
	assert.NoError(t, db.DeleteBookmark(ctx, first.ID))
}

func TestUpdateUser(t *testing.T) {
	db, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	usr, err := db.CreateUser(ctx, &user.User{
		Email:     "test@test.com",
		FirstName: "Lamba",
	})
	require.NoError(t, err)

	usr.FirstName = "Renamed"
	usr.LastName = "Lord"

	updated, err := db.UpdateUser(ctx, usr)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.FirstName)
	assert.Equal(t, "Lord", updated.LastName)

	fetched, found, err := db.GetUserByID(ctx, usr.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Renamed", fetched.FirstName)
}

func TestPingAndClose(t *testing.T) {
	db, err := New()
	require.NoError(t, err)

	assert.NoError(t, db.Ping(context.Background()))
	assert.NoError(t, db.Close())
}
