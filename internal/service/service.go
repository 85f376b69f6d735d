// Package service implements the business rules of the bookmarks application.
// Its central piece is the per-owner access control around bookmark CRUD:
// a bookmark is visible, editable and deletable only by the user who created it.
package service

import (
	"context"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/user"
)

type userKeeper interface {
	GetUserByID(ctx context.Context, userID int) (*user.User, bool, error)

	UpdateUser(ctx context.Context, usr *user.User) (*user.User, error)
}

type bookmarksKeeper interface {
	InsertBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)

	FindUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error)

	FindUserBookmarkByID(ctx context.Context, userID, bookmarkID int) (*models.Bookmark, bool, error)

	FindBookmarkByID(ctx context.Context, bookmarkID int) (*models.Bookmark, bool, error)

	UpdateBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)

	DeleteBookmark(ctx context.Context, bookmarkID int) error
}

type counter interface {
	GetNumberOfUsers(ctx context.Context) (int64, error)

	GetNumberOfBookmarks(ctx context.Context) (int64, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type storage interface {
	userKeeper
	bookmarksKeeper
	counter
	pinger
}

// Service owns the bookmark access rules and the user profile operations.
// It holds no state of its own: everything lives in the injected storage.
type Service struct {
	db storage
}

// New builds a Service on top of the given storage.
func New(db storage) *Service {
	return &Service{
		db: db,
	}
}

// CreateBookmark stores a new bookmark owned by userID.
// The owner comes from the authenticated identity, so there is nothing to
// authorize here; storage failures propagate unclassified.
func (s *Service) CreateBookmark(
	ctx context.Context,
	userID int,
	req models.CreateBookmarkRequest,
) (*models.Bookmark, error) {
	return s.db.InsertBookmark(ctx, &models.Bookmark{
		UserID:      userID,
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
	})
}

// GetUserBookmarks returns every bookmark owned by userID in store order.
// The result is never nil, so an owner without bookmarks serializes to `[]`.
func (s *Service) GetUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error) {
	bookmarks, err := s.db.FindUserBookmarks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}

	return bookmarks, nil
}

// GetBookmarkByID returns the bookmark only when it exists AND belongs to
// userID; otherwise (nil, nil). A lookup of another user's bookmark is
// indistinguishable from a lookup of a missing one.
func (s *Service) GetBookmarkByID(ctx context.Context, userID, bookmarkID int) (*models.Bookmark, error) {
	bookmark, found, err := s.db.FindUserBookmarkByID(ctx, userID, bookmarkID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	return bookmark, nil
}

// EditBookmarkByID applies the non-nil fields of req to the bookmark.
// The ownership check is a two-step protocol: fetch by id alone, then compare
// the owner. A missing bookmark and a foreign bookmark both yield
// models.ErrAccessDenied. Unlike GetBookmarkByID this does reveal, through the
// distinguishable error, that a foreign bookmark exists; the original system
// behaves the same way and the asymmetry is kept intentionally.
func (s *Service) EditBookmarkByID(
	ctx context.Context,
	userID,
	bookmarkID int,
	req models.EditBookmarkRequest,
) (*models.Bookmark, error) {
	bookmark, found, err := s.db.FindBookmarkByID(ctx, bookmarkID)
	if err != nil {
		return nil, err
	}
	if !found || bookmark.UserID != userID {
		return nil, models.ErrAccessDenied
	}

	if req.Title != nil {
		bookmark.Title = *req.Title
	}
	if req.Link != nil {
		bookmark.Link = *req.Link
	}
	if req.Description != nil {
		bookmark.Description = *req.Description
	}

	return s.db.UpdateBookmark(ctx, bookmark)
}

// DeleteBookmarkByID removes the bookmark after the same two-step ownership
// check as EditBookmarkByID.
func (s *Service) DeleteBookmarkByID(ctx context.Context, userID, bookmarkID int) error {
	bookmark, found, err := s.db.FindBookmarkByID(ctx, bookmarkID)
	if err != nil {
		return err
	}
	if !found || bookmark.UserID != userID {
		return models.ErrAccessDenied
	}

	return s.db.DeleteBookmark(ctx, bookmarkID)
}

// GetUserByID returns the user record for the authenticated identity.
func (s *Service) GetUserByID(ctx context.Context, userID int) (*user.User, bool, error) {
	return s.db.GetUserByID(ctx, userID)
}

// UpdateUser applies the non-nil fields of req to the user's own profile
// and returns the stored record.
func (s *Service) UpdateUser(ctx context.Context, userID int, req models.EditUserRequest) (*user.User, error) {
	usr, found, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.ErrAccessDenied
	}

	if req.Email != nil {
		usr.Email = *req.Email
	}
	if req.FirstName != nil {
		usr.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		usr.LastName = *req.LastName
	}

	return s.db.UpdateUser(ctx, usr)
}

// GetInternalStats returns aggregate record counts for internal monitoring.
func (s *Service) GetInternalStats(ctx context.Context) (models.InternalStatsResponse, error) {
	users, err := s.db.GetNumberOfUsers(ctx)
	if err != nil {
		return models.InternalStatsResponse{}, err
	}

	bookmarks, err := s.db.GetNumberOfBookmarks(ctx)
	if err != nil {
		return models.InternalStatsResponse{}, err
	}

	return models.InternalStatsResponse{
		Users:     users,
		Bookmarks: bookmarks,
	}, nil
}

// Ping checks the health of the storage layer.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
