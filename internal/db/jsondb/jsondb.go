// Package jsondb provides a file-backed storage implementation.
// The whole dataset is kept in memory and flushed to a JSON file on Close.
package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/user"
)

// JSONDB is a storage backend holding all records in an in-memory cache
// persisted to a single JSON file.
type JSONDB struct {
	fileName string
	mu       sync.RWMutex
	Cache    CacheStruct
}

// CacheStruct is the serialized layout of the database file.
type CacheStruct struct {
	Users          map[int]*user.User       `json:"users"`
	Bookmarks      map[int]*models.Bookmark `json:"bookmarks"`
	NextUserID     int                      `json:"nextUserId"`
	NextBookmarkID int                      `json:"nextBookmarkId"`
}

func initDBFile(fileName string) error {
	dbFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dbFile, `{
	"users": {},
	"bookmarks": {},
	"nextUserId": 1,
	"nextBookmarkId": 1
}`)
	if err != nil {
		return err
	}
	return dbFile.Close()
}

func writeToJSONFile(fileName string, cache interface{}) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %s", err)
	}

	file, err2 := os.OpenFile(fileName, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err2 != nil {
		return fmt.Errorf("error opening file: %s", err2)
	}
	defer file.Close()

	_, err = file.Write(jsonData)
	if err != nil {
		return fmt.Errorf("error writing to file: %s", err)
	}

	return nil
}

func parseJSONFile(fileName string, cacheMap *CacheStruct) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	err = decoder.Decode(cacheMap)
	if err != nil {
		return err
	}

	return nil
}

// New opens (or creates) the database file and loads it into memory.
func New(fileName string) (*JSONDB, error) {
	theDB := JSONDB{
		fileName: fileName,
		Cache:    CacheStruct{},
	}

	err := parseJSONFile(theDB.fileName, &theDB.Cache)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		err := initDBFile(fileName)
		if err != nil {
			return nil, err
		}
		err = parseJSONFile(theDB.fileName, &theDB.Cache)
		if err != nil {
			return nil, err
		}
	}

	if theDB.Cache.Users == nil {
		theDB.Cache.Users = map[int]*user.User{}
	}
	if theDB.Cache.Bookmarks == nil {
		theDB.Cache.Bookmarks = map[int]*models.Bookmark{}
	}
	if theDB.Cache.NextUserID < 1 {
		theDB.Cache.NextUserID = 1
	}
	if theDB.Cache.NextBookmarkID < 1 {
		theDB.Cache.NextBookmarkID = 1
	}

	return &theDB, nil
}

// CreateUser stores a new user, assigning the next free identifier.
func (db *JSONDB) CreateUser(ctx context.Context, usr *user.User) (*user.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.Cache.Users {
		if existing.Email == usr.Email {
			return nil, models.ErrEmailAlreadyTaken
		}
	}

	now := time.Now()
	created := *usr
	created.ID = db.Cache.NextUserID
	created.CreatedAt = now
	created.UpdatedAt = now
	db.Cache.NextUserID++
	db.Cache.Users[created.ID] = &created

	result := created
	return &result, nil
}

func (db *JSONDB) GetUserByID(ctx context.Context, userID int) (*user.User, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	usr, found := db.Cache.Users[userID]
	if !found {
		return nil, false, nil
	}
	result := *usr

	return &result, true, nil
}

func (db *JSONDB) GetUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, usr := range db.Cache.Users {
		if usr.Email == email {
			result := *usr
			return &result, true, nil
		}
	}

	return nil, false, nil
}

// UpdateUser replaces the stored user record keeping its creation time.
func (db *JSONDB) UpdateUser(ctx context.Context, usr *user.User) (*user.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	stored, found := db.Cache.Users[usr.ID]
	if !found {
		return nil, fmt.Errorf("no user with id %d", usr.ID)
	}

	updated := *usr
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	db.Cache.Users[updated.ID] = &updated

	result := updated
	return &result, nil
}

// InsertBookmark stores a new bookmark, assigning the next free identifier.
func (db *JSONDB) InsertBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := time.Now()
	created := *bookmark
	created.ID = db.Cache.NextBookmarkID
	created.CreatedAt = now
	created.UpdatedAt = now
	db.Cache.NextBookmarkID++
	db.Cache.Bookmarks[created.ID] = &created

	result := created
	return &result, nil
}

// FindUserBookmarks returns all bookmarks of the given user ordered by id.
func (db *JSONDB) FindUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	all := make([]models.Bookmark, 0, len(db.Cache.Bookmarks))
	for _, bookmark := range db.Cache.Bookmarks {
		all = append(all, *bookmark)
	}

	result := funk.Filter(all, func(bookmark models.Bookmark) bool {
		return bookmark.UserID == userID
	}).([]models.Bookmark)

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (db *JSONDB) FindUserBookmarkByID(ctx context.Context, userID, bookmarkID int) (*models.Bookmark, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	bookmark, found := db.Cache.Bookmarks[bookmarkID]
	if !found || bookmark.UserID != userID {
		return nil, false, nil
	}
	result := *bookmark

	return &result, true, nil
}

func (db *JSONDB) FindBookmarkByID(ctx context.Context, bookmarkID int) (*models.Bookmark, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	bookmark, found := db.Cache.Bookmarks[bookmarkID]
	if !found {
		return nil, false, nil
	}
	result := *bookmark

	return &result, true, nil
}

// UpdateBookmark replaces the stored bookmark record keeping its creation time and owner.
func (db *JSONDB) UpdateBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	stored, found := db.Cache.Bookmarks[bookmark.ID]
	if !found {
		return nil, fmt.Errorf("no bookmark with id %d", bookmark.ID)
	}

	updated := *bookmark
	updated.UserID = stored.UserID
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	db.Cache.Bookmarks[updated.ID] = &updated

	result := updated
	return &result, nil
}

// DeleteBookmark removes the bookmark. Deleting a missing record is a no-op.
func (db *JSONDB) DeleteBookmark(ctx context.Context, bookmarkID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.Cache.Bookmarks, bookmarkID)

	return nil
}

func (db *JSONDB) GetNumberOfUsers(ctx context.Context) (int64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return int64(len(db.Cache.Users)), nil
}

func (db *JSONDB) GetNumberOfBookmarks(ctx context.Context) (int64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return int64(len(db.Cache.Bookmarks)), nil
}

// Ping always succeeds: the dataset lives in process memory.
func (db *JSONDB) Ping(ctx context.Context) error {
	return nil
}

// Close flushes the cache to the database file.
func (db *JSONDB) Close() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return writeToJSONFile(db.fileName, db.Cache)
}
