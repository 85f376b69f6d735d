// Package postgresdb provides a PostgreSQL-based implementation of the storage
// interface for persisting users and bookmarks.
// Schema migrations are applied with goose at construction time.
package postgresdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/user"
)

// PostgresDB is a PostgreSQL-backed implementation of the bookmarks storage.
type PostgresDB struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

const (
	usersTableName     = "users"
	bookmarksTableName = "bookmarks"
)

type initOptions struct {
	DBPreReset bool
}

// InitOption customizes the behavior of New.
type InitOption func(*initOptions)

// WithDBPreReset truncates all tables right after the migrations.
// Integration tests use it to start from a clean database.
func WithDBPreReset(value bool) InitOption {
	return func(options *initOptions) {
		options.DBPreReset = value
	}
}

// New establishes a connection to the PostgreSQL database,
// runs schema migrations, and returns a configured PostgresDB instance.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	migrationsDir string,
	optionsProto ...InitOption,
) (*PostgresDB, error) {
	options := &initOptions{
		DBPreReset: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, err
	}

	result := &PostgresDB{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `goose.SetDialect()` calling: %w",
				err,
			)
	}

	if err := goose.Up(result.database, migrationsDir); err != nil {
		return nil,
			fmt.Errorf(
				"in internal/db/postgresdb/postgresdb.go/New(): error while `goose.Up()` calling: %w",
				err,
			)
	}

	if options.DBPreReset {
		if err := result.resetDB(ctx); err != nil {
			return nil,
				fmt.Errorf(
					"in internal/db/postgresdb/postgresdb.go/New(): error while `result.resetDB()` calling: %w",
					err,
				)
		}
	}

	return result, nil
}

func (pgdb *PostgresDB) resetDB(ctx context.Context) error {
	_, err := pgdb.database.ExecContext(
		ctx,
		fmt.Sprintf(
			`TRUNCATE TABLE "%s", "%s" RESTART IDENTITY CASCADE`,
			bookmarksTableName,
			usersTableName,
		),
	)

	return err
}

// CreateUser inserts a new user and returns the stored record with its
// assigned id and timestamps. Returns models.ErrEmailAlreadyTaken when the
// email is already registered.
func (pgdb *PostgresDB) CreateUser(ctx context.Context, usr *user.User) (*user.User, error) {
	_, taken, err := pgdb.GetUserByEmail(ctx, usr.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrEmailAlreadyTaken
	}

	created := *usr
	err = pgdb.database.QueryRowContext(
		ctx,
		fmt.Sprintf(
			`INSERT INTO "%s" ("email", "password_hash", "first_name", "last_name")
				VALUES ($1, $2, $3, $4)
				RETURNING "id", "created_at", "updated_at"`,
			usersTableName,
		),
		usr.Email,
		usr.PasswordHash,
		usr.FirstName,
		usr.LastName,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/CreateUser(): error while user inserting: %w",
			err,
		)
	}

	return &created, nil
}

func (pgdb *PostgresDB) GetUserByID(ctx context.Context, userID int) (*user.User, bool, error) {
	usr := user.User{}
	err := pgdb.database.QueryRowContext(
		ctx,
		fmt.Sprintf(
			`SELECT "id", "email", "password_hash", "first_name", "last_name", "created_at", "updated_at"
				FROM "%s" WHERE "id" = $1`,
			usersTableName,
		),
		userID,
	).Scan(
		&usr.ID,
		&usr.Email,
		&usr.PasswordHash,
		&usr.FirstName,
		&usr.LastName,
		&usr.CreatedAt,
		&usr.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &usr, true, nil
}

func (pgdb *PostgresDB) GetUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	usr := user.User{}
	err := pgdb.database.QueryRowContext(
		ctx,
		fmt.Sprintf(
			`SELECT "id", "email", "password_hash", "first_name", "last_name", "created_at", "updated_at"
				FROM "%s" WHERE "email" = $1`,
			usersTableName,
		),
		email,
	).Scan(
		&usr.ID,
		&usr.Email,
		&usr.PasswordHash,
		&usr.FirstName,
		&usr.LastName,
		&usr.CreatedAt,
		&usr.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &usr, true, nil
}

// UpdateUser writes the mutable profile fields and returns the stored record.
func (pgdb *PostgresDB) UpdateUser(ctx context.Context, usr *user.User) (*user.User, error) {
	updated := *usr
	err := pgdb.database.QueryRowContext(
		ctx,
		fmt.Sprintf(
			`UPDATE "%s"
				SET "email" = $1, "first_name" = $2, "last_name" = $3, "updated_at" = now()
				WHERE "id" = $4
				RETURNING "created_at", "updated_at"`,
			usersTableName,
		),
		usr.Email,
		usr.FirstName,
		usr.LastName,
		usr.ID,
	).Scan(&updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/UpdateUser(): error while user updating: %w",
			err,
		)
	}

	return &updated, nil
}

// InsertBookmark inserts a new bookmark and returns the stored record
// with its assigned id and timestamps.
func (pgdb *PostgresDB) InsertBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	created := *bookmark
	err := pgdb.database.QueryRowContext(
		ctx,
		fmt.Sprintf(
			`INSERT INTO "%s" ("user_id", "title", "link", "description")
				VALUES ($1, $2, $3, $4)
				RETURNING "id", "created_at", "updated_at"`,
			bookmarksTableName,
		),
		bookmark.UserID,
		bookmark.Title,
		bookmark.Link,
		bookmark.Description,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/InsertBookmark(): error while bookmark inserting: %w",
			err,
		)
	}

	return &created, nil
}

// FindUserBookmarks returns all bookmarks of the given user in table order.
func (pgdb *PostgresDB) FindUserBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error) {
	rows, err := pgdb.database.QueryContext(
		ctx,
		fmt.Sprintf(
			`SELECT "id", "user_id", "title", "link", "description", "created_at", "updated_at"
				FROM "%s" WHERE "user_id" = $1`,
			bookmarksTableName,
		),
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.Bookmark, 0)
	for rows.Next() {
		bookmark := models.Bookmark{}
		err = rows.Scan(
			&bookmark.ID,
			&bookmark.UserID,
			&bookmark.Title,
			&bookmark.Link,
			&bookmark.Description,
			&bookmark.CreatedAt,
			&bookmark.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		result = append(result, bookmark)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (pgdb *PostgresDB) findBookmark(ctx context.Context, condition string, args ...interface{}) (*models.Bookmark, bool, error) {
	bookmark := models.Bookmark{}
	err := pgdb.database.QueryRowContext(
		ctx,
		fmt.Sprintf(
			`SELECT "id", "user_id", "title", "link", "description", "created_at", "updated_at"
				FROM "%s" WHERE %s`,
			bookmarksTableName,
			condition,
		),
		args...,
	).Scan(
		&bookmark.ID,
		&bookmark.UserID,
		&bookmark.Title,
		&bookmark.Link,
		&bookmark.Description,
		&bookmark.CreatedAt,
		&bookmark.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &bookmark, true, nil
}

// FindUserBookmarkByID fetches a single bookmark constrained to its owner.
func (pgdb *PostgresDB) FindUserBookmarkByID(ctx context.Context, userID, bookmarkID int) (*models.Bookmark, bool, error) {
	return pgdb.findBookmark(ctx, `"id" = $1 AND "user_id" = $2`, bookmarkID, userID)
}

// FindBookmarkByID fetches a single bookmark by id alone, regardless of owner.
func (pgdb *PostgresDB) FindBookmarkByID(ctx context.Context, bookmarkID int) (*models.Bookmark, bool, error) {
	return pgdb.findBookmark(ctx, `"id" = $1`, bookmarkID)
}

// UpdateBookmark writes the mutable fields and returns the stored record.
func (pgdb *PostgresDB) UpdateBookmark(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	updated := *bookmark
	err := pgdb.database.QueryRowContext(
		ctx,
		fmt.Sprintf(
			`UPDATE "%s"
				SET "title" = $1, "link" = $2, "description" = $3, "updated_at" = now()
				WHERE "id" = $4
				RETURNING "user_id", "created_at", "updated_at"`,
			bookmarksTableName,
		),
		bookmark.Title,
		bookmark.Link,
		bookmark.Description,
		bookmark.ID,
	).Scan(&updated.UserID, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf(
			"in internal/db/postgresdb/postgresdb.go/UpdateBookmark(): error while bookmark updating: %w",
			err,
		)
	}

	return &updated, nil
}

// DeleteBookmark removes the bookmark row. Deleting a missing row is a no-op.
func (pgdb *PostgresDB) DeleteBookmark(ctx context.Context, bookmarkID int) error {
	_, err := pgdb.database.ExecContext(
		ctx,
		fmt.Sprintf(`DELETE FROM "%s" WHERE "id" = $1`, bookmarksTableName),
		bookmarkID,
	)

	return err
}

func (pgdb *PostgresDB) GetNumberOfUsers(ctx context.Context) (int64, error) {
	var count int64
	err := pgdb.database.QueryRowContext(
		ctx,
		fmt.Sprintf(`SELECT count(*) FROM "%s"`, usersTableName),
	).Scan(&count)

	return count, err
}

func (pgdb *PostgresDB) GetNumberOfBookmarks(ctx context.Context) (int64, error) {
	var count int64
	err := pgdb.database.QueryRowContext(
		ctx,
		fmt.Sprintf(`SELECT count(*) FROM "%s"`, bookmarksTableName),
	).Scan(&count)

	return count, err
}

// Ping verifies the database connection within the configured timeout.
func (pgdb *PostgresDB) Ping(outerCtx context.Context) error {
	ctx, cancel := context.WithTimeout(outerCtx, pgdb.connectionTimeout)
	defer cancel()

	return pgdb.database.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (pgdb *PostgresDB) Close() error {
	return pgdb.database.Close()
}
