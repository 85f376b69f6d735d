package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/bookmarks/internal/db/memorystorage"
	"github.com/patric-chuzhbe/bookmarks/internal/logger"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

const testSigningKey = "test signing key"

func newTestAuth(t *testing.T) (*Auth, *memorystorage.MemoryStorage) {
	t.Helper()

	err := logger.Init("debug")
	require.NoError(t, err)

	db, err := memorystorage.New()
	require.NoError(t, err)

	return New(db, "auth", []byte(testSigningKey), time.Hour), db
}

func TestRegisterAndLoginUser(t *testing.T) {
	theAuth, db := newTestAuth(t)
	ctx := context.Background()

	registerToken, err := theAuth.RegisterUser(ctx, " Test@Test.com ", "test1234")
	require.NoError(t, err)
	assert.NotEmpty(t, registerToken)

	// The email is normalized before it reaches storage.
	usr, found, err := db.GetUserByEmail(ctx, "test@test.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.NotEqual(t, "test1234", usr.PasswordHash)

	loginToken, err := theAuth.LoginUser(ctx, "test@test.com", "test1234")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterUserForDuplicateEmail(t *testing.T) {
	theAuth, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := theAuth.RegisterUser(ctx, "test@test.com", "test1234")
	require.NoError(t, err)

	_, err = theAuth.RegisterUser(ctx, "TEST@test.com", "another password")
	assert.ErrorIs(t, err, models.ErrEmailAlreadyTaken)
}

func TestLoginUserForInvalidCredentials(t *testing.T) {
	theAuth, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := theAuth.RegisterUser(ctx, "test@test.com", "test1234")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "test@test.com", "wrong password"},
		{"unknown email", "nobody@test.com", "test1234"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := theAuth.LoginUser(ctx, test.email, test.password)
			assert.ErrorIs(t, err, models.ErrInvalidCredentials)
		})
	}
}

func TestAuthenticateUser(t *testing.T) {
	theAuth, _ := newTestAuth(t)
	ctx := context.Background()

	token, err := theAuth.RegisterUser(ctx, "test@test.com", "test1234")
	require.NoError(t, err)

	var seenUserID int
	var seenOK bool
	handler := theAuth.AuthenticateUser(http.HandlerFunc(
		func(response http.ResponseWriter, request *http.Request) {
			seenUserID, seenOK = UserIDFromContext(request.Context())
			response.WriteHeader(http.StatusOK)
		},
	))

	t.Run("token in the Authorization header", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		request.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, seenOK)
		assert.NotZero(t, seenUserID)
	})

	t.Run("token in the auth cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		request.AddCookie(&http.Cookie{Name: "auth", Value: token})
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		request.Header.Set("Authorization", "Bearer garbage")
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		foreignToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: 1,
		}).SignedString([]byte("some other key"))
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		request.Header.Set("Authorization", "Bearer "+foreignToken)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("valid token for a removed user", func(t *testing.T) {
		unknownUserToken, err := theAuth.buildJWTString(424242)
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		request.Header.Set("Authorization", "Bearer "+unknownUserToken)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestTokenExpiry(t *testing.T) {
	err := logger.Init("debug")
	require.NoError(t, err)

	db, err := memorystorage.New()
	require.NoError(t, err)

	theAuth := New(db, "auth", []byte(testSigningKey), -time.Hour)

	ctx := context.Background()
	token, err := theAuth.RegisterUser(ctx, "test@test.com", "test1234")
	require.NoError(t, err)

	handler := theAuth.AuthenticateUser(http.HandlerFunc(
		func(response http.ResponseWriter, request *http.Request) {
			response.WriteHeader(http.StatusOK)
		},
	))

	request := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
