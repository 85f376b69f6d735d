package router

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/patric-chuzhbe/bookmarks/internal/auth"
	"github.com/patric-chuzhbe/bookmarks/internal/config"
	"github.com/patric-chuzhbe/bookmarks/internal/db/memorystorage"
	"github.com/patric-chuzhbe/bookmarks/internal/ipchecker"
	"github.com/patric-chuzhbe/bookmarks/internal/logger"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/service"
)

func setupExampleRouter() *httptest.Server {
	cfg, err := config.New(config.WithDisableFlagsParsing(true))
	if err != nil {
		panic(err)
	}

	if err := logger.Init("error"); err != nil {
		panic(err)
	}

	db, err := memorystorage.New()
	if err != nil {
		panic(err)
	}

	tokenSigningSecretKey, err := base64.URLEncoding.DecodeString(cfg.AuthTokenSigningSecretKey)
	if err != nil {
		panic(err)
	}

	theAuth := auth.New(
		db,
		cfg.AuthCookieName,
		tokenSigningSecretKey,
		cfg.AuthTokenTTL,
	)

	ipChecker, err := ipchecker.New("")
	if err != nil {
		panic(err)
	}

	return httptest.NewServer(New(service.New(db), theAuth, ipChecker))
}

func signUpExampleUser(server *httptest.Server) string {
	body := []byte(`{"email": "example@test.com", "password": "test1234"}`)

	resp, err := http.Post(server.URL+"/auth/signup", "application/json", bytes.NewReader(body))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var token models.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		panic(err)
	}

	return token.AccessToken
}

func ExampleRouter_GetPing() {
	server := setupExampleRouter()
	defer server.Close()

	resp, err := http.Get(server.URL + "/ping")
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	fmt.Println("Status Code:", resp.StatusCode)

	// Output:
	// Status Code: 200
}

func ExampleRouter_PostBookmarks() {
	server := setupExampleRouter()
	defer server.Close()

	token := signUpExampleUser(server)

	body := []byte(`{"title": "First Bookmark", "link": "www.test.com", "description": "Sample bookmark"}`)
	req, err := http.NewRequest(http.MethodPost, server.URL+"/bookmarks", bytes.NewReader(body))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var created models.Bookmark
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Println("Title:", created.Title)
	fmt.Println("Link:", created.Link)

	// Output:
	// Status Code: 201
	// Title: First Bookmark
	// Link: www.test.com
}

func ExampleRouter_GetBookmarksbyid() {
	server := setupExampleRouter()
	defer server.Close()

	token := signUpExampleUser(server)

	// No bookmark with this id belongs to the user, so the body is a JSON null.
	req, err := http.NewRequest(http.MethodGet, server.URL+"/bookmarks/42", nil)
	if err != nil {
		panic(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Printf("Body: %s", b)

	// Output:
	// Status Code: 200
	// Body: null
}
