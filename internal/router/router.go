// Package router wires the HTTP surface of the bookmarks service:
// route registration, middleware chains, request decoding/validation
// and mapping of service results to HTTP status codes.
package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/bookmarks/internal/auth"
	"github.com/patric-chuzhbe/bookmarks/internal/authenticator"
	"github.com/patric-chuzhbe/bookmarks/internal/gzippedhttp"
	"github.com/patric-chuzhbe/bookmarks/internal/ipchecker"
	"github.com/patric-chuzhbe/bookmarks/internal/logger"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/service"
	"github.com/patric-chuzhbe/bookmarks/internal/user"
)

// Router groups the HTTP handlers and their shared dependencies.
type Router struct {
	service   *service.Service
	theAuth   authenticator.Authenticator
	ipChecker *ipchecker.IPChecker
	validate  *validator.Validate
}

// New assembles the chi mux with all routes and middleware.
// Bookmark and profile routes sit behind the authentication middleware;
// signup/signin and ping are public; internal stats are guarded by the
// trusted-subnet checker.
func New(
	svc *service.Service,
	theAuth authenticator.Authenticator,
	ipChecker *ipchecker.IPChecker,
) *chi.Mux {
	theRouter := &Router{
		service:   svc,
		theAuth:   theAuth,
		ipChecker: ipChecker,
		validate:  validator.New(),
	}

	router := chi.NewRouter()
	router.Use(
		logger.WithLoggingHTTPMiddleware,
		gzippedhttp.UngzipJSONAndTextHTMLRequest,
	)

	router.With(gzippedhttp.GzipResponse).Post(`/auth/signup`, theRouter.PostAuthsignup)
	router.With(gzippedhttp.GzipResponse).Post(`/auth/signin`, theRouter.PostAuthsignin)
	router.Get(`/ping`, theRouter.GetPing)
	router.With(gzippedhttp.GzipResponse).Get(`/api/internal/stats`, theRouter.GetApiinternalstats)

	router.Group(func(protected chi.Router) {
		protected.Use(theAuth.AuthenticateUser)

		protected.With(gzippedhttp.GzipResponse).Get(`/users/me`, theRouter.GetUsersme)
		protected.With(gzippedhttp.GzipResponse).Patch(`/users`, theRouter.PatchUsers)

		protected.With(gzippedhttp.GzipResponse).Post(`/bookmarks`, theRouter.PostBookmarks)
		protected.With(gzippedhttp.GzipResponse).Get(`/bookmarks`, theRouter.GetBookmarks)
		protected.With(gzippedhttp.GzipResponse).Get(`/bookmarks/{id}`, theRouter.GetBookmarksbyid)
		protected.With(gzippedhttp.GzipResponse).Patch(`/bookmarks/{id}`, theRouter.PatchBookmarksbyid)

		// No response compression here: success is a bodiless 204.
		protected.Delete(`/bookmarks/{id}`, theRouter.DeleteBookmarksbyid)
	})

	return router
}

func writeJSONResponse(res http.ResponseWriter, statusCode int, value interface{}) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	if err := json.NewEncoder(res).Encode(value); err != nil {
		logger.Log.Debugln("Error encoding the response body: ", zap.Error(err))
	}
}

func (theRouter *Router) decodeAndValidateJSONBody(req *http.Request, target interface{}) error {
	if err := json.NewDecoder(req.Body).Decode(target); err != nil {
		return err
	}

	return theRouter.validate.Struct(target)
}

func userResponseFromUser(usr *user.User) models.UserResponse {
	return models.UserResponse{
		ID:        usr.ID,
		Email:     usr.Email,
		FirstName: usr.FirstName,
		LastName:  usr.LastName,
		CreatedAt: usr.CreatedAt,
		UpdatedAt: usr.UpdatedAt,
	}
}

func getBookmarkID(req *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(req, "id"))
}

// PostAuthsignup registers a new user and responds with a bearer token.
func (theRouter *Router) PostAuthsignup(res http.ResponseWriter, req *http.Request) {
	var request models.RegisterRequest
	if err := theRouter.decodeAndValidateJSONBody(req, &request); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := theRouter.theAuth.RegisterUser(req.Context(), request.Email, request.Password)
	if errors.Is(err, models.ErrEmailAlreadyTaken) {
		http.Error(res, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		logger.Log.Debugln("Error calling the `theAuth.RegisterUser()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusCreated, models.TokenResponse{AccessToken: token})
}

// PostAuthsignin verifies credentials and responds with a bearer token.
func (theRouter *Router) PostAuthsignin(res http.ResponseWriter, req *http.Request) {
	var request models.LoginRequest
	if err := theRouter.decodeAndValidateJSONBody(req, &request); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := theRouter.theAuth.LoginUser(req.Context(), request.Email, request.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		http.Error(res, err.Error(), http.StatusUnauthorized)
		return
	}
	if err != nil {
		logger.Log.Debugln("Error calling the `theAuth.LoginUser()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, models.TokenResponse{AccessToken: token})
}

// GetUsersme responds with the authenticated user's profile.
func (theRouter *Router) GetUsersme(res http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserIDFromContext(req.Context())
	if !ok {
		res.WriteHeader(http.StatusUnauthorized)
		return
	}

	usr, found, err := theRouter.service.GetUserByID(req.Context(), userID)
	if err != nil {
		logger.Log.Debugln("Error calling the `service.GetUserByID()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !found {
		res.WriteHeader(http.StatusUnauthorized)
		return
	}

	writeJSONResponse(res, http.StatusOK, userResponseFromUser(usr))
}

// PatchUsers applies a partial update to the authenticated user's profile.
func (theRouter *Router) PatchUsers(res http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserIDFromContext(req.Context())
	if !ok {
		res.WriteHeader(http.StatusUnauthorized)
		return
	}

	var request models.EditUserRequest
	if err := theRouter.decodeAndValidateJSONBody(req, &request); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	usr, err := theRouter.service.UpdateUser(req.Context(), userID, request)
	if err != nil {
		logger.Log.Debugln("Error calling the `service.UpdateUser()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, userResponseFromUser(usr))
}

// PostBookmarks creates a bookmark owned by the authenticated user.
func (theRouter *Router) PostBookmarks(res http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserIDFromContext(req.Context())
	if !ok {
		res.WriteHeader(http.StatusUnauthorized)
		return
	}

	var request models.CreateBookmarkRequest
	if err := theRouter.decodeAndValidateJSONBody(req, &request); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	bookmark, err := theRouter.service.CreateBookmark(req.Context(), userID, request)
	if err != nil {
		logger.Log.Debugln("Error calling the `service.CreateBookmark()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusCreated, bookmark)
}

// GetBookmarks responds with every bookmark of the authenticated user.
// An owner without bookmarks gets `[]`, not an error.
func (theRouter *Router) GetBookmarks(res http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserIDFromContext(req.Context())
	if !ok {
		res.WriteHeader(http.StatusUnauthorized)
		return
	}

	bookmarks, err := theRouter.service.GetUserBookmarks(req.Context(), userID)
	if err != nil {
		logger.Log.Debugln("Error calling the `service.GetUserBookmarks()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, bookmarks)
}

// GetBookmarksbyid responds with the bookmark, or with `null` when it does not
// exist or belongs to another user. The two cases are indistinguishable here,
// unlike on edit/delete.
func (theRouter *Router) GetBookmarksbyid(res http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserIDFromContext(req.Context())
	if !ok {
		res.WriteHeader(http.StatusUnauthorized)
		return
	}

	bookmarkID, err := getBookmarkID(req)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	bookmark, err := theRouter.service.GetBookmarkByID(req.Context(), userID, bookmarkID)
	if err != nil {
		logger.Log.Debugln("Error calling the `service.GetBookmarkByID()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, bookmark)
}

// PatchBookmarksbyid applies a partial update to a bookmark of the
// authenticated user. A missing or foreign bookmark yields 403.
func (theRouter *Router) PatchBookmarksbyid(res http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserIDFromContext(req.Context())
	if !ok {
		res.WriteHeader(http.StatusUnauthorized)
		return
	}

	bookmarkID, err := getBookmarkID(req)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	var request models.EditBookmarkRequest
	if err := theRouter.decodeAndValidateJSONBody(req, &request); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	bookmark, err := theRouter.service.EditBookmarkByID(req.Context(), userID, bookmarkID, request)
	if errors.Is(err, models.ErrAccessDenied) {
		http.Error(res, err.Error(), http.StatusForbidden)
		return
	}
	if err != nil {
		logger.Log.Debugln("Error calling the `service.EditBookmarkByID()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, bookmark)
}

// DeleteBookmarksbyid deletes a bookmark of the authenticated user.
// A missing or foreign bookmark yields 403, success a bodiless 204.
func (theRouter *Router) DeleteBookmarksbyid(res http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserIDFromContext(req.Context())
	if !ok {
		res.WriteHeader(http.StatusUnauthorized)
		return
	}

	bookmarkID, err := getBookmarkID(req)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	err = theRouter.service.DeleteBookmarkByID(req.Context(), userID, bookmarkID)
	if errors.Is(err, models.ErrAccessDenied) {
		http.Error(res, err.Error(), http.StatusForbidden)
		return
	}
	if err != nil {
		logger.Log.Debugln("Error calling the `service.DeleteBookmarkByID()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusNoContent)
}

// GetPing reports the health of the storage layer.
func (theRouter *Router) GetPing(res http.ResponseWriter, req *http.Request) {
	if err := theRouter.service.Ping(req.Context()); err != nil {
		logger.Log.Debugln("Error calling the `service.Ping()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}

// GetApiinternalstats responds with aggregate counts for requests coming from
// the trusted subnet; everything else gets 403.
func (theRouter *Router) GetApiinternalstats(res http.ResponseWriter, req *http.Request) {
	if theRouter.ipChecker.IsTrustedSubnetEmpty() {
		res.WriteHeader(http.StatusForbidden)
		return
	}

	clientIP, err := theRouter.ipChecker.GetClientIP(req)
	if err != nil {
		logger.Log.Debugln("Error calling the `ipChecker.GetClientIP()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !theRouter.ipChecker.Check(clientIP) {
		res.WriteHeader(http.StatusForbidden)
		return
	}

	stats, err := theRouter.service.GetInternalStats(req.Context())
	if err != nil {
		logger.Log.Debugln("Error calling the `service.GetInternalStats()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, stats)
}
