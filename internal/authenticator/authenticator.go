// Package authenticator declares the authentication contract the router depends on.
package authenticator

import (
	"context"
	"net/http"
)

// Authenticator issues bearer tokens and guards handlers behind them.
type Authenticator interface {
	RegisterUser(ctx context.Context, email, password string) (string, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	AuthenticateUser(h http.Handler) http.Handler
}
