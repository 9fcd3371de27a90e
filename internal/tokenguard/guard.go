package tokenguard

import (
	"context"
	"errors"
	"sync"

	models "stokercloud_gateway"
	"stokercloud_gateway/internal/logger"
	"stokercloud_gateway/internal/metrics"
	"stokercloud_gateway/internal/stokerapi"
)

// Authenticator issues fresh session tokens. Satisfied by *stokerapi.Client.
type Authenticator interface {
	Login(ctx context.Context, username string) (models.LoginResult, error)
}

// AuthExhaustedError means an AuthError persisted through the guarded
// re-login retry. The cached account needs external re-validation; automatic
// retries will not help.
type AuthExhaustedError struct {
	Err error
}

func (e *AuthExhaustedError) Error() string {
	return "authentication exhausted after re-login: " + e.Err.Error()
}

func (e *AuthExhaustedError) Unwrap() error { return e.Err }

// IsAuthExhausted reports whether err is (or wraps) an AuthExhaustedError.
func IsAuthExhausted(err error) bool {
	var ae *AuthExhaustedError
	return errors.As(err, &ae)
}

// Guard owns the single cached session token. All token reads and writes go
// through its mutex; callers never see the token outside WithToken.
type Guard struct {
	auth     Authenticator
	username string
	log      *logger.Logger

	mu    sync.Mutex
	token string // empty until the first login succeeds
}

// New returns a guard with no cached token. The first WithToken call logs in.
func New(auth Authenticator, username string, log *logger.Logger) *Guard {
	return &Guard{auth: auth, username: username, log: log}
}

// WithToken runs op with a valid session token. The mutex is held only
// while reading or establishing the token, never across op itself, so a slow
// fetch does not block concurrent cached reads. If op fails with an
// AuthError the guard forces one fresh login (overwriting the cached token
// unconditionally) and retries op exactly once; a second AuthError from
// either step surfaces as AuthExhaustedError. Non-auth errors propagate
// immediately.
func (g *Guard) WithToken(ctx context.Context, op func(ctx context.Context, token string) error) error {
	token, err := g.cachedOrLogin(ctx)
	if err != nil {
		return err
	}

	err = op(ctx, token)
	if err == nil || !stokerapi.IsAuthError(err) {
		return err
	}

	g.log.Infow("session token rejected, re-authenticating", "user", g.username)
	token, err = g.forceLogin(ctx)
	if err != nil {
		if stokerapi.IsAuthError(err) {
			return &AuthExhaustedError{Err: err}
		}
		return err
	}

	err = op(ctx, token)
	if err != nil && stokerapi.IsAuthError(err) {
		return &AuthExhaustedError{Err: err}
	}
	return err
}

// cachedOrLogin returns the cached token, logging in first if none exists.
// Concurrent callers racing for a fresh token serialize here, so only one
// login request is ever in flight.
func (g *Guard) cachedOrLogin(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token == "" {
		result, err := g.auth.Login(ctx, g.username)
		metrics.ObserveLogin(err)
		if err != nil {
			return "", err
		}
		g.token = result.Token
	}
	return g.token, nil
}

// forceLogin discards whatever token is cached and logs in again. The cause
// of the rejection is unknowable from the vendor's responses, so staleness
// is not assumed; the token is overwritten either way.
func (g *Guard) forceLogin(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	result, err := g.auth.Login(ctx, g.username)
	metrics.ObserveLogin(err)
	if err != nil {
		return "", err
	}
	g.token = result.Token
	return g.token, nil
}
