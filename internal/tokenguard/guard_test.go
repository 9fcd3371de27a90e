package tokenguard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	models "stokercloud_gateway"
	"stokercloud_gateway/internal/logger"
	"stokercloud_gateway/internal/stokerapi"
)

// authStub counts logins and hands out sequential tokens.
type authStub struct {
	mu     sync.Mutex
	logins int32
	errs   []error // consumed per call; nil entry means success
}

func (a *authStub) Login(ctx context.Context, username string) (models.LoginResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := atomic.AddInt32(&a.logins, 1)
	if int(n) <= len(a.errs) && a.errs[n-1] != nil {
		return models.LoginResult{}, a.errs[n-1]
	}
	return models.LoginResult{Token: fmt.Sprintf("token-%d", n)}, nil
}

func (a *authStub) loginCount() int32 { return atomic.LoadInt32(&a.logins) }

func testLog() *logger.Logger { return logger.Get(logger.ErrorLevel) }

func TestGuard_CachesTokenAcrossCalls(t *testing.T) {
	auth := &authStub{}
	guard := New(auth, "acct", testLog())

	var seen []string
	op := func(ctx context.Context, token string) error {
		seen = append(seen, token)
		return nil
	}

	for i := 0; i < 3; i++ {
		if err := guard.WithToken(context.Background(), op); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if auth.loginCount() != 1 {
		t.Errorf("logins: want 1, got %d", auth.loginCount())
	}
	for _, tok := range seen {
		if tok != "token-1" {
			t.Errorf("expected cached token-1, got %q", tok)
		}
	}
}

func TestGuard_RetriesOnceOnAuthError(t *testing.T) {
	auth := &authStub{}
	guard := New(auth, "acct", testLog())

	attempts := 0
	err := guard.WithToken(context.Background(), func(ctx context.Context, token string) error {
		attempts++
		if attempts == 1 {
			return &stokerapi.AuthError{Message: "token expired"}
		}
		if token != "token-2" {
			t.Errorf("retry should see the fresh token, got %q", token)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("operation attempts: want 2, got %d", attempts)
	}
	if auth.loginCount() != 2 {
		t.Errorf("logins: want 2 (lazy + forced), got %d", auth.loginCount())
	}
}

func TestGuard_AuthExhaustedAfterSecondRejection(t *testing.T) {
	auth := &authStub{}
	guard := New(auth, "acct", testLog())

	attempts := 0
	err := guard.WithToken(context.Background(), func(ctx context.Context, token string) error {
		attempts++
		return &stokerapi.AuthError{Message: "rejected"}
	})
	if !IsAuthExhausted(err) {
		t.Fatalf("expected AuthExhaustedError, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("operation attempts: want 2, got %d", attempts)
	}
	if auth.loginCount() != 2 {
		t.Errorf("logins: want 2, got %d", auth.loginCount())
	}
	// the wrapped cause stays visible for error reporting
	if !stokerapi.IsAuthError(errors.Unwrap(err)) {
		t.Errorf("expected wrapped AuthError, got %v", errors.Unwrap(err))
	}
}

func TestGuard_ForcedLoginFailureIsExhausted(t *testing.T) {
	auth := &authStub{errs: []error{nil, &stokerapi.AuthError{Message: "account gone"}}}
	guard := New(auth, "acct", testLog())

	attempts := 0
	err := guard.WithToken(context.Background(), func(ctx context.Context, token string) error {
		attempts++
		return &stokerapi.AuthError{Message: "rejected"}
	})
	if !IsAuthExhausted(err) {
		t.Fatalf("expected AuthExhaustedError, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("operation attempts: want 1 (no retry without a token), got %d", attempts)
	}
}

func TestGuard_NonAuthErrorPropagatesWithoutRetry(t *testing.T) {
	auth := &authStub{}
	guard := New(auth, "acct", testLog())

	boom := &stokerapi.ProtocolError{Message: "bad payload"}
	attempts := 0
	err := guard.WithToken(context.Background(), func(ctx context.Context, token string) error {
		attempts++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the protocol error back, got %v", err)
	}
	if attempts != 1 || auth.loginCount() != 1 {
		t.Errorf("no retry expected: attempts=%d logins=%d", attempts, auth.loginCount())
	}
}

func TestGuard_ConcurrentCallersShareOneLogin(t *testing.T) {
	auth := &authStub{}
	guard := New(auth, "acct", testLog())

	const callers = 32
	tokens := make([]string, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			_ = guard.WithToken(context.Background(), func(ctx context.Context, token string) error {
				tokens[i] = token
				return nil
			})
		}(i)
	}
	wg.Wait()

	if auth.loginCount() != 1 {
		t.Fatalf("logins: want exactly 1, got %d", auth.loginCount())
	}
	for i, tok := range tokens {
		if tok != "token-1" {
			t.Errorf("caller %d saw token %q, want token-1", i, tok)
		}
	}
}
