package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yanmoais/project-management-platform/internal/auth"
	"github.com/yanmoais/project-management-platform/internal/rest"
	"github.com/yanmoais/project-management-platform/internal/session"
)

type silentNotifier struct{}

func (silentNotifier) Error(string) {}

type guardFixture struct {
	guard   *Guard
	manager *session.Manager
	calls   *atomic.Int64
}

// newGuardFixture wires a guard against a server whose /api/user/info
// responses come from the given handler. All other endpoints answer with
// a generic success envelope.
func newGuardFixture(t *testing.T, userInfo http.HandlerFunc) *guardFixture {
	t.Helper()

	calls := &atomic.Int64{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/user/info" {
			calls.Add(1)
			userInfo(w, r)
			return
		}
		io.WriteString(w, `{"code": 200, "msg": "ok"}`)
	}))
	t.Cleanup(srv.Close)

	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)
	manager, err := session.NewManager(store)
	require.NoError(t, err)

	client, err := rest.NewClient(srv.URL,
		rest.WithNotifier(silentNotifier{}),
		rest.WithTokenSource(manager.TokenSource()),
	)
	require.NoError(t, err)

	gateway := auth.NewGateway(client, manager)
	return &guardFixture{
		guard:   NewGuard(DefaultRegistry(), manager, gateway),
		manager: manager,
		calls:   calls,
	}
}

func validUserInfo(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, `{"code": 200, "data": {"name": "dev", "roles": ["admin"]}}`)
}

func TestGuardUnauthenticatedToProtectedRoute(t *testing.T) {
	fx := newGuardFixture(t, validUserInfo)

	decision, err := fx.guard.Navigate(context.Background(), "/workbench")
	require.NoError(t, err)
	assert.Equal(t, RedirectLogin, decision)
	assert.Zero(t, fx.calls.Load(), "an unauthenticated redirect must not hit the network")
}

func TestGuardUnauthenticatedToLogin(t *testing.T) {
	fx := newGuardFixture(t, validUserInfo)

	decision, err := fx.guard.Navigate(context.Background(), "/login")
	require.NoError(t, err)
	assert.Equal(t, Allow, decision)
}

func TestGuardAuthenticatedToLogin(t *testing.T) {
	fx := newGuardFixture(t, validUserInfo)
	require.NoError(t, fx.manager.SetToken("tok"))

	decision, err := fx.guard.Navigate(context.Background(), "/login")
	require.NoError(t, err)
	assert.Equal(t, RedirectHome, decision)
	assert.Zero(t, fx.calls.Load())
}

func TestGuardUnknownRoute(t *testing.T) {
	fx := newGuardFixture(t, validUserInfo)

	decision, err := fx.guard.Navigate(context.Background(), "/no-such-page")
	require.ErrorIs(t, err, ErrUnknownRoute)
	assert.Equal(t, RedirectLogin, decision)
}

func TestGuardResolvesIdentityOnce(t *testing.T) {
	fx := newGuardFixture(t, validUserInfo)
	require.NoError(t, fx.manager.SetToken("tok"))

	decision, err := fx.guard.Navigate(context.Background(), "/workbench")
	require.NoError(t, err)
	assert.Equal(t, Allow, decision)
	assert.Equal(t, int64(1), fx.calls.Load())
	assert.Equal(t, []string{"admin"}, fx.manager.Current().Roles)

	// The identity is now populated; subsequent transitions skip the fetch.
	decision, err = fx.guard.Navigate(context.Background(), "/project")
	require.NoError(t, err)
	assert.Equal(t, Allow, decision)
	assert.Equal(t, int64(1), fx.calls.Load())
}

func TestGuardInvalidTokenTearsDownSession(t *testing.T) {
	fx := newGuardFixture(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"code": 4001, "msg": "token expired"}`)
	})
	require.NoError(t, fx.manager.SetToken("stale"))

	decision, err := fx.guard.Navigate(context.Background(), "/workbench")
	require.NoError(t, err)
	assert.Equal(t, RedirectLogin, decision)
	assert.Empty(t, fx.manager.Token(), "the stale token is cleared, not retried")
}

func TestGuardSupersededNavigation(t *testing.T) {
	release := make(chan struct{})
	fx := newGuardFixture(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		validUserInfo(w, r)
	})
	require.NoError(t, fx.manager.SetToken("tok"))

	firstDone := make(chan error, 1)
	go func() {
		_, err := fx.guard.Navigate(context.Background(), "/workbench")
		firstDone <- err
	}()

	// Wait for the first evaluation to reach the identity fetch.
	require.Eventually(t, func() bool {
		return fx.calls.Load() == 1
	}, 5*time.Second, time.Millisecond)

	// A second navigation supersedes the first and resolves on its own.
	secondDone := make(chan error, 1)
	go func() {
		_, err := fx.guard.Navigate(context.Background(), "/project")
		secondDone <- err
	}()
	require.Eventually(t, func() bool {
		return fx.calls.Load() == 2
	}, 5*time.Second, time.Millisecond)
	close(release)

	assert.ErrorIs(t, <-firstDone, ErrSuperseded)
	assert.NoError(t, <-secondDone)
	assert.Equal(t, []string{"admin"}, fx.manager.Current().Roles)
}

func TestGuardResolveFollowsRedirects(t *testing.T) {
	fx := newGuardFixture(t, validUserInfo)

	assert.Equal(t, "/workbench", fx.guard.Resolve("/"))
	assert.Equal(t, "/environment/list", fx.guard.Resolve("/environment"))
	assert.Equal(t, "/automation/web/dashboard", fx.guard.Resolve("/automation"))
	assert.Equal(t, "/system/user", fx.guard.Resolve("/system"))
	assert.Equal(t, "/project", fx.guard.Resolve("/project"))
}
