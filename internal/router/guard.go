package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yanmoais/project-management-platform/internal/auth"
	"github.com/yanmoais/project-management-platform/internal/session"
)

// Decision is the outcome of one guard evaluation.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// RedirectLogin replaces the navigation with the login route.
	RedirectLogin
	// RedirectHome replaces the navigation with the application root.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

var (
	// ErrUnknownRoute reports a navigation target missing from the registry.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrSuperseded reports an evaluation replaced by a newer navigation
	// before it could finish resolving identity.
	ErrSuperseded = errors.New("navigation superseded")
)

// Guard decides, per route transition, whether to proceed, redirect to
// login, or suspend while the identity behind an existing token resolves.
// Evaluations are independent: concurrent navigations each re-check state
// rather than sharing an in-flight identity fetch. Each evaluation takes a
// generation and cancels its predecessor, so a superseded fetch can never
// apply a stale identity.
type Guard struct {
	routes  *Registry
	session session.Reader
	auth    *auth.Gateway

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewGuard builds the guard over the route registry, session view, and
// auth gateway.
func NewGuard(routes *Registry, reader session.Reader, gateway *auth.Gateway) *Guard {
	return &Guard{
		routes:  routes,
		session: reader,
		auth:    gateway,
	}
}

// Navigate evaluates one transition to the target path.
func (g *Guard) Navigate(ctx context.Context, target string) (Decision, error) {
	route, ok := g.routes.Lookup(target)
	if !ok {
		return RedirectLogin, fmt.Errorf("%w: %s", ErrUnknownRoute, target)
	}

	token := g.session.Token()

	if route.RequiresAuth && token == "" {
		return RedirectLogin, nil
	}
	if token != "" && route.Path == LoginPath {
		return RedirectHome, nil
	}

	if token != "" && len(g.session.Current().Roles) == 0 {
		return g.resolveIdentity(ctx)
	}

	return Allow, nil
}

// Resolve follows a structural route's redirect chain to the view that
// actually renders. Used when navigating to a grouping node.
func (g *Guard) Resolve(target string) string {
	seen := map[string]bool{}
	for {
		route, ok := g.routes.Lookup(target)
		if !ok || route.Redirect == "" || seen[target] {
			return target
		}
		seen[target] = true
		target = route.Redirect
	}
}

// resolveIdentity suspends the transition on a current-user fetch. Success
// lets the original navigation proceed; failure means the token is invalid
// or expired, so the session is torn down and the user lands on login —
// the original destination is discarded, not retried.
func (g *Guard) resolveIdentity(ctx context.Context) (Decision, error) {
	navCtx, gen := g.begin(ctx)
	defer g.end(gen)

	err := g.auth.FetchCurrentUser(navCtx)
	if g.superseded(gen) {
		return RedirectLogin, ErrSuperseded
	}
	if err != nil {
		_ = g.auth.Logout(ctx)
		return RedirectLogin, nil
	}
	return Allow, nil
}

// begin registers a new evaluation generation, cancelling the previous
// evaluation's context.
func (g *Guard) begin(ctx context.Context) (context.Context, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	g.gen++
	navCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	return navCtx, g.gen
}

func (g *Guard) end(gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gen == gen && g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

func (g *Guard) superseded(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen != gen
}
