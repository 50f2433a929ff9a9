// Package auth implements the gateway between the platform's auth
// endpoints and the session state. It is the only writer of the session;
// everything else holds the read-only view.
package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/yanmoais/project-management-platform/internal/rest"
	"github.com/yanmoais/project-management-platform/internal/session"
)

const bearerPrefix = "Bearer "

// Credentials are the login form fields. The backend accepts a username
// in the email field as well.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration are the sign-up form fields.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPrecedence selects which token location wins when a login response
// carries more than one. The backend convention is header-first; the
// payload-first order exists because neither convention is documented as
// authoritative.
type TokenPrecedence int

const (
	HeaderFirst TokenPrecedence = iota
	PayloadFirst
)

// GatewayOption mutates gateway construction.
type GatewayOption func(*Gateway)

// WithTokenPrecedence overrides the default header-first token extraction.
func WithTokenPrecedence(p TokenPrecedence) GatewayOption {
	return func(g *Gateway) {
		g.precedence = p
	}
}

// Gateway mediates between server auth responses and the session.
type Gateway struct {
	client     *rest.Client
	session    *session.Manager
	precedence TokenPrecedence
}

// NewGateway builds the gateway. It receives the concrete session manager;
// no other component should.
func NewGateway(client *rest.Client, manager *session.Manager, optFns ...GatewayOption) *Gateway {
	g := &Gateway{
		client:     client,
		session:    manager,
		precedence: HeaderFirst,
	}
	for _, fn := range optFns {
		fn(g)
	}
	return g
}

// Login posts the credentials and stores whatever token the response
// yields. A response without a token still succeeds; the caller decides
// what an unauthenticated outcome means by checking the session afterward.
func (g *Gateway) Login(ctx context.Context, creds Credentials) error {
	payload, err := g.client.Do(ctx, rest.Spec{
		Path:   "/api/login",
		Method: http.MethodPost,
		Body:   creds,
	})
	if err != nil {
		return err
	}

	token := g.extractToken(payload)
	if token == "" {
		return nil
	}
	return g.session.SetToken(token)
}

// Register creates a new account. It does not touch the session.
func (g *Gateway) Register(ctx context.Context, reg Registration) error {
	_, err := g.client.Do(ctx, rest.Spec{
		Path:   "/api/register",
		Method: http.MethodPost,
		Body:   reg,
	})
	return err
}

// FetchCurrentUser resolves the identity behind the current token and
// commits it to the session, normalizing an empty role list to the
// default role. Failures propagate unchanged; the caller decides the
// session's disposition. A cancelled context after the fetch — a
// superseded navigation — commits nothing.
func (g *Gateway) FetchCurrentUser(ctx context.Context) error {
	payload, err := g.client.Do(ctx, rest.Spec{
		Path:   "/api/user/info",
		Method: http.MethodGet,
	})
	if err != nil {
		return err
	}

	var info struct {
		Name        string   `json:"name"`
		Avatar      string   `json:"avatar"`
		Roles       []string `json:"roles"`
		Permissions []string `json:"permissions"`
	}
	if err := payload.Decode(&info); err != nil {
		return err
	}

	// A superseded evaluation must not mutate shared state.
	if err := ctx.Err(); err != nil {
		return err
	}

	roles := info.Roles
	if len(roles) == 0 {
		roles = []string{session.DefaultRole}
	}
	return g.session.SetIdentity(info.Name, info.Avatar, roles, info.Permissions)
}

// Logout notifies the server best-effort, then tears the session down
// locally. It never fails: a server error is logged and swallowed, and
// the session and persisted token are cleared in every case.
func (g *Gateway) Logout(ctx context.Context) error {
	if _, err := g.client.Do(ctx, rest.Spec{
		Path:   "/api/logout",
		Method: http.MethodPost,
	}); err != nil {
		log.Printf("logout request failed (session cleared anyway): %v", err)
	}

	if err := g.session.Reset(); err != nil {
		log.Printf("failed to clear persisted token: %v", err)
	}
	return nil
}

func (g *Gateway) extractToken(payload *rest.Payload) string {
	header := headerToken(payload)
	body := bodyToken(payload)
	if g.precedence == PayloadFirst && body != "" {
		return body
	}
	if header != "" {
		return header
	}
	return body
}

// headerToken reads a bearer-prefixed Authorization response header.
func headerToken(payload *rest.Payload) string {
	value := payload.Header.Get("Authorization")
	if strings.HasPrefix(value, bearerPrefix) {
		return strings.TrimSpace(value[len(bearerPrefix):])
	}
	return ""
}

// bodyToken reads a token field from the payload data, falling back to a
// legacy top-level token on the raw envelope.
func bodyToken(payload *rest.Payload) string {
	var inner struct {
		Token string `json:"token"`
	}
	if err := payload.Decode(&inner); err == nil && inner.Token != "" {
		return inner.Token
	}

	var outer struct {
		Token string `json:"token"`
	}
	if len(payload.Raw) > 0 {
		if err := json.Unmarshal(payload.Raw, &outer); err == nil {
			return outer.Token
		}
	}
	return ""
}
