// Package session owns the authenticated identity for the running process:
// one in-memory Session, rehydrated from a persistent file store at startup
// and written through on every mutation.
//
// Every component reads the session through the Reader interface. The
// mutating methods live on Manager, and the auth gateway is the only
// component constructed with the concrete type, which keeps the
// single-writer discipline structural rather than conventional.
package session

import (
	"sync"

	"golang.org/x/oauth2"
)

// DefaultRole is substituted when the server returns an empty role list.
// Once populated, a session's roles are never empty.
const DefaultRole = "ROLE_DEFAULT"

// Session is the authenticated identity and credential held by the client.
type Session struct {
	Token       string
	Name        string
	Avatar      string
	Roles       []string
	Permissions []string
}

// Authenticated reports whether a bearer token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Reader is the read-only view of the session state.
type Reader interface {
	// Current returns a snapshot of the session.
	Current() Session
	// Token returns the current bearer token, empty when unauthenticated.
	Token() string
	// Subscribe returns a channel receiving a snapshot after each mutation
	// and a function that cancels the subscription.
	Subscribe() (<-chan Session, func())
}

// Manager holds the process-wide session. It implements Reader; the
// mutating methods (SetToken, SetIdentity, Reset) are reserved for the
// auth gateway.
type Manager struct {
	store *FileStore

	mu      sync.RWMutex
	cur     Session
	subs    map[int]chan Session
	nextSub int
}

var _ Reader = (*Manager)(nil)

// NewManager creates the session manager and rehydrates it from the store.
func NewManager(store *FileStore) (*Manager, error) {
	m := &Manager{
		store: store,
		subs:  make(map[int]chan Session),
	}

	token, err := store.LoadToken()
	if err != nil {
		return nil, err
	}
	snap, err := store.LoadUser()
	if err != nil {
		return nil, err
	}

	m.cur.Token = token
	if token != "" && snap != nil {
		m.cur.Name = snap.Username
		m.cur.Avatar = snap.Avatar
		m.cur.Roles = append([]string(nil), snap.Roles...)
	}
	return m, nil
}

// Current returns a snapshot of the session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Token returns the current bearer token.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur.Token
}

// Subscribe registers a change listener. The returned channel is buffered;
// a listener that falls behind sees only the most recent snapshot.
func (m *Manager) Subscribe() (<-chan Session, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan Session, 1)
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
	return ch, cancel
}

// TokenSource adapts the session to an oauth2.TokenSource so the HTTP
// pipeline can attach the bearer credential. An empty token yields a
// token with no access token; the pipeline skips the header in that case.
func (m *Manager) TokenSource() oauth2.TokenSource {
	return tokenSource{reader: m}
}

// SetToken stores the bearer token and writes it through to the store.
// Reserved for the auth gateway.
func (m *Manager) SetToken(token string) error {
	m.mu.Lock()
	m.cur.Token = token
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.publish(snap)
	return m.store.SaveToken(token)
}

// SetIdentity stores the resolved identity and persists the denormalized
// user snapshot. Roles must already be normalized by the caller.
// Reserved for the auth gateway.
func (m *Manager) SetIdentity(name, avatar string, roles, permissions []string) error {
	m.mu.Lock()
	m.cur.Name = name
	m.cur.Avatar = avatar
	m.cur.Roles = append([]string(nil), roles...)
	m.cur.Permissions = append([]string(nil), permissions...)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.publish(snap)
	return m.store.SaveUser(&UserSnapshot{
		Username: name,
		Avatar:   avatar,
		Roles:    roles,
	})
}

// Reset clears the in-memory session and removes the persisted token.
// The user snapshot is left in place, matching the logout contract.
// Reserved for the auth gateway.
func (m *Manager) Reset() error {
	m.mu.Lock()
	m.cur = Session{}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.publish(snap)
	return m.store.DeleteToken()
}

func (m *Manager) snapshotLocked() Session {
	s := m.cur
	s.Roles = append([]string(nil), m.cur.Roles...)
	s.Permissions = append([]string(nil), m.cur.Permissions...)
	return s
}

func (m *Manager) publish(snap Session) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.subs {
		// Replace a stale pending snapshot rather than blocking the writer.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

type tokenSource struct {
	reader Reader
}

func (t tokenSource) Token() (*oauth2.Token, error) {
	return &oauth2.Token{
		AccessToken: t.reader.Token(),
		TokenType:   "Bearer",
	}, nil
}
