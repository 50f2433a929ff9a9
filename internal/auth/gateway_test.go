package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yanmoais/project-management-platform/internal/rest"
	"github.com/yanmoais/project-management-platform/internal/session"
)

type silentNotifier struct{}

func (silentNotifier) Error(string) {}

func newTestGateway(t *testing.T, handler http.HandlerFunc, opts ...GatewayOption) (*Gateway, *session.Manager) {
	t.Helper()
	srv := httptest.NewServer(handler)
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

	return NewGateway(client, manager, opts...), manager
}

func TestLoginTokenFromHeader(t *testing.T) {
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer header-token")
		io.WriteString(w, `{"code": 200, "data": {"token": "body-token"}}`)
	})

	require.NoError(t, gw.Login(context.Background(), Credentials{Email: "dev@example.com", Password: "pw"}))
	assert.Equal(t, "header-token", manager.Token(), "header wins under the default precedence")
}

func TestLoginTokenPayloadFirst(t *testing.T) {
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer header-token")
		io.WriteString(w, `{"code": 200, "data": {"token": "body-token"}}`)
	}, WithTokenPrecedence(PayloadFirst))

	require.NoError(t, gw.Login(context.Background(), Credentials{Email: "dev@example.com", Password: "pw"}))
	assert.Equal(t, "body-token", manager.Token())
}

func TestLoginTokenFromPayloadData(t *testing.T) {
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"code": 200, "data": {"token": "body-token"}}`)
	})

	require.NoError(t, gw.Login(context.Background(), Credentials{Email: "dev@example.com", Password: "pw"}))
	assert.Equal(t, "body-token", manager.Token())
}

func TestLoginTokenFromLegacyTopLevel(t *testing.T) {
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"code": 200, "token": "legacy-token", "data": {}}`)
	})

	require.NoError(t, gw.Login(context.Background(), Credentials{Email: "dev@example.com", Password: "pw"}))
	assert.Equal(t, "legacy-token", manager.Token())
}

func TestLoginIgnoresNonBearerHeader(t *testing.T) {
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Basic abc123")
		io.WriteString(w, `{"code": 200, "data": {"token": "body-token"}}`)
	})

	require.NoError(t, gw.Login(context.Background(), Credentials{Email: "dev@example.com", Password: "pw"}))
	assert.Equal(t, "body-token", manager.Token())
}

func TestLoginWithoutTokenStillResolves(t *testing.T) {
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"code": 200, "msg": "ok", "data": {}}`)
	})

	require.NoError(t, gw.Login(context.Background(), Credentials{Email: "dev@example.com", Password: "pw"}))
	assert.Empty(t, manager.Token(), "session stays unauthenticated; no error is raised")
}

func TestLoginSendsCredentialFields(t *testing.T) {
	var gotBody string
	gw, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		io.WriteString(w, `{"code": 200, "data": {"token": "t"}}`)
	})

	require.NoError(t, gw.Login(context.Background(), Credentials{Email: "dev@example.com", Password: "pw"}))
	assert.JSONEq(t, `{"email": "dev@example.com", "password": "pw"}`, gotBody)
}

func TestLoginBusinessRejectionPropagates(t *testing.T) {
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"code": 4001, "msg": "bad credentials"}`)
	})

	err := gw.Login(context.Background(), Credentials{Email: "dev@example.com", Password: "nope"})
	require.Error(t, err)

	var berr *rest.BusinessError
	require.ErrorAs(t, err, &berr)
	assert.Empty(t, manager.Token())
}

func TestFetchCurrentUserCommitsIdentity(t *testing.T) {
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"code": 200, "data": {
			"name": "dev", "avatar": "/a.png",
			"roles": ["admin"], "permissions": ["project:read"]
		}}`)
	})
	require.NoError(t, manager.SetToken("tok"))

	require.NoError(t, gw.FetchCurrentUser(context.Background()))

	cur := manager.Current()
	assert.Equal(t, "dev", cur.Name)
	assert.Equal(t, "/a.png", cur.Avatar)
	assert.Equal(t, []string{"admin"}, cur.Roles)
	assert.Equal(t, []string{"project:read"}, cur.Permissions)
}

func TestFetchCurrentUserNormalizesEmptyRoles(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"roles absent", `{"code": 200, "data": {"name": "dev"}}`},
		{"roles empty", `{"code": 200, "data": {"name": "dev", "roles": []}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tc.body)
			})

			require.NoError(t, gw.FetchCurrentUser(context.Background()))
			assert.Equal(t, []string{session.DefaultRole}, manager.Current().Roles)
		})
	}
}

func TestFetchCurrentUserRejectionPropagates(t *testing.T) {
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"code": 4001, "msg": "token expired"}`)
	})
	require.NoError(t, manager.SetToken("stale"))

	err := gw.FetchCurrentUser(context.Background())
	require.Error(t, err)
	assert.Empty(t, manager.Current().Roles, "a failed fetch must not commit an identity")
}

func TestFetchCurrentUserCancelledContextCommitsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		// The navigation is superseded while the response is in flight.
		cancel()
		io.WriteString(w, `{"code": 200, "data": {"name": "dev", "roles": ["admin"]}}`)
	})

	err := gw.FetchCurrentUser(ctx)
	require.Error(t, err)
	assert.Empty(t, manager.Current().Name)
}

func TestLogoutAlwaysClearsSession(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server accepts", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"code": 200, "msg": "bye"}`)
		}},
		{"server errors", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw, manager := newTestGateway(t, tc.handler)
			require.NoError(t, manager.SetToken("tok"))
			require.NoError(t, manager.SetIdentity("dev", "", []string{"admin"}, nil))

			require.NoError(t, gw.Logout(context.Background()))
			assert.Empty(t, manager.Token())
			assert.Empty(t, manager.Current().Name)
		})
	}
}

func TestRegisterSendsForm(t *testing.T) {
	var gotPath, gotBody string
	gw, manager := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		io.WriteString(w, `{"code": 200, "msg": "created"}`)
	})

	require.NoError(t, gw.Register(context.Background(), Registration{
		Name:     "dev",
		Email:    "dev@example.com",
		Password: "pw",
	}))
	assert.Equal(t, "/api/register", gotPath)
	assert.JSONEq(t, `{"name": "dev", "email": "dev@example.com", "password": "pw"}`, gotBody)
	assert.Empty(t, manager.Token(), "registration never logs the user in")
}
