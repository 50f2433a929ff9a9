package cli

import (
	"context"
	"net/http"

	"github.com/yanmoais/project-management-platform/internal/auth"
	"github.com/yanmoais/project-management-platform/internal/config"
	"github.com/yanmoais/project-management-platform/internal/rest"
	"github.com/yanmoais/project-management-platform/internal/router"
	"github.com/yanmoais/project-management-platform/internal/session"
)

type contextKey string

const appKey contextKey = "pmpctl-app"

// App wires the long-lived pieces every command shares: the session, the
// REST client, the auth gateway, and the navigation guard. It is built
// once by the root command and injected into the command context.
type App struct {
	Config  *config.Config
	Session session.Reader
	Gateway *auth.Gateway
	Guard   *router.Guard
	Client  *rest.Client
}

// newApp constructs the application container: file store, session
// manager rehydrated from it, the shared client with the session-backed
// credential source, and the guard over the default route table.
func newApp(cfg *config.Config) (*App, error) {
	fileStore, err := session.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	manager, err := session.NewManager(fileStore)
	if err != nil {
		return nil, err
	}

	client, err := rest.NewClient(cfg.ServerURL,
		rest.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		rest.WithTokenSource(manager.TokenSource()),
	)
	if err != nil {
		return nil, err
	}

	gateway := auth.NewGateway(client, manager)
	guard := router.NewGuard(router.DefaultRegistry(), manager, gateway)

	return &App{
		Config:  cfg,
		Session: manager,
		Gateway: gateway,
		Guard:   guard,
		Client:  client,
	}, nil
}

// injectApp adds the app container to the command context.
func injectApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey, app)
}

// mustApp retrieves the app container or panics; commands run only after
// the root command injected it.
func mustApp(ctx context.Context) *App {
	app, ok := ctx.Value(appKey).(*App)
	if !ok {
		panic("pmpctl: app not found in context - this is a bug in pmpctl")
	}
	return app
}
