package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yanmoais/project-management-platform/internal/rest"
	"github.com/yanmoais/project-management-platform/internal/router"
	"github.com/yanmoais/project-management-platform/internal/store"
)

// navigate runs the guard for the target route and translates the
// decision into command flow: Allow falls through, a login redirect
// becomes an actionable error, a home redirect reports where the user
// actually landed.
func navigate(cmd *cobra.Command, target string) error {
	app := mustApp(cmd.Context())

	// Identity resolution can hit the network; show that something is
	// happening when the guard is about to suspend.
	var spinner *pterm.SpinnerPrinter
	if app.Session.Token() != "" && len(app.Session.Current().Roles) == 0 {
		spinner, _ = pterm.DefaultSpinner.Start("Resolving session...")
	}

	decision, err := app.Guard.Navigate(cmd.Context(), target)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return err
	}

	switch decision {
	case router.Allow:
		return nil
	case router.RedirectHome:
		pterm.Info.Println("Already logged in.")
		return errRedirectedHome
	case router.RedirectLogin:
		return fmt.Errorf("not logged in; run `pmpctl login` first")
	default:
		return fmt.Errorf("unexpected guard decision %s", decision)
	}
}

// errRedirectedHome marks the guard's authenticated-user-on-login-page
// redirect; callers treat it as a clean stop, not a failure.
var errRedirectedHome = fmt.Errorf("redirected to the application root")

// newPageCommand builds the command for a single-endpoint feature page:
// guard the route, run the page's resource fetch, render the payload.
func newPageCommand(use, title, routePath string, bind func(*rest.Client) store.FetchFunc[json.RawMessage]) *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   use,
		Short: "Show the " + title + " page",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := navigate(cmd, routePath); err != nil {
				return err
			}
			app := mustApp(cmd.Context())
			res := store.NewResource(use, bind(app.Client))
			data, err := res.Fetch(cmd.Context(), parseParams(params))
			if err != nil {
				return err
			}
			return renderJSON(data)
		},
	}
	cmd.Flags().StringArrayVar(&params, "param", nil, "query parameter as key=value (repeatable)")
	return cmd
}

// parseParams converts repeated key=value flags into query values.
func parseParams(pairs []string) url.Values {
	values := url.Values{}
	for _, pair := range pairs {
		key, val, found := strings.Cut(pair, "=")
		if !found || key == "" {
			continue
		}
		values.Add(key, val)
	}
	return values
}

// renderJSON pretty-prints a payload to stdout.
func renderJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render payload: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
