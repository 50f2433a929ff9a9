package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yanmoais/project-management-platform/internal/auth"
	"github.com/yanmoais/project-management-platform/internal/router"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the platform",
	Long: `Authenticates with the platform server using email (or username) and
password. The issued bearer token is persisted, so subsequent commands
run against the same session until logout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := mustApp(cmd.Context())

		// An authenticated user may not see the login page.
		if err := navigate(cmd, router.LoginPath); err != nil {
			if errors.Is(err, errRedirectedHome) {
				return nil
			}
			return err
		}

		email, password := loginEmail, loginPassword
		if email == "" && !app.Config.NonInteractive {
			email, _ = pterm.DefaultInteractiveTextInput.Show("Email")
		}
		if password == "" && !app.Config.NonInteractive {
			password, _ = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
		}
		if email == "" || password == "" {
			return fmt.Errorf("email and password are required (use --email and --password)")
		}

		if err := app.Gateway.Login(cmd.Context(), auth.Credentials{
			Email:    email,
			Password: password,
		}); err != nil {
			return err
		}

		// The server may accept the credentials without issuing a token;
		// only the session tells us whether we are actually logged in.
		if app.Session.Token() == "" {
			return fmt.Errorf("login succeeded but the server issued no token")
		}

		if err := app.Gateway.FetchCurrentUser(cmd.Context()); err != nil {
			return err
		}

		current := app.Session.Current()
		pterm.Success.Printfln("Logged in as %s", current.Name)
		return nil
	},
}

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new platform account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := mustApp(cmd.Context())

		if registerName == "" || registerEmail == "" || registerPassword == "" {
			return fmt.Errorf("--name, --email and --password are all required")
		}

		if err := app.Gateway.Register(cmd.Context(), auth.Registration{
			Name:     registerName,
			Email:    registerEmail,
			Password: registerPassword,
		}); err != nil {
			return err
		}

		pterm.Success.Println("Account created; log in with `pmpctl login`")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from the platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := mustApp(cmd.Context())

		// Logout never fails: the server notification is best-effort and
		// the local session is cleared in every case.
		_ = app.Gateway.Logout(cmd.Context())

		pterm.Success.Println("Logged out successfully")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Display the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := mustApp(cmd.Context())

		if app.Session.Token() == "" {
			return fmt.Errorf("not logged in")
		}

		if len(app.Session.Current().Roles) == 0 {
			if err := app.Gateway.FetchCurrentUser(cmd.Context()); err != nil {
				return fmt.Errorf("session is no longer valid; run `pmpctl login`: %w", err)
			}
		}

		current := app.Session.Current()
		pterm.DefaultSection.Println("Session")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "NAME\t%s\n", current.Name)
		if current.Avatar != "" {
			fmt.Fprintf(w, "AVATAR\t%s\n", current.Avatar)
		}
		fmt.Fprintf(w, "ROLES\t%s\n", strings.Join(current.Roles, ", "))
		fmt.Fprintf(w, "PERMISSIONS\t%s\n", strings.Join(current.Permissions, ", "))
		w.Flush()
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email or username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")

	registerCmd.Flags().StringVar(&registerName, "name", "", "display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password")
}
