// Package cli is the command surface of the console: one command group
// per feature page, gated by the navigation guard the same way the web
// console gates its routes.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yanmoais/project-management-platform/internal/api"
	"github.com/yanmoais/project-management-platform/internal/config"
)

var (
	serverURL      string
	dataDir        string
	nonInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "pmpctl",
	Short: "Project management platform console",
	Long: `pmpctl is the terminal console for the project management platform.
It covers the workbench, project/requirement/quality tracking, test
environments, the automation platform, system management, and reports.

Log in first with "pmpctl login"; every other command is gated behind the
authenticated session.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if nonInteractive {
			cfg.NonInteractive = true
		}

		app, err := newApp(cfg)
		if err != nil {
			return err
		}

		ctx := config.Inject(cmd.Context(), cfg)
		cmd.SetContext(injectApp(ctx, app))
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "platform API server URL (defaults to $PMP_SERVER)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "session storage directory (defaults to ~/.pmpctl)")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "disable interactive prompts (also set via PMP_NON_INTERACTIVE=1)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	rootCmd.AddCommand(newPageCommand("workbench", "workbench", "/workbench", api.Workbench))
	rootCmd.AddCommand(newPageCommand("my-space", "my space", "/my-space", api.MySpace))
	rootCmd.AddCommand(newPageCommand("project", "project management", "/project", api.Projects))
	rootCmd.AddCommand(newPageCommand("requirement", "requirement management", "/requirement", api.Requirements))
	rootCmd.AddCommand(newPageCommand("development", "development management", "/development", api.Development))
	rootCmd.AddCommand(newPageCommand("deployment", "transfer & deployment", "/deployment", api.Deployment))
	rootCmd.AddCommand(newPageCommand("quality", "quality management", "/quality", api.Quality))
	rootCmd.AddCommand(newPageCommand("uat", "user acceptance", "/uat", api.UserAcceptance))
	rootCmd.AddCommand(newPageCommand("production", "production management", "/production", api.Production))
	rootCmd.AddCommand(newPageCommand("issue", "production issues", "/issue", api.Issues))

	rootCmd.AddCommand(environmentCmd)
	rootCmd.AddCommand(automationCmd)
	rootCmd.AddCommand(systemCmd)
	rootCmd.AddCommand(reportCmd)
}
