package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yanmoais/project-management-platform/internal/api"
	"github.com/yanmoais/project-management-platform/internal/store"
)

var environmentCmd = &cobra.Command{
	Use:     "environment",
	Aliases: []string{"env"},
	Short:   "Manage test environments",
}

var envListParams []string

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List test environments",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/environment/list"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		res := store.NewResource("environment", api.ListEnvironments(app.Client))
		page, err := res.Fetch(cmd.Context(), parseParams(envListParams))
		if err != nil {
			return err
		}

		pterm.DefaultSection.Printfln("Test Environments (%d)", page.Total)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPROJECT\tNAME\tTYPE\tURL\tSTATUS")
		for _, env := range page.Rows {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				env.EnvID, env.ProjectName, env.EnvName, env.EnvType, env.EnvURL, env.Status)
		}
		w.Flush()
		return nil
	},
}

var envForm api.Environment

var envAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a test environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/environment/list"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		if envForm.ProjectName == "" || envForm.EnvName == "" || envForm.EnvType == "" || envForm.EnvURL == "" {
			return fmt.Errorf("--project, --name, --type and --url are required")
		}
		if err := api.AddEnvironment(cmd.Context(), app.Client, envForm); err != nil {
			return err
		}
		pterm.Success.Println("Environment added")
		return nil
	},
}

var envUpdateCmd = &cobra.Command{
	Use:   "update <env-id>",
	Short: "Update a test environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/environment/list"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid env-id %q: %w", args[0], err)
		}
		envForm.EnvID = id
		if err := api.UpdateEnvironment(cmd.Context(), app.Client, envForm); err != nil {
			return err
		}
		pterm.Success.Println("Environment updated")
		return nil
	},
}

var envDeleteCmd = &cobra.Command{
	Use:   "delete <env-id>",
	Short: "Delete a test environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/environment/list"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid env-id %q: %w", args[0], err)
		}
		if err := api.DeleteEnvironment(cmd.Context(), app.Client, id); err != nil {
			return err
		}
		pterm.Success.Println("Environment deleted")
		return nil
	},
}

var envLogsCmd = &cobra.Command{
	Use:   "logs <env-id>",
	Short: "Show the change log of a test environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/environment/list"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid env-id %q: %w", args[0], err)
		}
		logs, err := api.EnvironmentLogs(cmd.Context(), app.Client, id)
		if err != nil {
			return err
		}
		return renderJSON(logs)
	},
}

func init() {
	envListCmd.Flags().StringArrayVar(&envListParams, "param", nil, "query parameter as key=value (repeatable)")

	for _, cmd := range []*cobra.Command{envAddCmd, envUpdateCmd} {
		cmd.Flags().StringVar(&envForm.ProjectName, "project", "", "project name")
		cmd.Flags().StringVar(&envForm.EnvName, "name", "", "environment name")
		cmd.Flags().StringVar(&envForm.EnvType, "type", "", "environment type")
		cmd.Flags().StringVar(&envForm.EnvURL, "url", "", "environment URL")
		cmd.Flags().StringVar(&envForm.DBType, "db-type", "", "database type")
		cmd.Flags().StringVar(&envForm.DBHost, "db-host", "", "database host")
		cmd.Flags().StringVar(&envForm.DBPort, "db-port", "", "database port")
		cmd.Flags().StringVar(&envForm.DBUser, "db-user", "", "database user")
		cmd.Flags().StringVar(&envForm.DBPassword, "db-password", "", "database password")
		cmd.Flags().StringVar(&envForm.Account, "account", "", "application account")
		cmd.Flags().StringVar(&envForm.Password, "password", "", "application password")
		cmd.Flags().StringVar(&envForm.Status, "status", "", "environment status")
	}

	environmentCmd.AddCommand(envListCmd)
	environmentCmd.AddCommand(envAddCmd)
	environmentCmd.AddCommand(envUpdateCmd)
	environmentCmd.AddCommand(envDeleteCmd)
	environmentCmd.AddCommand(envLogsCmd)
}
