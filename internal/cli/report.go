package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yanmoais/project-management-platform/internal/api"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate test reports",
}

var reportPackagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List the product packages available for reporting",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/report"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		packages, err := api.ProductPackages(cmd.Context(), app.Client)
		if err != nil {
			return err
		}
		return renderJSON(packages)
	},
}

var (
	reportJSON string
	reportOut  string
)

var reportGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a report document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/report"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		if reportJSON == "" || !json.Valid([]byte(reportJSON)) {
			return fmt.Errorf("--data must be a JSON object describing the report")
		}

		doc, filename, err := api.GenerateReport(cmd.Context(), app.Client, json.RawMessage(reportJSON))
		if err != nil {
			return err
		}

		out := reportOut
		if out == "" {
			out = filename
		}
		if out == "" {
			out = "report.docx"
		}
		if err := os.WriteFile(out, doc, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		pterm.Success.Printfln("Report written to %s (%d bytes)", out, len(doc))
		return nil
	},
}

func init() {
	reportGenerateCmd.Flags().StringVar(&reportJSON, "data", "", "report request as a JSON object")
	reportGenerateCmd.Flags().StringVar(&reportOut, "out", "", "output file (defaults to the server-suggested name)")

	reportCmd.AddCommand(reportPackagesCmd)
	reportCmd.AddCommand(reportGenerateCmd)
}
