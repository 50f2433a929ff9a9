package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yanmoais/project-management-platform/internal/api"
	"github.com/yanmoais/project-management-platform/internal/store"
)

var automationCmd = &cobra.Command{
	Use:   "automation",
	Short: "Automation platform",
}

var automationWebCmd = &cobra.Command{
	Use:   "web",
	Short: "Web automation",
}

var automationInterfaceCmd = &cobra.Command{
	Use:   "interface",
	Short: "Interface automation",
}

// product management under web automation

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage web automation product projects",
}

var productJSON string

func decodeProductJSON() (json.RawMessage, error) {
	if productJSON == "" {
		return nil, fmt.Errorf("--data is required (a JSON object)")
	}
	if !json.Valid([]byte(productJSON)) {
		return nil, fmt.Errorf("--data is not valid JSON")
	}
	return json.RawMessage(productJSON), nil
}

var productCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/web/product"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		body, err := decodeProductJSON()
		if err != nil {
			return err
		}
		if err := api.CreateProductProject(cmd.Context(), app.Client, body); err != nil {
			return err
		}
		pterm.Success.Println("Product project created")
		return nil
	},
}

var productUpdateCmd = &cobra.Command{
	Use:   "update <project-id>",
	Short: "Update a product project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/web/product"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project-id %q: %w", args[0], err)
		}
		body, err := decodeProductJSON()
		if err != nil {
			return err
		}
		if err := api.UpdateProductProject(cmd.Context(), app.Client, id, body); err != nil {
			return err
		}
		pterm.Success.Println("Product project updated")
		return nil
	},
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a product project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/web/product"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project-id %q: %w", args[0], err)
		}
		if err := api.DeleteProductProject(cmd.Context(), app.Client, id); err != nil {
			return err
		}
		pterm.Success.Println("Product project deleted")
		return nil
	},
}

var productLogsCmd = &cobra.Command{
	Use:   "logs <project-id>",
	Short: "Show the operation log of a product project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/web/product"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project-id %q: %w", args[0], err)
		}
		logs, err := api.ProductProjectLogs(cmd.Context(), app.Client, id)
		if err != nil {
			return err
		}
		return renderJSON(logs)
	},
}

var productUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a product screenshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/web/product"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		result, err := api.UploadProductImage(cmd.Context(), app.Client, f.Name(), f)
		if err != nil {
			return err
		}
		pterm.Success.Println("Image uploaded")
		return renderJSON(result)
	},
}

var productOptionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the product project select options",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/web/product"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		options, err := api.ProductProjectOptions(cmd.Context(), app.Client)
		if err != nil {
			return err
		}
		return renderJSON(options)
	},
}

var enumValue string

var productEnumsCmd = &cobra.Command{
	Use:   "enums <field>",
	Short: "Show or extend the values of a product enum field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/web/product"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		if enumValue != "" {
			body := map[string]string{"field": args[0], "value": enumValue}
			if err := api.AddProductEnumValue(cmd.Context(), app.Client, body); err != nil {
				return err
			}
			pterm.Success.Printfln("Added %q to %s", enumValue, args[0])
			return nil
		}

		values, err := api.ProductEnumValues(cmd.Context(), app.Client, args[0])
		if err != nil {
			return err
		}
		return renderJSON(values)
	},
}

// interface automation project management

var interfaceProjectJSON string

var interfaceProjectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an interface automation project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/interface/project"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		if interfaceProjectJSON == "" || !json.Valid([]byte(interfaceProjectJSON)) {
			return fmt.Errorf("--data must be a JSON object")
		}
		if err := api.AddInterfaceProject(cmd.Context(), app.Client, json.RawMessage(interfaceProjectJSON)); err != nil {
			return err
		}
		pterm.Success.Println("Interface project created")
		return nil
	},
}

var interfaceProjectUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an interface automation project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/interface/project"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		if interfaceProjectJSON == "" || !json.Valid([]byte(interfaceProjectJSON)) {
			return fmt.Errorf("--data must be a JSON object")
		}
		if err := api.UpdateInterfaceProject(cmd.Context(), app.Client, json.RawMessage(interfaceProjectJSON)); err != nil {
			return err
		}
		pterm.Success.Println("Interface project updated")
		return nil
	},
}

var interfaceProjectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete an interface automation project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/interface/project"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project-id %q: %w", args[0], err)
		}
		if err := api.DeleteInterfaceProject(cmd.Context(), app.Client, id); err != nil {
			return err
		}
		pterm.Success.Println("Interface project deleted")
		return nil
	},
}

// newInterfaceAreaCommand builds the `automation interface <area> list`
// command for one asset area.
func newInterfaceAreaCommand(area string) *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   area,
		Short: "Interface automation " + area + " assets",
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + area + " assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := navigate(cmd, "/automation/interface/"+area); err != nil {
				return err
			}
			app := mustApp(cmd.Context())

			res := store.NewResource("interface-"+area, api.InterfaceList(app.Client, area))
			data, err := res.Fetch(cmd.Context(), parseParams(params))
			if err != nil {
				return err
			}
			return renderJSON(data)
		},
	}
	listCmd.Flags().StringArrayVar(&params, "param", nil, "query parameter as key=value (repeatable)")
	cmd.AddCommand(listCmd)
	return cmd
}

func init() {
	automationWebCmd.AddCommand(newPageCommand("dashboard", "web automation dashboard", "/automation/web/dashboard", api.WebDashboard))
	automationWebCmd.AddCommand(newPageCommand("manage", "use case management", "/automation/web/manage", api.WebManagement))

	productListCmd := &cobra.Command{
		Use:   "list",
		Short: "List product projects",
	}
	var productListParams []string
	productListCmd.Flags().StringArrayVar(&productListParams, "param", nil, "query parameter as key=value (repeatable)")
	productListCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := navigate(cmd, "/automation/web/product"); err != nil {
			return err
		}
		app := mustApp(cmd.Context())
		res := store.NewResource("product-projects", api.ListProductProjects(app.Client))
		data, err := res.Fetch(cmd.Context(), parseParams(productListParams))
		if err != nil {
			return err
		}
		return renderJSON(data)
	}

	for _, cmd := range []*cobra.Command{productCreateCmd, productUpdateCmd} {
		cmd.Flags().StringVar(&productJSON, "data", "", "project fields as a JSON object")
	}
	productEnumsCmd.Flags().StringVar(&enumValue, "add", "", "append this value instead of listing")

	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productCreateCmd)
	productCmd.AddCommand(productUpdateCmd)
	productCmd.AddCommand(productDeleteCmd)
	productCmd.AddCommand(productLogsCmd)
	productCmd.AddCommand(productUploadCmd)
	productCmd.AddCommand(productOptionsCmd)
	productCmd.AddCommand(productEnumsCmd)
	automationWebCmd.AddCommand(productCmd)

	for _, cmd := range []*cobra.Command{interfaceProjectAddCmd, interfaceProjectUpdateCmd} {
		cmd.Flags().StringVar(&interfaceProjectJSON, "data", "", "project fields as a JSON object")
	}

	for _, area := range api.InterfaceAreas {
		areaCmd := newInterfaceAreaCommand(area)
		if area == "project" {
			areaCmd.AddCommand(interfaceProjectAddCmd)
			areaCmd.AddCommand(interfaceProjectUpdateCmd)
			areaCmd.AddCommand(interfaceProjectDeleteCmd)
		}
		automationInterfaceCmd.AddCommand(areaCmd)
	}

	automationCmd.AddCommand(automationWebCmd)
	automationCmd.AddCommand(automationInterfaceCmd)
}
