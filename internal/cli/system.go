package cli

import (
	"github.com/spf13/cobra"
	"github.com/yanmoais/project-management-platform/internal/api"
	"github.com/yanmoais/project-management-platform/internal/store"
)

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "System management",
}

// newSystemSectionCommand builds the `system <section> list` command for
// one system-management area. All areas share the same list shape.
func newSystemSectionCommand(section string) *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   section,
		Short: "System " + section + " management",
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + section + " records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := navigate(cmd, "/system/"+section); err != nil {
				return err
			}
			app := mustApp(cmd.Context())

			res := store.NewResource("system-"+section, api.SystemList(app.Client, section))
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
	for _, section := range api.SystemSections {
		systemCmd.AddCommand(newSystemSectionCommand(section))
	}
}
