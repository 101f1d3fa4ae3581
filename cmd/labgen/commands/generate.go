package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/labgen/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the lab configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			return c.app.Generate(cmd.Context(), app.GenerateOptions{
				CatalogOptions: catalogOptions(cmd),
				Output:         output,
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the configuration to this file instead of stdout")
	addCatalogFlags(cmd)
	return cmd
}
