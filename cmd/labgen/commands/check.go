package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/labgen/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify a generated configuration matches the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			status, err := c.app.Check(cmd.Context(), app.GenerateOptions{
				CatalogOptions: catalogOptions(cmd),
				Output:         output,
			})
			if status != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", output, status)
			}
			return err
		},
	}
	cmd.Flags().StringP("output", "o", "", "Generated configuration file to verify")
	_ = cmd.MarkFlagRequired("output")
	addCatalogFlags(cmd)
	return cmd
}
