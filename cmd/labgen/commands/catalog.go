package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the records the catalog expands to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Catalog(cmd.Context(), catalogOptions(cmd))
		},
	}
	addCatalogFlags(cmd)
	return cmd
}
