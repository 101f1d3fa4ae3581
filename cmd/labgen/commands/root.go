// Package commands implements the CLI commands for the labgen generator.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/labgen/internal/app"
	"go.trai.ch/labgen/internal/build"
)

// CLI represents the command line interface for labgen.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "labgen",
		Short:         "Generate the virtual lab matrix configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Catalog file (default: discover labgen.yaml or use the built-in catalog)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newCatalogCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects the command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("distro", nil, "Distribution to generate records for (repeatable, replaces the catalog list)")
	cmd.Flags().StringSlice("variant", nil, "Build variant to generate records for (repeatable, replaces the catalog list)")
	cmd.Flags().Bool("no-variants", false, "Generate plain records only")
}

func catalogOptions(cmd *cobra.Command) app.CatalogOptions {
	configPath, _ := cmd.Flags().GetString("config")
	distros, _ := cmd.Flags().GetStringSlice("distro")
	variants, _ := cmd.Flags().GetStringSlice("variant")
	noVariants, _ := cmd.Flags().GetBool("no-variants")
	return app.CatalogOptions{
		ConfigPath:    configPath,
		Distributions: distros,
		Variants:      variants,
		NoVariants:    noVariants,
	}
}
