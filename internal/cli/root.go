// Package cli implements the yatube command line: serving the site,
// managing the schema and clearing the page cache.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"yatube/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "yatube",
	Short: "Yatube: a small blogging and social network site",
	Long: `Yatube serves a blogging site where users publish posts, file them
under groups, comment on each other's posts and follow authors.

Configuration comes from the environment (and a .env file); --config
points at an optional YAML file whose keys override it.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(cacheCmd)
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(configPath)
}
