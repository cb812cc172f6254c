package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"yatube/internal/config"
	"yatube/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := migrateUp(cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(mg *database.Migrator) error {
			if err := mg.Down(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "rolled back one migration")
			return nil
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(mg *database.Migrator) error {
			version, dirty, err := mg.Version()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatVersion(version, dirty))
			return nil
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}

func migrateUp(cfg *config.Config) error {
	mg, err := database.NewMigrator(cfg.MigrationURL())
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}

func withMigrator(fn func(mg *database.Migrator) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mg, err := database.NewMigrator(cfg.MigrationURL())
	if err != nil {
		return err
	}
	defer mg.Close()
	return fn(mg)
}

func formatVersion(version uint, dirty bool) string {
	if version == 0 {
		return "no migrations applied"
	}
	if dirty {
		return fmt.Sprintf("version %d (dirty)", version)
	}
	return fmt.Sprintf("version %d", version)
}
