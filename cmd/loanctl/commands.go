package main

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "loanctl",
		Short:         "Manage the library loan ledger",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateUpCmd = &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE:  runMigrateUp,
	}

	migrateDownCmd = &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE:  runMigrateDown,
	}

	demoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Run an end-to-end loan flow against the configured database",
		RunE:  runDemo,
	}
)

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd, demoCmd)
}
