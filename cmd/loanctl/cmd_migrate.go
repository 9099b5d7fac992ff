package main

import (
	"github.com/spf13/cobra"

	"github.com/campuslib/loanledger-go/config"
	"github.com/campuslib/loanledger-go/migrations"
)

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenSQLDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return migrations.Up(cmd.Context(), db)
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenSQLDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return migrations.Down(cmd.Context(), db)
}
