package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/campuslib/loanledger-go/config"
	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/features/command/closeloan"
	"github.com/campuslib/loanledger-go/features/command/createasset"
	"github.com/campuslib/loanledger-go/features/command/requestloan"
	"github.com/campuslib/loanledger-go/features/command/restoreasset"
	"github.com/campuslib/loanledger-go/features/command/updateasset"
	"github.com/campuslib/loanledger-go/features/query/assethistory"
	"github.com/campuslib/loanledger-go/features/query/assetavailability"
	"github.com/campuslib/loanledger-go/postgresengine"
	"github.com/campuslib/loanledger-go/shell"
)

const demoActor = "loanctl:demo"

// runDemo walks one book through its whole lifecycle: catalogue, edit, lend
// in-library, upgrade to home, return, restore to the first version.
func runDemo(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := config.OpenPGXPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	log := shell.NewSlogLogger(logger)

	engine, err := postgresengine.NewEngineFromPGXPool(pool, postgresengine.WithLogger(log))
	if err != nil {
		return err
	}

	assetID := uuid.New()
	now := time.Now()

	if err := createBook(ctx, engine, log, assetID, now); err != nil {
		return err
	}
	logger.Info("book catalogued", "asset_id", assetID)

	if err := editBook(ctx, engine, log, assetID, now); err != nil {
		return err
	}

	loan, err := lendInLibrary(ctx, engine, log, assetID, now)
	if err != nil {
		return err
	}
	logger.Info("in-library loan opened", "loan_id", loan.ID, "due_at", loan.DueAt)

	upgraded, err := upgradeToHome(ctx, engine, log, assetID, now)
	if err != nil {
		return err
	}
	logger.Info("upgraded to home loan", "loan_id", upgraded.ID, "due_at", upgraded.DueAt)

	closeCommand := closeloan.BuildCommand(upgraded.ID, "demo return", demoActor, now.Add(time.Minute))
	closeErr := shell.ObserveCommand(log, closeCommand, func() error {
		return closeloan.NewCommandHandler(engine).Handle(ctx, closeCommand)
	})
	if closeErr != nil {
		return closeErr
	}

	availability, err := assetavailability.NewQueryHandler(engine).
		Handle(ctx, assetavailability.BuildQuery(assetID))
	if err != nil {
		return err
	}
	logger.Info("after return", "available", availability.Available)

	restoreCommand := restoreasset.BuildCommand(assetID, 1, demoActor, now.Add(2*time.Minute))
	restoreErr := shell.ObserveCommand(log, restoreCommand, func() error {
		return restoreasset.NewCommandHandler(engine).Handle(ctx, restoreCommand)
	})
	if restoreErr != nil {
		return restoreErr
	}

	history, err := assethistory.NewQueryHandler(engine).
		Handle(ctx, assethistory.BuildQuery(assetID, 0))
	if err != nil {
		return err
	}

	for _, record := range history.Records {
		logger.Info("version",
			"sequence", record.Sequence,
			"kind", record.Kind,
			"title", record.Snapshot.Title,
			"actor", record.Actor)
	}

	return nil
}

func createBook(ctx context.Context, engine postgresengine.Engine, log shell.Logger, assetID uuid.UUID, now time.Time) error {
	code := "CPU-" + assetID.String()[:8]
	year := 2009

	command := createasset.BuildBookCommand(
		assetID,
		&code,
		"Introducción a los Algoritmos",
		"Cormen",
		&year,
		core.ConditionGood,
		core.ShelfLocation{Section: "A", Shelf: "3"},
		core.BookDetails{Publisher: "MIT Press", Edition: "3rd", Subject: "Algorithms"},
		demoActor,
		now,
	)

	return shell.ObserveCommand(log, command, func() error {
		return createasset.NewCommandHandler(engine).Handle(ctx, command)
	})
}

func editBook(ctx context.Context, engine postgresengine.Engine, log shell.Logger, assetID uuid.UUID, now time.Time) error {
	year := 2009

	command := updateasset.BuildCommand(
		assetID,
		nil,
		"Introducción a los Algoritmos, Edición Revisada",
		"Cormen et al.",
		&year,
		core.ConditionFair,
		core.ShelfLocation{Section: "A", Shelf: "4"},
		"reencuadernado",
		demoActor,
		now.Add(10*time.Second),
	)

	return shell.ObserveCommand(log, command, func() error {
		return updateasset.NewCommandHandler(engine).Handle(ctx, command)
	})
}

func lendInLibrary(ctx context.Context, engine postgresengine.Engine, log shell.Logger, assetID uuid.UUID, now time.Time) (core.Loan, error) {
	command := requestloan.BuildCommand(
		uuid.New(),
		assetID,
		requestloan.ByNationalID("4567890", "CU-2201", "María Fernández", "Sistemas", "maria@uni.edu"),
		core.ModalityInLibrary,
		demoActor,
		now.Add(20*time.Second),
	)

	return requestLoanObserved(ctx, engine, log, command)
}

func upgradeToHome(ctx context.Context, engine postgresengine.Engine, log shell.Logger, assetID uuid.UUID, now time.Time) (core.Loan, error) {
	command := requestloan.BuildCommand(
		uuid.New(),
		assetID,
		requestloan.ByNationalID("4567890", "CU-2201", "María Fernández", "Sistemas", "maria@uni.edu"),
		core.ModalityHome,
		demoActor,
		now.Add(30*time.Second),
	)

	return requestLoanObserved(ctx, engine, log, command)
}

func requestLoanObserved(
	ctx context.Context,
	engine postgresengine.Engine,
	log shell.Logger,
	command requestloan.Command,
) (core.Loan, error) {

	var loan core.Loan

	err := shell.ObserveCommand(log, command, func() error {
		opened, handleErr := requestloan.NewCommandHandler(engine).Handle(ctx, command)
		loan = opened

		return handleErr
	})

	return loan, err
}
