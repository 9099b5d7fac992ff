package requestloan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/shell"
	"github.com/campuslib/loanledger-go/store"
)

// Storage defines the interface needed by the CommandHandler for persistence.
type Storage interface {
	GetAsset(ctx context.Context, assetID uuid.UUID) (store.AssetRow, error)
	GetStudent(ctx context.Context, studentID uuid.UUID) (core.Student, error)
	FindStudentByNationalID(ctx context.Context, nationalID string) (core.Student, error)
	InsertStudent(ctx context.Context, student core.Student) error
	FindActiveLoanForAsset(ctx context.Context, assetID uuid.UUID) (core.Loan, error)
	OpenLoan(ctx context.Context, loan core.Loan) error
	UpgradeLoan(
		ctx context.Context,
		closeID uuid.UUID,
		closeNote string,
		returnedAt time.Time,
		replacement core.Loan,
	) error
}

// CommandHandler orchestrates the Request Loan workflow:
// Resolve student -> Get -> Decide -> Open/Upgrade.
// The open is a conditional write; on a concurrency conflict the business
// rules are re-evaluated against fresh state, so a losing racer ends up with
// the rejection the fresh state dictates, never a stale success.
type CommandHandler struct {
	storage      Storage
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(storage Storage, opts ...Option) CommandHandler {
	handler := CommandHandler{
		storage: storage,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle resolves the student and executes the open workflow with retry
// logic. It returns the opened loan on success.
//
// Student resolution happens outside the retry loop: registration is durable
// before the loan is attempted and is never rolled back when the loan is
// rejected - a created-but-unused student record is an acceptable outcome.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Loan, error) {
	student, resolveErr := h.resolveStudent(ctx, command)
	if resolveErr != nil {
		return core.Loan{}, resolveErr
	}

	var loan core.Loan

	retryErr := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		opened, execErr := h.executeCommand(retryCtx, command, student.ID)
		loan = opened

		return execErr
	}, h.retryOptions...)
	if retryErr != nil {
		return core.Loan{}, retryErr
	}

	return loan, nil
}

// resolveStudent finds the borrower, auto-registering an unknown national ID.
// When two coordinators race on the same national ID the insert of the loser
// fails with store.ErrDuplicateKey and the winner's row is looked up instead.
func (h CommandHandler) resolveStudent(ctx context.Context, command Command) (core.Student, error) {
	if command.Student.StudentID != uuid.Nil {
		return h.storage.GetStudent(ctx, command.Student.StudentID)
	}

	student, findErr := h.storage.FindStudentByNationalID(ctx, command.Student.NationalID)
	if findErr == nil {
		return student, nil
	}

	if !errors.Is(findErr, core.ErrNotFound) {
		return core.Student{}, findErr
	}

	fresh, buildErr := core.BuildStudent(
		uuid.New(),
		command.Student.NationalID,
		command.Student.CardNumber,
		command.Student.FullName,
		command.Student.Program,
		command.Student.Contact,
		command.OccurredAt,
	)
	if buildErr != nil {
		return core.Student{}, buildErr
	}

	insertErr := h.storage.InsertStudent(ctx, fresh)
	if insertErr == nil {
		return fresh, nil
	}

	if errors.Is(insertErr, store.ErrDuplicateKey) {
		return h.storage.FindStudentByNationalID(ctx, command.Student.NationalID)
	}

	return core.Student{}, insertErr
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command, studentID uuid.UUID) (core.Loan, error) {
	row, getErr := h.storage.GetAsset(ctx, command.AssetID)
	if getErr != nil {
		return core.Loan{}, getErr
	}

	asset, _, unmarshalErr := shell.AssetFromRow(row)
	if unmarshalErr != nil {
		return core.Loan{}, unmarshalErr
	}

	var active *core.Loan

	activeLoan, findErr := h.storage.FindActiveLoanForAsset(ctx, command.AssetID)
	switch {
	case findErr == nil:
		active = &activeLoan
	case errors.Is(findErr, core.ErrNotFound):
		// no active loan, the asset is free
	default:
		return core.Loan{}, findErr
	}

	decision := core.DecideOpenLoan(asset, active, command.LoanID, studentID, command.Modality, command.OccurredAt)
	if err := decision.HasError(); err != nil {
		return core.Loan{}, err
	}

	if decision.IsUpgrade() {
		upgradeErr := h.storage.UpgradeLoan(ctx, decision.CloseID, decision.CloseNote, command.OccurredAt, decision.Loan)
		if upgradeErr != nil {
			return core.Loan{}, upgradeErr
		}

		return decision.Loan, nil
	}

	openErr := h.storage.OpenLoan(ctx, decision.Loan)
	if openErr != nil {
		return core.Loan{}, openErr
	}

	return decision.Loan, nil
}
