package closeloan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/shell"
)

// Storage defines the interface needed by the CommandHandler for persistence.
type Storage interface {
	GetLoan(ctx context.Context, loanID uuid.UUID) (core.Loan, error)
	CloseLoan(ctx context.Context, loanID uuid.UUID, note string, returnedAt time.Time) error
}

// CommandHandler orchestrates the Close Loan workflow: Get -> Decide -> Close.
// The close is conditional on the loan still being ACTIVE; losing that race
// triggers a retry, and the re-read turns a loan closed in the meantime into
// ErrAlreadyReturned.
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

// Handle executes the complete command processing workflow with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	return shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	loan, getErr := h.storage.GetLoan(ctx, command.LoanID)
	if getErr != nil {
		return getErr
	}

	closed, decideErr := core.DecideCloseLoan(loan, command.OccurredAt)
	if decideErr != nil {
		return decideErr
	}

	return h.storage.CloseLoan(ctx, closed.ID, command.Note, command.OccurredAt)
}
