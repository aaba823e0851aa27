package service

import (
	"context"

	"pitboss/events"
	"pitboss/models"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByID retrieves an account by its internal ID
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// GetByNumber retrieves an account by its shareable account number
	GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error)

	// Create creates a new account with the given number and starting balance
	Create(ctx context.Context, accountNumber string, startingBalance int64) (*models.Account, error)

	// Settle applies one wager result atomically, re-validating the stored
	// balance against the bet, and returns the new balance
	Settle(ctx context.Context, accountID, betAmount, winAmount int64) (int64, error)

	// AddBalance credits the account and returns the new balance
	AddBalance(ctx context.Context, accountID, amount int64) (int64, error)

	// Leaderboard returns the top accounts by balance
	Leaderboard(ctx context.Context, limit int) ([]*models.Account, error)

	// FindDrift returns accounts whose balance disagrees with their history
	FindDrift(ctx context.Context) ([]*models.BalanceDrift, error)
}

// WagerRecordRepository defines the interface for wager history access
type WagerRecordRepository interface {
	// Create appends one settlement record
	Create(ctx context.Context, record *models.WagerRecord) error

	// GetByAccount returns the most recent records for an account
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*models.WagerRecord, error)
}

// PaymentCreditRepository defines the interface for payment credit dedupe records
type PaymentCreditRepository interface {
	// Create inserts the dedupe record, failing with ErrDuplicateCredit on a
	// previously seen confirmation token
	Create(ctx context.Context, credit *models.PaymentCredit) error

	// GetByAccount returns all credits for an account
	GetByAccount(ctx context.Context, accountID int64) ([]*models.PaymentCredit, error)
}

// AccountService defines the interface for account operations
type AccountService interface {
	// GetOrCreateAccount retrieves the account behind an account number,
	// provisioning a funded one if none exists
	GetOrCreateAccount(ctx context.Context, accountNumber string) (*models.Account, error)

	// GetBalance returns the current balance for an account number,
	// provisioning the account if it does not exist yet
	GetBalance(ctx context.Context, accountNumber string) (int64, error)

	// Leaderboard returns the top accounts by balance
	Leaderboard(ctx context.Context, limit int) ([]*models.Account, error)
}

// SessionService defines the interface for the per-round wager lifecycle
type SessionService interface {
	// SubmitWager runs one round through the full state machine and returns
	// the terminal result. The returned RoundResult always carries a
	// terminal state, Settled, Rejected or Failed.
	SubmitWager(ctx context.Context, wager models.WagerRequest) (*models.RoundResult, error)

	// History returns recent settled rounds for an account
	History(ctx context.Context, accountID int64, limit int) ([]*models.WagerRecord, error)
}

// PaymentService defines the interface for purchase crediting
type PaymentService interface {
	// CreditPurchase credits a confirmed purchase exactly once, keyed on the
	// gateway's confirmation token
	CreditPurchase(ctx context.Context, accountID int64, amount int64, confirmationToken string) (int64, error)
}

// ReconcileService defines the interface for the ledger audit sweep
type ReconcileService interface {
	// Run recomputes each balance from history and reports drift
	Run(ctx context.Context) ([]*models.BalanceDrift, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() AccountRepository
	WagerRecordRepository() WagerRecordRepository
	PaymentCreditRepository() PaymentCreditRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
