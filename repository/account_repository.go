package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pitboss/database"
	"pitboss/models"
)

// queryable is satisfied by both the pool and a transaction
type queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates a new account repository with a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

const accountColumns = `id, account_number, balance, lifetime_winnings, games_played, biggest_win, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID,
		&a.AccountNumber,
		&a.Balance,
		&a.LifetimeWinnings,
		&a.GamesPlayed,
		&a.BiggestWin,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID retrieves an account by its internal ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}
	return account, nil
}

// GetByNumber retrieves an account by its shareable account number
func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, accountNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %q: %w", accountNumber, err)
	}
	return account, nil
}

// Create creates a new account with the given number and starting balance.
// Returns ErrAccountNumberTaken if the number collides with an existing row.
func (r *AccountRepository) Create(ctx context.Context, accountNumber string, startingBalance int64) (*models.Account, error) {
	query := `
		INSERT INTO accounts (account_number, balance)
		VALUES ($1, $2)
		RETURNING ` + accountColumns

	account, err := scanAccount(r.q.QueryRow(ctx, query, accountNumber, startingBalance))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("account number %q: %w", accountNumber, models.ErrAccountNumberTaken)
		}
		return nil, fmt.Errorf("failed to create account %q: %w", accountNumber, err)
	}
	return account, nil
}

// Settle applies one wager result to the account in a single conditional
// update. The balance precondition is re-checked against the stored row, so
// two concurrent settlements serialize on the row lock and the second sees
// the first's balance. Returns the new balance.
func (r *AccountRepository) Settle(ctx context.Context, accountID, betAmount, winAmount int64) (int64, error) {
	query := `
		UPDATE accounts
		SET balance = balance - $2 + $3,
		    games_played = games_played + 1,
		    lifetime_winnings = lifetime_winnings + $3,
		    biggest_win = GREATEST(biggest_win, $3),
		    updated_at = NOW()
		WHERE id = $1 AND balance >= $2
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, accountID, betAmount, winAmount).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the account does not exist or the stored balance no longer
		// covers the bet; look once more to tell them apart.
		account, lookErr := r.GetByID(ctx, accountID)
		if lookErr != nil {
			return 0, fmt.Errorf("failed to check account %d: %w", accountID, lookErr)
		}
		if account == nil {
			return 0, fmt.Errorf("account %d: %w", accountID, models.ErrAccountNotFound)
		}
		return 0, fmt.Errorf("have %d, need %d: %w", account.Balance, betAmount, models.ErrInsufficientFunds)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to settle wager for account %d: %w", accountID, err)
	}
	return newBalance, nil
}

// AddBalance credits the account unconditionally and returns the new balance.
// Used for payment credits, never for wager settlement.
func (r *AccountRepository) AddBalance(ctx context.Context, accountID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, accountID, amount).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("account %d: %w", accountID, models.ErrAccountNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add balance for account %d: %w", accountID, err)
	}
	return newBalance, nil
}

// Leaderboard returns the top accounts by balance
func (r *AccountRepository) Leaderboard(ctx context.Context, limit int) ([]*models.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY balance DESC, id ASC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

// FindDrift returns accounts whose stored balance disagrees with the balance
// implied by their payment credits and wager history
func (r *AccountRepository) FindDrift(ctx context.Context) ([]*models.BalanceDrift, error) {
	query := `
		SELECT a.id, a.balance, COALESCE(p.total, 0) + COALESCE(w.net, 0) AS expected
		FROM accounts a
		LEFT JOIN (
			SELECT account_id, SUM(amount) AS total
			FROM payment_credits GROUP BY account_id
		) p ON p.account_id = a.id
		LEFT JOIN (
			SELECT account_id, SUM(win_amount - bet_amount) AS net
			FROM wager_records GROUP BY account_id
		) w ON w.account_id = a.id
		WHERE a.balance <> COALESCE(p.total, 0) + COALESCE(w.net, 0)
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance drift: %w", err)
	}
	defer rows.Close()

	var drifts []*models.BalanceDrift
	for rows.Next() {
		var d models.BalanceDrift
		if err := rows.Scan(&d.AccountID, &d.Balance, &d.Expected); err != nil {
			return nil, fmt.Errorf("failed to scan drift row: %w", err)
		}
		drifts = append(drifts, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drift rows: %w", err)
	}
	return drifts, nil
}
