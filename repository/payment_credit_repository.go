package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pitboss/database"
	"pitboss/models"
)

// PaymentCreditRepository implements the PaymentCreditRepository interface
type PaymentCreditRepository struct {
	q queryable
}

// NewPaymentCreditRepository creates a new payment credit repository
func NewPaymentCreditRepository(db *database.DB) *PaymentCreditRepository {
	return &PaymentCreditRepository{q: db.Pool}
}

// newPaymentCreditRepositoryWithTx creates a new payment credit repository with a transaction
func newPaymentCreditRepositoryWithTx(tx queryable) *PaymentCreditRepository {
	return &PaymentCreditRepository{q: tx}
}

// Create inserts the dedupe record for one confirmation token. Returns
// ErrDuplicateCredit if the token was already credited; the unique index is
// the idempotency guard, not any client-side check.
func (r *PaymentCreditRepository) Create(ctx context.Context, credit *models.PaymentCredit) error {
	query := `
		INSERT INTO payment_credits (account_id, confirmation_token, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (confirmation_token) DO NOTHING
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		credit.AccountID,
		credit.ConfirmationToken,
		credit.Amount,
	).Scan(&credit.ID, &credit.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("token %q: %w", credit.ConfirmationToken, models.ErrDuplicateCredit)
	}
	if err != nil {
		return fmt.Errorf("failed to record payment credit for account %d: %w", credit.AccountID, err)
	}
	return nil
}

// GetByAccount returns all credits for an account, newest first
func (r *PaymentCreditRepository) GetByAccount(ctx context.Context, accountID int64) ([]*models.PaymentCredit, error) {
	query := `
		SELECT id, account_id, confirmation_token, amount, created_at
		FROM payment_credits
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment credits for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var credits []*models.PaymentCredit
	for rows.Next() {
		var c models.PaymentCredit
		err := rows.Scan(&c.ID, &c.AccountID, &c.ConfirmationToken, &c.Amount, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment credit: %w", err)
		}
		credits = append(credits, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment credits: %w", err)
	}
	return credits, nil
}
