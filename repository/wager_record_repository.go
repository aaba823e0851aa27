package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pitboss/database"
	"pitboss/models"
)

// WagerRecordRepository implements the WagerRecordRepository interface.
// Records are append-only; there is no update or delete path.
type WagerRecordRepository struct {
	q queryable
}

// NewWagerRecordRepository creates a new wager record repository
func NewWagerRecordRepository(db *database.DB) *WagerRecordRepository {
	return &WagerRecordRepository{q: db.Pool}
}

// newWagerRecordRepositoryWithTx creates a new wager record repository with a transaction
func newWagerRecordRepositoryWithTx(tx queryable) *WagerRecordRepository {
	return &WagerRecordRepository{q: tx}
}

// Create appends one settlement record
func (r *WagerRecordRepository) Create(ctx context.Context, record *models.WagerRecord) error {
	detailJSON, err := json.Marshal(record.Detail)
	if err != nil {
		return fmt.Errorf("failed to marshal record detail: %w", err)
	}

	query := `
		INSERT INTO wager_records
		(round_id, account_id, game, bet_amount, win_amount, balance_after, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query,
		record.RoundID,
		record.AccountID,
		record.Game,
		record.BetAmount,
		record.WinAmount,
		record.BalanceAfter,
		detailJSON,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record wager for account %d: %w", record.AccountID, err)
	}
	return nil
}

// GetByAccount returns the most recent records for an account, newest first
func (r *WagerRecordRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*models.WagerRecord, error) {
	query := `
		SELECT id, round_id, account_id, game, bet_amount, win_amount, balance_after, detail, created_at
		FROM wager_records
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager records for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var records []*models.WagerRecord
	for rows.Next() {
		var rec models.WagerRecord
		var detailJSON []byte
		err := rows.Scan(
			&rec.ID,
			&rec.RoundID,
			&rec.AccountID,
			&rec.Game,
			&rec.BetAmount,
			&rec.WinAmount,
			&rec.BalanceAfter,
			&detailJSON,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager record: %w", err)
		}
		if len(detailJSON) > 0 {
			if err := json.Unmarshal(detailJSON, &rec.Detail); err != nil {
				return nil, fmt.Errorf("failed to unmarshal record detail: %w", err)
			}
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wager records: %w", err)
	}
	return records, nil
}
