package models

import "time"

// WagerRecord is an immutable history entry written after a successful
// settlement. Append-only; never mutated or deleted.
type WagerRecord struct {
	ID           int64          `db:"id"`
	RoundID      string         `db:"round_id"`
	AccountID    int64          `db:"account_id"`
	Game         string         `db:"game"`
	BetAmount    int64          `db:"bet_amount"`
	WinAmount    int64          `db:"win_amount"`
	BalanceAfter int64          `db:"balance_after"`
	Detail       map[string]any `db:"detail"`
	CreatedAt    time.Time      `db:"created_at"`
}
