package models

import (
	"time"
)

// Account represents a player with a persisted balance
type Account struct {
	ID               int64     `db:"id"`
	AccountNumber    string    `db:"account_number"` // human-shareable random 8-digit string
	Balance          int64     `db:"balance"`
	LifetimeWinnings int64     `db:"lifetime_winnings"`
	GamesPlayed      int64     `db:"games_played"`
	BiggestWin       int64     `db:"biggest_win"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
