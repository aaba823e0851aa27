package models

import "time"

// PaymentCredit is the dedupe record for one confirmed real-money purchase.
// The confirmation token is unique; a duplicate confirmation event must not
// credit the account a second time.
type PaymentCredit struct {
	ID                int64     `db:"id"`
	AccountID         int64     `db:"account_id"`
	ConfirmationToken string    `db:"confirmation_token"`
	Amount            int64     `db:"amount"`
	CreatedAt         time.Time `db:"created_at"`
}
