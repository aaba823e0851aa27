package models

// BalanceDrift is one reconciliation finding: a stored balance that
// disagrees with the balance implied by the account's ledger history
type BalanceDrift struct {
	AccountID int64
	Balance   int64
	Expected  int64
}
