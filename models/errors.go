package models

import "errors"

var (
	// ErrInvalidWager rejects a bet that is non-positive or exceeds the
	// balance known at submission time. Raised before any network call.
	ErrInvalidWager = errors.New("invalid wager")

	// ErrAccountNotFound means no ledger row exists for the account
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds means the commit-time re-validation found the
	// stored balance below the bet amount
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrRoundInFlight means another round for the same account has not yet
	// reached a terminal state
	ErrRoundInFlight = errors.New("round already in flight")

	// ErrDuplicateCredit means a payment confirmation token was already
	// credited; the duplicate event must not credit again
	ErrDuplicateCredit = errors.New("duplicate payment credit")

	// ErrAccountNumberTaken signals a generated account number collision;
	// the caller generates a fresh number and retries
	ErrAccountNumberTaken = errors.New("account number taken")
)
