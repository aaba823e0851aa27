package models

// OutcomeKind classifies a settled round
type OutcomeKind string

const (
	OutcomeWin  OutcomeKind = "win"
	OutcomeLoss OutcomeKind = "loss"
	OutcomePush OutcomeKind = "push"
)

// WagerRequest is one intent to play a single round. It is consumed once by
// the session service and never persisted.
type WagerRequest struct {
	AccountID  int64
	Game       string
	BetAmount  int64
	Prediction string // game-specific selection (color, target multiplier, high/low, ...)
}

// Outcome is the resolved result of one WagerRequest
type Outcome struct {
	Kind       OutcomeKind
	Draws      []float64 // raw uniform draws the result was derived from
	Multiplier string    // decimal payout multiplier, as resolved
	WinAmount  int64     // bet * multiplier; equals bet on a push, 0 on a loss
	NetDelta   int64     // WinAmount - BetAmount
	BetAmount  int64
	Detail     map[string]any // game-specific result detail for the record
}

// RoundResult is returned to the presentation layer after settlement
type RoundResult struct {
	RoundID    string
	State      RoundState
	Outcome    *Outcome
	NewBalance int64
}

// RoundState is the session state machine position of a round
type RoundState string

const (
	RoundIdle       RoundState = "idle"
	RoundValidating RoundState = "validating"
	RoundResolving  RoundState = "resolving"
	RoundSettling   RoundState = "settling"
	RoundSettled    RoundState = "settled"
	RoundRejected   RoundState = "rejected"
	RoundFailed     RoundState = "failed"
)
