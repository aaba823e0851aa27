package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pitboss/models"
	"pitboss/rng"
)

const (
	crashHouseEdge = 0.01
	crashMin       = 1.0
	crashMax       = 1000000.0
)

// Crash is the growing-multiplier game. The crash point is derived from a
// single draw made at round start and stays hidden until settlement; the
// prediction is the player's auto cash-out multiplier. The cash-out wins only
// if it is strictly below the crash point.
type Crash struct{}

func NewCrash() *Crash { return &Crash{} }

func (g *Crash) Name() string { return "crash" }

func (g *Crash) FloatsNeeded() int { return 1 }

// CrashPoint maps a uniform draw to a crash multiplier with a 1% instant
// crash, using the usual exponential shape where high multipliers are rare.
// Truncated to two decimal places.
func CrashPoint(u float64) float64 {
	if u < crashHouseEdge {
		return crashMin
	}
	point := (1.0 - crashHouseEdge) / (1.0 - u)
	point = float64(int(point*100)) / 100.0
	if point < crashMin {
		return crashMin
	}
	if point > crashMax {
		return crashMax
	}
	return point
}

// CommittedRound pre-draws a crash round: a hidden server seed, its public
// commitment, and the draw the seed produces. The commitment can be published
// before the round and verified after settlement via rng.FloatFromSeeds.
func CommittedRound(clientSeed string, nonce uint64) (serverSeed, commitment string, draw float64) {
	serverSeed = rng.GenerateServerSeed()
	commitment = rng.Commitment(serverSeed)
	draw = rng.FloatFromSeeds(serverSeed, clientSeed, nonce)
	return serverSeed, commitment, draw
}

func (g *Crash) Resolve(betAmount int64, prediction string, draws []float64) (*models.Outcome, error) {
	if len(draws) != g.FloatsNeeded() {
		return nil, fmt.Errorf("%w: crash needs %d, got %d", ErrBadDrawCount, g.FloatsNeeded(), len(draws))
	}

	target, err := decimal.NewFromString(prediction)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a cash-out multiplier", ErrInvalidPrediction, prediction)
	}
	if target.LessThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: cash-out multiplier must exceed 1", ErrInvalidPrediction)
	}

	point := CrashPoint(draws[0])
	detail := map[string]any{
		"crash_point": point,
		"cash_out":    target.String(),
	}

	// The round is already lost once the multiplier reaches the crash point
	if !target.LessThan(decimal.NewFromFloat(point)) {
		return newOutcome(betAmount, 0, decimal.Zero, draws, detail), nil
	}
	return newOutcome(betAmount, winAmount(betAmount, target), target, draws, detail), nil
}
