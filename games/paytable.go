package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pitboss/models"
)

// PayTable maps outcome classes to payout multipliers. Tables are static
// per-game data; lookups for unregistered classes fail loudly.
type PayTable map[string]decimal.Decimal

// MultiplierFor returns the multiplier for an outcome class
func (t PayTable) MultiplierFor(class string) (decimal.Decimal, error) {
	mult, ok := t[class]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownOutcomeClass, class)
	}
	return mult, nil
}

// Segment is one entry of a weighted selection table
type Segment struct {
	Class  string
	Weight int
}

// WeightedTable selects an outcome class from a single uniform draw using
// cumulative weights, so the declared probabilities sum to exactly 1.
type WeightedTable struct {
	segments    []Segment
	totalWeight int
}

// NewWeightedTable builds a weighted table. Weights must be positive.
func NewWeightedTable(segments []Segment) (*WeightedTable, error) {
	total := 0
	for _, s := range segments {
		if s.Weight <= 0 {
			return nil, fmt.Errorf("segment %q has non-positive weight %d", s.Class, s.Weight)
		}
		total += s.Weight
	}
	if total == 0 {
		return nil, fmt.Errorf("weighted table has no segments")
	}
	return &WeightedTable{segments: segments, totalWeight: total}, nil
}

// Pick maps a uniform [0,1) draw to an outcome class by cumulative weight
func (t *WeightedTable) Pick(u float64) string {
	target := u * float64(t.totalWeight)
	cumulative := 0.0
	for _, s := range t.segments {
		cumulative += float64(s.Weight)
		if target < cumulative {
			return s.Class
		}
	}
	// u is in [0,1) so this is only reachable through float rounding at the
	// very top of the range; the last segment owns that edge
	return t.segments[len(t.segments)-1].Class
}

// winAmount computes bet * multiplier in integer credits, truncating toward zero
func winAmount(betAmount int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(betAmount).Mul(multiplier).IntPart()
}

// newOutcome assembles an Outcome, classifying by net delta: positive is a
// win, zero a push, negative a loss
func newOutcome(betAmount, win int64, multiplier decimal.Decimal, draws []float64, detail map[string]any) *models.Outcome {
	net := win - betAmount
	kind := models.OutcomePush
	switch {
	case net > 0:
		kind = models.OutcomeWin
	case net < 0:
		kind = models.OutcomeLoss
	}
	return &models.Outcome{
		Kind:       kind,
		Draws:      draws,
		Multiplier: multiplier.String(),
		WinAmount:  win,
		NetDelta:   net,
		BetAmount:  betAmount,
		Detail:     detail,
	}
}
