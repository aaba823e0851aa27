package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pitboss/models"
)

// Spread is the two-card spread game. Two cards are drawn by rank index
// (0..12); the gap between them sets the multiplier, with wide gaps being
// the rare, high-paying outcomes. Equal ranks are a push: the bet comes
// straight back.
type Spread struct {
	payTable PayTable
}

func NewSpread() *Spread {
	return &Spread{
		payTable: PayTable{
			"1-3":   decimal.Zero,
			"4-6":   decimal.NewFromInt(1),
			"7-8":   decimal.NewFromInt(2),
			"9-10":  decimal.NewFromInt(4),
			"11-12": decimal.NewFromInt(5),
		},
	}
}

func (g *Spread) Name() string { return "spread" }

func (g *Spread) FloatsNeeded() int { return 2 }

// spreadClass buckets a non-zero rank gap into its payout class
func spreadClass(gap int) string {
	switch {
	case gap <= 3:
		return "1-3"
	case gap <= 6:
		return "4-6"
	case gap <= 8:
		return "7-8"
	case gap <= 10:
		return "9-10"
	default:
		return "11-12"
	}
}

func (g *Spread) Resolve(betAmount int64, _ string, draws []float64) (*models.Outcome, error) {
	if len(draws) != g.FloatsNeeded() {
		return nil, fmt.Errorf("%w: spread needs %d, got %d", ErrBadDrawCount, g.FloatsNeeded(), len(draws))
	}

	first := int(draws[0] * 13)  // rank 0..12
	second := int(draws[1] * 13) // rank 0..12
	gap := first - second
	if gap < 0 {
		gap = -gap
	}

	detail := map[string]any{
		"first":  first,
		"second": second,
		"spread": gap,
	}

	// Equal ranks: push, not a table lookup. The bet is returned unchanged.
	if gap == 0 {
		return newOutcome(betAmount, betAmount, decimal.NewFromInt(1), draws, detail), nil
	}

	mult, err := g.payTable.MultiplierFor(spreadClass(gap))
	if err != nil {
		return nil, err
	}
	return newOutcome(betAmount, winAmount(betAmount, mult), mult, draws, detail), nil
}
