package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pitboss/models"
)

// redSlots is the standard European single-zero layout
var redSlots = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Roulette is a color bet on a single-zero wheel. Red and black pay 2x the
// stake back, green (zero) pays 14x.
type Roulette struct {
	payTable PayTable
}

func NewRoulette() *Roulette {
	return &Roulette{
		payTable: PayTable{
			"red":   decimal.NewFromInt(2),
			"black": decimal.NewFromInt(2),
			"green": decimal.NewFromInt(14),
		},
	}
}

func (g *Roulette) Name() string { return "roulette" }

func (g *Roulette) FloatsNeeded() int { return 1 }

func (g *Roulette) Resolve(betAmount int64, prediction string, draws []float64) (*models.Outcome, error) {
	if len(draws) != g.FloatsNeeded() {
		return nil, fmt.Errorf("%w: roulette needs %d, got %d", ErrBadDrawCount, g.FloatsNeeded(), len(draws))
	}
	if _, err := g.payTable.MultiplierFor(prediction); err != nil {
		return nil, fmt.Errorf("%w: %q is not a roulette color", ErrInvalidPrediction, prediction)
	}

	slot := int(draws[0] * 37) // 0..36
	color := "black"
	switch {
	case slot == 0:
		color = "green"
	case redSlots[slot]:
		color = "red"
	}

	var win int64
	mult := decimal.Zero
	if color == prediction {
		m, err := g.payTable.MultiplierFor(color)
		if err != nil {
			return nil, err
		}
		mult = m
		win = winAmount(betAmount, mult)
	}

	return newOutcome(betAmount, win, mult, draws, map[string]any{
		"slot":   slot,
		"color":  color,
		"picked": prediction,
	}), nil
}
