package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pitboss/models"
)

// Wheel is the weighted wheel-spin game. Seven segments with weights summing
// to 100; the multiplier is the outcome class itself.
type Wheel struct {
	table    *WeightedTable
	payTable PayTable
}

// NewWheel builds the wheel with its production segment layout
func NewWheel() *Wheel {
	table, err := NewWeightedTable([]Segment{
		{Class: "0", Weight: 25},
		{Class: "0.5", Weight: 20},
		{Class: "1", Weight: 18},
		{Class: "2", Weight: 15},
		{Class: "3", Weight: 10},
		{Class: "5", Weight: 7},
		{Class: "10", Weight: 5},
	})
	if err != nil {
		panic(fmt.Sprintf("wheel table: %v", err))
	}
	return &Wheel{
		table: table,
		payTable: PayTable{
			"0":   decimal.Zero,
			"0.5": decimal.RequireFromString("0.5"),
			"1":   decimal.NewFromInt(1),
			"2":   decimal.NewFromInt(2),
			"3":   decimal.NewFromInt(3),
			"5":   decimal.NewFromInt(5),
			"10":  decimal.NewFromInt(10),
		},
	}
}

func (g *Wheel) Name() string { return "wheel" }

func (g *Wheel) FloatsNeeded() int { return 1 }

// Resolve picks a segment from one weighted draw and pays bet * segment
func (g *Wheel) Resolve(betAmount int64, _ string, draws []float64) (*models.Outcome, error) {
	if len(draws) != g.FloatsNeeded() {
		return nil, fmt.Errorf("%w: wheel needs %d, got %d", ErrBadDrawCount, g.FloatsNeeded(), len(draws))
	}

	class := g.table.Pick(draws[0])
	mult, err := g.payTable.MultiplierFor(class)
	if err != nil {
		return nil, err
	}

	win := winAmount(betAmount, mult)
	return newOutcome(betAmount, win, mult, draws, map[string]any{
		"segment": class,
	}), nil
}
