package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pitboss/models"
)

// paylines are the 8 lines of a 3x3 grid: rows, columns, diagonals.
// Cells are indexed row-major 0..8.
var paylines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Grid is the 3x3 slot-style game. Nine weighted symbol draws fill the grid;
// each payline whose three cells match pays bet * symbol multiplier, and line
// wins accumulate.
type Grid struct {
	symbols  *WeightedTable
	payTable PayTable
}

func NewGrid() *Grid {
	symbols, err := NewWeightedTable([]Segment{
		{Class: "cherry", Weight: 35},
		{Class: "lemon", Weight: 30},
		{Class: "bell", Weight: 20},
		{Class: "star", Weight: 10},
		{Class: "diamond", Weight: 5},
	})
	if err != nil {
		panic(fmt.Sprintf("grid symbol table: %v", err))
	}
	return &Grid{
		symbols: symbols,
		payTable: PayTable{
			"cherry":  decimal.NewFromInt(2),
			"lemon":   decimal.NewFromInt(3),
			"bell":    decimal.NewFromInt(5),
			"star":    decimal.NewFromInt(10),
			"diamond": decimal.NewFromInt(25),
		},
	}
}

func (g *Grid) Name() string { return "grid" }

func (g *Grid) FloatsNeeded() int { return 9 }

func (g *Grid) Resolve(betAmount int64, _ string, draws []float64) (*models.Outcome, error) {
	if len(draws) != g.FloatsNeeded() {
		return nil, fmt.Errorf("%w: grid needs %d, got %d", ErrBadDrawCount, g.FloatsNeeded(), len(draws))
	}

	var cells [9]string
	for i, u := range draws {
		cells[i] = g.symbols.Pick(u)
	}

	var totalWin int64
	totalMult := decimal.Zero
	var lineWins []map[string]any
	for i, line := range paylines {
		symbol := cells[line[0]]
		if cells[line[1]] != symbol || cells[line[2]] != symbol {
			continue
		}
		mult, err := g.payTable.MultiplierFor(symbol)
		if err != nil {
			return nil, err
		}
		totalWin += winAmount(betAmount, mult)
		totalMult = totalMult.Add(mult)
		lineWins = append(lineWins, map[string]any{
			"line":   i,
			"symbol": symbol,
		})
	}

	return newOutcome(betAmount, totalWin, totalMult, draws, map[string]any{
		"cells":     cells[:],
		"line_wins": lineWins,
	}), nil
}
