package games

import (
	"errors"

	"pitboss/models"
)

var (
	// ErrUnknownOutcomeClass indicates a payout table lookup for a class that
	// was never registered. This is a configuration bug and must fail loudly,
	// never default to a multiplier.
	ErrUnknownOutcomeClass = errors.New("unknown outcome class")

	// ErrInvalidPrediction indicates a prediction the game cannot interpret
	ErrInvalidPrediction = errors.New("invalid prediction")

	// ErrBadDrawCount indicates Resolve was given the wrong number of draws
	ErrBadDrawCount = errors.New("wrong number of draws")
)

// Game is one casino mini-game: a payout table plus a draw shape. Resolve is
// pure; given the same draws it always produces the same Outcome.
type Game interface {
	// Name returns the game's identifier
	Name() string

	// FloatsNeeded returns how many uniform [0,1) draws one round consumes
	FloatsNeeded() int

	// Resolve settles one round from the given draws
	Resolve(betAmount int64, prediction string, draws []float64) (*models.Outcome, error)
}

// registry holds all available games
var registry = make(map[string]Game)

// Register adds a game to the registry
func Register(game Game) {
	registry[game.Name()] = game
}

// Get retrieves a game by name
func Get(name string) (Game, bool) {
	game, exists := registry[name]
	return game, exists
}

// List returns all registered game names
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func init() {
	Register(NewWheel())
	Register(NewRoulette())
	Register(NewSpread())
	Register(NewGrid())
	Register(NewCrash())
}
