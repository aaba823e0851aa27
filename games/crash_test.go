package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitboss/models"
	"pitboss/rng"
)

func TestCrashPoint(t *testing.T) {
	// Below the house edge the round crashes instantly
	assert.Equal(t, 1.0, CrashPoint(0.005))

	// u=0.5 maps to 0.99/0.5 = 1.98
	assert.Equal(t, 1.98, CrashPoint(0.5))

	// The point never drops below 1x
	assert.GreaterOrEqual(t, CrashPoint(0.0), 1.0)

	// Extreme draws clamp to the ceiling
	assert.LessOrEqual(t, CrashPoint(0.9999999999), float64(1000000))
}

func TestCrash_CashOutBelowPointWins(t *testing.T) {
	crash := NewCrash()

	// crash point 1.98, cash-out 1.5
	outcome, err := crash.Resolve(100, "1.5", []float64{0.5})
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeWin, outcome.Kind)
	assert.Equal(t, int64(150), outcome.WinAmount)
	assert.Equal(t, int64(50), outcome.NetDelta)
	assert.Equal(t, 1.98, outcome.Detail["crash_point"])
}

func TestCrash_CashOutAtOrAbovePointLoses(t *testing.T) {
	crash := NewCrash()

	// crash point 1.98, cash-out 2.0: the round is already lost
	outcome, err := crash.Resolve(100, "2.0", []float64{0.5})
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeLoss, outcome.Kind)
	assert.Equal(t, int64(0), outcome.WinAmount)
	assert.Equal(t, int64(-100), outcome.NetDelta)
}

func TestCrash_DeterministicGivenDraw(t *testing.T) {
	crash := NewCrash()

	first, err := crash.Resolve(100, "1.5", []float64{0.73})
	require.NoError(t, err)
	second, err := crash.Resolve(100, "1.5", []float64{0.73})
	require.NoError(t, err)

	assert.Equal(t, first.WinAmount, second.WinAmount)
	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Detail["crash_point"], second.Detail["crash_point"])
}

func TestCrash_InvalidCashOut(t *testing.T) {
	crash := NewCrash()

	_, err := crash.Resolve(100, "not-a-number", []float64{0.5})
	assert.ErrorIs(t, err, ErrInvalidPrediction)

	_, err = crash.Resolve(100, "1.0", []float64{0.5})
	assert.ErrorIs(t, err, ErrInvalidPrediction)

	_, err = crash.Resolve(100, "0.5", []float64{0.5})
	assert.ErrorIs(t, err, ErrInvalidPrediction)
}

func TestCommittedRound_VerifiableAfterSettlement(t *testing.T) {
	serverSeed, commitment, draw := CommittedRound("client-seed", 7)

	// The published commitment matches the revealed seed
	assert.Equal(t, rng.Commitment(serverSeed), commitment)

	// The draw is reproducible from the revealed seed
	assert.Equal(t, rng.FloatFromSeeds(serverSeed, "client-seed", 7), draw)
	assert.GreaterOrEqual(t, draw, 0.0)
	assert.Less(t, draw, 1.0)

	// A fresh round uses a fresh seed
	otherSeed, otherCommitment, _ := CommittedRound("client-seed", 7)
	assert.NotEqual(t, serverSeed, otherSeed)
	assert.NotEqual(t, commitment, otherCommitment)
}
