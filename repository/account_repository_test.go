package repository

import (
	"context"
	"sync"
	"testing"

	"pitboss/models"
	"pitboss/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		account, err := repo.Create(ctx, "12345678", 1000)
		require.NoError(t, err)
		require.NotNil(t, account)

		assert.Equal(t, "12345678", account.AccountNumber)
		assert.Equal(t, int64(1000), account.Balance)
		assert.Equal(t, int64(0), account.GamesPlayed)
		assert.False(t, account.CreatedAt.IsZero())
	})

	t.Run("duplicate account number", func(t *testing.T) {
		_, err := repo.Create(ctx, "22223333", 1000)
		require.NoError(t, err)

		_, err = repo.Create(ctx, "22223333", 1000)
		assert.ErrorIs(t, err, models.ErrAccountNumberTaken)
	})

	t.Run("negative starting balance rejected by schema", func(t *testing.T) {
		_, err := repo.Create(ctx, "33334444", -5)
		assert.Error(t, err)
	})
}

func TestAccountRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("account not found", func(t *testing.T) {
		account, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("account found", func(t *testing.T) {
		created, err := repo.Create(ctx, testutil.RandomAccountNumber(), 1000)
		require.NoError(t, err)

		account, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, created.AccountNumber, account.AccountNumber)
		assert.Equal(t, created.Balance, account.Balance)
	})
}

func TestAccountRepository_GetByNumber(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown number", func(t *testing.T) {
		account, err := repo.GetByNumber(ctx, "00000000")
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("known number", func(t *testing.T) {
		created, err := repo.Create(ctx, "55556666", 1000)
		require.NoError(t, err)

		account, err := repo.GetByNumber(ctx, "55556666")
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, created.ID, account.ID)
	})
}

func TestAccountRepository_Settle(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("win updates balance and stats", func(t *testing.T) {
		account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 1000)
		require.NoError(t, err)

		newBalance, err := repo.Settle(ctx, account.ID, 20, 200)
		require.NoError(t, err)
		assert.Equal(t, int64(1180), newBalance)

		updated, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1180), updated.Balance)
		assert.Equal(t, int64(1), updated.GamesPlayed)
		assert.Equal(t, int64(200), updated.LifetimeWinnings)
		assert.Equal(t, int64(200), updated.BiggestWin)
	})

	t.Run("loss deducts the bet", func(t *testing.T) {
		account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 1000)
		require.NoError(t, err)

		newBalance, err := repo.Settle(ctx, account.ID, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(950), newBalance)
	})

	t.Run("push leaves balance unchanged", func(t *testing.T) {
		account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 1000)
		require.NoError(t, err)

		newBalance, err := repo.Settle(ctx, account.ID, 50, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), newBalance)
	})

	t.Run("bet exactly equal to balance is allowed", func(t *testing.T) {
		account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 10)
		require.NoError(t, err)

		newBalance, err := repo.Settle(ctx, account.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), newBalance)
	})

	t.Run("bet over balance fails", func(t *testing.T) {
		account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 10)
		require.NoError(t, err)

		_, err = repo.Settle(ctx, account.ID, 11, 0)
		assert.ErrorIs(t, err, models.ErrInsufficientFunds)

		// Nothing changed
		updated, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), updated.Balance)
		assert.Equal(t, int64(0), updated.GamesPlayed)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := repo.Settle(ctx, 999999, 10, 0)
		assert.ErrorIs(t, err, models.ErrAccountNotFound)
	})

	t.Run("biggest win only grows", func(t *testing.T) {
		account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 1000)
		require.NoError(t, err)

		_, err = repo.Settle(ctx, account.ID, 10, 100)
		require.NoError(t, err)
		_, err = repo.Settle(ctx, account.ID, 10, 30)
		require.NoError(t, err)

		updated, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), updated.BiggestWin)
	})
}

// Two simultaneous bets of 10 against a balance of 10: exactly one settles
// and the balance never goes negative.
func TestAccountRepository_Settle_ConcurrentBets(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 10)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Settle(ctx, account.ID, 10, 0)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, models.ErrInsufficientFunds)
		}
	}
	assert.Equal(t, 1, succeeded)

	updated, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Balance)
	assert.Equal(t, int64(1), updated.GamesPlayed)
}

// Many concurrent settlements against one account must not lose updates: the
// final balance equals the starting balance plus the sum of net deltas.
func TestAccountRepository_Settle_NoLostUpdates(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 100000)
	require.NoError(t, err)

	const rounds = 50
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Alternate a losing bet of 10 and a winning bet of 10 paying 20
			win := int64(0)
			if i%2 == 0 {
				win = 20
			}
			_, err := repo.Settle(ctx, account.ID, 10, win)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// 25 rounds net +10, 25 rounds net -10
	updated, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), updated.Balance)
	assert.Equal(t, int64(rounds), updated.GamesPlayed)
}

func TestAccountRepository_AddBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("credits the account", func(t *testing.T) {
		account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 100)
		require.NoError(t, err)

		newBalance, err := repo.AddBalance(ctx, account.ID, 500)
		require.NoError(t, err)
		assert.Equal(t, int64(600), newBalance)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 100)
		require.NoError(t, err)

		_, err = repo.AddBalance(ctx, account.ID, 0)
		assert.Error(t, err)
		_, err = repo.AddBalance(ctx, account.ID, -5)
		assert.Error(t, err)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := repo.AddBalance(ctx, 999999, 100)
		assert.ErrorIs(t, err, models.ErrAccountNotFound)
	})
}

func TestAccountRepository_Leaderboard(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	balances := []int64{300, 100, 500}
	for _, b := range balances {
		_, err := repo.Create(ctx, testutil.RandomAccountNumber(), b)
		require.NoError(t, err)
	}

	top, err := repo.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(500), top[0].Balance)
	assert.Equal(t, int64(300), top[1].Balance)
}

func TestAccountRepository_FindDrift(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	creditRepo := NewPaymentCreditRepository(testDB.DB)
	recordRepo := NewWagerRecordRepository(testDB.DB)
	ctx := context.Background()

	t.Run("fully accounted balance is clean", func(t *testing.T) {
		account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 1000)
		require.NoError(t, err)

		// Back the starting balance with a credit, then settle one round
		credit := testutil.CreateTestPaymentCredit(account.ID, "welcome:"+account.AccountNumber)
		credit.Amount = 1000
		require.NoError(t, creditRepo.Create(ctx, credit))

		newBalance, err := repo.Settle(ctx, account.ID, 20, 40)
		require.NoError(t, err)

		record := testutil.CreateTestWagerRecord(account.ID)
		record.BalanceAfter = newBalance
		require.NoError(t, recordRepo.Create(ctx, record))

		drifts, err := repo.FindDrift(ctx)
		require.NoError(t, err)
		for _, d := range drifts {
			assert.NotEqual(t, account.ID, d.AccountID)
		}
	})

	t.Run("unbacked balance is reported", func(t *testing.T) {
		// No credit row explains this balance
		account, err := repo.Create(ctx, testutil.RandomAccountNumber(), 777)
		require.NoError(t, err)

		drifts, err := repo.FindDrift(ctx)
		require.NoError(t, err)

		var found *models.BalanceDrift
		for _, d := range drifts {
			if d.AccountID == account.ID {
				found = d
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, int64(777), found.Balance)
		assert.Equal(t, int64(0), found.Expected)
	})
}
