package testutil

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"pitboss/models"
)

// RandomAccountNumber returns a fresh 8-digit account number
func RandomAccountNumber() string {
	return fmt.Sprintf("%08d", 10000000+rand.Intn(90000000))
}

// CreateTestWagerRecord creates a wager record with default values. The round
// ID is a fresh UUID; the column type rejects anything else.
func CreateTestWagerRecord(accountID int64) *models.WagerRecord {
	return &models.WagerRecord{
		RoundID:      uuid.NewString(),
		AccountID:    accountID,
		Game:         "wheel",
		BetAmount:    20,
		WinAmount:    40,
		BalanceAfter: 1020,
		Detail: map[string]any{
			"segment": "2",
		},
	}
}

// CreateTestPaymentCredit creates a payment credit with default values
func CreateTestPaymentCredit(accountID int64, token string) *models.PaymentCredit {
	return &models.PaymentCredit{
		AccountID:         accountID,
		ConfirmationToken: token,
		Amount:            500,
	}
}
