package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"pitboss/events"
	"pitboss/models"
)

// paymentService implements the PaymentService interface. The payment
// gateway itself is external; by the time this service runs, money has been
// collected and the only obligation is to credit the confirmed amount
// exactly once.
type paymentService struct {
	uowFactory UnitOfWorkFactory
}

// NewPaymentService creates a new payment service
func NewPaymentService(uowFactory UnitOfWorkFactory) PaymentService {
	return &paymentService{uowFactory: uowFactory}
}

func (s *paymentService) CreditPurchase(ctx context.Context, accountID int64, amount int64, confirmationToken string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive")
	}
	if confirmationToken == "" {
		return 0, fmt.Errorf("confirmation token is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// The dedupe insert and the balance credit commit together; a duplicate
	// confirmation event rolls back before touching the balance
	credit := &models.PaymentCredit{
		AccountID:         accountID,
		ConfirmationToken: confirmationToken,
		Amount:            amount,
	}
	if err := uow.PaymentCreditRepository().Create(ctx, credit); err != nil {
		return 0, fmt.Errorf("failed to record credit: %w", err)
	}

	newBalance, err := uow.AccountRepository().AddBalance(ctx, accountID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to credit balance: %w", err)
	}

	uow.EventBus().Publish(events.PaymentCreditedEvent{
		AccountID:         accountID,
		ConfirmationToken: confirmationToken,
		Amount:            amount,
		NewBalance:        newBalance,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit credit: %w", err)
	}

	log.WithFields(log.Fields{
		"account": accountID,
		"amount":  amount,
		"balance": newBalance,
	}).Info("Purchase credited")

	return newBalance, nil
}
