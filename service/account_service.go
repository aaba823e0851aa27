package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"pitboss/config"
	"pitboss/events"
	"pitboss/models"
	"pitboss/rng"
)

// accountNumberAttempts bounds collision retries when generating a fresh
// 8-digit account number
const accountNumberAttempts = 5

// accountService implements the AccountService interface
type accountService struct {
	uowFactory UnitOfWorkFactory
	src        rng.Source
	cfg        *config.Config
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory, src rng.Source, cfg *config.Config) AccountService {
	return &accountService{
		uowFactory: uowFactory,
		src:        src,
		cfg:        cfg,
	}
}

// GetOrCreateAccount retrieves the account behind an account number,
// provisioning a funded one if none exists. The starting balance is recorded
// as a payment credit so reconciliation can re-derive every balance from
// history alone.
func (s *accountService) GetOrCreateAccount(ctx context.Context, accountNumber string) (*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if accountNumber != "" {
		account, err := uow.AccountRepository().GetByNumber(ctx, accountNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing account: %w", err)
		}
		if account != nil {
			if err := uow.Commit(); err != nil {
				return nil, fmt.Errorf("failed to commit transaction: %w", err)
			}
			return account, nil
		}
	}

	account, err := s.provision(ctx, uow, accountNumber)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return account, nil
}

// provision creates a funded account inside the given unit of work
func (s *accountService) provision(ctx context.Context, uow UnitOfWork, accountNumber string) (*models.Account, error) {
	var account *models.Account
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		number := accountNumber
		if number == "" {
			n, err := s.src.IntN(10000000, 99999999)
			if err != nil {
				return nil, fmt.Errorf("failed to draw account number: %w", err)
			}
			number = strconv.Itoa(n)
		}

		created, err := uow.AccountRepository().Create(ctx, number, s.cfg.StartingBalance)
		if errors.Is(err, models.ErrAccountNumberTaken) && accountNumber == "" {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		account = created
		break
	}
	if account == nil {
		return nil, fmt.Errorf("failed to allocate an account number after %d attempts", accountNumberAttempts)
	}

	// The welcome balance is a credit like any other, keyed on a synthetic
	// token so it can never apply twice
	if s.cfg.StartingBalance > 0 {
		credit := &models.PaymentCredit{
			AccountID:         account.ID,
			ConfirmationToken: "welcome:" + account.AccountNumber,
			Amount:            s.cfg.StartingBalance,
		}
		if err := uow.PaymentCreditRepository().Create(ctx, credit); err != nil {
			return nil, fmt.Errorf("failed to record welcome credit: %w", err)
		}
	}

	uow.EventBus().Publish(events.AccountCreatedEvent{
		AccountID:       account.ID,
		AccountNumber:   account.AccountNumber,
		StartingBalance: account.Balance,
	})

	log.WithFields(log.Fields{
		"account":        account.ID,
		"account_number": account.AccountNumber,
		"balance":        account.Balance,
	}).Info("Account provisioned")

	return account, nil
}

// GetBalance returns the current balance for an account number, provisioning
// the account if it does not exist yet. The lookup is idempotent, so it is
// retried a bounded number of times with backoff on transport errors.
func (s *accountService) GetBalance(ctx context.Context, accountNumber string) (int64, error) {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.ReadRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(s.cfg.ReadRetryBackoff * time.Duration(attempt)):
			}
		}

		account, err := s.GetOrCreateAccount(ctx, accountNumber)
		if err != nil {
			lastErr = err
			continue
		}
		return account.Balance, nil
	}
	return 0, fmt.Errorf("balance read failed after %d attempts: %w", s.cfg.ReadRetries+1, lastErr)
}

// Leaderboard returns the top accounts by balance
func (s *accountService) Leaderboard(ctx context.Context, limit int) ([]*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return accounts, nil
}
