package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"pitboss/config"
	"pitboss/events"
	"pitboss/games"
	"pitboss/models"
	"pitboss/rng"
)

// sessionService implements the SessionService interface. It orchestrates one
// wager lifecycle: Idle -> Validating -> Resolving -> Settling -> Settled,
// with Rejected and Failed terminals. Settlement never waits on presentation
// concerns; the round reaches a terminal state or the transaction rolls back.
type sessionService struct {
	uowFactory UnitOfWorkFactory
	src        rng.Source
	cfg        *config.Config

	// one round per account in flight at a time
	inFlight sync.Map
}

// NewSessionService creates a new session service
func NewSessionService(uowFactory UnitOfWorkFactory, src rng.Source, cfg *config.Config) SessionService {
	return &sessionService{
		uowFactory: uowFactory,
		src:        src,
		cfg:        cfg,
	}
}

func (s *sessionService) SubmitWager(ctx context.Context, wager models.WagerRequest) (*models.RoundResult, error) {
	roundID := uuid.New().String()
	result := &models.RoundResult{RoundID: roundID, State: models.RoundValidating}

	logger := log.WithFields(log.Fields{
		"round":   roundID,
		"account": wager.AccountID,
		"game":    wager.Game,
		"bet":     wager.BetAmount,
	})

	// Validating: everything here happens before any network call
	if wager.BetAmount <= 0 {
		result.State = models.RoundRejected
		return result, fmt.Errorf("bet amount must be positive: %w", models.ErrInvalidWager)
	}
	game, ok := games.Get(wager.Game)
	if !ok {
		result.State = models.RoundRejected
		return result, fmt.Errorf("unknown game %q: %w", wager.Game, models.ErrInvalidWager)
	}

	if _, loaded := s.inFlight.LoadOrStore(wager.AccountID, struct{}{}); loaded {
		result.State = models.RoundRejected
		return result, fmt.Errorf("account %d: %w", wager.AccountID, models.ErrRoundInFlight)
	}
	defer s.inFlight.Delete(wager.AccountID)

	// The ledger round-trips are bounded; past the deadline the round fails
	// and the transaction rolls back, so the bet is never charged.
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SettleTimeout)
	defer cancel()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		result.State = models.RoundFailed
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetByID(ctx, wager.AccountID)
	if err != nil {
		result.State = models.RoundFailed
		return result, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		result.State = models.RoundFailed
		return result, fmt.Errorf("account %d: %w", wager.AccountID, models.ErrAccountNotFound)
	}
	if wager.BetAmount > account.Balance {
		result.State = models.RoundRejected
		return result, fmt.Errorf("bet %d exceeds balance %d: %w", wager.BetAmount, account.Balance, models.ErrInvalidWager)
	}

	// Resolving: pure computation from fresh draws. Once here, the round
	// always reaches Settled or Failed.
	result.State = models.RoundResolving
	draws := make([]float64, game.FloatsNeeded())
	for i := range draws {
		draws[i] = s.src.Float64()
	}
	outcome, err := game.Resolve(wager.BetAmount, wager.Prediction, draws)
	if err != nil {
		result.State = models.RoundFailed
		return result, fmt.Errorf("failed to resolve outcome: %w", err)
	}
	result.Outcome = outcome

	// Settling: one conditional update re-validates the stored balance, so a
	// concurrent settlement can never cause a lost update
	result.State = models.RoundSettling
	newBalance, err := uow.AccountRepository().Settle(ctx, wager.AccountID, outcome.BetAmount, outcome.WinAmount)
	if err != nil {
		result.State = models.RoundFailed
		return result, fmt.Errorf("failed to settle wager: %w", err)
	}

	record := &models.WagerRecord{
		RoundID:      roundID,
		AccountID:    wager.AccountID,
		Game:         wager.Game,
		BetAmount:    outcome.BetAmount,
		WinAmount:    outcome.WinAmount,
		BalanceAfter: newBalance,
		Detail:       outcome.Detail,
	}
	if err := uow.WagerRecordRepository().Create(ctx, record); err != nil {
		result.State = models.RoundFailed
		return result, fmt.Errorf("failed to record wager: %w", err)
	}

	uow.EventBus().Publish(events.RoundSettledEvent{
		RoundID:    roundID,
		AccountID:  wager.AccountID,
		Game:       wager.Game,
		Kind:       outcome.Kind,
		BetAmount:  outcome.BetAmount,
		WinAmount:  outcome.WinAmount,
		NewBalance: newBalance,
	})

	if err := uow.Commit(); err != nil {
		result.State = models.RoundFailed
		return result, fmt.Errorf("failed to commit settlement: %w", err)
	}

	result.State = models.RoundSettled
	result.NewBalance = newBalance

	logger.WithFields(log.Fields{
		"kind":    outcome.Kind,
		"win":     outcome.WinAmount,
		"balance": newBalance,
	}).Info("Round settled")

	return result, nil
}

// defaultHistoryLimit is used when a caller asks for a non-positive page size
const defaultHistoryLimit = 20

// History returns recent settled rounds for an account
func (s *sessionService) History(ctx context.Context, accountID int64, limit int) ([]*models.WagerRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	records, err := uow.WagerRecordRepository().GetByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return records, nil
}
