package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"pitboss/models"
)

// reconcileService implements the ReconcileService interface. Every balance
// in the system is derivable from payment credits plus wager net deltas; the
// sweep recomputes that sum per account and reports any row that disagrees.
type reconcileService struct {
	uowFactory UnitOfWorkFactory
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(uowFactory UnitOfWorkFactory) ReconcileService {
	return &reconcileService{uowFactory: uowFactory}
}

func (s *reconcileService) Run(ctx context.Context) ([]*models.BalanceDrift, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	drifts, err := uow.AccountRepository().FindDrift(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find balance drift: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	for _, d := range drifts {
		log.WithFields(log.Fields{
			"account":  d.AccountID,
			"balance":  d.Balance,
			"expected": d.Expected,
		}).Warn("Balance drift detected")
	}
	if len(drifts) == 0 {
		log.Debug("Ledger reconciliation clean")
	}

	return drifts, nil
}
