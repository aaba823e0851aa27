// Package app assembles the settlement core for embedding. The presentation
// layer holds an App and calls Sessions.SubmitWager and Accounts.GetBalance;
// no other surface exists.
package app

import (
	"context"
	"fmt"

	"pitboss/config"
	"pitboss/database"
	"pitboss/events"
	"pitboss/repository"
	"pitboss/rng"
	"pitboss/service"
)

// App is the wired settlement core
type App struct {
	Accounts  service.AccountService
	Sessions  service.SessionService
	Payments  service.PaymentService
	Reconcile service.ReconcileService
	Events    *events.Bus

	db *database.DB
}

// New connects to the database and wires every service
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	src := rng.NewCryptoSource()

	return &App{
		Accounts:  service.NewAccountService(uowFactory, src, cfg),
		Sessions:  service.NewSessionService(uowFactory, src, cfg),
		Payments:  service.NewPaymentService(uowFactory),
		Reconcile: service.NewReconcileService(uowFactory),
		Events:    eventBus,
		db:        db,
	}, nil
}

// Close releases the database pool
func (a *App) Close() {
	a.db.Close()
}
