package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"pitboss/app"
	"pitboss/config"
	"pitboss/events"
)

// Run starts the settlement core and its maintenance schedule, then blocks
// until the context is canceled
func Run(ctx context.Context) error {
	cfg := config.Get()

	log.WithField("environment", cfg.Environment).Info("Starting settlement service")

	core, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer core.Close()
	log.Info("Settlement core wired")

	// Settlement outcomes are observable without any coupling to the
	// presentation layer; whatever animation runs client-side, the ledger
	// has already committed by the time this fires.
	core.Events.Subscribe(events.EventTypeRoundSettled, func(_ context.Context, event events.Event) {
		e := event.(events.RoundSettledEvent)
		log.WithFields(log.Fields{
			"round":   e.RoundID,
			"account": e.AccountID,
			"game":    e.Game,
			"kind":    e.Kind,
			"bet":     e.BetAmount,
			"win":     e.WinAmount,
			"balance": e.NewBalance,
		}).Info("Round settled")
	})

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReconcileSchedule, func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := core.Reconcile.Run(sweepCtx); err != nil {
			log.WithError(err).Error("Ledger reconciliation failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule reconciliation: %w", err)
	}
	scheduler.Start()
	log.WithField("schedule", cfg.ReconcileSchedule).Info("Reconciliation scheduled")

	<-ctx.Done()

	log.Info("Shutting down")
	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(10 * time.Second):
		log.Warn("Reconciliation job did not finish before shutdown timeout")
	}

	return nil
}
