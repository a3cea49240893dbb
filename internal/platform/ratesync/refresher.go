package ratesync

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/dongle-dev/dongle_backend/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// Refresher periodically pulls the rate feed and pushes it through the rate
// service. A failing refresh is logged and retried on the next tick; it never
// takes the application down.
type Refresher struct {
	client      *Client
	rateService portssvc.RateSvcFacade
	spec        string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewRefresher creates a refresher with a cron spec such as "@hourly".
func NewRefresher(client *Client, rateService portssvc.RateSvcFacade, spec string, logger *slog.Logger) *Refresher {
	return &Refresher{
		client:      client,
		rateService: rateService,
		spec:        spec,
		cron:        cron.New(),
		logger:      logger,
	}
}

// Start refreshes once immediately, then on the cron schedule.
func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.refresh); err != nil {
		return err
	}
	go r.refresh()
	r.cron.Start()
	return nil
}

// Stop halts the schedule, waiting for an in-flight refresh to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rates, err := r.client.FetchRates(ctx)
	if err != nil {
		r.logger.Error("Rate refresh failed", slog.String("error", err.Error()))
		return
	}
	if len(rates) == 0 {
		r.logger.Warn("Rate feed returned no supported currencies")
		return
	}

	if err := r.rateService.UpsertRates(ctx, rates); err != nil {
		r.logger.Error("Failed to store refreshed rates", slog.String("error", err.Error()))
		return
	}
	r.logger.Info("Exchange rates refreshed", slog.Int("count", len(rates)))
}
