package outbox

//go:generate mockgen -source=relay.go -destination=../../mock/outboxmock/publisher.go -package=outboxmock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"activity-ledger/internal/pkg/clock"
	"activity-ledger/internal/pkg/config"
	"activity-ledger/internal/usecase/shared"
)

const maxRetryDelay = 10 * time.Minute

type Publisher interface {
	Publish(ctx context.Context, routingKey, messageID string, body []byte) error
}

// Relay drains notification_jobs written by booking and history commands.
// Delivery is at-least-once; consumers dedupe on the message id.
type Relay struct {
	uow       shared.UnitOfWork
	publisher Publisher
	clock     clock.Clock
	metrics   shared.Metrics
	cfg       config.BrokerConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRelay(uow shared.UnitOfWork, publisher Publisher, clk clock.Clock, metrics shared.Metrics, cfg config.BrokerConfig) *Relay {
	if metrics == nil {
		metrics = shared.NopMetrics{}
	}
	return &Relay{uow: uow, publisher: publisher, clock: clk, metrics: metrics, cfg: cfg}
}

func (r *Relay) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(ctx)
	}()
	slog.Info("outbox relay started", "interval", r.cfg.RelayInterval, "batch", r.cfg.RelayBatchSize)
}

func (r *Relay) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	slog.Info("outbox relay stopped")
}

func (r *Relay) run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.RelayInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				n, err := r.RelayOnce(ctx)
				if err != nil {
					if ctx.Err() == nil {
						slog.Error("outbox relay pass failed", "error", err)
					}
					break
				}
				// a full batch usually means more is waiting
				if n < r.cfg.RelayBatchSize || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

// RelayOnce claims one batch of due jobs and publishes them. It returns the
// number of jobs claimed.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	claimed := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := r.clock.Now()
		jobs, err := tx.Notifications().ClaimDue(ctx, tx.DB(), now, r.cfg.RelayBatchSize)
		if err != nil {
			return err
		}
		claimed = len(jobs)

		for _, job := range jobs {
			pubErr := r.publisher.Publish(ctx, job.Topic, job.ID.String(), job.Payload)
			if pubErr == nil {
				if err := tx.Notifications().MarkSent(ctx, tx.DB(), job.ID); err != nil {
					return err
				}
				r.metrics.ObserveRelay("sent")
				continue
			}

			attempts := job.Attempts + 1
			terminal := attempts >= r.cfg.RelayMaxAttempts
			next := now.Add(retryDelay(r.cfg.RelayInterval, attempts))
			if err := tx.Notifications().MarkFailed(ctx, tx.DB(), job.ID, pubErr.Error(), next, terminal); err != nil {
				return err
			}
			if terminal {
				r.metrics.ObserveRelay("failed")
				slog.Error("outbox job abandoned", "job_id", job.ID, "topic", job.Topic, "attempts", attempts, "error", pubErr)
			} else {
				r.metrics.ObserveRelay("retry")
				slog.Warn("outbox publish failed", "job_id", job.ID, "topic", job.Topic, "attempts", attempts, "error", pubErr)
			}
		}
		return nil
	})
	return claimed, err
}

func retryDelay(base time.Duration, attempts int) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	d := base << min(attempts, 16)
	if d > maxRetryDelay || d <= 0 {
		return maxRetryDelay
	}
	return d
}
