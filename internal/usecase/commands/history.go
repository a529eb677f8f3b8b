package commands

//go:generate mockgen -source=history.go -destination=../../mock/commandsmock/history.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"activity-ledger/internal/domain/history"
	"activity-ledger/internal/infra"
	"activity-ledger/internal/pkg/clock"
	"activity-ledger/internal/pkg/errs"
	"activity-ledger/internal/usecase/queries"
	"activity-ledger/internal/usecase/shared"
)

type RecordOutcomeResult struct {
	Record   *history.Record
	Inserted bool
}

type ReconcileFailure struct {
	BookingID int64
	Err       error
}

type ReconcileResult struct {
	ActivityID int64
	Inserted   int
	Updated    int
	Failures   []ReconcileFailure
}

type ReconcileSummary struct {
	Activities []*ReconcileResult
	// Activities that could not be reconciled at all, keyed by id.
	Errors map[int64]error
}

type HistoryCommands interface {
	RecordOutcome(ctx context.Context, userID, activityID, bookingID int64, outcome history.Outcome) (*RecordOutcomeResult, error)
	ReconcileActivity(ctx context.Context, activityID int64) (*ReconcileResult, error)
	ReconcileEnded(ctx context.Context, lookback time.Duration) (*ReconcileSummary, error)
}

type historyUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	metrics shared.Metrics
	timeout time.Duration
}

func NewHistoryUseCase(uow shared.UnitOfWork, clk clock.Clock, metrics shared.Metrics, timeout time.Duration) HistoryCommands {
	if metrics == nil {
		metrics = shared.NopMetrics{}
	}
	return &historyUseCaseImpl{uow: uow, clock: clk, metrics: metrics, timeout: timeout}
}

// RecordOutcome upserts the history row for (userID, activityID, bookingID).
// Re-recording the same triple overwrites the outcome and participatedAt.
func (uc *historyUseCaseImpl) RecordOutcome(ctx context.Context, userID, activityID, bookingID int64, outcome history.Outcome) (*RecordOutcomeResult, error) {
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	var result *RecordOutcomeResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec, err := history.NewRecord(userID, activityID, bookingID, outcome, uc.clock.Now())
		if err != nil {
			return err
		}

		b, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(errs.ErrBookingNotFound, "booking %d", bookingID)
			}
			return err
		}
		if b.UserID() != userID || b.ActivityID() != activityID {
			return errs.Wrapf(errs.ErrBookingNotFound, "booking %d for user %d, activity %d", bookingID, userID, activityID)
		}

		stored, inserted, err := tx.History().Upsert(ctx, tx.DB(), rec)
		if err != nil {
			return err
		}
		result = &RecordOutcomeResult{Record: stored, Inserted: inserted}
		return enqueue(ctx, tx, KindHistoryEvent, TopicHistoryRecorded, newHistoryEvent(stored, inserted), rec.ParticipatedAt)
	})

	label := resultLabel(err)
	if err == nil {
		label = "updated"
		if result.Inserted {
			label = "inserted"
		}
	}
	uc.metrics.ObserveHistory(label)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReconcileActivity classifies every booking of an ended activity and
// records its outcome. A failing booking does not stop the others.
func (uc *historyUseCaseImpl) ReconcileActivity(ctx context.Context, activityID int64) (*ReconcileResult, error) {
	reads := uc.uow.CommandReads()

	readCtx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	act, err := reads.ActivityByID(readCtx, activityID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(queries.ErrActivityNotFound, "activity %d", activityID)
		}
		return nil, err
	}
	if !act.HasEnded(uc.clock.Now()) {
		return nil, errs.Wrapf(errs.ErrInvalidState, "activity %d has not ended", activityID)
	}

	bookings, err := reads.BookingsByActivity(readCtx, activityID)
	if err != nil {
		return nil, err
	}

	res := &ReconcileResult{ActivityID: activityID}
	for _, b := range bookings {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		outcome := history.Classify(b, act)
		rec, err := uc.RecordOutcome(ctx, b.UserID(), activityID, b.ID(), outcome)
		if err != nil {
			slog.WarnContext(ctx, "failed to record outcome", "activity_id", activityID, "booking_id", b.ID(), "error", err.Error())
			res.Failures = append(res.Failures, ReconcileFailure{BookingID: b.ID(), Err: err})
			continue
		}
		if rec.Inserted {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	slog.InfoContext(ctx, "activity reconciled",
		"activity_id", activityID,
		"bookings", len(bookings),
		"inserted", res.Inserted,
		"updated", res.Updated,
		"failed", len(res.Failures))
	return res, nil
}

// ReconcileEnded reconciles every activity whose end time falls in [now-lookback, now).
func (uc *historyUseCaseImpl) ReconcileEnded(ctx context.Context, lookback time.Duration) (*ReconcileSummary, error) {
	now := uc.clock.Now()

	readCtx, cancel := withTimeout(ctx, uc.timeout)
	ids, err := uc.uow.CommandReads().EndedActivityIDs(readCtx, now.Add(-lookback), now)
	cancel()
	if err != nil {
		return nil, err
	}

	summary := &ReconcileSummary{Errors: map[int64]error{}}
	for _, id := range ids {
		res, err := uc.ReconcileActivity(ctx, id)
		if err != nil {
			summary.Errors[id] = err
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			continue
		}
		summary.Activities = append(summary.Activities, res)
	}
	return summary, nil
}
