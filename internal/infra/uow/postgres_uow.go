package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"activity-ledger/internal/domain/activity"
	"activity-ledger/internal/domain/booking"
	"activity-ledger/internal/infra"
	"activity-ledger/internal/infra/db"
	"activity-ledger/internal/infra/readstore"
	"activity-ledger/internal/infra/repository"
	"activity-ledger/internal/pkg/config"
	"activity-ledger/internal/pkg/errs"
	"activity-ledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool       *pgxpool.Pool
	maxRetries int
	retryBase  time.Duration
	metrics    shared.Metrics

	bookings      *repository.BookingRepository
	history       *repository.HistoryRepository
	notifications *repository.NotificationRepository
}

func NewPostgresUoW(pool *pgxpool.Pool, cfg config.BookingConfig, metrics shared.Metrics) shared.UnitOfWork {
	if metrics == nil {
		metrics = shared.NopMetrics{}
	}
	return &PostgresUoW{
		pool:          pool,
		maxRetries:    cfg.TxMaxRetries,
		retryBase:     cfg.TxRetryBase,
		metrics:       metrics,
		bookings:      repository.NewBookingRepository(),
		history:       repository.NewHistoryRepository(),
		notifications: repository.NewNotificationRepository(),
	}
}

// Callers serialize on row locks; each statement after a lock sees every
// transaction committed before it was granted.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	isolation := string(options.IsoLevel)

	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return errs.Mark(errs.Mark(err, errTransactionBegin), errs.ErrStoreUnavailable)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			if !isRetryableError(err) {
				err = errs.Mark(errs.Mark(err, errTransactionCommit), errs.ErrStoreUnavailable)
			}
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !isRetryableError(err) {
			return err
		}
		if attempt == u.maxRetries {
			slog.Error("transaction failed after max retries",
				"isolation", isolation,
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(errs.Mark(err, errMaxRetriesExceeded), errs.ErrStoreUnavailable)
		}

		u.metrics.ObserveTxRetry(isolation)
		waitTime := calculateBackoff(attempt, u.retryBase)

		slog.Warn("retrying transaction due to retryable error",
			"isolation", isolation,
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		timer := time.NewTimer(waitTime)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return errs.Mark(errMaxRetriesExceeded, errs.ErrStoreUnavailable)
}

// calculateBackoff doubles the wait per attempt, capped at 64x base, plus up to 20% jitter.
func calculateBackoff(attempt int, base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	waitTime := time.Duration(1<<min(attempt, 6)) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case infra.PgCodeSerializationFailure, infra.PgCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX
	uow  *PostgresUoW

	commandReads shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	return t.uow.bookings
}

func (t *pgTx) History() shared.HistoryRepository {
	return t.uow.history
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	return t.uow.notifications
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.dbtx)
	}
	return t.commandReads
}

type commandReads struct {
	activities *readstore.ActivityReadStore
	bookings   *readstore.BookingReadStore
}

func newCommandReads(dbtx db.DBTX) *commandReads {
	return &commandReads{
		activities: readstore.NewActivityReadStore(dbtx),
		bookings:   readstore.NewBookingReadStore(dbtx),
	}
}

func (r *commandReads) ActivityByID(ctx context.Context, id int64) (*activity.Activity, error) {
	return r.activities.FindByID(ctx, id)
}

func (r *commandReads) ActivityByIDForUpdate(ctx context.Context, id int64) (*activity.Activity, error) {
	return r.activities.FindByIDForUpdate(ctx, id)
}

func (r *commandReads) LiveBookingCount(ctx context.Context, activityID int64) (int, error) {
	return r.activities.CountLiveBookings(ctx, activityID)
}

func (r *commandReads) HasLiveBooking(ctx context.Context, userID, activityID int64) (bool, error) {
	return r.bookings.HasLiveBooking(ctx, userID, activityID)
}

func (r *commandReads) BookingByID(ctx context.Context, id int64) (*booking.Booking, error) {
	return r.bookings.FindDomainByID(ctx, id)
}

func (r *commandReads) BookingByIDForUpdate(ctx context.Context, id int64) (*booking.Booking, error) {
	return r.bookings.FindDomainByIDForUpdate(ctx, id)
}

func (r *commandReads) BookingsByActivity(ctx context.Context, activityID int64) ([]*booking.Booking, error) {
	return r.bookings.FindDomainByActivity(ctx, activityID)
}

func (r *commandReads) EndedActivityIDs(ctx context.Context, from, to time.Time) ([]int64, error) {
	return r.activities.EndedActivityIDs(ctx, from, to)
}
