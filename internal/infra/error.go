package infra

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"activity-ledger/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind       RepositoryErrorKind
	Constraint string
	msg        string
	err        error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr wraps a low-level store error. Without an explicit kind the
// kind is derived from the PostgreSQL error code.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k, constraint := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	switch k {
	case KindDBFailure:
		slog.Error("Repository error: "+msg, slog.String("kind", string(k)), slog.Any("error", err))
	case KindUnavailable:
		slog.Warn("Repository error: "+msg, slog.String("kind", string(k)), slog.Any("error", err))
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	repoErr := RepositoryError{Kind: k, Constraint: constraint, msg: msg, err: err}
	if k == KindUnavailable {
		return errs.Mark(repoErr, errs.ErrStoreUnavailable)
	}
	return repoErr
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsConstraint reports whether err is a repository error raised by the named constraint or index.
func IsConstraint(err error, constraint string) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Constraint == constraint
	}
	return false
}

func classify(err error) (RepositoryErrorKind, string) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		if isConnectionFailure(err) {
			return KindUnavailable, ""
		}
		return KindDBFailure, ""
	}
	if isUnavailableCode(pgErr.Code) {
		return KindUnavailable, ""
	}
	switch pgErr.Code {
	case PgCodeUniqueViolation:
		return KindDuplicateKey, pgErr.ConstraintName
	case PgCodeForeignKeyViolation:
		return KindForeignKeyViolated, pgErr.ConstraintName
	case PgCodeSerializationFailure, PgCodeDeadlockDetected:
		return KindSerializationFailure, ""
	default:
		return KindDBFailure, pgErr.ConstraintName
	}
}

// isConnectionFailure covers errors raised below the SQL layer: a dropped or
// refused connection, or a network or context timeout.
func isConnectionFailure(err error) bool {
	if err == nil {
		return false
	}
	var connectErr *pgconn.ConnectError
	return pgconn.SafeToRetry(err) ||
		pgconn.Timeout(err) ||
		errors.As(err, &connectErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF)
}

func isUnavailableCode(code string) bool {
	switch {
	case strings.HasPrefix(code, pgClassConnectionException):
		return true
	case code == PgCodeAdminShutdown, code == PgCodeCrashShutdown, code == PgCodeCannotConnectNow,
		code == PgCodeLockNotAvailable, code == PgCodeQueryCanceled:
		return true
	default:
		return false
	}
}

// Infrastructure-specific error kinds
const (
	KindNotFound             RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure            RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey         RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated   RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindSerializationFailure RepositoryErrorKind = "SERIALIZATION_FAILURE"
	// KindUnavailable errors are also marked errs.ErrStoreUnavailable.
	KindUnavailable RepositoryErrorKind = "UNAVAILABLE"
)

const (
	PgCodeUniqueViolation      = "23505"
	PgCodeForeignKeyViolation  = "23503"
	PgCodeSerializationFailure = "40001"
	PgCodeDeadlockDetected     = "40P01"
	PgCodeLockNotAvailable     = "55P03"
	PgCodeQueryCanceled        = "57014"
	PgCodeAdminShutdown        = "57P01"
	PgCodeCrashShutdown        = "57P02"
	PgCodeCannotConnectNow     = "57P03"

	pgClassConnectionException = "08"
)
