package queries

//go:generate mockgen -source=history.go -destination=../../mock/queriesmock/history.go -package=queriesmock

import (
	"context"
	"time"

	"activity-ledger/internal/domain/history"
	"activity-ledger/internal/pkg/errs"
)

var ErrInvalidDateRange = errs.New("from must not be after to")

type HistoryReadStore interface {
	FindByUser(ctx context.Context, userID int64, filters HistoryFilters, offset, limit int) ([]*HistoryItem, error)
	CountByUser(ctx context.Context, userID int64, filters HistoryFilters) (int, error)
	StatsByUser(ctx context.Context, userID int64) (*HistoryStats, error)
	FindByUserAndActivity(ctx context.Context, userID, activityID int64) ([]*HistoryItem, error)
}

type HistoryQueries interface {
	ListHistoryByUser(ctx context.Context, userID int64, filters HistoryFilters, page Page) (*HistoryPage, error)
	GetHistoryStats(ctx context.Context, userID int64) (*HistoryStats, error)
	GetHistoryForActivity(ctx context.Context, userID, activityID int64) ([]*HistoryItem, error)
}

type historyQueriesImpl struct {
	repo    HistoryReadStore
	timeout time.Duration
}

func NewHistoryQueries(repo HistoryReadStore, timeout time.Duration) HistoryQueries {
	return &historyQueriesImpl{repo: repo, timeout: timeout}
}

func (q *historyQueriesImpl) ListHistoryByUser(ctx context.Context, userID int64, filters HistoryFilters, page Page) (*HistoryPage, error) {
	if filters.Outcome != nil {
		if _, err := history.ParseOutcome(*filters.Outcome); err != nil {
			return nil, err
		}
	}
	if filters.From != nil && filters.To != nil && filters.From.After(*filters.To) {
		return nil, ErrInvalidDateRange
	}
	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	items, err := q.repo.FindByUser(ctx, userID, filters, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	total, err := q.repo.CountByUser(ctx, userID, filters)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*HistoryItem{}
	}
	return &HistoryPage{Items: items, Total: total}, nil
}

func (q *historyQueriesImpl) GetHistoryStats(ctx context.Context, userID int64) (*HistoryStats, error) {
	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	return q.repo.StatsByUser(ctx, userID)
}

func (q *historyQueriesImpl) GetHistoryForActivity(ctx context.Context, userID, activityID int64) ([]*HistoryItem, error) {
	ctx, cancel := withTimeout(ctx, q.timeout)
	defer cancel()

	items, err := q.repo.FindByUserAndActivity(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*HistoryItem{}
	}
	return items, nil
}
