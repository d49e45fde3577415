package services

import (
	"context"

	"github.com/GregMSThompson/finan-bff/internal/analytics"
	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/events"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id string) error
}

type historyService struct {
	txs     transactionFeed
	deleter transactionDeleter
	bus     publisher
	now     Clock
}

func NewHistoryService(txs transactionFeed, deleter transactionDeleter, bus publisher, now Clock) *historyService {
	return &historyService{txs: txs, deleter: deleter, bus: bus, now: now}
}

// Query filters, sorts and pages the transaction history. Categories lists
// every category in the unfiltered set so the filter menu stays stable.
func (s *historyService) Query(ctx context.Context, q dto.HistoryQuery) (dto.HistoryPage, error) {
	if err := analytics.ValidateFilter(q.Filter); err != nil {
		return dto.HistoryPage{}, err
	}
	if q.Sort.Key == "" {
		q.Sort.Key = dto.SortByDate
	}
	if q.Sort.Order == "" {
		q.Sort.Order = dto.SortDesc
	}
	if err := analytics.ValidateSort(q.Sort); err != nil {
		return dto.HistoryPage{}, err
	}
	if q.PageSize <= 0 {
		q.PageSize = analytics.DefaultPageSize
	}

	all, err := s.txs.Get(ctx)
	if err != nil {
		return dto.HistoryPage{}, err
	}

	filtered := analytics.Sort(analytics.Filter(all, q.Filter, s.now()), q.Sort)
	items, page, totalPages := analytics.Paginate(filtered, q.Page, q.PageSize)
	return dto.HistoryPage{
		Transactions: items,
		Categories:   analytics.Categories(all),
		Summary:      analytics.Summarize(filtered),
		Page:         page,
		PageSize:     q.PageSize,
		TotalPages:   totalPages,
		TotalItems:   len(filtered),
	}, nil
}

func (s *historyService) Delete(ctx context.Context, id string) error {
	if err := s.deleter.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("transaction deleted", "transactionId", id)
	s.bus.Publish(ctx, events.Event{Topic: events.TransactionCreated, TransactionID: id})
	return nil
}
