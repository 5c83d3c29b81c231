package repository

import (
	"context"
	"time"

	"tahseel-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) error
	CreateBatch(ctx context.Context, receipts []domain.Receipt) error
	GetByID(ctx context.Context, id int32) (*domain.Receipt, error)
	Update(ctx context.Context, receipt *domain.Receipt) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Receipt, int32, error)

	// ListByCollector returns every receipt of one collector; a nil
	// collectorID selects the unassigned pool.
	ListByCollector(ctx context.Context, collectorID *int32) ([]domain.Receipt, error)

	// FindByNumber returns the recorded receipts carrying this slip number.
	// Unlike ListByCollector, a nil collectorID means no filter; the same
	// number may exist under several collectors.
	FindByNumber(ctx context.Context, receiptNumber int32, collectorID *int32) ([]domain.Receipt, error)

	// ListCollectorIDsModifiedSince scopes incremental syncs by receipt
	// creation time. Status edits to existing receipts do not mark a
	// collector modified; reconciliation reads all statuses alike.
	ListCollectorIDsModifiedSince(ctx context.Context, since time.Time) ([]*int32, error)
	ListInRange(ctx context.Context, from, to time.Time, collectorID *int32) ([]domain.Receipt, error)
	ListBySubscriber(ctx context.Context, subscriberID int32, from, to *time.Time) ([]domain.Receipt, error)

	// ExistingNumbers returns which of the given receipt numbers a collector
	// already has, for duplicate skipping during batch import.
	ExistingNumbers(ctx context.Context, collectorID *int32, numbers []int32) (map[int32]bool, error)

	SumAmountInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	CountInRange(ctx context.Context, from, to time.Time) (int32, error)
	ListRecent(ctx context.Context, limit int32) ([]domain.Receipt, error)
	SumByFundInRange(ctx context.Context, from, to time.Time) ([]domain.FundTotal, error)
	SumByMonthSince(ctx context.Context, since time.Time) ([]domain.MonthTotal, error)
	ListLatestPerSubscriber(ctx context.Context) ([]domain.SubscriberPayment, error)
}

type NotebookRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Notebook, error)
	List(ctx context.Context, filter domain.NotebookFilter) ([]domain.Notebook, error)

	// ListForCollector returns one collector's notebooks; unlike List, a nil
	// collectorID means the unassigned pool, not "no filter".
	ListForCollector(ctx context.Context, collectorID *int32) ([]domain.Notebook, error)

	// ReplaceForCollector atomically swaps one collector's notebooks for the
	// given derived set, carrying nothing over; annotation carry-over is the
	// caller's job. A nil collectorID targets the unassigned pool.
	ReplaceForCollector(ctx context.Context, collectorID *int32, notebooks []domain.Notebook) error

	// UpdateMissingEntry patches the status and notes of one missing slip.
	// Returns domain.ErrNotFound when the notebook does not exist or the
	// number is not currently missing in it.
	UpdateMissingEntry(ctx context.Context, notebookID int32, receiptNumber int32, status domain.MissingReceiptStatus, notes string) (*domain.Notebook, error)

	FindByNumber(ctx context.Context, receiptNumber int32, collectorID *int32) ([]domain.Notebook, error)
	TotalMissingCount(ctx context.Context) (int32, error)
	// ListMissingInYear flattens missing entries whose estimated date falls in
	// the given year; a non-empty search narrows to notes containing it.
	ListMissingInYear(ctx context.Context, year int, collectorID, fundID *int32, search string) ([]domain.MissingReceiptDetail, error)
}

type CollectorRepository interface {
	Create(ctx context.Context, collector *domain.Collector) error
	GetByID(ctx context.Context, id int32) (*domain.Collector, error)
	GetByCode(ctx context.Context, code string) (*domain.Collector, error)
	Update(ctx context.Context, collector *domain.Collector) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Collector, error)
	ListByFund(ctx context.Context, fundID int32) ([]domain.Collector, error)
	Count(ctx context.Context) (int32, error)
}

type FundRepository interface {
	Create(ctx context.Context, fund *domain.Fund) error
	GetByID(ctx context.Context, id int32) (*domain.Fund, error)
	Update(ctx context.Context, fund *domain.Fund) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Fund, error)
}

type DepositRepository interface {
	Create(ctx context.Context, deposit *domain.Deposit) error
	GetByID(ctx context.Context, id int32) (*domain.Deposit, error)
	Update(ctx context.Context, deposit *domain.Deposit) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Deposit, int32, error)
	ListInRange(ctx context.Context, from, to time.Time, collectorID *int32) ([]domain.Deposit, error)
	ListRecent(ctx context.Context, limit int32) ([]domain.Deposit, error)
}

type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *domain.Subscriber) error
	CreateBatch(ctx context.Context, subscribers []domain.Subscriber) (map[string]int32, error)
	GetByID(ctx context.Context, id int32) (*domain.Subscriber, error)
	GetByName(ctx context.Context, name string) (*domain.Subscriber, error)
	Update(ctx context.Context, subscriber *domain.Subscriber) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, query string, page, pageSize int32) ([]domain.Subscriber, int32, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
	List(ctx context.Context) ([]domain.User, error)
}
