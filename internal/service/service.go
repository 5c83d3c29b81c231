package service

import (
	"context"
	"time"

	"tahseel-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, string, *domain.User, error) // access, refresh, user
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	Register(ctx context.Context, user *domain.User, password string) error
	ChangePassword(ctx context.Context, userID int32, oldPassword, newPassword string) error
}

type NotebookService interface {
	// Sync rebuilds derived notebook state from receipts. Only one run may be
	// active per process; concurrent calls get domain.ErrSyncInProgress.
	Sync(ctx context.Context, opts domain.SyncOptions) (*domain.SyncSummary, error)

	// Annotate updates the status and notes of one missing slip and nothing
	// else. Returns domain.ErrNotFound when the slip is not currently missing.
	Annotate(ctx context.Context, notebookID, receiptNumber int32, status domain.MissingReceiptStatus, notes string) (*domain.Notebook, error)

	Get(ctx context.Context, id int32) (*domain.Notebook, error)
	List(ctx context.Context, filter domain.NotebookFilter) ([]domain.Notebook, error)
	FindReceipt(ctx context.Context, receiptNumber int32, collectorID *int32) (*domain.ReceiptLookup, error)
	Overview(ctx context.Context) ([]domain.NotebookOverviewRow, error)
	ListMissing(ctx context.Context, year int, collectorID, fundID *int32, search string) ([]domain.MissingReceiptDetail, error)
}

type ReportService interface {
	PeriodicSummary(ctx context.Context, filter domain.PeriodicFilter) ([]domain.CycleReport, error)
	FundPeriodicSummary(ctx context.Context, filter domain.PeriodicFilter) ([]domain.CycleReport, error)
	DetailedPeriodic(ctx context.Context, filter domain.DetailedFilter) ([]domain.DetailedRow, error)
	Annual(ctx context.Context, filter domain.AnnualFilter) (*domain.AnnualReport, error)
}

type ReceiptService interface {
	Create(ctx context.Context, receipt *domain.Receipt) error
	Get(ctx context.Context, id int32) (*domain.Receipt, error)
	Update(ctx context.Context, receipt *domain.Receipt) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Receipt, int32, error)

	// ImportBatch links parsed collection-sheet rows to collectors and
	// subscribers, skipping duplicate receipt numbers per collector.
	ImportBatch(ctx context.Context, rows []domain.ReceiptImportRow) (*domain.ImportSummary, error)
}

type CollectorService interface {
	Create(ctx context.Context, collector *domain.Collector) error
	Get(ctx context.Context, id int32) (*domain.Collector, error)
	Update(ctx context.Context, collector *domain.Collector) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Collector, error)
}

type FundService interface {
	Create(ctx context.Context, fund *domain.Fund) error
	Get(ctx context.Context, id int32) (*domain.Fund, error)
	Update(ctx context.Context, fund *domain.Fund) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Fund, error)
}

type DepositService interface {
	Create(ctx context.Context, deposit *domain.Deposit) error
	Get(ctx context.Context, id int32) (*domain.Deposit, error)
	Update(ctx context.Context, deposit *domain.Deposit) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Deposit, int32, error)
}

type SubscriberService interface {
	Create(ctx context.Context, subscriber *domain.Subscriber) error
	Get(ctx context.Context, id int32) (*domain.Subscriber, error)
	Update(ctx context.Context, subscriber *domain.Subscriber) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, query string, page, pageSize int32) ([]domain.Subscriber, int32, error)
	LatestPayments(ctx context.Context) ([]domain.SubscriberPayment, error)
	Statement(ctx context.Context, subscriberID int32, from, to *time.Time) (*domain.SubscriberStatement, error)
}

type DashboardService interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
}

type EmailService interface {
	// SendMissingReceiptDigest mails the back-office a rollup after a sync
	// run that found missing slips.
	SendMissingReceiptDigest(ctx context.Context, to string, summary *domain.SyncSummary) error
}
