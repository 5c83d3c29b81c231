package service

import (
	"context"
	"time"

	"tahseel-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Mock repositories for service tests.

type MockNotebookRepository struct {
	mock.Mock
}

func (m *MockNotebookRepository) GetByID(ctx context.Context, id int32) (*domain.Notebook, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notebook), args.Error(1)
}

func (m *MockNotebookRepository) List(ctx context.Context, filter domain.NotebookFilter) ([]domain.Notebook, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notebook), args.Error(1)
}

func (m *MockNotebookRepository) ListForCollector(ctx context.Context, collectorID *int32) ([]domain.Notebook, error) {
	args := m.Called(ctx, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notebook), args.Error(1)
}

func (m *MockNotebookRepository) ReplaceForCollector(ctx context.Context, collectorID *int32, notebooks []domain.Notebook) error {
	args := m.Called(ctx, collectorID, notebooks)
	return args.Error(0)
}

func (m *MockNotebookRepository) UpdateMissingEntry(ctx context.Context, notebookID int32, receiptNumber int32, status domain.MissingReceiptStatus, notes string) (*domain.Notebook, error) {
	args := m.Called(ctx, notebookID, receiptNumber, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notebook), args.Error(1)
}

func (m *MockNotebookRepository) FindByNumber(ctx context.Context, receiptNumber int32, collectorID *int32) ([]domain.Notebook, error) {
	args := m.Called(ctx, receiptNumber, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notebook), args.Error(1)
}

func (m *MockNotebookRepository) TotalMissingCount(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockNotebookRepository) ListMissingInYear(ctx context.Context, year int, collectorID, fundID *int32, search string) ([]domain.MissingReceiptDetail, error) {
	args := m.Called(ctx, year, collectorID, fundID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MissingReceiptDetail), args.Error(1)
}

type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) Create(ctx context.Context, receipt *domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) CreateBatch(ctx context.Context, receipts []domain.Receipt) error {
	args := m.Called(ctx, receipts)
	return args.Error(0)
}

func (m *MockReceiptRepository) GetByID(ctx context.Context, id int32) (*domain.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) Update(ctx context.Context, receipt *domain.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReceiptRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Receipt, int32, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Receipt), args.Get(1).(int32), args.Error(2)
}

func (m *MockReceiptRepository) ListByCollector(ctx context.Context, collectorID *int32) ([]domain.Receipt, error) {
	args := m.Called(ctx, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) FindByNumber(ctx context.Context, receiptNumber int32, collectorID *int32) ([]domain.Receipt, error) {
	args := m.Called(ctx, receiptNumber, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) ListCollectorIDsModifiedSince(ctx context.Context, since time.Time) ([]*int32, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*int32), args.Error(1)
}

func (m *MockReceiptRepository) ListInRange(ctx context.Context, from, to time.Time, collectorID *int32) ([]domain.Receipt, error) {
	args := m.Called(ctx, from, to, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) ListBySubscriber(ctx context.Context, subscriberID int32, from, to *time.Time) ([]domain.Receipt, error) {
	args := m.Called(ctx, subscriberID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) ExistingNumbers(ctx context.Context, collectorID *int32, numbers []int32) (map[int32]bool, error) {
	args := m.Called(ctx, collectorID, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int32]bool), args.Error(1)
}

func (m *MockReceiptRepository) SumAmountInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReceiptRepository) CountInRange(ctx context.Context, from, to time.Time) (int32, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockReceiptRepository) ListRecent(ctx context.Context, limit int32) ([]domain.Receipt, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

func (m *MockReceiptRepository) SumByFundInRange(ctx context.Context, from, to time.Time) ([]domain.FundTotal, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundTotal), args.Error(1)
}

func (m *MockReceiptRepository) SumByMonthSince(ctx context.Context, since time.Time) ([]domain.MonthTotal, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthTotal), args.Error(1)
}

func (m *MockReceiptRepository) ListLatestPerSubscriber(ctx context.Context) ([]domain.SubscriberPayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubscriberPayment), args.Error(1)
}

type MockCollectorRepository struct {
	mock.Mock
}

func (m *MockCollectorRepository) Create(ctx context.Context, collector *domain.Collector) error {
	args := m.Called(ctx, collector)
	return args.Error(0)
}

func (m *MockCollectorRepository) GetByID(ctx context.Context, id int32) (*domain.Collector, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collector), args.Error(1)
}

func (m *MockCollectorRepository) GetByCode(ctx context.Context, code string) (*domain.Collector, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collector), args.Error(1)
}

func (m *MockCollectorRepository) Update(ctx context.Context, collector *domain.Collector) error {
	args := m.Called(ctx, collector)
	return args.Error(0)
}

func (m *MockCollectorRepository) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCollectorRepository) List(ctx context.Context) ([]domain.Collector, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Collector), args.Error(1)
}

func (m *MockCollectorRepository) ListByFund(ctx context.Context, fundID int32) ([]domain.Collector, error) {
	args := m.Called(ctx, fundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Collector), args.Error(1)
}

func (m *MockCollectorRepository) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *MockDepositRepository) GetByID(ctx context.Context, id int32) (*domain.Deposit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) Update(ctx context.Context, deposit *domain.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *MockDepositRepository) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDepositRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Deposit, int32, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Deposit), args.Get(1).(int32), args.Error(2)
}

func (m *MockDepositRepository) ListInRange(ctx context.Context, from, to time.Time, collectorID *int32) ([]domain.Deposit, error) {
	args := m.Called(ctx, from, to, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) ListRecent(ctx context.Context, limit int32) ([]domain.Deposit, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deposit), args.Error(1)
}

type MockFundRepository struct {
	mock.Mock
}

func (m *MockFundRepository) Create(ctx context.Context, fund *domain.Fund) error {
	args := m.Called(ctx, fund)
	return args.Error(0)
}

func (m *MockFundRepository) GetByID(ctx context.Context, id int32) (*domain.Fund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fund), args.Error(1)
}

func (m *MockFundRepository) Update(ctx context.Context, fund *domain.Fund) error {
	args := m.Called(ctx, fund)
	return args.Error(0)
}

func (m *MockFundRepository) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFundRepository) List(ctx context.Context) ([]domain.Fund, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fund), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Create(ctx context.Context, subscriber *domain.Subscriber) error {
	args := m.Called(ctx, subscriber)
	return args.Error(0)
}

func (m *MockSubscriberRepository) CreateBatch(ctx context.Context, subscribers []domain.Subscriber) (map[string]int32, error) {
	args := m.Called(ctx, subscribers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int32), args.Error(1)
}

func (m *MockSubscriberRepository) GetByID(ctx context.Context, id int32) (*domain.Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) GetByName(ctx context.Context, name string) (*domain.Subscriber, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) Update(ctx context.Context, subscriber *domain.Subscriber) error {
	args := m.Called(ctx, subscriber)
	return args.Error(0)
}

func (m *MockSubscriberRepository) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriberRepository) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Subscriber, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Subscriber), args.Get(1).(int32), args.Error(2)
}
