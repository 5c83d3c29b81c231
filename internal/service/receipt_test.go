package service

import (
	"context"
	"testing"

	"tahseel-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestImportBatch(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	collectorRepo := new(MockCollectorRepository)
	subscriberRepo := new(MockSubscriberRepository)

	collectorID := int32(7)
	collectorRepo.On("GetByCode", mock.Anything, "C1").Return(&domain.Collector{ID: collectorID, CollectorCode: "C1"}, nil)
	collectorRepo.On("GetByCode", mock.Anything, "ZZ").Return(nil, domain.ErrNotFound)

	// Slip 10 is already in the database for this collector.
	receiptRepo.On("ExistingNumbers", mock.Anything, &collectorID, []int32{10, 11, 11}).
		Return(map[int32]bool{10: true}, nil)

	subscriberRepo.On("GetByName", mock.Anything, "Bob").Return(nil, domain.ErrNotFound)
	subscriberRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Subscriber).ID = 42
		}).Return(nil)

	var created []domain.Receipt
	receiptRepo.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).([]domain.Receipt)
		}).Return(nil)

	svc := NewReceiptService(receiptRepo, collectorRepo, subscriberRepo)
	summary, err := svc.ImportBatch(context.Background(), []domain.ReceiptImportRow{
		{ReceiptNumber: 10, Amount: dec("25"), Date: mar(1), CollectorCode: "C1", SubscriberName: "Alice"},
		{ReceiptNumber: 11, Amount: dec("40"), Date: mar(2), CollectorCode: "C1", SubscriberName: "Bob"},
		{ReceiptNumber: 11, Amount: dec("40"), Date: mar(2), CollectorCode: "C1", SubscriberName: "Bob"},
		{ReceiptNumber: 5, Amount: dec("10"), Date: mar(3), CollectorCode: "ZZ", SubscriberName: "Carol"},
	})
	require.NoError(t, err)

	// Slip 10 and the in-batch duplicate are skipped; the unknown collector
	// code becomes an error row; only slip 11 is inserted.
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 1, summary.NewSubscribers)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "ZZ")

	require.Len(t, created, 1)
	assert.Equal(t, int32(11), created[0].ReceiptNumber)
	assert.Equal(t, &collectorID, created[0].CollectorID)
	assert.Equal(t, int32(42), created[0].SubscriberID)
	assert.Equal(t, domain.ReceiptStatusActive, created[0].Status)
}

func TestImportBatch_InvalidNumber(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	receiptRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	svc := NewReceiptService(receiptRepo, new(MockCollectorRepository), new(MockSubscriberRepository))
	summary, err := svc.ImportBatch(context.Background(), []domain.ReceiptImportRow{
		{ReceiptNumber: 0, Amount: dec("5"), Date: mar(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Created)
	require.Len(t, summary.Errors, 1)
}
