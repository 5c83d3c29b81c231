package service

import (
	"context"
	"testing"
	"time"

	"tahseel-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mar(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestSync_FullRebuildWithAnnotationCarryOver(t *testing.T) {
	notebookRepo := new(MockNotebookRepository)
	receiptRepo := new(MockReceiptRepository)
	collectorRepo := new(MockCollectorRepository)

	collectorID := int32(9)
	collectorRepo.On("List", mock.Anything).Return([]domain.Collector{{ID: collectorID, Name: "Hamid"}}, nil)

	// Collector 9 used slips 1 and 4; slip 2 was annotated as cancelled on a
	// previous run and slip 3 is freshly missing.
	receiptRepo.On("ListByCollector", mock.Anything, &collectorID).Return([]domain.Receipt{
		{ReceiptNumber: 1, Date: mar(2)},
		{ReceiptNumber: 4, Date: mar(9)},
	}, nil)
	notebookRepo.On("ListForCollector", mock.Anything, &collectorID).Return([]domain.Notebook{
		{
			StartNumber: 1, EndNumber: 50, CollectorID: &collectorID,
			MissingReceipts: []domain.MissingReceipt{
				{ReceiptNumber: 2, Status: domain.MissingStatusCancelled, Notes: "voided by office"},
				{ReceiptNumber: 3, Status: domain.MissingStatusMissing},
			},
		},
	}, nil)

	var replaced []domain.Notebook
	notebookRepo.On("ReplaceForCollector", mock.Anything, &collectorID, mock.Anything).
		Run(func(args mock.Arguments) {
			replaced = args.Get(2).([]domain.Notebook)
		}).Return(nil)

	// The unassigned pool is always part of a full run.
	receiptRepo.On("ListByCollector", mock.Anything, (*int32)(nil)).Return([]domain.Receipt{}, nil)
	notebookRepo.On("ListForCollector", mock.Anything, (*int32)(nil)).Return([]domain.Notebook{}, nil)
	notebookRepo.On("ReplaceForCollector", mock.Anything, (*int32)(nil), mock.Anything).Return(nil)

	svc := NewNotebookService(notebookRepo, receiptRepo, collectorRepo, 24*time.Hour)
	summary, err := svc.Sync(context.Background(), domain.SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.CollectorsAffected)
	assert.Equal(t, 1, summary.NotebooksUpserted)
	assert.Equal(t, 2, summary.MissingFound)
	assert.Equal(t, 46, summary.PendingCount) // 5..50
	assert.NotEmpty(t, summary.RunID)

	require.Len(t, replaced, 1)
	nb := replaced[0]
	assert.Equal(t, domain.NotebookStatusInUse, nb.Status)
	require.Len(t, nb.MissingReceipts, 2)

	// Slip 2 keeps the human annotation; slip 3 resets to plain missing.
	assert.Equal(t, domain.MissingStatusCancelled, nb.MissingReceipts[0].Status)
	assert.Equal(t, "voided by office", nb.MissingReceipts[0].Notes)
	assert.Equal(t, domain.MissingStatusMissing, nb.MissingReceipts[1].Status)
	assert.Empty(t, nb.MissingReceipts[1].Notes)

	// Estimated dates come from the nearest used slip.
	require.NotNil(t, nb.MissingReceipts[0].EstimatedDate)
	assert.Equal(t, mar(2), *nb.MissingReceipts[0].EstimatedDate)
}

func TestSync_IncrementalOnlyTouchesAffectedCollectors(t *testing.T) {
	notebookRepo := new(MockNotebookRepository)
	receiptRepo := new(MockReceiptRepository)
	collectorRepo := new(MockCollectorRepository)

	since := mar(20)
	collectorID := int32(4)
	receiptRepo.On("ListCollectorIDsModifiedSince", mock.Anything, since).Return([]*int32{&collectorID}, nil)
	receiptRepo.On("ListByCollector", mock.Anything, &collectorID).Return([]domain.Receipt{
		{ReceiptNumber: 51, Date: mar(21)},
	}, nil)
	notebookRepo.On("ListForCollector", mock.Anything, &collectorID).Return([]domain.Notebook{}, nil)
	notebookRepo.On("ReplaceForCollector", mock.Anything, &collectorID, mock.Anything).Return(nil)

	svc := NewNotebookService(notebookRepo, receiptRepo, collectorRepo, 24*time.Hour)
	summary, err := svc.Sync(context.Background(), domain.SyncOptions{Incremental: true, Since: since})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CollectorsAffected)
	collectorRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestSync_RejectsConcurrentRun(t *testing.T) {
	svc := NewNotebookService(new(MockNotebookRepository), new(MockReceiptRepository), new(MockCollectorRepository), 24*time.Hour).(*notebookService)

	svc.syncMu.Lock()
	defer svc.syncMu.Unlock()

	_, err := svc.Sync(context.Background(), domain.SyncOptions{})
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)
}

func TestAnnotate_InvalidStatus(t *testing.T) {
	svc := NewNotebookService(new(MockNotebookRepository), new(MockReceiptRepository), new(MockCollectorRepository), 24*time.Hour)

	_, err := svc.Annotate(context.Background(), 1, 7, "lost", "")
	assert.Error(t, err)
}

func TestAnnotate_NotFoundPassesThrough(t *testing.T) {
	notebookRepo := new(MockNotebookRepository)
	notebookRepo.On("UpdateMissingEntry", mock.Anything, int32(1), int32(7), domain.MissingStatusDamaged, "water damage").
		Return(nil, domain.ErrNotFound)

	svc := NewNotebookService(notebookRepo, new(MockReceiptRepository), new(MockCollectorRepository), 24*time.Hour)
	_, err := svc.Annotate(context.Background(), 1, 7, domain.MissingStatusDamaged, "water damage")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindReceipt(t *testing.T) {
	estimated := mar(5)
	notebook := domain.Notebook{
		ID: 3, StartNumber: 1, EndNumber: 50, MinUsed: 1, MaxUsed: 20,
		MissingReceipts: []domain.MissingReceipt{
			{ReceiptNumber: 7, Status: domain.MissingStatusMissing, EstimatedDate: &estimated},
		},
		PendingReceipts: []int32{21, 22},
	}

	tests := []struct {
		name   string
		number int32
		books  []domain.Notebook
		status domain.ReceiptLookupStatus
	}{
		{"missing slip", 7, []domain.Notebook{notebook}, domain.LookupStatusMissing},
		{"used slip", 10, []domain.Notebook{notebook}, domain.LookupStatusUsed},
		{"pending slip", 21, []domain.Notebook{notebook}, domain.LookupStatusPending},
		{"no notebook covers it", 300, nil, domain.LookupStatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notebookRepo := new(MockNotebookRepository)
			notebookRepo.On("FindByNumber", mock.Anything, tt.number, (*int32)(nil)).Return(tt.books, nil)
			receiptRepo := new(MockReceiptRepository)
			receiptRepo.On("FindByNumber", mock.Anything, tt.number, (*int32)(nil)).Return([]domain.Receipt{}, nil)

			svc := NewNotebookService(notebookRepo, receiptRepo, new(MockCollectorRepository), 24*time.Hour)
			lookup, err := svc.FindReceipt(context.Background(), tt.number, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.status, lookup.Status)
			if tt.status == domain.LookupStatusMissing {
				require.NotNil(t, lookup.Missing)
				assert.Equal(t, tt.number, lookup.Missing.ReceiptNumber)
			}
		})
	}
}

func TestFindReceipt_RecordedAfterLastSync(t *testing.T) {
	collectorID := int32(4)
	notebook := domain.Notebook{
		ID: 3, CollectorID: &collectorID, StartNumber: 1, EndNumber: 50,
		MinUsed: 1, MaxUsed: 20,
		PendingReceipts: []int32{21, 22},
	}

	// Slip 21 is pending in the stored notebook but a receipt for it has been
	// entered since; the record wins over the stale derived state.
	receiptRepo := new(MockReceiptRepository)
	receiptRepo.On("FindByNumber", mock.Anything, int32(21), (*int32)(nil)).Return([]domain.Receipt{
		{ID: 99, ReceiptNumber: 21, CollectorID: &collectorID},
	}, nil)
	notebookRepo := new(MockNotebookRepository)
	notebookRepo.On("FindByNumber", mock.Anything, int32(21), &collectorID).Return([]domain.Notebook{notebook}, nil)

	svc := NewNotebookService(notebookRepo, receiptRepo, new(MockCollectorRepository), 24*time.Hour)
	lookup, err := svc.FindReceipt(context.Background(), 21, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.LookupStatusUsed, lookup.Status)
	require.NotNil(t, lookup.Receipt)
	assert.Equal(t, int32(99), lookup.Receipt.ID)
	require.NotNil(t, lookup.Notebook)
	assert.Equal(t, int32(3), lookup.Notebook.ID)
}

func TestOverview(t *testing.T) {
	notebookRepo := new(MockNotebookRepository)
	notebookRepo.On("List", mock.Anything, domain.NotebookFilter{}).Return([]domain.Notebook{
		{
			ID: 1, StartNumber: 1, EndNumber: 50, MinUsed: 1, MaxUsed: 25,
			Status:          domain.NotebookStatusInUse,
			MissingReceipts: []domain.MissingReceipt{{ReceiptNumber: 5}},
			PendingReceipts: []int32{26},
		},
		{
			ID: 2, StartNumber: 51, EndNumber: 100, MinUsed: 51, MaxUsed: 100,
			Status: domain.NotebookStatusComplete,
		},
	}, nil)

	svc := NewNotebookService(notebookRepo, new(MockReceiptRepository), new(MockCollectorRepository), 24*time.Hour)
	rows, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1-50", rows[0].NotebookRange)
	assert.Equal(t, "Unassigned", rows[0].CollectorName)
	assert.Equal(t, int32(24), rows[0].UsedReceiptsCount) // 25 in range minus 1 missing
	assert.Equal(t, int32(1), rows[0].MissingReceiptsCount)
	assert.InDelta(t, 48.0, rows[0].CompletionPercentage, 0.01)

	assert.Equal(t, int32(50), rows[1].UsedReceiptsCount)
	assert.InDelta(t, 100.0, rows[1].CompletionPercentage, 0.01)
}
