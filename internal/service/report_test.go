package service

import (
	"context"
	"testing"
	"time"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func receiptsOf(amounts ...string) []domain.Receipt {
	receipts := make([]domain.Receipt, len(amounts))
	for i, a := range amounts {
		receipts[i] = domain.Receipt{Amount: dec(a)}
	}
	return receipts
}

func depositsOf(amounts ...string) []domain.Deposit {
	deposits := make([]domain.Deposit, len(amounts))
	for i, a := range amounts {
		deposits[i] = domain.Deposit{Amount: dec(a)}
	}
	return deposits
}

func newReportService(receiptRepo *MockReceiptRepository, depositRepo *MockDepositRepository,
	collectorRepo *MockCollectorRepository, fundRepo *MockFundRepository,
	notebookRepo *MockNotebookRepository) ReportService {
	return NewReportService(receiptRepo, depositRepo, collectorRepo, fundRepo, notebookRepo)
}

func TestPeriodicSummary_CarryForward(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	depositRepo := new(MockDepositRepository)
	collectorRepo := new(MockCollectorRepository)

	collectorID := int32(1)
	collectorRepo.On("List", mock.Anything).Return([]domain.Collector{
		{ID: collectorID, Name: "Hamid", OpeningBalance: dec("100")},
	}, nil)

	c1Start, c1End, err := utils.CycleWindow(2026, time.March, 1)
	require.NoError(t, err)
	c2Start, c2End, err := utils.CycleWindow(2026, time.March, 2)
	require.NoError(t, err)

	// History before March: 50 collected, 30 deposited.
	receiptRepo.On("ListInRange", mock.Anything, time.Time{}, c1Start, &collectorID).Return(receiptsOf("50"), nil)
	depositRepo.On("ListInRange", mock.Anything, time.Time{}, c1Start, &collectorID).Return(depositsOf("30"), nil)

	// Cycle 1: collects 200, deposits 100. Cycle 2: collects 10, deposits nothing.
	receiptRepo.On("ListInRange", mock.Anything, c1Start, c1End, &collectorID).Return(receiptsOf("200"), nil)
	depositRepo.On("ListInRange", mock.Anything, c1Start, c1End, &collectorID).Return(depositsOf("100"), nil)
	receiptRepo.On("ListInRange", mock.Anything, c2Start, c2End, &collectorID).Return(receiptsOf("10"), nil)
	depositRepo.On("ListInRange", mock.Anything, c2Start, c2End, &collectorID).Return([]domain.Deposit{}, nil)

	svc := newReportService(receiptRepo, depositRepo, collectorRepo, new(MockFundRepository), new(MockNotebookRepository))
	reports, err := svc.PeriodicSummary(context.Background(), domain.PeriodicFilter{
		Year: 2026, Month: 3, FromCycle: 1, ToCycle: 2,
	})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	// Opening = 100 configured + 50 collected - 30 deposited = 120.
	row1 := reports[0].Rows[0]
	assert.True(t, row1.OpeningBalance.Equal(dec("120")), "opening was %s", row1.OpeningBalance)
	assert.Equal(t, int32(1), row1.AssignmentCount)
	assert.True(t, row1.NetAmount.Equal(dec("220")), "net was %s", row1.NetAmount)

	// Cycle 2 opens with cycle 1's net.
	row2 := reports[1].Rows[0]
	assert.True(t, row2.OpeningBalance.Equal(dec("220")))
	assert.True(t, row2.NetAmount.Equal(dec("230")))

	// Subtotals mirror the single row.
	assert.True(t, reports[0].SubTotal.TotalCollection.Equal(dec("200")))
	assert.True(t, reports[1].SubTotal.NetAmount.Equal(dec("230")))
}

func TestPeriodicSummary_InvalidCycleRange(t *testing.T) {
	svc := newReportService(new(MockReceiptRepository), new(MockDepositRepository),
		new(MockCollectorRepository), new(MockFundRepository), new(MockNotebookRepository))

	_, err := svc.PeriodicSummary(context.Background(), domain.PeriodicFilter{
		Year: 2026, Month: 3, FromCycle: 3, ToCycle: 1,
	})
	assert.Error(t, err)

	_, err = svc.PeriodicSummary(context.Background(), domain.PeriodicFilter{
		Year: 2026, Month: 13, FromCycle: 1, ToCycle: 1,
	})
	assert.Error(t, err)
}

func TestAnnual_BucketsMissingByEstimatedMonth(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	depositRepo := new(MockDepositRepository)
	notebookRepo := new(MockNotebookRepository)

	marStart, marEnd := utils.MonthWindow(2026, time.March)
	receiptRepo.On("ListInRange", mock.Anything, marStart, marEnd, (*int32)(nil)).Return(receiptsOf("100", "50"), nil)
	depositRepo.On("ListInRange", mock.Anything, marStart, marEnd, (*int32)(nil)).Return(depositsOf("40"), nil)

	// Every other month is quiet.
	receiptRepo.On("ListInRange", mock.Anything, mock.Anything, mock.Anything, (*int32)(nil)).Return([]domain.Receipt{}, nil)
	depositRepo.On("ListInRange", mock.Anything, mock.Anything, mock.Anything, (*int32)(nil)).Return([]domain.Deposit{}, nil)

	marchDate := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	notebookRepo.On("ListMissingInYear", mock.Anything, 2026, (*int32)(nil), (*int32)(nil), "").Return([]domain.MissingReceiptDetail{
		{ReceiptNumber: 7, EstimatedDate: &marchDate},
		{ReceiptNumber: 9, EstimatedDate: &marchDate},
		{ReceiptNumber: 11, EstimatedDate: nil}, // undated, excluded
	}, nil)

	svc := newReportService(receiptRepo, depositRepo, new(MockCollectorRepository), new(MockFundRepository), notebookRepo)
	report, err := svc.Annual(context.Background(), domain.AnnualFilter{Year: 2026})
	require.NoError(t, err)
	require.Len(t, report.Months, 12)

	march := report.Months[time.March-1]
	assert.Equal(t, int32(2), march.ReceiptCount)
	assert.True(t, march.TotalCollection.Equal(dec("150")))
	assert.True(t, march.NetAmount.Equal(dec("110")))
	assert.Equal(t, int32(2), march.MissingCount)

	feb := report.Months[time.February-1]
	assert.Equal(t, int32(0), feb.ReceiptCount)
	assert.Equal(t, int32(0), feb.MissingCount)

	assert.Equal(t, int32(2), report.Totals.ReceiptCount)
	assert.Equal(t, int32(2), report.Totals.MissingCount)
	assert.True(t, report.Totals.NetAmount.Equal(dec("110")))
}

func TestDetailedPeriodic_GroupsAndDeposits(t *testing.T) {
	receiptRepo := new(MockReceiptRepository)
	depositRepo := new(MockDepositRepository)

	day1 := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	from, to := day1, day2.AddDate(0, 0, 1)

	collectorID := int32(1)
	receiptRepo.On("ListInRange", mock.Anything, from, to, (*int32)(nil)).Return([]domain.Receipt{
		// Same day, same block: one row 3..5.
		{ReceiptNumber: 3, Amount: dec("10"), Date: day1, CollectorID: &collectorID, CollectorName: "Hamid"},
		{ReceiptNumber: 5, Amount: dec("20"), Date: day1, CollectorID: &collectorID, CollectorName: "Hamid"},
		// Same day, next block: separate row.
		{ReceiptNumber: 60, Amount: dec("5"), Date: day1, CollectorID: &collectorID, CollectorName: "Hamid"},
	}, nil)
	depositRepo.On("ListInRange", mock.Anything, from, to, (*int32)(nil)).Return([]domain.Deposit{
		{Amount: dec("25"), DepositDate: day1, CollectorName: "Hamid", ReferenceNumber: "DP-1"},
		// Deposit-only day becomes its own row.
		{Amount: dec("7"), DepositDate: day2, CollectorName: "Hamid", ReferenceNumber: "DP-2"},
	}, nil)

	svc := newReportService(receiptRepo, depositRepo, new(MockCollectorRepository), new(MockFundRepository), new(MockNotebookRepository))
	rows, err := svc.DetailedPeriodic(context.Background(), domain.DetailedFilter{StartDate: from, EndDate: to})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, int32(3), rows[0].FromReceipt)
	assert.Equal(t, int32(5), rows[0].ToReceipt)
	assert.Equal(t, int32(2), rows[0].ReceiptCount)
	assert.True(t, rows[0].TotalAmount.Equal(dec("30")))

	// The day's deposit lands on its last row.
	assert.Equal(t, int32(60), rows[1].FromReceipt)
	assert.True(t, rows[1].DepositAmount.Equal(dec("25")))
	assert.Equal(t, "DP-1", rows[1].DepositReceipt)
	assert.True(t, rows[1].NetAmount.Equal(dec("-20")))

	assert.Equal(t, "2026-03-04", rows[2].Date)
	assert.Equal(t, int32(0), rows[2].ReceiptCount)
	assert.True(t, rows[2].DepositAmount.Equal(dec("7")))
	assert.True(t, rows[2].NetAmount.Equal(dec("-7")))
}
