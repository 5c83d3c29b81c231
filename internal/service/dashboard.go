package service

import (
	"context"
	"time"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/logger"
	"tahseel-backend/internal/repository"
	"tahseel-backend/internal/utils"
)

type dashboardService struct {
	receiptRepo   repository.ReceiptRepository
	depositRepo   repository.DepositRepository
	collectorRepo repository.CollectorRepository
	notebookRepo  repository.NotebookRepository
}

func NewDashboardService(
	receiptRepo repository.ReceiptRepository,
	depositRepo repository.DepositRepository,
	collectorRepo repository.CollectorRepository,
	notebookRepo repository.NotebookRepository,
) DashboardService {
	return &dashboardService{
		receiptRepo:   receiptRepo,
		depositRepo:   depositRepo,
		collectorRepo: collectorRepo,
		notebookRepo:  notebookRepo,
	}
}

// Summary assembles the landing-page KPIs: this month's collection, collector
// count, today's receipts, total missing slips, a six-month trend, per-fund
// totals for the current month, and the latest activity.
func (s *dashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	logger.EnterMethod("dashboardService.Summary")

	now := time.Now().UTC()
	monthStart, monthEnd := utils.MonthWindow(now.Year(), now.Month())
	dayStart, dayEnd := utils.DayWindow(now)

	summary := &domain.DashboardSummary{}

	var err error
	if summary.TotalCollectedThisMonth, err = s.receiptRepo.SumAmountInRange(ctx, monthStart, monthEnd); err != nil {
		logger.ExitMethodWithError("dashboardService.Summary", err)
		return nil, err
	}
	if summary.ActiveCollectorsCount, err = s.collectorRepo.Count(ctx); err != nil {
		return nil, err
	}
	if summary.ReceiptsTodayCount, err = s.receiptRepo.CountInRange(ctx, dayStart, dayEnd); err != nil {
		return nil, err
	}
	if summary.TotalMissingReceipts, err = s.notebookRepo.TotalMissingCount(ctx); err != nil {
		return nil, err
	}

	trendStart := monthStart.AddDate(0, -5, 0)
	if summary.MonthlyCollection, err = s.receiptRepo.SumByMonthSince(ctx, trendStart); err != nil {
		return nil, err
	}
	if summary.CollectionByFund, err = s.receiptRepo.SumByFundInRange(ctx, monthStart, monthEnd); err != nil {
		return nil, err
	}
	if summary.LastReceipts, err = s.receiptRepo.ListRecent(ctx, 5); err != nil {
		return nil, err
	}
	if summary.LastDeposits, err = s.depositRepo.ListRecent(ctx, 5); err != nil {
		return nil, err
	}

	logger.ExitMethod("dashboardService.Summary")
	return summary, nil
}
