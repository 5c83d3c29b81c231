package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/logger"
	"tahseel-backend/internal/reconcile"
	"tahseel-backend/internal/repository"
	"tahseel-backend/internal/utils"

	"github.com/shopspring/decimal"
)

type reportService struct {
	receiptRepo   repository.ReceiptRepository
	depositRepo   repository.DepositRepository
	collectorRepo repository.CollectorRepository
	fundRepo      repository.FundRepository
	notebookRepo  repository.NotebookRepository
}

func NewReportService(
	receiptRepo repository.ReceiptRepository,
	depositRepo repository.DepositRepository,
	collectorRepo repository.CollectorRepository,
	fundRepo repository.FundRepository,
	notebookRepo repository.NotebookRepository,
) ReportService {
	return &reportService{
		receiptRepo:   receiptRepo,
		depositRepo:   depositRepo,
		collectorRepo: collectorRepo,
		fundRepo:      fundRepo,
		notebookRepo:  notebookRepo,
	}
}

// PeriodicSummary builds per-collector cycle tables. Each collector's opening
// balance for the first requested cycle is the configured opening balance plus
// all collections minus all deposits before that cycle; each later cycle opens
// with the previous cycle's net amount.
func (s *reportService) PeriodicSummary(ctx context.Context, filter domain.PeriodicFilter) ([]domain.CycleReport, error) {
	logger.EnterMethod("reportService.PeriodicSummary", "year", filter.Year, "month", filter.Month)

	if err := normalizeCycles(&filter); err != nil {
		return nil, err
	}

	collectors, err := s.resolveCollectors(ctx, filter.CollectorID, filter.FundID)
	if err != nil {
		logger.ExitMethodWithError("reportService.PeriodicSummary", err)
		return nil, err
	}

	firstStart, _, err := utils.CycleWindow(filter.Year, time.Month(filter.Month), filter.FromCycle)
	if err != nil {
		return nil, err
	}

	openings := make([]decimal.Decimal, len(collectors))
	for i := range collectors {
		opening, err := s.balanceBefore(ctx, &collectors[i], firstStart)
		if err != nil {
			logger.ExitMethodWithError("reportService.PeriodicSummary", err, "collectorID", collectors[i].ID)
			return nil, err
		}
		openings[i] = opening
	}

	var reports []domain.CycleReport
	for cycle := filter.FromCycle; cycle <= filter.ToCycle; cycle++ {
		start, end, err := utils.CycleWindow(filter.Year, time.Month(filter.Month), cycle)
		if err != nil {
			return nil, err
		}

		report := domain.CycleReport{Cycle: cycle, Start: start, End: end}
		subTotal := domain.CycleRow{Name: "Total"}
		for i := range collectors {
			row, err := s.collectorCycleRow(ctx, &collectors[i], start, end, openings[i])
			if err != nil {
				logger.ExitMethodWithError("reportService.PeriodicSummary", err, "collectorID", collectors[i].ID)
				return nil, err
			}
			// Carry forward: this cycle's net opens the next cycle.
			openings[i] = row.NetAmount
			report.Rows = append(report.Rows, row)
			accumulate(&subTotal, row)
		}
		report.SubTotal = subTotal
		reports = append(reports, report)
	}

	logger.ExitMethod("reportService.PeriodicSummary", "cycles", len(reports))
	return reports, nil
}

// FundPeriodicSummary is the same carry-forward report rolled up per fund.
func (s *reportService) FundPeriodicSummary(ctx context.Context, filter domain.PeriodicFilter) ([]domain.CycleReport, error) {
	logger.EnterMethod("reportService.FundPeriodicSummary", "year", filter.Year, "month", filter.Month)

	if err := normalizeCycles(&filter); err != nil {
		return nil, err
	}

	funds, err := s.fundRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter.FundID != nil {
		filtered := funds[:0]
		for _, f := range funds {
			if f.ID == *filter.FundID {
				filtered = append(filtered, f)
			}
		}
		funds = filtered
	}

	firstStart, _, err := utils.CycleWindow(filter.Year, time.Month(filter.Month), filter.FromCycle)
	if err != nil {
		return nil, err
	}

	fundCollectors := make([][]domain.Collector, len(funds))
	openings := make([]decimal.Decimal, len(funds))
	for i, f := range funds {
		collectors, err := s.collectorRepo.ListByFund(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		fundCollectors[i] = collectors
		for j := range collectors {
			opening, err := s.balanceBefore(ctx, &collectors[j], firstStart)
			if err != nil {
				return nil, err
			}
			openings[i] = openings[i].Add(opening)
		}
	}

	var reports []domain.CycleReport
	for cycle := filter.FromCycle; cycle <= filter.ToCycle; cycle++ {
		start, end, err := utils.CycleWindow(filter.Year, time.Month(filter.Month), cycle)
		if err != nil {
			return nil, err
		}

		report := domain.CycleReport{Cycle: cycle, Start: start, End: end}
		subTotal := domain.CycleRow{Name: "Total"}
		for i, f := range funds {
			row := domain.CycleRow{Name: f.Name, OpeningBalance: openings[i]}
			for j := range fundCollectors[i] {
				cRow, err := s.collectorCycleRow(ctx, &fundCollectors[i][j], start, end, decimal.Zero)
				if err != nil {
					return nil, err
				}
				row.AssignmentCount += cRow.AssignmentCount
				row.TotalCollection = row.TotalCollection.Add(cRow.TotalCollection)
				row.TotalDeposit = row.TotalDeposit.Add(cRow.TotalDeposit)
			}
			row.NetAmount = row.OpeningBalance.Add(row.TotalCollection).Sub(row.TotalDeposit)
			openings[i] = row.NetAmount
			report.Rows = append(report.Rows, row)
			accumulate(&subTotal, row)
		}
		report.SubTotal = subTotal
		reports = append(reports, report)
	}

	logger.ExitMethod("reportService.FundPeriodicSummary", "cycles", len(reports))
	return reports, nil
}

func (s *reportService) collectorCycleRow(ctx context.Context, c *domain.Collector, start, end time.Time, opening decimal.Decimal) (domain.CycleRow, error) {
	row := domain.CycleRow{Name: c.Name, OpeningBalance: opening}

	receipts, err := s.receiptRepo.ListInRange(ctx, start, end, &c.ID)
	if err != nil {
		return row, err
	}
	for _, r := range receipts {
		row.AssignmentCount++
		row.TotalCollection = row.TotalCollection.Add(r.Amount)
	}

	deposits, err := s.depositRepo.ListInRange(ctx, start, end, &c.ID)
	if err != nil {
		return row, err
	}
	for _, d := range deposits {
		row.TotalDeposit = row.TotalDeposit.Add(d.Amount)
	}

	row.NetAmount = row.OpeningBalance.Add(row.TotalCollection).Sub(row.TotalDeposit)
	return row, nil
}

// balanceBefore computes a collector's running balance just before cutoff.
func (s *reportService) balanceBefore(ctx context.Context, c *domain.Collector, cutoff time.Time) (decimal.Decimal, error) {
	balance := c.OpeningBalance

	receipts, err := s.receiptRepo.ListInRange(ctx, time.Time{}, cutoff, &c.ID)
	if err != nil {
		return balance, err
	}
	for _, r := range receipts {
		balance = balance.Add(r.Amount)
	}

	deposits, err := s.depositRepo.ListInRange(ctx, time.Time{}, cutoff, &c.ID)
	if err != nil {
		return balance, err
	}
	for _, d := range deposits {
		balance = balance.Sub(d.Amount)
	}
	return balance, nil
}

// DetailedPeriodic groups receipts by collector, day, and notebook block, and
// nets same-day deposits in. The range is half-open: EndDate is exclusive.
func (s *reportService) DetailedPeriodic(ctx context.Context, filter domain.DetailedFilter) ([]domain.DetailedRow, error) {
	logger.EnterMethod("reportService.DetailedPeriodic", "start", filter.StartDate, "end", filter.EndDate)

	receipts, err := s.receiptRepo.ListInRange(ctx, filter.StartDate, filter.EndDate, filter.CollectorID)
	if err != nil {
		return nil, err
	}
	deposits, err := s.depositRepo.ListInRange(ctx, filter.StartDate, filter.EndDate, filter.CollectorID)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		Collector string
		Date      string
		Block     int32
	}
	groups := make(map[groupKey]*domain.DetailedRow)
	for _, r := range receipts {
		name := r.CollectorName
		if r.CollectorID == nil {
			name = "Unassigned"
		}
		key := groupKey{Collector: name, Date: r.Date.UTC().Format("2006-01-02"), Block: reconcile.BlockStart(r.ReceiptNumber)}
		row, ok := groups[key]
		if !ok {
			row = &domain.DetailedRow{
				CollectorName: key.Collector,
				Date:          key.Date,
				FromReceipt:   r.ReceiptNumber,
				ToReceipt:     r.ReceiptNumber,
			}
			groups[key] = row
		}
		if r.ReceiptNumber < row.FromReceipt {
			row.FromReceipt = r.ReceiptNumber
		}
		if r.ReceiptNumber > row.ToReceipt {
			row.ToReceipt = r.ReceiptNumber
		}
		row.ReceiptCount++
		row.TotalAmount = row.TotalAmount.Add(r.Amount)
	}

	rows := make([]domain.DetailedRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].CollectorName != rows[j].CollectorName {
			return rows[i].CollectorName < rows[j].CollectorName
		}
		return rows[i].FromReceipt < rows[j].FromReceipt
	})

	// Attach each deposit to the last row of that collector's day; days with
	// deposits but no collections get their own zero-collection row.
	for _, d := range deposits {
		date := d.DepositDate.UTC().Format("2006-01-02")
		attached := false
		for i := len(rows) - 1; i >= 0; i-- {
			if rows[i].CollectorName == d.CollectorName && rows[i].Date == date {
				rows[i].DepositAmount = rows[i].DepositAmount.Add(d.Amount)
				rows[i].DepositReceipt = joinRef(rows[i].DepositReceipt, d.ReferenceNumber)
				attached = true
				break
			}
		}
		if !attached {
			rows = append(rows, domain.DetailedRow{
				CollectorName:  d.CollectorName,
				Date:           date,
				DepositAmount:  d.Amount,
				DepositReceipt: d.ReferenceNumber,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].CollectorName != rows[j].CollectorName {
			return rows[i].CollectorName < rows[j].CollectorName
		}
		return rows[i].FromReceipt < rows[j].FromReceipt
	})

	for i := range rows {
		rows[i].NetAmount = rows[i].TotalAmount.Sub(rows[i].DepositAmount)
	}

	logger.ExitMethod("reportService.DetailedPeriodic", "rows", len(rows))
	return rows, nil
}

// Annual builds twelve monthly rollups. Missing slips are bucketed by their
// estimated date's month; entries with no estimate are left out.
func (s *reportService) Annual(ctx context.Context, filter domain.AnnualFilter) (*domain.AnnualReport, error) {
	logger.EnterMethod("reportService.Annual", "year", filter.Year)

	collectorIDs, err := s.resolveCollectorIDs(ctx, filter.CollectorID, filter.FundID)
	if err != nil {
		return nil, err
	}

	report := &domain.AnnualReport{Year: filter.Year, Months: make([]domain.MonthlyRow, 12)}
	for m := time.January; m <= time.December; m++ {
		start, end := utils.MonthWindow(filter.Year, m)
		row := domain.MonthlyRow{Month: m}

		for _, id := range collectorIDs {
			receipts, err := s.receiptRepo.ListInRange(ctx, start, end, id)
			if err != nil {
				return nil, err
			}
			for _, r := range receipts {
				row.ReceiptCount++
				row.TotalCollection = row.TotalCollection.Add(r.Amount)
			}
			deposits, err := s.depositRepo.ListInRange(ctx, start, end, id)
			if err != nil {
				return nil, err
			}
			for _, d := range deposits {
				row.TotalDeposit = row.TotalDeposit.Add(d.Amount)
			}
		}
		row.NetAmount = row.TotalCollection.Sub(row.TotalDeposit)
		report.Months[m-1] = row
	}

	missing, err := s.notebookRepo.ListMissingInYear(ctx, filter.Year, filter.CollectorID, filter.FundID, "")
	if err != nil {
		return nil, err
	}
	for _, d := range missing {
		if d.EstimatedDate == nil {
			continue
		}
		report.Months[d.EstimatedDate.UTC().Month()-1].MissingCount++
	}

	totals := domain.MonthlyRow{}
	for _, row := range report.Months {
		totals.TotalCollection = totals.TotalCollection.Add(row.TotalCollection)
		totals.TotalDeposit = totals.TotalDeposit.Add(row.TotalDeposit)
		totals.ReceiptCount += row.ReceiptCount
		totals.MissingCount += row.MissingCount
	}
	totals.NetAmount = totals.TotalCollection.Sub(totals.TotalDeposit)
	report.Totals = totals

	logger.ExitMethod("reportService.Annual", "year", filter.Year)
	return report, nil
}

// resolveCollectors narrows the collector set by the optional filters.
func (s *reportService) resolveCollectors(ctx context.Context, collectorID, fundID *int32) ([]domain.Collector, error) {
	if collectorID != nil {
		c, err := s.collectorRepo.GetByID(ctx, *collectorID)
		if err != nil {
			return nil, err
		}
		return []domain.Collector{*c}, nil
	}
	if fundID != nil {
		return s.collectorRepo.ListByFund(ctx, *fundID)
	}
	return s.collectorRepo.List(ctx)
}

// resolveCollectorIDs returns query scopes: a single nil scope means one
// unfiltered query over all receipts.
func (s *reportService) resolveCollectorIDs(ctx context.Context, collectorID, fundID *int32) ([]*int32, error) {
	if collectorID == nil && fundID == nil {
		return []*int32{nil}, nil
	}
	collectors, err := s.resolveCollectors(ctx, collectorID, fundID)
	if err != nil {
		return nil, err
	}
	ids := make([]*int32, len(collectors))
	for i := range collectors {
		id := collectors[i].ID
		ids[i] = &id
	}
	return ids, nil
}

func normalizeCycles(filter *domain.PeriodicFilter) error {
	if filter.FromCycle == 0 {
		filter.FromCycle = 1
	}
	if filter.ToCycle == 0 {
		filter.ToCycle = 3
	}
	if filter.FromCycle < 1 || filter.ToCycle > 3 || filter.FromCycle > filter.ToCycle {
		return fmt.Errorf("invalid cycle range %d-%d", filter.FromCycle, filter.ToCycle)
	}
	if filter.Month < 1 || filter.Month > 12 {
		return fmt.Errorf("invalid month %d", filter.Month)
	}
	return nil
}

func accumulate(total *domain.CycleRow, row domain.CycleRow) {
	total.OpeningBalance = total.OpeningBalance.Add(row.OpeningBalance)
	total.AssignmentCount += row.AssignmentCount
	total.TotalCollection = total.TotalCollection.Add(row.TotalCollection)
	total.TotalDeposit = total.TotalDeposit.Add(row.TotalDeposit)
	total.NetAmount = total.NetAmount.Add(row.NetAmount)
}

func joinRef(existing, ref string) string {
	if existing == "" {
		return ref
	}
	if ref == "" {
		return existing
	}
	return existing + ", " + ref
}
