package service

import (
	"context"
	"errors"
	"fmt"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/logger"
	"tahseel-backend/internal/repository"
)

type receiptService struct {
	receiptRepo    repository.ReceiptRepository
	collectorRepo  repository.CollectorRepository
	subscriberRepo repository.SubscriberRepository
}

func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	collectorRepo repository.CollectorRepository,
	subscriberRepo repository.SubscriberRepository,
) ReceiptService {
	return &receiptService{
		receiptRepo:    receiptRepo,
		collectorRepo:  collectorRepo,
		subscriberRepo: subscriberRepo,
	}
}

func (s *receiptService) Create(ctx context.Context, receipt *domain.Receipt) error {
	if receipt.ReceiptNumber <= 0 {
		return fmt.Errorf("receipt number must be positive")
	}
	if receipt.Status == "" {
		receipt.Status = domain.ReceiptStatusActive
	}
	return s.receiptRepo.Create(ctx, receipt)
}

func (s *receiptService) Get(ctx context.Context, id int32) (*domain.Receipt, error) {
	return s.receiptRepo.GetByID(ctx, id)
}

func (s *receiptService) Update(ctx context.Context, receipt *domain.Receipt) error {
	if receipt.ReceiptNumber <= 0 {
		return fmt.Errorf("receipt number must be positive")
	}
	return s.receiptRepo.Update(ctx, receipt)
}

func (s *receiptService) Delete(ctx context.Context, id int32) error {
	return s.receiptRepo.Delete(ctx, id)
}

func (s *receiptService) List(ctx context.Context, page, pageSize int32) ([]domain.Receipt, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.receiptRepo.List(ctx, page, pageSize)
}

// ImportBatch takes parsed collection-sheet rows, resolves collector codes
// and subscriber names, skips receipt numbers the collector already has, and
// inserts the rest. Rows with unknown collector codes are reported as errors
// and skipped; unknown subscribers are created on the fly.
func (s *receiptService) ImportBatch(ctx context.Context, rows []domain.ReceiptImportRow) (*domain.ImportSummary, error) {
	logger.EnterMethod("receiptService.ImportBatch", "rows", len(rows))
	summary := &domain.ImportSummary{}

	collectors := make(map[string]*domain.Collector)
	subscribers := make(map[string]int32)
	var toCreate []domain.Receipt

	// Numbers already claimed per collector, seeded from the database and
	// extended as the batch itself claims numbers.
	claimed := make(map[string]map[int32]bool)

	for i, row := range rows {
		if row.ReceiptNumber <= 0 {
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: invalid receipt number %d", i+1, row.ReceiptNumber))
			continue
		}

		var collectorID *int32
		scope := ""
		if row.CollectorCode != "" {
			collector, err := s.lookupCollector(ctx, collectors, row.CollectorCode)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: unknown collector code %q", i+1, row.CollectorCode))
					continue
				}
				return nil, err
			}
			collectorID = &collector.ID
			scope = row.CollectorCode
		}

		if claimed[scope] == nil {
			existing, err := s.existingNumbersFor(ctx, rows, collectorID, scope)
			if err != nil {
				return nil, err
			}
			claimed[scope] = existing
		}
		if claimed[scope][row.ReceiptNumber] {
			summary.Skipped++
			continue
		}
		claimed[scope][row.ReceiptNumber] = true

		subscriberID, err := s.lookupOrCreateSubscriber(ctx, subscribers, row.SubscriberName, summary)
		if err != nil {
			return nil, err
		}

		toCreate = append(toCreate, domain.Receipt{
			ReceiptNumber: row.ReceiptNumber,
			Amount:        row.Amount,
			Date:          row.Date,
			Status:        domain.ReceiptStatusActive,
			CollectorID:   collectorID,
			SubscriberID:  subscriberID,
		})
	}

	if err := s.receiptRepo.CreateBatch(ctx, toCreate); err != nil {
		logger.ExitMethodWithError("receiptService.ImportBatch", err)
		return nil, err
	}
	summary.Created = len(toCreate)

	logger.ExitMethod("receiptService.ImportBatch",
		"created", summary.Created, "skipped", summary.Skipped,
		"newSubscribers", summary.NewSubscribers, "errors", len(summary.Errors))
	return summary, nil
}

func (s *receiptService) lookupCollector(ctx context.Context, cache map[string]*domain.Collector, code string) (*domain.Collector, error) {
	if c, ok := cache[code]; ok {
		if c == nil {
			return nil, domain.ErrNotFound
		}
		return c, nil
	}
	c, err := s.collectorRepo.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		cache[code] = nil
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	cache[code] = c
	return c, nil
}

func (s *receiptService) existingNumbersFor(ctx context.Context, rows []domain.ReceiptImportRow, collectorID *int32, scope string) (map[int32]bool, error) {
	var numbers []int32
	for _, row := range rows {
		if row.CollectorCode == scope {
			numbers = append(numbers, row.ReceiptNumber)
		}
	}
	return s.receiptRepo.ExistingNumbers(ctx, collectorID, numbers)
}

func (s *receiptService) lookupOrCreateSubscriber(ctx context.Context, cache map[string]int32, name string, summary *domain.ImportSummary) (int32, error) {
	if name == "" {
		name = "Unknown"
	}
	if id, ok := cache[name]; ok {
		return id, nil
	}

	sub, err := s.subscriberRepo.GetByName(ctx, name)
	if err == nil {
		cache[name] = sub.ID
		return sub.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}

	created := &domain.Subscriber{Name: name}
	if err := s.subscriberRepo.Create(ctx, created); err != nil {
		return 0, err
	}
	summary.NewSubscribers++
	cache[name] = created.ID
	return created.ID, nil
}
