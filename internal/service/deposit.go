package service

import (
	"context"
	"fmt"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/repository"
)

type depositService struct {
	depositRepo   repository.DepositRepository
	collectorRepo repository.CollectorRepository
}

func NewDepositService(depositRepo repository.DepositRepository, collectorRepo repository.CollectorRepository) DepositService {
	return &depositService{depositRepo: depositRepo, collectorRepo: collectorRepo}
}

func (s *depositService) Create(ctx context.Context, deposit *domain.Deposit) error {
	if !deposit.Amount.IsPositive() {
		return fmt.Errorf("deposit amount must be positive")
	}
	// The collector must exist; deposits are always attributed.
	if _, err := s.collectorRepo.GetByID(ctx, deposit.CollectorID); err != nil {
		return err
	}
	return s.depositRepo.Create(ctx, deposit)
}

func (s *depositService) Get(ctx context.Context, id int32) (*domain.Deposit, error) {
	return s.depositRepo.GetByID(ctx, id)
}

func (s *depositService) Update(ctx context.Context, deposit *domain.Deposit) error {
	if !deposit.Amount.IsPositive() {
		return fmt.Errorf("deposit amount must be positive")
	}
	return s.depositRepo.Update(ctx, deposit)
}

func (s *depositService) Delete(ctx context.Context, id int32) error {
	return s.depositRepo.Delete(ctx, id)
}

func (s *depositService) List(ctx context.Context, page, pageSize int32) ([]domain.Deposit, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.depositRepo.List(ctx, page, pageSize)
}
