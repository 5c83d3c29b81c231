package service

import (
	"context"
	"fmt"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/repository"
)

type fundService struct {
	fundRepo repository.FundRepository
}

func NewFundService(fundRepo repository.FundRepository) FundService {
	return &fundService{fundRepo: fundRepo}
}

func (s *fundService) Create(ctx context.Context, fund *domain.Fund) error {
	if fund.Name == "" || fund.FundCode == "" {
		return fmt.Errorf("fund name and code are required")
	}
	return s.fundRepo.Create(ctx, fund)
}

func (s *fundService) Get(ctx context.Context, id int32) (*domain.Fund, error) {
	return s.fundRepo.GetByID(ctx, id)
}

func (s *fundService) Update(ctx context.Context, fund *domain.Fund) error {
	if fund.Name == "" || fund.FundCode == "" {
		return fmt.Errorf("fund name and code are required")
	}
	return s.fundRepo.Update(ctx, fund)
}

func (s *fundService) Delete(ctx context.Context, id int32) error {
	return s.fundRepo.Delete(ctx, id)
}

func (s *fundService) List(ctx context.Context) ([]domain.Fund, error) {
	return s.fundRepo.List(ctx)
}
