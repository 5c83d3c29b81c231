package service

import (
	"context"
	"fmt"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/repository"
)

type collectorService struct {
	collectorRepo repository.CollectorRepository
}

func NewCollectorService(collectorRepo repository.CollectorRepository) CollectorService {
	return &collectorService{collectorRepo: collectorRepo}
}

func (s *collectorService) Create(ctx context.Context, collector *domain.Collector) error {
	if collector.CollectorCode == "" || collector.Name == "" {
		return fmt.Errorf("collector code and name are required")
	}
	return s.collectorRepo.Create(ctx, collector)
}

func (s *collectorService) Get(ctx context.Context, id int32) (*domain.Collector, error) {
	return s.collectorRepo.GetByID(ctx, id)
}

func (s *collectorService) Update(ctx context.Context, collector *domain.Collector) error {
	if collector.CollectorCode == "" || collector.Name == "" {
		return fmt.Errorf("collector code and name are required")
	}
	return s.collectorRepo.Update(ctx, collector)
}

func (s *collectorService) Delete(ctx context.Context, id int32) error {
	return s.collectorRepo.Delete(ctx, id)
}

func (s *collectorService) List(ctx context.Context) ([]domain.Collector, error) {
	return s.collectorRepo.List(ctx)
}
