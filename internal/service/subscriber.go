package service

import (
	"context"
	"fmt"
	"time"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/repository"
)

type subscriberService struct {
	subscriberRepo repository.SubscriberRepository
	receiptRepo    repository.ReceiptRepository
}

func NewSubscriberService(subscriberRepo repository.SubscriberRepository, receiptRepo repository.ReceiptRepository) SubscriberService {
	return &subscriberService{subscriberRepo: subscriberRepo, receiptRepo: receiptRepo}
}

func (s *subscriberService) Create(ctx context.Context, subscriber *domain.Subscriber) error {
	if subscriber.Name == "" {
		return fmt.Errorf("subscriber name is required")
	}
	return s.subscriberRepo.Create(ctx, subscriber)
}

func (s *subscriberService) Get(ctx context.Context, id int32) (*domain.Subscriber, error) {
	return s.subscriberRepo.GetByID(ctx, id)
}

func (s *subscriberService) Update(ctx context.Context, subscriber *domain.Subscriber) error {
	if subscriber.Name == "" {
		return fmt.Errorf("subscriber name is required")
	}
	return s.subscriberRepo.Update(ctx, subscriber)
}

func (s *subscriberService) Delete(ctx context.Context, id int32) error {
	return s.subscriberRepo.Delete(ctx, id)
}

func (s *subscriberService) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Subscriber, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.subscriberRepo.List(ctx, query, page, pageSize)
}

func (s *subscriberService) LatestPayments(ctx context.Context) ([]domain.SubscriberPayment, error) {
	return s.receiptRepo.ListLatestPerSubscriber(ctx)
}

// Statement returns one subscriber's receipts over an optional window plus
// the total paid.
func (s *subscriberService) Statement(ctx context.Context, subscriberID int32, from, to *time.Time) (*domain.SubscriberStatement, error) {
	subscriber, err := s.subscriberRepo.GetByID(ctx, subscriberID)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.ListBySubscriber(ctx, subscriberID, from, to)
	if err != nil {
		return nil, err
	}

	statement := &domain.SubscriberStatement{
		SubscriberName:  subscriber.Name,
		SubscriberPhone: subscriber.Phone,
		Receipts:        receipts,
	}
	for _, r := range receipts {
		statement.TotalAmount = statement.TotalAmount.Add(r.Amount)
	}
	return statement, nil
}
