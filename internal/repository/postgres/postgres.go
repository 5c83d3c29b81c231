package postgres

import (
	"database/sql"

	"tahseel-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ReceiptRepository
	repository.NotebookRepository
	repository.CollectorRepository
	repository.FundRepository
	repository.DepositRepository
	repository.SubscriberRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		ReceiptRepository:    NewReceiptRepository(db),
		NotebookRepository:   NewNotebookRepository(db),
		CollectorRepository:  NewCollectorRepository(db),
		FundRepository:       NewFundRepository(db),
		DepositRepository:    NewDepositRepository(db),
		SubscriberRepository: NewSubscriberRepository(db),
		UserRepository:       NewUserRepository(db),
	}
}
