package postgres

import (
	"context"
	"database/sql"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/repository"
)

type collectorRepository struct {
	db *sql.DB
}

func NewCollectorRepository(db *sql.DB) repository.CollectorRepository {
	return &collectorRepository{db: db}
}

func (r *collectorRepository) Create(ctx context.Context, collector *domain.Collector) error {
	query := `INSERT INTO collectors (collector_code, name, opening_balance, fund_id, created_at)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, collector.CollectorCode, collector.Name,
		collector.OpeningBalance, collector.FundID).Scan(&collector.ID, &collector.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *collectorRepository) GetByID(ctx context.Context, id int32) (*domain.Collector, error) {
	query := `SELECT id, collector_code, name, opening_balance, fund_id, created_at FROM collectors WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *collectorRepository) GetByCode(ctx context.Context, code string) (*domain.Collector, error) {
	query := `SELECT id, collector_code, name, opening_balance, fund_id, created_at FROM collectors WHERE collector_code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

func (r *collectorRepository) scanOne(row rowScanner) (*domain.Collector, error) {
	var c domain.Collector
	err := row.Scan(&c.ID, &c.CollectorCode, &c.Name, &c.OpeningBalance, &c.FundID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectorRepository) Update(ctx context.Context, collector *domain.Collector) error {
	query := `UPDATE collectors SET collector_code = $1, name = $2, opening_balance = $3, fund_id = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, collector.CollectorCode, collector.Name,
		collector.OpeningBalance, collector.FundID, collector.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *collectorRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collectors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *collectorRepository) List(ctx context.Context) ([]domain.Collector, error) {
	query := `SELECT id, collector_code, name, opening_balance, fund_id, created_at FROM collectors ORDER BY name`
	return r.collect(ctx, query)
}

func (r *collectorRepository) ListByFund(ctx context.Context, fundID int32) ([]domain.Collector, error) {
	query := `SELECT id, collector_code, name, opening_balance, fund_id, created_at FROM collectors WHERE fund_id = $1 ORDER BY name`
	return r.collect(ctx, query, fundID)
}

func (r *collectorRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM collectors`).Scan(&count)
	return count, err
}

func (r *collectorRepository) collect(ctx context.Context, query string, args ...interface{}) ([]domain.Collector, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collectors []domain.Collector
	for rows.Next() {
		var c domain.Collector
		if err := rows.Scan(&c.ID, &c.CollectorCode, &c.Name, &c.OpeningBalance, &c.FundID, &c.CreatedAt); err != nil {
			return nil, err
		}
		collectors = append(collectors, c)
	}
	return collectors, rows.Err()
}
