package postgres

import (
	"context"
	"database/sql"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/repository"
)

type fundRepository struct {
	db *sql.DB
}

func NewFundRepository(db *sql.DB) repository.FundRepository {
	return &fundRepository{db: db}
}

func (r *fundRepository) Create(ctx context.Context, fund *domain.Fund) error {
	query := `INSERT INTO funds (name, fund_code, description, created_at) VALUES ($1, $2, $3, NOW()) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, fund.Name, fund.FundCode, fund.Description).Scan(&fund.ID, &fund.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *fundRepository) GetByID(ctx context.Context, id int32) (*domain.Fund, error) {
	var f domain.Fund
	query := `SELECT id, name, fund_code, COALESCE(description, ''), created_at FROM funds WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.FundCode, &f.Description, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fundRepository) Update(ctx context.Context, fund *domain.Fund) error {
	query := `UPDATE funds SET name = $1, fund_code = $2, description = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, fund.Name, fund.FundCode, fund.Description, fund.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *fundRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM funds WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *fundRepository) List(ctx context.Context) ([]domain.Fund, error) {
	query := `SELECT id, name, fund_code, COALESCE(description, ''), created_at FROM funds ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var funds []domain.Fund
	for rows.Next() {
		var f domain.Fund
		if err := rows.Scan(&f.ID, &f.Name, &f.FundCode, &f.Description, &f.CreatedAt); err != nil {
			return nil, err
		}
		funds = append(funds, f)
	}
	return funds, rows.Err()
}
