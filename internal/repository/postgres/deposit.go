package postgres

import (
	"context"
	"database/sql"
	"time"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/repository"
)

type depositRepository struct {
	db *sql.DB
}

func NewDepositRepository(db *sql.DB) repository.DepositRepository {
	return &depositRepository{db: db}
}

const depositColumns = `d.id, d.amount, d.deposit_date, COALESCE(d.reference_number, ''), d.collector_id, COALESCE(c.name, ''), d.created_at`

const depositJoins = `FROM deposits d LEFT JOIN collectors c ON c.id = d.collector_id`

func scanDeposit(row rowScanner) (*domain.Deposit, error) {
	var d domain.Deposit
	err := row.Scan(&d.ID, &d.Amount, &d.DepositDate, &d.ReferenceNumber, &d.CollectorID, &d.CollectorName, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *depositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	query := `INSERT INTO deposits (amount, deposit_date, reference_number, collector_id, created_at)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, deposit.Amount, deposit.DepositDate,
		deposit.ReferenceNumber, deposit.CollectorID).Scan(&deposit.ID, &deposit.CreatedAt)
}

func (r *depositRepository) GetByID(ctx context.Context, id int32) (*domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` ` + depositJoins + ` WHERE d.id = $1`
	deposit, err := scanDeposit(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return deposit, err
}

func (r *depositRepository) Update(ctx context.Context, deposit *domain.Deposit) error {
	query := `UPDATE deposits SET amount = $1, deposit_date = $2, reference_number = $3, collector_id = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, deposit.Amount, deposit.DepositDate,
		deposit.ReferenceNumber, deposit.CollectorID, deposit.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *depositRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM deposits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *depositRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Deposit, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + depositColumns + ` ` + depositJoins + ` ORDER BY d.deposit_date DESC, d.id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	deposits, err := collectDeposits(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM deposits`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return deposits, count, nil
}

func (r *depositRepository) ListInRange(ctx context.Context, from, to time.Time, collectorID *int32) ([]domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` ` + depositJoins + ` WHERE d.deposit_date >= $1 AND d.deposit_date < $2`
	args := []interface{}{from, to}
	if collectorID != nil {
		query += ` AND d.collector_id = $3`
		args = append(args, *collectorID)
	}
	query += ` ORDER BY d.deposit_date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeposits(rows)
}

func (r *depositRepository) ListRecent(ctx context.Context, limit int32) ([]domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` ` + depositJoins + ` ORDER BY d.created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeposits(rows)
}

func collectDeposits(rows *sql.Rows) ([]domain.Deposit, error) {
	var deposits []domain.Deposit
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, *d)
	}
	return deposits, rows.Err()
}
