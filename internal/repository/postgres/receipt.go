package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type receiptRepository struct {
	db *sql.DB
}

func NewReceiptRepository(db *sql.DB) repository.ReceiptRepository {
	return &receiptRepository{db: db}
}

const receiptColumns = `r.id, r.receipt_number, r.amount, r.receipt_date, r.status, r.collector_id,
	          COALESCE(c.name, ''), r.subscriber_id, COALESCE(s.name, ''), r.created_at`

const receiptJoins = `FROM receipts r
	          LEFT JOIN collectors c ON c.id = r.collector_id
	          LEFT JOIN subscribers s ON s.id = r.subscriber_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReceipt(row rowScanner) (*domain.Receipt, error) {
	var r domain.Receipt
	err := row.Scan(&r.ID, &r.ReceiptNumber, &r.Amount, &r.Date, &r.Status, &r.CollectorID,
		&r.CollectorName, &r.SubscriberID, &r.SubscriberName, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *receiptRepository) Create(ctx context.Context, receipt *domain.Receipt) error {
	query := `INSERT INTO receipts (receipt_number, amount, receipt_date, status, collector_id, subscriber_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, receipt.ReceiptNumber, receipt.Amount, receipt.Date,
		receipt.Status, receipt.CollectorID, receipt.SubscriberID).Scan(&receipt.ID, &receipt.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *receiptRepository) CreateBatch(ctx context.Context, receipts []domain.Receipt) error {
	if len(receipts) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO receipts (receipt_number, amount, receipt_date, status, collector_id, subscriber_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW())`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range receipts {
		rc := &receipts[i]
		if _, err := stmt.ExecContext(ctx, rc.ReceiptNumber, rc.Amount, rc.Date, rc.Status, rc.CollectorID, rc.SubscriberID); err != nil {
			return fmt.Errorf("insert receipt %d: %w", rc.ReceiptNumber, err)
		}
	}
	return tx.Commit()
}

func (r *receiptRepository) GetByID(ctx context.Context, id int32) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` ` + receiptJoins + ` WHERE r.id = $1`
	receipt, err := scanReceipt(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return receipt, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *domain.Receipt) error {
	query := `UPDATE receipts SET receipt_number = $1, amount = $2, receipt_date = $3, status = $4, collector_id = $5, subscriber_id = $6
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query, receipt.ReceiptNumber, receipt.Amount, receipt.Date,
		receipt.Status, receipt.CollectorID, receipt.SubscriberID, receipt.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *receiptRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *receiptRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Receipt, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + receiptColumns + ` ` + receiptJoins + ` ORDER BY r.receipt_date DESC, r.id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	receipts, err := collectReceipts(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM receipts`).Scan(&count); err != nil {
		return nil, 0, err
	}
	return receipts, count, nil
}

func (r *receiptRepository) ListByCollector(ctx context.Context, collectorID *int32) ([]domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` ` + receiptJoins + ` WHERE `
	var rows *sql.Rows
	var err error
	if collectorID == nil {
		rows, err = r.db.QueryContext(ctx, query+`r.collector_id IS NULL ORDER BY r.receipt_number`)
	} else {
		rows, err = r.db.QueryContext(ctx, query+`r.collector_id = $1 ORDER BY r.receipt_number`, *collectorID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReceipts(rows)
}

func (r *receiptRepository) FindByNumber(ctx context.Context, receiptNumber int32, collectorID *int32) ([]domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` ` + receiptJoins + ` WHERE r.receipt_number = $1`
	args := []interface{}{receiptNumber}
	if collectorID != nil {
		query += ` AND r.collector_id = $2`
		args = append(args, *collectorID)
	}
	query += ` ORDER BY r.collector_id NULLS LAST, r.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReceipts(rows)
}

func (r *receiptRepository) ListCollectorIDsModifiedSince(ctx context.Context, since time.Time) ([]*int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT collector_id FROM receipts WHERE created_at >= $1`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []*int32
	for rows.Next() {
		var id *int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *receiptRepository) ListInRange(ctx context.Context, from, to time.Time, collectorID *int32) ([]domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` ` + receiptJoins + ` WHERE r.receipt_date >= $1 AND r.receipt_date < $2`
	args := []interface{}{from, to}
	if collectorID != nil {
		query += ` AND r.collector_id = $3`
		args = append(args, *collectorID)
	}
	query += ` ORDER BY r.receipt_date, r.receipt_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReceipts(rows)
}

func (r *receiptRepository) ListBySubscriber(ctx context.Context, subscriberID int32, from, to *time.Time) ([]domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` ` + receiptJoins + ` WHERE r.subscriber_id = $1`
	args := []interface{}{subscriberID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND r.receipt_date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND r.receipt_date < $%d`, len(args))
	}
	query += ` ORDER BY r.receipt_date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReceipts(rows)
}

func (r *receiptRepository) ExistingNumbers(ctx context.Context, collectorID *int32, numbers []int32) (map[int32]bool, error) {
	if len(numbers) == 0 {
		return map[int32]bool{}, nil
	}
	nums := make([]int64, len(numbers))
	for i, n := range numbers {
		nums[i] = int64(n)
	}

	var rows *sql.Rows
	var err error
	if collectorID == nil {
		rows, err = r.db.QueryContext(ctx, `SELECT receipt_number FROM receipts WHERE collector_id IS NULL AND receipt_number = ANY($1)`, pq.Array(nums))
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT receipt_number FROM receipts WHERE collector_id = $1 AND receipt_number = ANY($2)`, *collectorID, pq.Array(nums))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[int32]bool)
	for rows.Next() {
		var n int32
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		existing[n] = true
	}
	return existing, rows.Err()
}

func (r *receiptRepository) SumAmountInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM receipts WHERE receipt_date >= $1 AND receipt_date < $2`
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&total)
	return total, err
}

func (r *receiptRepository) CountInRange(ctx context.Context, from, to time.Time) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM receipts WHERE receipt_date >= $1 AND receipt_date < $2`
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&count)
	return count, err
}

func (r *receiptRepository) ListRecent(ctx context.Context, limit int32) ([]domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` ` + receiptJoins + ` ORDER BY r.created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReceipts(rows)
}

func (r *receiptRepository) SumByFundInRange(ctx context.Context, from, to time.Time) ([]domain.FundTotal, error) {
	query := `SELECT COALESCE(f.name, 'Unassigned'), COALESCE(SUM(r.amount), 0)
	          FROM receipts r
	          LEFT JOIN collectors c ON c.id = r.collector_id
	          LEFT JOIN funds f ON f.id = c.fund_id
	          WHERE r.receipt_date >= $1 AND r.receipt_date < $2
	          GROUP BY f.name ORDER BY 2 DESC`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.FundTotal
	for rows.Next() {
		var t domain.FundTotal
		if err := rows.Scan(&t.FundName, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *receiptRepository) SumByMonthSince(ctx context.Context, since time.Time) ([]domain.MonthTotal, error) {
	query := `SELECT date_part('year', receipt_date)::int, date_part('month', receipt_date)::int, COALESCE(SUM(amount), 0)
	          FROM receipts WHERE receipt_date >= $1 GROUP BY 1, 2 ORDER BY 1, 2`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.MonthTotal
	for rows.Next() {
		var t domain.MonthTotal
		var month int
		if err := rows.Scan(&t.Year, &month, &t.Total); err != nil {
			return nil, err
		}
		t.Month = time.Month(month)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *receiptRepository) ListLatestPerSubscriber(ctx context.Context) ([]domain.SubscriberPayment, error) {
	query := `SELECT DISTINCT ON (r.subscriber_id) r.subscriber_id, s.name, COALESCE(s.phone, ''), r.receipt_date, r.amount
	          FROM receipts r
	          JOIN subscribers s ON s.id = r.subscriber_id
	          ORDER BY r.subscriber_id, r.receipt_date DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.SubscriberPayment
	for rows.Next() {
		var p domain.SubscriberPayment
		if err := rows.Scan(&p.SubscriberID, &p.SubscriberName, &p.SubscriberPhone, &p.LatestDate, &p.LatestAmount); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func collectReceipts(rows *sql.Rows) ([]domain.Receipt, error) {
	var receipts []domain.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, *receipt)
	}
	return receipts, rows.Err()
}

// requireRow maps a zero-row write to domain.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
