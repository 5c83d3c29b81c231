package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/repository"

	"github.com/lib/pq"
)

type notebookRepository struct {
	db *sql.DB
}

func NewNotebookRepository(db *sql.DB) repository.NotebookRepository {
	return &notebookRepository{db: db}
}

const notebookColumns = `n.id, n.collector_id, COALESCE(c.name, ''), n.start_number, n.end_number, n.status,
	          n.min_used, n.max_used, n.missing_receipts, n.pending_receipts, n.created_at, n.updated_at`

const notebookJoins = `FROM notebooks n LEFT JOIN collectors c ON c.id = n.collector_id`

func scanNotebook(row rowScanner) (*domain.Notebook, error) {
	var n domain.Notebook
	var missingJSON []byte
	var pending []int64
	err := row.Scan(&n.ID, &n.CollectorID, &n.CollectorName, &n.StartNumber, &n.EndNumber, &n.Status,
		&n.MinUsed, &n.MaxUsed, &missingJSON, pq.Array(&pending), &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(missingJSON) > 0 {
		if err := json.Unmarshal(missingJSON, &n.MissingReceipts); err != nil {
			return nil, fmt.Errorf("decode missing receipts of notebook %d: %w", n.ID, err)
		}
	}
	n.PendingReceipts = make([]int32, len(pending))
	for i, p := range pending {
		n.PendingReceipts[i] = int32(p)
	}
	return &n, nil
}

func (r *notebookRepository) GetByID(ctx context.Context, id int32) (*domain.Notebook, error) {
	query := `SELECT ` + notebookColumns + ` ` + notebookJoins + ` WHERE n.id = $1`
	notebook, err := scanNotebook(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return notebook, err
}

func (r *notebookRepository) List(ctx context.Context, filter domain.NotebookFilter) ([]domain.Notebook, error) {
	query := `SELECT ` + notebookColumns + ` ` + notebookJoins
	var args []interface{}
	if filter.CollectorID != nil {
		query += ` WHERE n.collector_id = $1`
		args = append(args, *filter.CollectorID)
	}
	query += ` ORDER BY n.collector_id NULLS LAST, n.start_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotebooks(rows)
}

func (r *notebookRepository) ListForCollector(ctx context.Context, collectorID *int32) ([]domain.Notebook, error) {
	query := `SELECT ` + notebookColumns + ` ` + notebookJoins
	var rows *sql.Rows
	var err error
	if collectorID == nil {
		rows, err = r.db.QueryContext(ctx, query+` WHERE n.collector_id IS NULL ORDER BY n.start_number`)
	} else {
		rows, err = r.db.QueryContext(ctx, query+` WHERE n.collector_id = $1 ORDER BY n.start_number`, *collectorID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotebooks(rows)
}

// ReplaceForCollector swaps one collector's derived notebooks inside a single
// transaction so readers never observe a half-rebuilt scope.
func (r *notebookRepository) ReplaceForCollector(ctx context.Context, collectorID *int32, notebooks []domain.Notebook) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if collectorID == nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM notebooks WHERE collector_id IS NULL`)
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM notebooks WHERE collector_id = $1`, *collectorID)
	}
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO notebooks
	          (collector_id, start_number, end_number, status, min_used, max_used, missing_receipts, pending_receipts, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range notebooks {
		n := &notebooks[i]
		missingJSON, err := json.Marshal(n.MissingReceipts)
		if err != nil {
			return err
		}
		pending := make([]int64, len(n.PendingReceipts))
		for j, p := range n.PendingReceipts {
			pending[j] = int64(p)
		}
		if _, err := stmt.ExecContext(ctx, collectorID, n.StartNumber, n.EndNumber, n.Status,
			n.MinUsed, n.MaxUsed, missingJSON, pq.Array(pending)); err != nil {
			return fmt.Errorf("insert notebook %d-%d: %w", n.StartNumber, n.EndNumber, err)
		}
	}
	return tx.Commit()
}

// UpdateMissingEntry patches one missing slip's status and notes in a single
// UPDATE. The containment guard makes the statement a no-op when the number is
// not currently missing, which surfaces as ErrNotFound.
func (r *notebookRepository) UpdateMissingEntry(ctx context.Context, notebookID int32, receiptNumber int32, status domain.MissingReceiptStatus, notes string) (*domain.Notebook, error) {
	query := `UPDATE notebooks n SET
	            missing_receipts = (
	              SELECT jsonb_agg(
	                CASE WHEN (elem->>'receipt_number')::int = $2
	                     THEN elem || jsonb_build_object('status', $3::text, 'notes', $4::text)
	                     ELSE elem END)
	              FROM jsonb_array_elements(n.missing_receipts) elem),
	            updated_at = NOW()
	          WHERE n.id = $1
	            AND n.missing_receipts @> jsonb_build_array(jsonb_build_object('receipt_number', $2::int))
	          RETURNING n.id`
	var id int32
	err := r.db.QueryRowContext(ctx, query, notebookID, receiptNumber, status, notes).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *notebookRepository) FindByNumber(ctx context.Context, receiptNumber int32, collectorID *int32) ([]domain.Notebook, error) {
	query := `SELECT ` + notebookColumns + ` ` + notebookJoins + ` WHERE n.start_number <= $1 AND n.end_number >= $1`
	args := []interface{}{receiptNumber}
	if collectorID != nil {
		query += ` AND n.collector_id = $2`
		args = append(args, *collectorID)
	}
	query += ` ORDER BY n.collector_id NULLS LAST`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotebooks(rows)
}

func (r *notebookRepository) TotalMissingCount(ctx context.Context) (int32, error) {
	var count int32
	query := `SELECT COALESCE(SUM(jsonb_array_length(missing_receipts)), 0) FROM notebooks`
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

// ListMissingInYear flattens missing entries whose estimated date falls in the
// given year. Entries with no estimated date are excluded on purpose.
func (r *notebookRepository) ListMissingInYear(ctx context.Context, year int, collectorID, fundID *int32, search string) ([]domain.MissingReceiptDetail, error) {
	query := `SELECT n.start_number, n.end_number, COALESCE(c.name, ''),
	            (elem->>'receipt_number')::int, elem->>'status', COALESCE(elem->>'notes', ''), (elem->>'estimated_date')::timestamptz
	          FROM notebooks n
	          LEFT JOIN collectors c ON c.id = n.collector_id
	          CROSS JOIN LATERAL jsonb_array_elements(n.missing_receipts) elem
	          WHERE elem->>'estimated_date' IS NOT NULL
	            AND date_part('year', (elem->>'estimated_date')::timestamptz) = $1`
	args := []interface{}{year}
	if collectorID != nil {
		args = append(args, *collectorID)
		query += fmt.Sprintf(` AND n.collector_id = $%d`, len(args))
	}
	if fundID != nil {
		args = append(args, *fundID)
		query += fmt.Sprintf(` AND c.fund_id = $%d`, len(args))
	}
	if search != "" {
		args = append(args, search)
		query += fmt.Sprintf(` AND COALESCE(elem->>'notes', '') ILIKE '%%' || $%d || '%%'`, len(args))
	}
	query += ` ORDER BY n.start_number, (elem->>'receipt_number')::int`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.MissingReceiptDetail
	for rows.Next() {
		var d domain.MissingReceiptDetail
		var start, end int32
		if err := rows.Scan(&start, &end, &d.CollectorName, &d.ReceiptNumber, &d.Status, &d.Notes, &d.EstimatedDate); err != nil {
			return nil, err
		}
		d.NotebookRange = fmt.Sprintf("%d-%d", start, end)
		details = append(details, d)
	}
	return details, rows.Err()
}

func collectNotebooks(rows *sql.Rows) ([]domain.Notebook, error) {
	var notebooks []domain.Notebook
	for rows.Next() {
		n, err := scanNotebook(rows)
		if err != nil {
			return nil, err
		}
		notebooks = append(notebooks, *n)
	}
	return notebooks, rows.Err()
}
