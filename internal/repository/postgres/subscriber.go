package postgres

import (
	"context"
	"database/sql"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/repository"
)

type subscriberRepository struct {
	db *sql.DB
}

func NewSubscriberRepository(db *sql.DB) repository.SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, subscriber *domain.Subscriber) error {
	query := `INSERT INTO subscribers (name, address, phone) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, subscriber.Name, subscriber.Address, subscriber.Phone).Scan(&subscriber.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

// CreateBatch inserts subscribers by name, reusing rows that already exist,
// and returns the name to id mapping for the whole batch.
func (r *subscriberRepository) CreateBatch(ctx context.Context, subscribers []domain.Subscriber) (map[string]int32, error) {
	ids := make(map[string]int32, len(subscribers))
	if len(subscribers) == 0 {
		return ids, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO subscribers (name, address, phone) VALUES ($1, $2, $3)
	          ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for i := range subscribers {
		s := &subscribers[i]
		if _, seen := ids[s.Name]; seen {
			continue
		}
		var id int32
		if err := stmt.QueryRowContext(ctx, s.Name, s.Address, s.Phone).Scan(&id); err != nil {
			return nil, err
		}
		ids[s.Name] = id
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *subscriberRepository) GetByID(ctx context.Context, id int32) (*domain.Subscriber, error) {
	query := `SELECT id, name, COALESCE(address, ''), COALESCE(phone, '') FROM subscribers WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *subscriberRepository) GetByName(ctx context.Context, name string) (*domain.Subscriber, error) {
	query := `SELECT id, name, COALESCE(address, ''), COALESCE(phone, '') FROM subscribers WHERE name = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

func (r *subscriberRepository) scanOne(row rowScanner) (*domain.Subscriber, error) {
	var s domain.Subscriber
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subscriberRepository) Update(ctx context.Context, subscriber *domain.Subscriber) error {
	query := `UPDATE subscribers SET name = $1, address = $2, phone = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, subscriber.Name, subscriber.Address, subscriber.Phone, subscriber.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *subscriberRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *subscriberRepository) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Subscriber, int32, error) {
	offset := (page - 1) * pageSize
	listQuery := `SELECT id, name, COALESCE(address, ''), COALESCE(phone, '') FROM subscribers
	          WHERE ($1 = '' OR name ILIKE '%' || $1 || '%') ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, listQuery, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var subscribers []domain.Subscriber
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Phone); err != nil {
			return nil, 0, err
		}
		subscribers = append(subscribers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM subscribers WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`
	if err := r.db.QueryRowContext(ctx, countQuery, query).Scan(&count); err != nil {
		return nil, 0, err
	}
	return subscribers, count, nil
}
