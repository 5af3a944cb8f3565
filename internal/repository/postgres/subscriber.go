package postgres

import (
	"context"
	"fmt"

	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/pkg/database"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

// SubscriberRepository implements repository.SubscriberRepository using PostgreSQL.
type SubscriberRepository struct {
	pool database.DBTX
}

// NewSubscriberRepository creates a new PostgreSQL-backed subscriber repository.
func NewSubscriberRepository(pool database.DBTX) *SubscriberRepository {
	return &SubscriberRepository{pool: pool}
}

// Create stores a new subscriber and returns its id.
func (r *SubscriberRepository) Create(ctx context.Context, email string) (int64, error) {
	query := `INSERT INTO suscriptores (email) VALUES ($1) RETURNING id`

	var id int64
	if err := r.pool.QueryRow(ctx, query, email).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert subscriber: %w", err)
	}

	return id, nil
}

// List returns every subscriber, newest first.
func (r *SubscriberRepository) List(ctx context.Context) ([]domain.Subscriber, error) {
	query := `
		SELECT id, email, created_at
		FROM suscriptores
		ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := make([]domain.Subscriber, 0)
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber row: %w", err)
		}
		subscribers = append(subscribers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriber rows: %w", err)
	}

	return subscribers, nil
}

// Delete removes a subscriber.
func (r *SubscriberRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM suscriptores WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("suscriptor", fmt.Sprint(id))
	}

	return nil
}
