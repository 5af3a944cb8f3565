package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Quino300923/frontera-backend/internal/domain"
	"github.com/Quino300923/frontera-backend/pkg/database"
	apperrors "github.com/Quino300923/frontera-backend/pkg/errors"
)

// AdminRepository implements repository.AdminRepository using PostgreSQL.
type AdminRepository struct {
	pool database.DBTX
}

// NewAdminRepository creates a new PostgreSQL-backed admin account repository.
func NewAdminRepository(pool database.DBTX) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// GetByUsername retrieves an admin account by its login name.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	query := `
		SELECT id, usuario, password_hash, rol
		FROM admin_users
		WHERE usuario = $1`

	var u domain.AdminUser
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan admin user: %w", err)
	}

	return &u, nil
}
