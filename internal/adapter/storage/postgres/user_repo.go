package postgres

import (
	"context"
	"errors"
	"fmt"

	"edupay-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	pool Pool
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// GetByID fetches a platform account by UUID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, email, display_name, external_username, locale, created_at
		FROM users WHERE id = $1`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.ExternalUsername, &u.Locale, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// UpdateExternalUsername records the LMS login assigned during
// provisioning.
func (r *UserRepo) UpdateExternalUsername(ctx context.Context, id uuid.UUID, username string) error {
	query := `UPDATE users SET external_username = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, username, id)
	if err != nil {
		return fmt.Errorf("update external username: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}
