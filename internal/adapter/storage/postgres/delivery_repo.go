package postgres

import (
	"context"
	"fmt"

	"edupay-service/internal/core/domain"

	"github.com/google/uuid"
)

// DeliveryRepo implements ports.DeliveryRepository.
type DeliveryRepo struct {
	pool Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(pool Pool) *DeliveryRepo {
	return &DeliveryRepo{pool: pool}
}

// Create inserts a new delivery log row.
func (r *DeliveryRepo) Create(ctx context.Context, log *domain.DeliveryLog) error {
	query := `INSERT INTO delivery_logs (id, transaction_id, callback_url, payload, http_status,
		attempt, status, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		log.ID, log.TransactionID, log.CallbackURL, log.Payload, log.HTTPStatus,
		log.Attempt, log.Status, log.LastError, log.CreatedAt, log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery log: %w", err)
	}
	return nil
}

// Update rewrites the mutable delivery fields after an attempt.
func (r *DeliveryRepo) Update(ctx context.Context, log *domain.DeliveryLog) error {
	query := `UPDATE delivery_logs SET http_status = $1, attempt = $2, status = $3,
		last_error = $4, updated_at = $5 WHERE id = $6`

	tag, err := r.pool.Exec(ctx, query,
		log.HTTPStatus, log.Attempt, log.Status, log.LastError, log.UpdatedAt, log.ID,
	)
	if err != nil {
		return fmt.Errorf("update delivery log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delivery log not found: %s", log.ID)
	}
	return nil
}

// GetByTransactionID lists delivery attempts for one transaction.
func (r *DeliveryRepo) GetByTransactionID(ctx context.Context, txID uuid.UUID) ([]domain.DeliveryLog, error) {
	query := `SELECT id, transaction_id, callback_url, payload, http_status,
		attempt, status, last_error, created_at, updated_at
		FROM delivery_logs WHERE transaction_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, txID)
	if err != nil {
		return nil, fmt.Errorf("list delivery logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.DeliveryLog
	for rows.Next() {
		l := domain.DeliveryLog{}
		err := rows.Scan(
			&l.ID, &l.TransactionID, &l.CallbackURL, &l.Payload, &l.HTTPStatus,
			&l.Attempt, &l.Status, &l.LastError, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan delivery log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery logs: %w", err)
	}
	return logs, nil
}
