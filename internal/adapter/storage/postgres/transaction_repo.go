package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, reference_code, user_id, amount, currency, state, description,
	processor_transaction_id, response_code, response_message, created_at, updated_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new payment transaction.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.PaymentTransaction) error {
	query := `INSERT INTO payment_transactions (id, reference_code, user_id, amount, currency, state,
		description, processor_transaction_id, response_code, response_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.ReferenceCode, t.UserID, t.Amount, t.Currency, t.State,
		t.Description, t.ProcessorTransactionID, t.ResponseCode, t.ResponseMessage,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_transactions WHERE id = $1`, transactionColumns)
	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByReference fetches a transaction by its reference code.
func (r *TransactionRepo) GetByReference(ctx context.Context, referenceCode string) (*domain.PaymentTransaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_transactions WHERE reference_code = $1`, transactionColumns)
	return r.scanTransaction(r.pool.QueryRow(ctx, query, referenceCode))
}

// GetByProcessorTxID fetches a transaction by the processor-assigned id.
func (r *TransactionRepo) GetByProcessorTxID(ctx context.Context, processorTxID string) (*domain.PaymentTransaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_transactions WHERE processor_transaction_id = $1`, transactionColumns)
	return r.scanTransaction(r.pool.QueryRow(ctx, query, processorTxID))
}

// UpdateState applies a last-write-wins state update. The previous state
// is captured in the same statement so the caller learns whether the row
// actually changed without a second round trip.
func (r *TransactionRepo) UpdateState(ctx context.Context, id uuid.UUID, update ports.TransactionStateUpdate) (bool, error) {
	query := `UPDATE payment_transactions t SET
			state = $2,
			processor_transaction_id = COALESCE($3, t.processor_transaction_id),
			response_code = COALESCE($4, t.response_code),
			response_message = COALESCE($5, t.response_message),
			updated_at = now()
		FROM (SELECT state AS old_state FROM payment_transactions WHERE id = $1 FOR UPDATE) prev
		WHERE t.id = $1
		RETURNING prev.old_state`

	var oldState domain.PaymentState
	err := r.pool.QueryRow(ctx, query,
		id, update.State, update.ProcessorTransactionID, update.ResponseCode, update.ResponseMessage,
	).Scan(&oldState)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("transaction not found: %s", id)
		}
		return false, fmt.Errorf("update transaction state: %w", err)
	}
	return oldState != update.State, nil
}

// List fetches transactions with filtering and pagination.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.PaymentTransaction, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.State != nil {
		conditions = append(conditions, fmt.Sprintf("state = $%d", argIdx))
		args = append(args, *params.State)
		argIdx++
	}
	if params.Currency != nil {
		conditions = append(conditions, fmt.Sprintf("currency = $%d", argIdx))
		args = append(args, *params.Currency)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payment_transactions %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	// Fetch page
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM payment_transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.PaymentTransaction
	for rows.Next() {
		t := domain.PaymentTransaction{}
		err := rows.Scan(
			&t.ID, &t.ReferenceCode, &t.UserID, &t.Amount, &t.Currency, &t.State,
			&t.Description, &t.ProcessorTransactionID, &t.ResponseCode, &t.ResponseMessage,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

// GetStats retrieves aggregated transaction statistics.
func (r *TransactionRepo) GetStats(ctx context.Context, periodStart *int64) (*ports.TransactionStats, error) {
	var args []any
	condition := "TRUE"
	if periodStart != nil {
		condition = "created_at >= to_timestamp($1)"
		args = append(args, *periodStart)
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE state = 'PENDING') AS pending,
		COUNT(*) FILTER (WHERE state = 'APPROVED') AS approved,
		COUNT(*) FILTER (WHERE state = 'REJECTED') AS rejected,
		COUNT(*) FILTER (WHERE state = 'ERROR') AS errored,
		COALESCE(SUM(amount) FILTER (WHERE state = 'APPROVED'), 0) AS approved_revenue
		FROM payment_transactions WHERE %s`, condition)

	stats := &ports.TransactionStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalTransactions, &stats.Pending, &stats.Approved, &stats.Rejected,
		&stats.Errored, &stats.ApprovedRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("get transaction stats: %w", err)
	}
	return stats, nil
}

// scanTransaction is a helper to scan a single row into a PaymentTransaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.PaymentTransaction, error) {
	t := &domain.PaymentTransaction{}
	err := row.Scan(
		&t.ID, &t.ReferenceCode, &t.UserID, &t.Amount, &t.Currency, &t.State,
		&t.Description, &t.ProcessorTransactionID, &t.ResponseCode, &t.ResponseMessage,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
