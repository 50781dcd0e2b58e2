package ports

import (
	"context"

	"edupay-service/internal/core/domain"

	"github.com/google/uuid"
)

// TransactionRepository defines persistence for payment transactions.
// The reconciler is the only writer of transaction state.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.PaymentTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentTransaction, error)
	GetByReference(ctx context.Context, referenceCode string) (*domain.PaymentTransaction, error)
	GetByProcessorTxID(ctx context.Context, processorTxID string) (*domain.PaymentTransaction, error)
	// UpdateState applies a last-write-wins state update and reports whether
	// the stored state actually changed. Re-applying an identical update is
	// a no-op with changed == false.
	UpdateState(ctx context.Context, id uuid.UUID, update TransactionStateUpdate) (bool, error)
	// Reporting queries
	List(ctx context.Context, params TransactionListParams) ([]domain.PaymentTransaction, int64, error)
	GetStats(ctx context.Context, periodStart *int64) (*TransactionStats, error)
}

// TransactionStateUpdate carries the fields a webhook or synchronous
// processor response may change on a transaction row.
type TransactionStateUpdate struct {
	State                  domain.PaymentState
	ProcessorTransactionID *string
	ResponseCode           *string
	ResponseMessage        *string
}

// TransactionListParams holds filter + pagination for listing transactions.
type TransactionListParams struct {
	State    *domain.PaymentState
	Currency *string
	From     *int64 // Unix timestamp
	To       *int64 // Unix timestamp
	Page     int
	PageSize int
}

// TransactionStats holds aggregated statistics for the ops dashboard.
type TransactionStats struct {
	TotalTransactions int64
	Pending           int64
	Approved          int64
	Rejected          int64
	Errored           int64
	ApprovedRevenue   float64 // Sum of approved amounts
}

// UserRepository reads platform account rows and writes back the external
// LMS username after successful provisioning.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateExternalUsername(ctx context.Context, id uuid.UUID, username string) error
}

// DeliveryRepository persists outbound platform-callback delivery logs.
type DeliveryRepository interface {
	Create(ctx context.Context, log *domain.DeliveryLog) error
	Update(ctx context.Context, log *domain.DeliveryLog) error
	GetByTransactionID(ctx context.Context, txID uuid.UUID) ([]domain.DeliveryLog, error)
}

// AuditRepository persists operational audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}
