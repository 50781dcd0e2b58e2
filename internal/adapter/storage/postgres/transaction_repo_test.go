package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestTransaction() *domain.PaymentTransaction {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.PaymentTransaction{
		ID:            uuid.New(),
		ReferenceCode: "EDUX123",
		UserID:        uuid.New(),
		Amount:        169000,
		Currency:      "COP",
		State:         domain.PaymentStatePending,
		Description:   "Course bundle",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func txColumns() []string {
	return []string{"id", "reference_code", "user_id", "amount", "currency", "state", "description",
		"processor_transaction_id", "response_code", "response_message", "created_at", "updated_at"}
}

func txRow(t *domain.PaymentTransaction) *pgxmock.Rows {
	return pgxmock.NewRows(txColumns()).AddRow(
		t.ID, t.ReferenceCode, t.UserID, t.Amount, t.Currency, t.State, t.Description,
		t.ProcessorTransactionID, t.ResponseCode, t.ResponseMessage, t.CreatedAt, t.UpdatedAt,
	)
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()

	mock.ExpectExec("INSERT INTO payment_transactions").
		WithArgs(
			txn.ID, txn.ReferenceCode, txn.UserID, txn.Amount, txn.Currency, txn.State,
			txn.Description, txn.ProcessorTransactionID, txn.ResponseCode, txn.ResponseMessage,
			txn.CreatedAt, txn.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByReference(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()

	mock.ExpectQuery("SELECT (.+) FROM payment_transactions WHERE reference_code").
		WithArgs("EDUX123").
		WillReturnRows(txRow(txn))

	got, err := repo.GetByReference(context.Background(), "EDUX123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, txn.ID, got.ID)
	assert.Equal(t, domain.PaymentStatePending, got.State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByReference_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT (.+) FROM payment_transactions WHERE reference_code").
		WithArgs("MISSING").
		WillReturnRows(pgxmock.NewRows(txColumns()))

	got, err := repo.GetByReference(context.Background(), "MISSING")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByProcessorTxID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()
	txn.ProcessorTransactionID = strPtr("proc-1")

	mock.ExpectQuery("SELECT (.+) FROM payment_transactions WHERE processor_transaction_id").
		WithArgs("proc-1").
		WillReturnRows(txRow(txn))

	got, err := repo.GetByProcessorTxID(context.Background(), "proc-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateState_Changed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()
	update := ports.TransactionStateUpdate{
		State:           domain.PaymentStateApproved,
		ResponseMessage: strPtr("Transaction approved"),
	}

	mock.ExpectQuery("UPDATE payment_transactions").
		WithArgs(id, update.State, update.ProcessorTransactionID, update.ResponseCode, update.ResponseMessage).
		WillReturnRows(pgxmock.NewRows([]string{"old_state"}).AddRow(domain.PaymentStatePending))

	changed, err := repo.UpdateState(context.Background(), id, update)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateState_Idempotent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()
	update := ports.TransactionStateUpdate{State: domain.PaymentStateApproved}

	// Re-applying APPROVED over APPROVED reports no change.
	mock.ExpectQuery("UPDATE payment_transactions").
		WithArgs(id, update.State, update.ProcessorTransactionID, update.ResponseCode, update.ResponseMessage).
		WillReturnRows(pgxmock.NewRows([]string{"old_state"}).AddRow(domain.PaymentStateApproved))

	changed, err := repo.UpdateState(context.Background(), id, update)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateState_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("UPDATE payment_transactions").
		WithArgs(id, domain.PaymentStateApproved, (*string)(nil), (*string)(nil), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"old_state"}))

	_, err = repo.UpdateState(context.Background(), id, ports.TransactionStateUpdate{State: domain.PaymentStateApproved})
	assert.ErrorContains(t, err, "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_List_WithFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()
	state := domain.PaymentStateApproved
	txn.State = state

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM payment_transactions").
		WithArgs(state).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT (.+) FROM payment_transactions WHERE state").
		WithArgs(state, 20, 0).
		WillReturnRows(txRow(txn))

	txns, total, err := repo.List(context.Background(), ports.TransactionListParams{
		State: &state, Page: 1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, txns, 1)
	assert.Equal(t, state, txns[0].State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetStats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT(.+)FROM payment_transactions").
		WillReturnRows(pgxmock.NewRows(
			[]string{"total", "pending", "approved", "rejected", "errored", "approved_revenue"},
		).AddRow(int64(10), int64(2), int64(6), int64(1), int64(1), float64(1014000)))

	stats, err := repo.GetStats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalTransactions)
	assert.Equal(t, int64(6), stats.Approved)
	assert.Equal(t, float64(1014000), stats.ApprovedRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_Create_DBError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction()

	mock.ExpectExec("INSERT INTO payment_transactions").
		WithArgs(
			txn.ID, txn.ReferenceCode, txn.UserID, txn.Amount, txn.Currency, txn.State,
			txn.Description, txn.ProcessorTransactionID, txn.ResponseCode, txn.ResponseMessage,
			txn.CreatedAt, txn.UpdatedAt,
		).
		WillReturnError(errors.New("connection reset"))

	err = repo.Create(context.Background(), txn)
	assert.ErrorContains(t, err, "insert transaction")
}
