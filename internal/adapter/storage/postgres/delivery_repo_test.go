package postgres

import (
	"context"
	"testing"
	"time"

	"edupay-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeliveryLog() *domain.DeliveryLog {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.DeliveryLog{
		ID:            uuid.New(),
		TransactionID: uuid.New(),
		CallbackURL:   "https://platform.example.com/callback",
		Payload:       `{"event_type":"PAYMENT_STATE_CHANGED"}`,
		Attempt:       1,
		Status:        domain.DeliveryStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestDeliveryRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	row := newTestDeliveryLog()

	mock.ExpectExec("INSERT INTO delivery_logs").
		WithArgs(
			row.ID, row.TransactionID, row.CallbackURL, row.Payload, row.HTTPStatus,
			row.Attempt, row.Status, row.LastError, row.CreatedAt, row.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), row)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	row := newTestDeliveryLog()
	status := 200
	row.HTTPStatus = &status
	row.Status = domain.DeliveryStatusDelivered

	mock.ExpectExec("UPDATE delivery_logs SET").
		WithArgs(row.HTTPStatus, row.Attempt, row.Status, row.LastError, row.UpdatedAt, row.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Update(context.Background(), row)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_GetByTransactionID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	row := newTestDeliveryLog()

	mock.ExpectQuery("SELECT (.+) FROM delivery_logs WHERE transaction_id").
		WithArgs(row.TransactionID).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "transaction_id", "callback_url", "payload", "http_status",
				"attempt", "status", "last_error", "created_at", "updated_at"},
		).AddRow(
			row.ID, row.TransactionID, row.CallbackURL, row.Payload, row.HTTPStatus,
			row.Attempt, row.Status, row.LastError, row.CreatedAt, row.UpdatedAt,
		))

	logs, err := repo.GetByTransactionID(context.Background(), row.TransactionID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, row.ID, logs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
