package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "email", "display_name", "external_username", "locale", "created_at"},
		).AddRow(id, "maria@example.com", "Maria Gomez", (*string)(nil), "es", now))

	u, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "maria@example.com", u.Email)
	assert.Nil(t, u.ExternalUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "email", "display_name", "external_username", "locale", "created_at"},
		))

	u, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_UpdateExternalUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE users SET external_username").
		WithArgs("mariagomez4821", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateExternalUsername(context.Background(), id, "mariagomez4821")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateExternalUsername_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE users SET external_username").
		WithArgs("mariagomez4821", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateExternalUsername(context.Background(), id, "mariagomez4821")
	assert.ErrorContains(t, err, "not found")
}
