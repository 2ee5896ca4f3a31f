package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cureconnect-api/internal/model"
	"cureconnect-api/internal/schedule"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(anyArgs(6)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := st.CreateUser(context.Background(), &model.User{
		ID: "user-1", Name: "Jane Roe", Email: "jane@example.com", Role: model.RolePatient,
	})
	assert.ErrorIs(t, err, schedule.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserStorageErrorIsNotConflict(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(anyArgs(6)...).
		WillReturnError(errors.New("connection reset"))

	err := st.CreateUser(context.Background(), &model.User{
		ID: "user-2", Name: "Jane Roe", Email: "jane@example.com",
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, schedule.ErrConflict))
}
