package services

import (
	"errors"
	"fmt"
	"testing"

	"core/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateLockErrorNil(t *testing.T) {
	assert.NoError(t, translateLockError(nil))
}

func TestTranslateLockErrorLockTimeout(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgLockNotAvailable, Message: "canceling statement due to lock timeout"}

	err := translateLockError(pgErr)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeContention))
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.Status)
}

func TestTranslateLockErrorWrappedLockTimeout(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgLockNotAvailable}
	wrapped := fmt.Errorf("locking tournament row: %w", pgErr)

	err := translateLockError(wrapped)

	assert.True(t, apperrors.IsCode(err, apperrors.CodeContention))
}

func TestTranslateLockErrorOtherPgErrorPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value"}

	err := translateLockError(pgErr)

	assert.Same(t, pgErr, err)
	assert.False(t, apperrors.IsCode(err, apperrors.CodeContention))
}

func TestTranslateLockErrorPlainErrorPassesThrough(t *testing.T) {
	plain := errors.New("connection reset")

	err := translateLockError(plain)

	assert.Equal(t, plain, err)
}
