package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatusAndCode(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   string
	}{
		{Validation("bad input"), http.StatusBadRequest, CodeValidation},
		{NotFound("missing"), http.StatusNotFound, CodeNotFound},
		{Capacity("full"), http.StatusBadRequest, CodeCapacity},
		{InsufficientFunds("broke"), http.StatusBadRequest, CodeInsufficientFunds},
		{DuplicateJoin("again"), http.StatusConflict, CodeDuplicateJoin},
		{DuplicatePurchase("owned"), http.StatusConflict, CodeDuplicatePurchase},
		{Contention("busy"), http.StatusServiceUnavailable, CodeContention},
		{Internal("boom", nil), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status, tc.code)
		assert.Equal(t, tc.code, tc.err.Code)
	}
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	base := NotFound("tournament %d not found", 7)
	wrapped := fmt.Errorf("loading tournament: %w", base)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, "7")

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsCode(t *testing.T) {
	err := Capacity("tournament is full")
	assert.True(t, IsCode(err, CodeCapacity))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(nil, CodeCapacity))
}

func TestErrorIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("database unavailable", cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, cause, errors.Unwrap(err))
}
