package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScanAndValue(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan([]byte(`["Golden Skin","VIP Badge"]`)))
	assert.True(t, list.Contains("Golden Skin"))
	assert.False(t, list.Contains("Double Points"))

	value, err := list.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["Golden Skin","VIP Badge"]`, string(value.([]byte)))
}

func TestStringListScanNil(t *testing.T) {
	list := StringList{"existing"}
	require.NoError(t, list.Scan(nil))
	assert.Empty(t, list)
}

func TestStringListEmptyValue(t *testing.T) {
	var list StringList
	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value.([]byte)))
}

func TestFallbackUsername(t *testing.T) {
	assert.Equal(t, "user_42", FallbackUsername(42))
}
