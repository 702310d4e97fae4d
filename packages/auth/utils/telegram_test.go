package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:test-token"

func signInitData(t *testing.T, values url.Values, botToken string) string {
	t.Helper()

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func validInitData(t *testing.T) string {
	values := url.Values{}
	values.Set("user", `{"id":42,"first_name":"Test","username":"tester"}`)
	values.Set("auth_date", fmt.Sprintf("%d", time.Now().Unix()))
	values.Set("query_id", "AAF9tAEA")
	return signInitData(t, values, testBotToken)
}

func TestVerifyInitData(t *testing.T) {
	user, err := VerifyInitData(validInitData(t), testBotToken, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "tester", user.Username)
	assert.Equal(t, "tester", user.DisplayName())
}

func TestVerifyInitDataRejectsWrongToken(t *testing.T) {
	_, err := VerifyInitData(validInitData(t), "other:token", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyInitDataRejectsTampering(t *testing.T) {
	initData := validInitData(t)
	tampered := strings.Replace(initData, "42", "43", 1)
	_, err := VerifyInitData(tampered, testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyInitDataRejectsMissingHash(t *testing.T) {
	values := url.Values{}
	values.Set("user", `{"id":42}`)
	_, err := VerifyInitData(values.Encode(), testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestVerifyInitDataRejectsStale(t *testing.T) {
	values := url.Values{}
	values.Set("user", `{"id":42,"first_name":"Test"}`)
	values.Set("auth_date", fmt.Sprintf("%d", time.Now().Add(-48*time.Hour).Unix()))
	initData := signInitData(t, values, testBotToken)

	_, err := VerifyInitData(initData, testBotToken, 24*time.Hour)
	assert.ErrorIs(t, err, ErrStaleInitData)

	// Without an age bound the same payload verifies.
	user, err := VerifyInitData(initData, testBotToken, 0)
	require.NoError(t, err)
	assert.Equal(t, "Test", user.DisplayName())
}

func TestVerifyInitDataRejectsMissingUser(t *testing.T) {
	values := url.Values{}
	values.Set("auth_date", fmt.Sprintf("%d", time.Now().Unix()))
	initData := signInitData(t, values, testBotToken)

	_, err := VerifyInitData(initData, testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidInitData)
}
