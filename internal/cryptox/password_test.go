package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	for _, pw := range []string{"p", "secret123", "пароль1", "a very long passphrase with spaces"} {
		record := HashPassword([]byte(pw))
		assert.True(t, VerifyPassword([]byte(pw), record), "password %q should verify against its own hash", pw)
	}
}

func TestHashPassword_SaltIsRandom(t *testing.T) {
	a := HashPassword([]byte("same-password"))
	b := HashPassword([]byte("same-password"))

	require.NotEqual(t, a, b, "two hashes of the same password must differ (random salt)")

	assert.True(t, VerifyPassword([]byte("same-password"), a))
	assert.True(t, VerifyPassword([]byte("same-password"), b))
}

func TestHashPassword_RecordShape(t *testing.T) {
	record := HashPassword([]byte("secret123"))

	raw, err := base64.StdEncoding.DecodeString(record)
	require.NoError(t, err)
	require.Len(t, raw, SaltSize+KeySize)
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	record := HashPassword([]byte("secret123"))
	assert.False(t, VerifyPassword([]byte("secret124"), record))
	assert.False(t, VerifyPassword([]byte(""), record))
}

func TestVerifyPassword_MalformedRecordFailsClosed(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"too short", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"truncated salt+key", base64.StdEncoding.EncodeToString(make([]byte, SaltSize))},
		{"oversized", base64.StdEncoding.EncodeToString(make([]byte, SaltSize+KeySize+1))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, VerifyPassword([]byte("whatever"), tc.record))
			})
		})
	}
}
