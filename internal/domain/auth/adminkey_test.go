package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyVerifier(t *testing.T) {
	pepper := []byte("pepper")
	v, err := NewKeyVerifier(HashKey("open-sesame", pepper), pepper)
	require.NoError(t, err)

	for _, tt := range []struct {
		key  string
		want bool
	}{
		{"open-sesame", true},
		{"open-sesame ", false},
		{"", false},
		{"guess", false},
	} {
		assert.Equal(t, tt.want, v.Verify(tt.key), "key %q", tt.key)
	}

	other, err := NewKeyVerifier(HashKey("open-sesame", []byte("salt")), pepper)
	require.NoError(t, err)
	assert.False(t, other.Verify("open-sesame"), "pepper must match")
}

func TestNewKeyVerifierRejectsBadHash(t *testing.T) {
	_, err := NewKeyVerifier("zz", nil)
	require.Error(t, err)

	_, err = NewKeyVerifier(strings.Repeat("ab", 8), nil)
	require.Error(t, err)
}
