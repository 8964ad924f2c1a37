package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Authenticated())

	_, err := s.Credentials()
	require.ErrorIs(t, err, ErrNoCredentials)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s.Begin(Credentials{Username: "admin", Password: "secret"}, now)
	assert.True(t, s.Authenticated())
	assert.Equal(t, now, s.Since())

	s.Invalidate()
	assert.False(t, s.Authenticated())
	creds, err := s.Credentials()
	require.NoError(t, err)
	assert.Equal(t, "admin", creds.Username)

	s.Clear()
	assert.False(t, s.Authenticated())
	_, err = s.Credentials()
	require.ErrorIs(t, err, ErrNoCredentials)
}
