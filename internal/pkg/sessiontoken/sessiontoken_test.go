package sessiontoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundtrip(t *testing.T) {
	token, err := Sign("secret", "sid-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sid, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "sid-123", sid)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := Sign("secret", "sid-123", time.Hour)
	require.NoError(t, err)

	_, err = Parse("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredToken(t *testing.T) {
	token, err := Sign("secret", "sid-123", -time.Minute)
	require.NoError(t, err)

	_, err = Parse("secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("secret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
