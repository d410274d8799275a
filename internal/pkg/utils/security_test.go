package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionJWTRoundTrip(t *testing.T) {
	t.Run("Parse Returns Embedded Session ID", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-123", "test-secret", 1)
		require.NoError(t, err)

		sessionID, err := ParseJWT(token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, "session-123", sessionID)
	})

	t.Run("Wrong Secret Is Rejected", func(t *testing.T) {
		token, err := GenerateSessionJWT("session-123", "test-secret", 1)
		require.NoError(t, err)

		_, err = ParseJWT(token, "other-secret")
		assert.Error(t, err)
	})

	t.Run("Garbage Token Is Rejected", func(t *testing.T) {
		_, err := ParseJWT("not-a-jwt", "test-secret")
		assert.Error(t, err)
	})
}
