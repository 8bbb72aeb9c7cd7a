package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken("user-1", "receptionist")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "receptionist", claims.Role)
}

func TestService_RejectsForeignAndExpiredTokens(t *testing.T) {
	token, err := New("other-secret", time.Hour).GenerateToken("user-1", "guest")
	require.NoError(t, err)

	_, err = New("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := New("secret", -time.Minute).GenerateToken("user-1", "guest")
	require.NoError(t, err)

	_, err = New("secret", time.Hour).ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
