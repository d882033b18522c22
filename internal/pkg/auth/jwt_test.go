package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/app/models"
)

func newTestJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "admissions-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	s := newTestJWTService()
	user := &models.User{ID: 7, Email: "dean@example.com", Role: models.RoleDean}

	token, expiresAt, err := s.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, models.RoleDean, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, int64(7), claims.ActorID())
}

func TestValidateTokenRejects(t *testing.T) {
	s := newTestJWTService()
	user := &models.User{ID: 3, Email: "a@example.com", Role: models.RoleApplicant}

	t.Run("expired", func(t *testing.T) {
		issuer := newTestJWTService()
		issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := issuer.GenerateToken(user)
		require.NoError(t, err)

		_, err = s.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(JWTConfig{SecretKey: "other", TokenExp: time.Hour, TokenIssuer: "admissions-test"})
		token, _, err := other.GenerateToken(user)
		require.NoError(t, err)

		_, err = s.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := s.ValidateToken("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("bearer xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	_, err = ExtractBearerToken("Token abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = ExtractBearerToken("Bearer ")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPasswordWithCost("secret123", 4)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
}
