package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.auth.Register(ctx, dto.RegisterRequest{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com ",
		Password:  "secret123",
		Role:      models.RoleApplicant,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, "Ada", res.User.FirstName)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.NotEmpty(t, res.Token)

	login, err := f.auth.Login(ctx, dto.LoginRequest{Email: "ADA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	me, err := f.auth.Me(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleApplicant, me.Role)
}

func TestRegisterRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "taken@example.com", models.RoleDean)

	t.Run("duplicate email ignores case", func(t *testing.T) {
		_, err := f.auth.Register(ctx, dto.RegisterRequest{
			FirstName: "A", LastName: "B", Email: "TAKEN@example.com", Password: "secret123", Role: models.RoleApplicant,
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := f.auth.Register(ctx, dto.RegisterRequest{
			FirstName: "A", LastName: "B", Email: "weak@example.com", Password: "password", Role: models.RoleApplicant,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := f.auth.Register(ctx, dto.RegisterRequest{
			FirstName: "A", LastName: "B", Email: "role@example.com", Password: "secret123", Role: models.Role("admin"),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestLoginFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "user@example.com", models.RoleApplicant)

	_, wrongPassword := f.auth.Login(ctx, dto.LoginRequest{Email: "user@example.com", Password: "secret999"})
	_, unknownEmail := f.auth.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})

	assert.ErrorIs(t, wrongPassword, apperrors.ErrLoginFailed)
	assert.ErrorIs(t, unknownEmail, apperrors.ErrLoginFailed)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "user@example.com", models.RoleApplicant)

	login, err := f.auth.Login(ctx, dto.LoginRequest{Email: "user@example.com", Password: "secret123"})
	require.NoError(t, err)

	claims, err := f.auth.Authenticate(ctx, login.Token)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, claims))

	_, err = f.auth.Authenticate(ctx, login.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = f.auth.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
