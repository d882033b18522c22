package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func TestSubmitApplicationCreatesProfileAndApplication(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	user := f.register(t, "applicant@example.com", models.RoleApplicant)
	program := f.createProgram(t, dean, "Computer Engineering", 4)

	res, err := f.applications.SubmitApplication(ctx, user.ID, program.ID, profileInput("Ada", "Lovelace"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, res.Application.Status)
	assert.Equal(t, program.ID, res.Application.ProgramID)
	assert.Equal(t, res.Profile.ID, res.Application.ApplicantID)
	assert.Equal(t, user.ID, res.Application.CreatedBy)
	assert.Nil(t, res.Application.ReviewedAt)
	assert.NotEmpty(t, res.Profile.ReferenceCode)

	second, err := f.applications.SubmitApplication(ctx, user.ID, program.ID, profileInput("Ada", "King"))
	require.NoError(t, err)
	assert.Equal(t, res.Profile.ID, second.Profile.ID)
	assert.Equal(t, res.Profile.ReferenceCode, second.Profile.ReferenceCode)
	assert.Equal(t, "King", second.Profile.LastName)
	assert.Equal(t, 1, f.db.Profiles().Count())
}

func TestSubmitApplicationUnknownProgram(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "applicant@example.com", models.RoleApplicant)

	_, err := f.applications.SubmitApplication(context.Background(), user.ID, 999, profileInput("Ada", "Lovelace"))
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
	assert.Equal(t, 0, f.db.Profiles().Count())
}

type failingApplicationStore struct {
	ApplicationStore
}

func (failingApplicationStore) Create(ctx context.Context, q db.DBTX, app *models.Application) error {
	return errors.New("connection reset")
}

func TestSubmitApplicationRollsBackProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	user := f.register(t, "applicant@example.com", models.RoleApplicant)
	program := f.createProgram(t, dean, "Computer Engineering", 4)

	svc := NewApplicationService(f.db, f.db.Programs(), f.db.Profiles(), failingApplicationStore{f.db.Applications()}, nil, f.applications.logger)
	_, err := svc.SubmitApplication(ctx, user.ID, program.ID, profileInput("Ada", "Lovelace"))

	assert.ErrorIs(t, err, apperrors.ErrApplicationCreateFailed)
	assert.Equal(t, 0, f.db.Profiles().Count())
}

func TestListMyApplications(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	user := f.register(t, "applicant@example.com", models.RoleApplicant)
	other := f.register(t, "other@example.com", models.RoleApplicant)

	_, err := f.applications.ListMyApplications(ctx, user.ID, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)

	first := f.createProgram(t, dean, "Architecture", 4)
	second := f.createProgram(t, dean, "Biology", 3)
	_, err = f.applications.SubmitApplication(ctx, user.ID, first.ID, profileInput("Ada", "Lovelace"))
	require.NoError(t, err)
	_, err = f.applications.SubmitApplication(ctx, user.ID, second.ID, profileInput("Ada", "Lovelace"))
	require.NoError(t, err)
	_, err = f.applications.SubmitApplication(ctx, other.ID, first.ID, profileInput("Alan", "Turing"))
	require.NoError(t, err)

	page, err := f.applications.ListMyApplications(ctx, user.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Biology", page.Items[0].Program.Name, "newest first")

	page, err = f.applications.ListMyApplications(ctx, user.ID, 3, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}
