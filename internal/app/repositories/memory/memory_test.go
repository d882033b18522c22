package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories"
)

func TestWithTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	d := New()
	users := d.Users()

	err := d.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		require.NoError(t, users.Create(ctx, &models.User{Email: "ghost@example.com", Role: models.RoleDean}))
		return errors.New("abort")
	})
	require.Error(t, err)

	_, err = users.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, d.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		return users.Create(ctx, &models.User{Email: "kept@example.com", Role: models.RoleDean})
	}))
	_, err = users.GetByEmail(ctx, "KEPT@example.com")
	assert.NoError(t, err)
}

func TestUserEmailUnique(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	require.NoError(t, users.Create(ctx, &models.User{Email: "Ada@Example.com"}))
	assert.ErrorIs(t, users.Create(ctx, &models.User{Email: "ada@example.com"}), repositories.ErrDuplicateEmail)
}

func TestProfileInsertConstraints(t *testing.T) {
	ctx := context.Background()
	d := New()
	a := &models.User{Email: "a@example.com", Role: models.RoleApplicant}
	b := &models.User{Email: "b@example.com", Role: models.RoleApplicant}
	require.NoError(t, d.Users().Create(ctx, a))
	require.NoError(t, d.Users().Create(ctx, b))
	profiles := d.Profiles()

	require.NoError(t, profiles.Insert(ctx, nil, a.ID, "APP-1-AAAAAA", models.ApplicantProfileInput{FirstName: "A"}))
	assert.ErrorIs(t, profiles.Insert(ctx, nil, a.ID, "APP-1-BBBBBB", models.ApplicantProfileInput{}), repositories.ErrProfileExists)
	assert.ErrorIs(t, profiles.Insert(ctx, nil, b.ID, "APP-1-AAAAAA", models.ApplicantProfileInput{}), repositories.ErrReferenceCodeTaken)
	assert.ErrorIs(t, profiles.Insert(ctx, nil, 999, "APP-1-CCCCCC", models.ApplicantProfileInput{}), repositories.ErrMissingReference)
	assert.Equal(t, 1, profiles.Count())
}

func TestCourseMaxYearNumber(t *testing.T) {
	ctx := context.Background()
	d := New()
	dean := &models.User{Email: "dean@example.com", Role: models.RoleDean}
	require.NoError(t, d.Users().Create(ctx, dean))
	first, err := d.Programs().Create(ctx, dean.ID, models.ProgramInput{Name: "First", DurationYears: 4})
	require.NoError(t, err)
	second, err := d.Programs().Create(ctx, dean.ID, models.ProgramInput{Name: "Second", DurationYears: 4})
	require.NoError(t, err)

	year, err := d.Courses().MaxYearNumber(ctx, nil, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, year)

	for _, c := range []models.CourseInput{{CourseCode: "A1", YearNumber: 1}, {CourseCode: "A3", YearNumber: 3}} {
		_, err := d.Courses().Create(ctx, nil, first.ID, dean.ID, c)
		require.NoError(t, err)
	}
	_, err = d.Courses().Create(ctx, nil, second.ID, dean.ID, models.CourseInput{CourseCode: "B4", YearNumber: 4})
	require.NoError(t, err)

	year, err = d.Courses().MaxYearNumber(ctx, nil, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, year)
}
