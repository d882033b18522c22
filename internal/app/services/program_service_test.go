package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func TestCreateProgramRequiresDean(t *testing.T) {
	f := newFixture(t)
	applicant := f.register(t, "applicant@example.com", models.RoleApplicant)

	_, err := f.programs.CreateProgram(context.Background(), applicant, programInput("Law", 4))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestProgramOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.register(t, "owner@example.com", models.RoleDean)
	other := f.register(t, "other@example.com", models.RoleDean)
	program := f.createProgram(t, owner, "  Physics ", 4)
	assert.Equal(t, "Physics", program.Name)
	assert.Equal(t, owner.ID, program.CreatedBy)

	_, err := f.programs.UpdateProgram(ctx, other, program.ID, programInput("Stolen", 4))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.ErrorIs(t, f.programs.DeleteProgram(ctx, other, program.ID), apperrors.ErrForbidden)

	updated, err := f.programs.UpdateProgram(ctx, owner, program.ID, programInput("Applied Physics", 5))
	require.NoError(t, err)
	assert.Equal(t, "Applied Physics", updated.Name)
	assert.Equal(t, 5, updated.DurationYears)

	_, err = f.programs.UpdateProgram(ctx, owner, 999, programInput("Ghost", 4))
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
}

func TestUpdateProgramKeepsCoursesWithinDuration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	program := f.createProgram(t, dean, "Civil Engineering", 4)
	_, err := f.courses.CreateCourse(ctx, dean, program.ID, courseInput("CE401", 4))
	require.NoError(t, err)
	_, err = f.courses.CreateCourse(ctx, dean, program.ID, courseInput("CE201", 2))
	require.NoError(t, err)

	_, err = f.programs.UpdateProgram(ctx, dean, program.ID, programInput("Civil Engineering", 2))
	ce := requireAppError(t, err, "INVALID_DURATION_YEARS")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, map[string]interface{}{"duration_years": 2, "max_course_year": 4}, ce.Details)

	stored, err := f.programs.GetProgramByID(ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.DurationYears)

	renamed, err := f.programs.UpdateProgram(ctx, dean, program.ID, programInput("Structural Engineering", 4))
	require.NoError(t, err, "the duration may equal the highest course year")
	assert.Equal(t, "Structural Engineering", renamed.Name)

	empty := f.createProgram(t, dean, "Surveying", 4)
	shrunk, err := f.programs.UpdateProgram(ctx, dean, empty.ID, programInput("Surveying", 1))
	require.NoError(t, err, "a program without courses can shrink freely")
	assert.Equal(t, 1, shrunk.DurationYears)
}

func TestListProgramsFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	for _, name := range []string{"Mathematics", "Applied Mathematics", "History"} {
		f.createProgram(t, dean, name, 4)
	}
	postgrad := programInput("Data Science", 2)
	postgrad.Level = models.LevelPostgraduate
	_, err := f.programs.CreateProgram(ctx, dean, postgrad)
	require.NoError(t, err)

	page, err := f.programs.ListPrograms(ctx, models.ProgramFilter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Applied Mathematics", page.Items[0].Name)

	search := "MATH"
	matches, err := f.programs.ListPrograms(ctx, models.ProgramFilter{Search: &search}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), matches.Total)

	level := models.LevelPostgraduate
	byLevel, err := f.programs.ListPrograms(ctx, models.ProgramFilter{Level: &level}, 0, 0)
	require.NoError(t, err)
	require.Len(t, byLevel.Items, 1)
	assert.Equal(t, "Data Science", byLevel.Items[0].Name)
	assert.Equal(t, 1, byLevel.Page)
}

func TestDeleteProgram(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	user := f.register(t, "applicant@example.com", models.RoleApplicant)

	empty := f.createProgram(t, dean, "Music", 4)
	course, err := f.courses.CreateCourse(ctx, dean, empty.ID, courseInput("MUS101", 1))
	require.NoError(t, err)

	require.NoError(t, f.programs.DeleteProgram(ctx, dean, empty.ID))
	_, err = f.programs.GetProgramByID(ctx, empty.ID)
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
	_, err = f.courses.GetCourseByID(ctx, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound, "courses go with their program")

	applied := f.createProgram(t, dean, "Nursing", 4)
	_, err = f.applications.SubmitApplication(ctx, user.ID, applied.ID, profileInput("Florence", "Nightingale"))
	require.NoError(t, err)
	assert.ErrorIs(t, f.programs.DeleteProgram(ctx, dean, applied.ID), apperrors.ErrProgramHasApplications)
}

func TestAssignCoordinator(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	program := f.createProgram(t, dean, "Chemistry", 4)
	coordinator, err := f.coordinators.CreateCoordinator(ctx, models.CoordinatorInput{FullName: "Marie Curie", Email: "marie@example.com"})
	require.NoError(t, err)

	res, err := f.programs.AssignCoordinator(ctx, dean, program.ID, &coordinator.ID)
	require.NoError(t, err)
	require.NotNil(t, res.ProgramCoordinatorID)
	assert.Equal(t, coordinator.ID, *res.ProgramCoordinatorID)

	missing := int64(999)
	_, err = f.programs.AssignCoordinator(ctx, dean, program.ID, &missing)
	assert.ErrorIs(t, err, apperrors.ErrCoordinatorNotFound)

	require.NoError(t, f.coordinators.DeleteCoordinator(ctx, coordinator.ID))
	got, err := f.programs.GetProgramByID(ctx, program.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProgramCoordinatorID)

	res, err = f.programs.AssignCoordinator(ctx, dean, program.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, res.ProgramCoordinatorID)
}
