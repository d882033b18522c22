package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	program := f.createProgram(t, dean, "Computer Engineering", 4)

	course, err := f.courses.CreateCourse(ctx, dean, program.ID, courseInput(" cmpe101 ", 1))
	require.NoError(t, err)
	assert.Equal(t, "CMPE101", course.CourseCode)
	assert.Equal(t, models.DefaultECTS, course.ECTS)
	assert.Equal(t, dean.ID, course.CreatedBy)

	explicit := courseInput("CMPE102", 1)
	explicit.ECTS = 5
	course, err = f.courses.CreateCourse(ctx, dean, program.ID, explicit)
	require.NoError(t, err)
	assert.Equal(t, 5.0, course.ECTS)
}

func TestCreateCourseYearBounds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	program := f.createProgram(t, dean, "Nursing", 4)

	_, err := f.courses.CreateCourse(ctx, dean, program.ID, courseInput("NUR401", 4))
	require.NoError(t, err)

	_, err = f.courses.CreateCourse(ctx, dean, program.ID, courseInput("NUR501", 5))
	ce := requireAppError(t, err, "INVALID_YEAR_NUMBER")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, map[string]interface{}{"year_number": 5, "duration_years": 4}, ce.Details)

	_, err = f.courses.CreateCourse(ctx, dean, program.ID, courseInput("NUR001", 0))
	requireAppError(t, err, "INVALID_YEAR_NUMBER")
}

func TestUpdateCourseYearBounds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	program := f.createProgram(t, dean, "Architecture", 4)
	course, err := f.courses.CreateCourse(ctx, dean, program.ID, courseInput("ARC301", 3))
	require.NoError(t, err)

	_, err = f.courses.UpdateCourse(ctx, dean, course.ID, courseInput("ARC301", 5))
	ce := requireAppError(t, err, "INVALID_YEAR_NUMBER")
	assert.Equal(t, map[string]interface{}{"year_number": 5, "duration_years": 4}, ce.Details)

	stored, err := f.courses.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.YearNumber)

	updated, err := f.courses.UpdateCourse(ctx, dean, course.ID, courseInput("ARC301", 4))
	require.NoError(t, err)
	assert.Equal(t, 4, updated.YearNumber)
}

func TestCourseCodeUniquePerProgram(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	first := f.createProgram(t, dean, "Mathematics", 4)
	second := f.createProgram(t, dean, "Physics", 4)

	_, err := f.courses.CreateCourse(ctx, dean, first.ID, courseInput("MATH101", 1))
	require.NoError(t, err)

	_, err = f.courses.CreateCourse(ctx, dean, first.ID, courseInput("math101", 2))
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)

	_, err = f.courses.CreateCourse(ctx, dean, second.ID, courseInput("MATH101", 1))
	assert.NoError(t, err, "same code is allowed in another program")

	other, err := f.courses.CreateCourse(ctx, dean, first.ID, courseInput("MATH102", 1))
	require.NoError(t, err)
	_, err = f.courses.UpdateCourse(ctx, dean, other.ID, courseInput("MATH101", 1))
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)
}

func TestCourseOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.register(t, "owner@example.com", models.RoleDean)
	other := f.register(t, "other@example.com", models.RoleDean)
	program := f.createProgram(t, owner, "Law", 4)
	course, err := f.courses.CreateCourse(ctx, owner, program.ID, courseInput("LAW101", 1))
	require.NoError(t, err)

	_, err = f.courses.CreateCourse(ctx, other, program.ID, courseInput("LAW102", 1))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = f.courses.UpdateCourse(ctx, other, course.ID, courseInput("LAW101", 2))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.ErrorIs(t, f.courses.DeleteCourse(ctx, other, course.ID), apperrors.ErrForbidden)

	_, err = f.courses.CreateCourse(ctx, owner, 999, courseInput("LAW103", 1))
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)

	require.NoError(t, f.courses.DeleteCourse(ctx, owner, course.ID))
	assert.ErrorIs(t, f.courses.DeleteCourse(ctx, owner, course.ID), apperrors.ErrCourseNotFound)
}

func TestListCoursesForProgram(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dean := f.register(t, "dean@example.com", models.RoleDean)
	program := f.createProgram(t, dean, "Biology", 3)

	for _, c := range []struct {
		code string
		name string
		year int
	}{
		{"BIO301", "Zoology", 3},
		{"BIO101", "Cell Biology", 1},
		{"BIO201", "Anatomy", 2},
	} {
		in := courseInput(c.code, c.year)
		in.CourseName = c.name
		_, err := f.courses.CreateCourse(ctx, dean, program.ID, in)
		require.NoError(t, err)
	}

	byYear, err := f.courses.ListCoursesForProgram(ctx, program.ID, models.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, byYear.Items, 3)
	assert.Equal(t, []string{"BIO101", "BIO201", "BIO301"}, courseCodes(byYear.Items))

	byName, err := f.courses.ListCoursesForProgram(ctx, program.ID, models.CourseFilter{Sort: models.CourseSortName})
	require.NoError(t, err)
	assert.Equal(t, []string{"BIO201", "BIO101", "BIO301"}, courseCodes(byName.Items))

	year := 2
	second, err := f.courses.ListCoursesForProgram(ctx, program.ID, models.CourseFilter{Year: &year})
	require.NoError(t, err)
	assert.Equal(t, []string{"BIO201"}, courseCodes(second.Items))

	_, err = f.courses.ListCoursesForProgram(ctx, 999, models.CourseFilter{})
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
}

func courseCodes(courses []models.Course) []string {
	codes := make([]string, 0, len(courses))
	for _, c := range courses {
		codes = append(codes, c.CourseCode)
	}
	return codes
}
