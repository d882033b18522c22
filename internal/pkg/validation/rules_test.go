package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("secret123"))
	assert.False(t, IsStrongPassword("short1"))
	assert.False(t, IsStrongPassword("lettersonly"))
	assert.False(t, IsStrongPassword("1234567890"))
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2001-02-28"))
	assert.False(t, IsISODate("2001-02-30"))
	assert.False(t, IsISODate("01-02-2001"))
	assert.False(t, IsISODate(""))
}

type sample struct {
	Password  string  `json:"password" validate:"password"`
	BirthDate string  `json:"birth_date" validate:"isodate"`
	Name      *string `json:"name" validate:"omitempty,notblank"`
}

func TestRegisterOnReportsJSONNames(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	blank := "  "
	err := v.Struct(sample{Password: "weak", BirthDate: "1999-13-01", Name: &blank})
	require.Error(t, err)

	var fields []string
	for _, fe := range err.(validator.ValidationErrors) {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"password", "birth_date", "name"}, fields)

	name := "Ada"
	assert.NoError(t, v.Struct(sample{Password: "secret123", BirthDate: "1999-12-01", Name: &name}))
	assert.NoError(t, v.Struct(sample{Password: "secret123", BirthDate: "1999-12-01"}))
}
