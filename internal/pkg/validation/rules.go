package validation

import (
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// ISODatePattern matches calendar dates written as YYYY-MM-DD
	ISODatePattern = `^\d{4}-\d{2}-\d{2}$`

	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	ISODate *regexp.Regexp
}{
	ISODate: regexp.MustCompile(ISODatePattern),
}

// Custom tag names usable in `binding:"..."` struct tags
const (
	TagPassword = "password"
	TagISODate  = "isodate"
	TagNotBlank = "notblank"
)

// Register installs the custom rules on gin's validator engine and makes
// field errors report json names instead of Go field names.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

// RegisterOn installs the custom rules on v
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]validator.Func{
		TagPassword: validatePassword,
		TagISODate:  validateISODate,
		TagNotBlank: validateNotBlank,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// IsStrongPassword reports whether password has the minimum length and
// contains at least one letter and one digit.
func IsStrongPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// IsISODate reports whether s is a real calendar date in YYYY-MM-DD form
func IsISODate(s string) bool {
	if !CompiledPatterns.ISODate.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func validatePassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func validateISODate(fl validator.FieldLevel) bool {
	return IsISODate(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	return strings.TrimSpace(field.String()) != ""
}
