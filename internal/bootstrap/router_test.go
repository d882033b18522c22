package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/admissions/internal/app/repositories/memory"
	pkgAuth "github.com/yigit/admissions/internal/pkg/auth"
	"github.com/yigit/admissions/internal/pkg/tokenstore"
	"github.com/yigit/admissions/internal/pkg/validation"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func newAPIClient(t *testing.T, healthCheck func(context.Context) error) *apiClient {
	t.Helper()
	require.NoError(t, validation.Register())

	mem := memory.New()
	deps := BuildDependencies(
		mem,
		Stores{
			Users:             mem.Users(),
			Programs:          mem.Programs(),
			Courses:           mem.Courses(),
			Coordinators:      mem.Coordinators(),
			Profiles:          mem.Profiles(),
			Applications:      mem.Applications(),
			AdminApplications: mem.AdminApplications(),
		},
		pkgAuth.NewJWTService(pkgAuth.JWTConfig{SecretKey: "router-test", TokenExp: time.Hour, TokenIssuer: "admissions-test"}),
		tokenstore.NewMemoryStore(),
		healthCheck,
		zerolog.Nop(),
	)
	deps.Services.Auth.WithHashCost(bcrypt.MinCost)

	return &apiClient{t: t, handler: SetupRouter("test", deps)}
}

func (c *apiClient) do(method, path, token string, body interface{}) (int, envelope) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (c *apiClient) errorCode(env envelope) string {
	c.t.Helper()
	require.NotNil(c.t, env.Error, "expected an error envelope")
	return env.Error.Code
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type authData struct {
	Token string `json:"token"`
	User  struct {
		ID int64 `json:"id"`
	} `json:"user"`
}

func (c *apiClient) register(email, role string) string {
	c.t.Helper()
	status, env := c.do(http.MethodPost, "/auth/register", "", map[string]string{
		"first_name": "Test",
		"last_name":  "User",
		"email":      email,
		"password":   "secret123",
		"role":       role,
	})
	require.Equal(c.t, http.StatusCreated, status)
	return decodeData[authData](c.t, env).Token
}

func profileBody(dateOfBirth string) map[string]string {
	return map[string]string{
		"first_name":             "Ada",
		"last_name":              "Lovelace",
		"date_of_birth":          dateOfBirth,
		"gender":                 "female",
		"passport_no":            "P1234567",
		"id_no":                  "12345678901",
		"place_of_birth":         "London",
		"contact_number":         "+44 20 7946 0000",
		"country":                "United Kingdom",
		"address_line":           "12 St James's Square",
		"city":                   "London",
		"state":                  "Greater London",
		"zip_postcode":           "SW1Y 4JH",
		"mother_full_name":       "Anne Milbanke",
		"father_full_name":       "George Byron",
		"heard_about_university": "Friends",
	}
}

func TestHealth(t *testing.T) {
	status, env := newAPIClient(t, nil).do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	down := func(context.Context) error { return errors.New("connection refused") }
	status, env = newAPIClient(t, down).do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.False(t, env.Success)
}

func TestAuthFlow(t *testing.T) {
	c := newAPIClient(t, nil)
	token := c.register("ada@example.com", "applicant")

	status, env := c.do(http.MethodPost, "/auth/register", "", map[string]string{
		"first_name": "Ada", "last_name": "Again", "email": "ADA@example.com", "password": "secret123", "role": "applicant",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", c.errorCode(env))

	status, env = c.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ada@example.com", "password": "wrong999"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", c.errorCode(env))

	status, _ = c.do(http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = c.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", c.errorCode(env))

	status, _ = c.do(http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = c.do(http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "TOKEN_REVOKED", c.errorCode(env))
}

func TestRoleGuards(t *testing.T) {
	c := newAPIClient(t, nil)
	applicant := c.register("applicant@example.com", "applicant")
	dean := c.register("dean@example.com", "dean")

	program := map[string]interface{}{
		"name":                    "Computer Engineering",
		"level":                   "undergraduate",
		"duration_years":          4,
		"short_description":       "Hardware and software",
		"about_text":              "A four year engineering program",
		"entry_requirements_text": "High school diploma",
	}

	status, env := c.do(http.MethodPost, "/programs", applicant, program)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", c.errorCode(env))

	status, _ = c.do(http.MethodGet, "/admin/applications", applicant, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.do(http.MethodGet, "/applicant/profile", dean, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.do(http.MethodGet, "/programs/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdmissionsFlow(t *testing.T) {
	c := newAPIClient(t, nil)
	dean := c.register("dean@example.com", "dean")
	applicant := c.register("applicant@example.com", "applicant")

	status, env := c.do(http.MethodPost, "/programs", dean, map[string]interface{}{
		"name":                    "Computer Engineering",
		"level":                   "undergraduate",
		"duration_years":          4,
		"short_description":       "Hardware and software",
		"about_text":              "A four year engineering program",
		"entry_requirements_text": "High school diploma",
	})
	require.Equal(t, http.StatusCreated, status)
	programID := decodeData[struct {
		ID int64 `json:"id"`
	}](t, env).ID
	programPath := "/programs/" + strconv.FormatInt(programID, 10)

	course := map[string]interface{}{
		"year_number":        5,
		"course_name":        "Thesis",
		"course_code":        "cmpe501",
		"credits":            6,
		"theoretical_hours":  0,
		"practical_hours":    6,
		"distance_hours":     0,
		"course_description": "Final year thesis",
	}
	status, env = c.do(http.MethodPost, programPath+"/courses", dean, course)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_YEAR_NUMBER", c.errorCode(env))

	course["year_number"] = 4
	status, env = c.do(http.MethodPost, programPath+"/courses", dean, course)
	require.Equal(t, http.StatusCreated, status)
	created := decodeData[struct {
		CourseCode string  `json:"course_code"`
		ECTS       float64 `json:"ects"`
	}](t, env)
	assert.Equal(t, "CMPE501", created.CourseCode)
	assert.Equal(t, 7.5, created.ECTS)

	status, env = c.do(http.MethodGet, programPath+"/courses", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decodeData[struct {
		Items []json.RawMessage `json:"items"`
	}](t, env).Items, 1)

	status, env = c.do(http.MethodGet, "/applications/me", applicant, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PROFILE_NOT_FOUND", c.errorCode(env))

	status, env = c.do(http.MethodPost, "/applications", applicant, map[string]interface{}{
		"program_id": programID,
		"profile":    profileBody("2005-02-30"),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", c.errorCode(env))
	assert.Contains(t, string(env.Error.Details), "profile.date_of_birth")

	status, env = c.do(http.MethodPost, "/applications", applicant, map[string]interface{}{
		"program_id": programID,
		"profile":    profileBody("2005-12-10"),
	})
	require.Equal(t, http.StatusCreated, status)
	submitted := decodeData[struct {
		Application struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"application"`
		Profile struct {
			ReferenceCode string `json:"reference_code"`
		} `json:"profile"`
	}](t, env)
	assert.Equal(t, "submitted", submitted.Application.Status)
	assert.NotEmpty(t, submitted.Profile.ReferenceCode)

	status, env = c.do(http.MethodGet, "/applications/me", applicant, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decodeData[struct {
		Total int64 `json:"total"`
	}](t, env).Total)

	status, env = c.do(http.MethodGet, "/admin/applications?status=submitted", dean, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decodeData[struct {
		Total int64 `json:"total"`
	}](t, env).Total)

	appPath := "/admin/applications/" + strconv.FormatInt(submitted.Application.ID, 10)
	status, env = c.do(http.MethodPatch, appPath+"/accept", dean, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "accepted", decodeData[struct {
		Status string `json:"status"`
	}](t, env).Status)

	status, env = c.do(http.MethodPatch, appPath+"/reject", dean, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "APPLICATION_ALREADY_REVIEWED", c.errorCode(env))
	assert.JSONEq(t, `{"current_status":"accepted"}`, string(env.Error.Details))

	status, env = c.do(http.MethodDelete, programPath, dean, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "PROGRAM_HAS_APPLICATIONS", c.errorCode(env))
}
