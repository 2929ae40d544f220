package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogastudio/yoga-app/internal/app/models/dto"
	"github.com/yogastudio/yoga-app/internal/app/repositories/memory"
	"github.com/yogastudio/yoga-app/internal/config"
)

const (
	adminEmail    = "yoga@studio.com"
	adminPassword = "test!1234"
	testSecret    = "integration-secret"
)

type testApp struct {
	t      *testing.T
	router *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = "development"
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpirationMs = 86400000
	cfg.JWT.Issuer = "yoga-app"
	cfg.Seed.Enabled = true
	cfg.Seed.AdminEmail = adminEmail
	cfg.Seed.AdminPassword = adminPassword

	lgr := zerolog.Nop()
	deps := BuildDependencies(cfg, memory.NewRepositories(), lgr)
	SeedDefaults(context.Background(), cfg, deps)

	return &testApp{t: t, router: SetupRouter(cfg, deps, lgr)}
}

func (a *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(email, password string) dto.JWTResponse {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.JWTResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (a *testApp) register(email, firstName, lastName, password string) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, "/api/auth/register", "", dto.SignupRequest{
		Email: email, FirstName: firstName, LastName: lastName, Password: password,
	})
}

func (a *testApp) firstTeacherID(token string) int64 {
	a.t.Helper()
	w := a.do(http.MethodGet, "/api/teacher", token, nil)
	require.Equal(a.t, http.StatusOK, w.Code)

	var teachers []dto.TeacherDto
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &teachers))
	require.NotEmpty(a.t, teachers)
	return teachers[0].ID
}

func (a *testApp) createSession(token string, teacherID int64, users []int64) dto.SessionDto {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/session", token, sessionBody("Morning flow", teacherID, users))
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var session dto.SessionDto
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &session))
	return session
}

func sessionBody(name string, teacherID int64, users []int64) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"date":        "2025-05-01T08:00:00Z",
		"teacher_id":  teacherID,
		"description": "Gentle vinyasa",
		"users":       users,
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLogin_ReturnsBearerTokenForEmail(t *testing.T) {
	app := newTestApp(t)

	resp := app.login(adminEmail, adminPassword)
	assert.Equal(t, "Bearer", resp.Type)
	assert.Equal(t, adminEmail, resp.Username)
	assert.True(t, resp.Admin)
	assert.NotZero(t, resp.ID)

	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(resp.Token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, adminEmail, claims.Subject)
}

func TestLogin_BadCredentials(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nobody@studio.com", Password: adminPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutes_RejectAnonymous(t *testing.T) {
	app := newTestApp(t)

	wrongKey := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   adminEmail,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	forged, err := wrongKey.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"empty header", " "},
		{"wrong prefix", "Token " + forged},
		{"wrong key", "Bearer " + forged},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			app.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, dto.MessageFullAuthRequired, resp.Message)
			assert.Equal(t, "/api/session", resp.Path)
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := app.login(adminEmail, adminPassword).Token
	w = app.do(http.MethodGet, "/api/nothing-here", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	w := app.register("jane@studio.com", "Jane", "Smith", "secret123")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var msg dto.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, dto.MessageUserRegistered, msg.Message)

	resp := app.login("jane@studio.com", "secret123")
	assert.False(t, resp.Admin)

	w = app.register("jane@studio.com", "Janet", "Smithy", "other123")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.MessageEmailAlreadyTaken, decodeError(t, w).Message)

	w = app.register("not-an-email", "Jane", "Smith", "secret123")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.register("short@studio.com", "Jo", "Smith", "secret123")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUser_OwnerOnly(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, http.StatusOK, app.register("jane@studio.com", "Jane", "Smith", "secret123").Code)
	jane := app.login("jane@studio.com", "secret123")
	admin := app.login(adminEmail, adminPassword)

	w := app.do(http.MethodDelete, fmt.Sprintf("/api/user/%d", jane.ID), admin.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodGet, fmt.Sprintf("/api/user/%d", jane.ID), admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user dto.UserDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "jane@studio.com", user.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = app.do(http.MethodDelete, fmt.Sprintf("/api/user/%d", jane.ID), jane.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, fmt.Sprintf("/api/user/%d", jane.ID), admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodDelete, "/api/user/9999", admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser_EmailComparisonIsCaseSensitive(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, http.StatusOK, app.register("Jane@studio.com", "Jane", "Smith", "secret123").Code)
	require.Equal(t, http.StatusOK, app.register("jane@studio.com", "Jane", "Lower", "secret123").Code)

	upper := app.login("Jane@studio.com", "secret123")
	lower := app.login("jane@studio.com", "secret123")
	require.NotEqual(t, upper.ID, lower.ID)

	w := app.do(http.MethodDelete, fmt.Sprintf("/api/user/%d", upper.ID), lower.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeletedUserTokenIsAnonymous(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, http.StatusOK, app.register("jane@studio.com", "Jane", "Smith", "secret123").Code)
	jane := app.login("jane@studio.com", "secret123")

	require.Equal(t, http.StatusOK, app.do(http.MethodDelete, fmt.Sprintf("/api/user/%d", jane.ID), jane.Token, nil).Code)

	w := app.do(http.MethodGet, "/api/teacher", jane.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNonNumericIDs(t *testing.T) {
	app := newTestApp(t)
	token := app.login(adminEmail, adminPassword).Token

	for _, path := range []string{"/api/user/abc", "/api/teacher/abc", "/api/session/abc"} {
		w := app.do(http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w := app.do(http.MethodPost, "/api/session/1/participate/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeachers(t *testing.T) {
	app := newTestApp(t)
	token := app.login(adminEmail, adminPassword).Token

	w := app.do(http.MethodGet, "/api/teacher", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var teachers []dto.TeacherDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &teachers))
	require.Len(t, teachers, 2)

	w = app.do(http.MethodGet, fmt.Sprintf("/api/teacher/%d", teachers[0].ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var teacher dto.TeacherDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &teacher))
	assert.Equal(t, teachers[0].LastName, teacher.LastName)

	w = app.do(http.MethodGet, "/api/teacher/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(adminEmail, adminPassword)
	teacherID := app.firstTeacherID(admin.Token)

	session := app.createSession(admin.Token, teacherID, []int64{admin.ID, admin.ID})
	require.NotZero(t, session.ID)
	assert.Equal(t, []int64{admin.ID}, session.Users)

	path := fmt.Sprintf("/api/session/%d", session.ID)

	w := app.do(http.MethodGet, path, admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/api/session", admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sessions []dto.SessionDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
	assert.Len(t, sessions, 1)

	w = app.do(http.MethodPut, path, admin.Token, sessionBody("Evening flow", teacherID, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated dto.SessionDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, session.ID, updated.ID)
	assert.Equal(t, "Evening flow", updated.Name)
	assert.Empty(t, updated.Users)

	w = app.do(http.MethodPut, "/api/session/9999", admin.Token, sessionBody("Ghost", teacherID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodDelete, path, admin.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, path, admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodDelete, path, admin.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSession_InvalidBodies(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(adminEmail, adminPassword)
	teacherID := app.firstTeacherID(admin.Token)

	w := app.do(http.MethodPost, "/api/session", admin.Token, sessionBody("Morning flow", 9999, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, "/api/session", admin.Token, sessionBody("Morning flow", teacherID, []int64{9999}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := sessionBody("Morning flow", teacherID, nil)
	delete(body, "date")
	w = app.do(http.MethodPost, "/api/session", admin.Token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, "/api/session", admin.Token, sessionBody("", teacherID, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParticipation(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(adminEmail, adminPassword)
	teacherID := app.firstTeacherID(admin.Token)

	require.Equal(t, http.StatusOK, app.register("jane@studio.com", "Jane", "Smith", "secret123").Code)
	jane := app.login("jane@studio.com", "secret123")

	session := app.createSession(admin.Token, teacherID, nil)
	participate := fmt.Sprintf("/api/session/%d/participate/%d", session.ID, jane.ID)

	w := app.do(http.MethodPost, participate, jane.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(http.MethodPost, participate, jane.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, fmt.Sprintf("/api/session/%d", session.ID), jane.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.SessionDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []int64{jane.ID}, got.Users)

	w = app.do(http.MethodDelete, participate, jane.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodDelete, participate, jane.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, fmt.Sprintf("/api/session/9999/participate/%d", jane.ID), jane.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodPost, fmt.Sprintf("/api/session/%d/participate/9999", session.ID), jane.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPing(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
