package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/config"
	"github.com/chronosforce/chronos-backend-go/internal/domain/attendance"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/clock"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/jwt"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/sse"
	"github.com/chronosforce/chronos-backend-go/internal/repository/memory"
	activityService "github.com/chronosforce/chronos-backend-go/internal/service/activity"
	attendanceService "github.com/chronosforce/chronos-backend-go/internal/service/attendance"
	serviceAuth "github.com/chronosforce/chronos-backend-go/internal/service/auth"
	employeeService "github.com/chronosforce/chronos-backend-go/internal/service/employee"
	leaveService "github.com/chronosforce/chronos-backend-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	router     *chi.Mux
	jwtService jwt.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	store := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), store, "secret"))

	employees := memory.NewEmployeeRepository(store)
	clk := clock.NewFixed(time.Date(2026, 3, 2, 9, 30, 0, 0, loc))
	hub := sse.NewHub()
	jwtService := jwt.NewJWTService("router-test-key", time.Hour)

	attendanceSvc := attendanceService.NewAttendanceService(
		store, employees, memory.NewProjectRepository(store), memory.NewRecordRepository(store),
		attendance.NewTransitionPolicy(false), hub, clk, loc, "dev-root",
	)
	leaveSvc := leaveService.NewLeaveService(store, memory.NewLeaveRequestRepository(store), employees, hub, clk, "dev-root")

	router := NewRouter(config.AppConfig{Env: "test"}, jwtService, Handlers{
		Auth:       NewAuthHandler(serviceAuth.NewAuthService(employees, jwtService)),
		Events:     NewEventHandler(hub, jwtService),
		Employee:   NewEmployeeHandler(employeeService.NewEmployeeService(employees, "dev-root")),
		Attendance: NewAttendanceHandler(attendanceSvc),
		Leave:      NewLeaveHandler(leaveSvc),
		Activity:   NewActivityHandler(activityService.NewActivityService(memory.NewActivityLogRepository(store), employees)),
	})

	return &testServer{router: router, jwtService: jwtService}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (s *testServer) login(t *testing.T, name string) string {
	t.Helper()

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"name": name, "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"name": "Lena Sato", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"name": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "name")
	assert.Contains(t, env.Error.Details, "password")
}

func TestProtectedRoutesRequireAccessToken(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/employees/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sseToken, _, err := s.jwtService.GenerateSSEToken("e1")
	require.NoError(t, err)
	rec, _ = s.do(t, http.MethodGet, "/api/v1/employees/me", sseToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login(t, "lena sato")
	rec, env := s.do(t, http.MethodGet, "/api/v1/employees/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "e1", me.ID)
	assert.Equal(t, "EMPLOYEE", me.Role)
}

func TestTeamRequiresTeamLead(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/employees/team", s.login(t, "Lena Sato"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/employees/team", s.login(t, "Ravi Menon"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var team []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &team))
	assert.Len(t, team, 2)
}

func TestUpdateStatus(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "Lena Sato")

	rec, env := s.do(t, http.MethodPost, "/api/v1/attendance/status", token, map[string]string{"status": "ACTIVE"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		Employee struct {
			Status string `json:"status"`
		} `json:"employee"`
		Record struct {
			Type string `json:"type"`
		} `json:"record"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "ACTIVE", result.Employee.Status)
	assert.Equal(t, "CLOCK_IN", result.Record.Type)

	rec, env = s.do(t, http.MethodPost, "/api/v1/attendance/status", token, map[string]string{"status": "SLEEPING"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/attendance/status", token, map[string]string{"status": "LEAVE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)

	rec, env = s.do(t, http.MethodPost, "/api/v1/attendance/status", token, map[string]string{"status": "ACTIVE", "project_id": "p2"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/records?limit=10", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/records?page=288230376151711745&limit=50", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLeaveDecisions(t *testing.T) {
	s := newTestServer(t)
	employeeToken := s.login(t, "Lena Sato")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/leave/requests", employeeToken, map[string]string{
		"start_date": "2026-03-10",
		"end_date":   "2026-03-09",
		"reason":     "family visit",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, env := s.do(t, http.MethodPost, "/api/v1/leave/requests", employeeToken, map[string]string{
		"start_date": "2026-03-10",
		"end_date":   "2026-03-12",
		"reason":     "family visit",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID          string `json:"id"`
		FinalStatus string `json:"final_status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "PENDING", created.FinalStatus)

	approvePath := "/api/v1/leave/requests/" + created.ID + "/approve"

	// The supervisor stage waits for the team lead.
	rec, env = s.do(t, http.MethodPost, approvePath, s.login(t, "Amara Okafor"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var decision struct {
		Acted bool `json:"acted"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &decision))
	assert.False(t, decision.Acted)

	rec, env = s.do(t, http.MethodPost, approvePath, s.login(t, "Ravi Menon"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &decision))
	assert.True(t, decision.Acted)

	// Employees cannot decide on their own request.
	rec, _ = s.do(t, http.MethodPost, approvePath, employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/leave/requests/"+created.ID, employeeToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/leave/requests/"+created.ID, s.login(t, "Owen Price"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/leave/requests/does-not-exist", employeeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSSETokenAndStreamAuth(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "Owen Price")

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/sse-token", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sseToken struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sseToken))
	assert.Equal(t, int64(300), sseToken.ExpiresIn)

	// Access tokens are not accepted on the event stream.
	rec, _ = s.do(t, http.MethodGet, "/api/v1/events?token="+token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
