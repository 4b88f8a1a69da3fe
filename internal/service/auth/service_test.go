package auth

import (
	"context"
	"testing"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/auth"
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/jwt"
	"github.com/chronosforce/chronos-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), store, "secret"))
	jwtService := jwt.NewJWTService("test-signing-key", time.Hour)
	return NewAuthService(memory.NewEmployeeRepository(store), jwtService), jwtService
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, auth.LoginRequest{Name: "  ravi menon ", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, "tl1", token.EmployeeID)
	assert.Equal(t, string(employee.RoleTeamLead), token.Role)
	assert.InDelta(t, time.Hour.Seconds(), float64(token.ExpiresIn), 5)

	tests := []struct {
		name string
		req  auth.LoginRequest
	}{
		{"wrong password", auth.LoginRequest{Name: "Ravi Menon", Password: "nope"}},
		{"unknown name", auth.LoginRequest{Name: "Nobody Here", Password: "secret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestIssueSSEToken(t *testing.T) {
	svc, jwtService := newTestService(t)
	ctx := context.Background()

	resp, err := svc.IssueSSEToken(ctx, "e2")
	require.NoError(t, err)
	assert.Equal(t, int64(300), resp.ExpiresIn)

	employeeID, err := jwtService.ValidateSSEToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "e2", employeeID)

	_, err = svc.IssueSSEToken(ctx, "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLoginRequest_Validate(t *testing.T) {
	req := auth.LoginRequest{}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "password is required")
}
