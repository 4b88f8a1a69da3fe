package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	IssueSSEToken(ctx context.Context, employeeID string) (SSETokenResponse, error)
}
