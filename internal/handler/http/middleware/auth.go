package middleware

import (
	"context"
	"net/http"

	"github.com/chronosforce/chronos-backend-go/internal/domain/auth"
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/handler/http/response"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type principalKey struct{}

// Principal is the authenticated employee behind a request.
type Principal struct {
	EmployeeID string
	Role       employee.Role
}

// AuthRequired accepts verified access tokens only and stores the Principal in the context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		roleStr, _ := claims["role"].(string)
		role, err := employee.ParseRole(roleStr)
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey{}, Principal{EmployeeID: employeeID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PrincipalFrom returns the Principal stored by AuthRequired.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// WithPrincipal is used by tests that bypass token verification.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}
