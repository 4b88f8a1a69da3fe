package middleware

import (
	"fmt"
	"net/http"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/handler/http/response"
)

// RequireRole lets through principals whose role is at least min in the hierarchy.
func RequireRole(min employee.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			if !p.Role.AtLeast(min) {
				response.Forbidden(w, fmt.Sprintf("Insufficient role: required '%s' or above, but employee role is '%s'", min, p.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
