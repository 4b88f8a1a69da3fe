package http

import (
	"net/http"
	"strconv"

	"github.com/chronosforce/chronos-backend-go/internal/handler/http/middleware"
)

// getEmployeeIDFromContext returns the authenticated employee, or "" outside AuthRequired.
func getEmployeeIDFromContext(r *http.Request) string {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		return ""
	}
	return p.EmployeeID
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}
