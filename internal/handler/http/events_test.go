package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/pkg/jwt"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_ConnectedEventIsJSON(t *testing.T) {
	jwtService := jwt.NewJWTService("events-test-key", time.Hour)
	hub := sse.NewHub()
	handler := NewEventHandler(hub, jwtService)

	employeeID := "emp\x01\"7é"
	token, _, err := jwtService.GenerateSSEToken(employeeID)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?token="+url.QueryEscape(token), nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	handler.Stream(rec, req)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	lines := strings.Split(rec.Body.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "event: connected", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "data: "))

	var payload struct {
		Status     string `json:"status"`
		EmployeeID string `json:"employee_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(lines[1], "data: ")), &payload))
	assert.Equal(t, "connected", payload.Status)
	assert.Equal(t, employeeID, payload.EmployeeID)
	assert.Zero(t, hub.SubscriberCount(employeeID), "stream unsubscribes on disconnect")
}
