package attendance

import (
	"context"
)

// AttendanceService drives the attendance state engine against persisted state.
type AttendanceService interface {
	// UpdateStatus records an explicit status or project change by the employee.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (StatusResponse, error)

	// StartSession reconciles the cached status with today's event log.
	StartSession(ctx context.Context, employeeID string) (SessionResponse, error)

	// TickShiftBoundaries runs the boundary tick for every active employee.
	TickShiftBoundaries(ctx context.Context) (TickSummary, error)

	// ListRecords reads the event log; viewers other than the owner must supervise the employee.
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
}
