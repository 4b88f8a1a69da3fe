package employee

import (
	"context"
)

// EmployeeService covers the directory reads the attendance and approval screens need.
type EmployeeService interface {
	// GetProfile returns the employee's own record.
	GetProfile(ctx context.Context, employeeID string) (EmployeeResponse, error)

	// ListTeam lists the employees visible to viewerID through the supervisor hierarchy.
	ListTeam(ctx context.Context, viewerID string) ([]EmployeeResponse, error)

	// SetOvertime toggles the permanent overtime flag (higher-ranked actors only).
	SetOvertime(ctx context.Context, req SetOvertimeRequest) (EmployeeResponse, error)
}
