package leave

import (
	"context"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, newRequest LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListAll(ctx context.Context) ([]LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// UpdateDecision writes the lanes, final status and decision fields only if the stored
	// version still equals expectedVersion, and bumps the version. ErrVersionConflict otherwise.
	UpdateDecision(ctx context.Context, req LeaveRequest, expectedVersion int) (LeaveRequest, error)

	Delete(ctx context.Context, id string) error
}
