package leave

import (
	"context"
)

type LeaveService interface {
	CreateRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)

	// Approve and Reject return Acted=false when the actor has no active stage.
	Approve(ctx context.Context, req DecisionRequest) (DecisionResponse, error)
	Reject(ctx context.Context, req DecisionRequest) (DecisionResponse, error)

	ListVisible(ctx context.Context, viewerID string) ([]LeaveRequestResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	Get(ctx context.Context, requestID, viewerID string) (LeaveRequestResponse, error)

	// Dismiss deletes a request; the submitter or any viewer allowed to see it may do so.
	Dismiss(ctx context.Context, requestID, viewerID string) error
}
