package leave

import (
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
)

// Visibility decides which requests a viewer may see and act on.
type Visibility struct {
	// RootID is the super-admin identity that bypasses the hierarchy walk.
	RootID string
	Roster employee.Roster
}

// CanView reports whether viewerID is the root identity or a transitive supervisor
// of the request's employee.
func (v Visibility) CanView(viewerID string, req LeaveRequest) bool {
	if viewerID == "" {
		return false
	}
	if v.RootID != "" && viewerID == v.RootID {
		return true
	}
	return v.Roster.IsSupervisorOf(viewerID, req.EmployeeID)
}

// Filter keeps the requests visible to viewerID, preserving order.
func (v Visibility) Filter(viewerID string, requests []LeaveRequest) []LeaveRequest {
	visible := make([]LeaveRequest, 0, len(requests))
	for _, r := range requests {
		if v.CanView(viewerID, r) {
			visible = append(visible, r)
		}
	}
	return visible
}
