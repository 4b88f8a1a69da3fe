package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrUnauthorizedAccess   = errors.New("not authorized to access this leave request")
	ErrVersionConflict      = errors.New("leave request was modified concurrently")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
)
