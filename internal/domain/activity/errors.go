package activity

import "errors"

var (
	ErrActivityLogNotFound = errors.New("activity log not found")
	ErrProjectNotAllowed   = errors.New("activity log references a project the employee is not assigned to")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
)
