package attendance

import "errors"

var (
	ErrProjectNotAllowed = errors.New("employee is not assigned to this project")
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrUnauthorized      = errors.New("unauthorized to access these attendance records")

	// Strict transition policy
	ErrAlreadyInStatus  = errors.New("employee is already in the requested status")
	ErrNotClockedIn     = errors.New("employee is not clocked in")
	ErrOnLeave          = errors.New("employee is on leave")
	ErrNoProjectChanged = errors.New("employee is already working on this project")
)
