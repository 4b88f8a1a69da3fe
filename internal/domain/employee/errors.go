package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidStatus    = errors.New("invalid attendance status")
	ErrInvalidClockTime = errors.New("time must be in HH:MM format")
	ErrUnauthorized     = errors.New("unauthorized to access this employee")
	ErrEmployeeArchived = errors.New("employee is archived")
)
