package employee

import (
	"fmt"
	"strings"
	"time"
)

type Employee struct {
	ID                      string
	Code                    string
	Name                    string
	Email                   string
	PasswordHash            *string
	Role                    Role
	SupervisorID            *string
	Shift                   Shift
	AllowedProjectIDs       []string
	ActiveProjectID         string
	Status                  Status
	LastActionTime          *time.Time
	TotalMinutesWorkedToday int
	OTEnabled               bool

	// WorkDate is the organizational day (YYYY-MM-DD) TotalMinutesWorkedToday belongs to.
	WorkDate string
	// LastTickAt marks the instant minutes were last accrued while ACTIVE.
	LastTickAt *time.Time

	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusBreak  Status = "BREAK"
	StatusOff    Status = "OFF"
	StatusLeave  Status = "LEAVE"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusBreak, StatusOff, StatusLeave:
		return true
	}
	return false
}

// ParseStatus accepts the status name in any case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsWorking reports whether the employee is clocked in, on break included.
func (e *Employee) IsWorking() bool {
	return e.Status == StatusActive || e.Status == StatusBreak
}

func (e *Employee) IsArchived() bool {
	return e.ArchivedAt != nil
}

// CanWorkOn checks allowedProjectIds membership.
func (e *Employee) CanWorkOn(projectID string) bool {
	for _, id := range e.AllowedProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

// CanManage reports whether e may edit target's profile settings.
func (e *Employee) CanManage(target Employee) bool {
	if e.Role.IsExecutive() {
		return true
	}
	return e.Role.Outranks(target.Role)
}

// MatchesName compares the login key case-insensitively.
func (e *Employee) MatchesName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(e.Name), strings.TrimSpace(name))
}
