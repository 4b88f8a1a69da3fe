package attendance

import (
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
)

// TransitionPolicy is the single validation hook in front of RecordTransition.
type TransitionPolicy interface {
	Check(emp employee.Employee, requested employee.Status, projectID string) error
}

// TolerantPolicy accepts every transition; repeated clock-outs and same-project
// changes are recorded as ordinary events.
type TolerantPolicy struct{}

func (TolerantPolicy) Check(employee.Employee, employee.Status, string) error {
	return nil
}

// StrictPolicy rejects transitions that would only produce redundant events.
type StrictPolicy struct{}

func (StrictPolicy) Check(emp employee.Employee, requested employee.Status, projectID string) error {
	if emp.Status == employee.StatusLeave && requested != employee.StatusOff {
		return ErrOnLeave
	}

	switch Classify(emp.Status, requested) {
	case RecordClockOut:
		if emp.Status == employee.StatusOff {
			return ErrNotClockedIn
		}
	case RecordBreakStart:
		if emp.Status == employee.StatusBreak {
			return ErrAlreadyInStatus
		}
		if emp.Status != employee.StatusActive {
			return ErrNotClockedIn
		}
	case RecordProjectChange:
		if requested != employee.StatusActive {
			return ErrAlreadyInStatus
		}
		if projectID == "" || projectID == emp.ActiveProjectID {
			return ErrNoProjectChanged
		}
	}

	return nil
}

func NewTransitionPolicy(strict bool) TransitionPolicy {
	if strict {
		return StrictPolicy{}
	}
	return TolerantPolicy{}
}
