package attendance

import (
	"time"
)

type RecordType string

const (
	RecordClockIn       RecordType = "CLOCK_IN"
	RecordClockOut      RecordType = "CLOCK_OUT"
	RecordBreakStart    RecordType = "BREAK_START"
	RecordBreakEnd      RecordType = "BREAK_END"
	RecordProjectChange RecordType = "PROJECT_CHANGE"
)

func (t RecordType) IsValid() bool {
	switch t {
	case RecordClockIn, RecordClockOut, RecordBreakStart, RecordBreakEnd, RecordProjectChange:
		return true
	}
	return false
}

// Record is one immutable entry of the attendance event log.
type Record struct {
	ID         string
	EmployeeID string
	Type       RecordType
	Timestamp  time.Time
	// ProjectID is empty when the employee had no active project.
	ProjectID string
	// Automatic marks records emitted by the shift boundary tick rather than the employee.
	Automatic bool
	CreatedAt time.Time
}
