package activity

import "time"

// DailyActivityLog is the employee's own summary of a working day. It is informational
// and does not affect attendance status.
type DailyActivityLog struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	StartTime     string
	EndTime       string
	OvertimeHours float64
	ProjectIDs    []string
	Note          string
	SubmittedAt   time.Time
}
