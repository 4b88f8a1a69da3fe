package attendance

import (
	"sort"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
)

const DateLayout = "2006-01-02"

// Classify maps a requested status change to the event type it records.
// The clock and break rules win over PROJECT_CHANGE, which is the fallback.
func Classify(current, requested employee.Status) RecordType {
	switch {
	case requested == employee.StatusActive && current == employee.StatusOff:
		return RecordClockIn
	case requested == employee.StatusOff:
		return RecordClockOut
	case requested == employee.StatusBreak:
		return RecordBreakStart
	case requested == employee.StatusActive && current == employee.StatusBreak:
		return RecordBreakEnd
	default:
		return RecordProjectChange
	}
}

// RecordTransition applies a user-initiated status change to emp and returns the updated
// employee together with the record to append. An empty projectID keeps the active project.
// It never rejects a transition; see TransitionPolicy for opt-in checks.
func RecordTransition(emp employee.Employee, requested employee.Status, projectID string, now time.Time) (employee.Employee, Record) {
	if projectID == "" {
		projectID = emp.ActiveProjectID
	}

	record := Record{
		EmployeeID: emp.ID,
		Type:       Classify(emp.Status, requested),
		Timestamp:  now,
		ProjectID:  projectID,
	}

	updated := setStatus(emp, requested, now)
	updated.ActiveProjectID = projectID

	return updated, record
}

// setStatus moves emp to status and keeps the accrual anchor in step with it.
func setStatus(emp employee.Employee, status employee.Status, now time.Time) employee.Employee {
	wasActive := emp.Status == employee.StatusActive

	emp.Status = status
	emp.LastActionTime = &now

	switch {
	case status == employee.StatusActive && !wasActive:
		emp.LastTickAt = &now
	case status != employee.StatusActive:
		emp.LastTickAt = nil
	}

	return emp
}

// LoginStatus is the outcome of reconciling cached state with the event log.
type LoginStatus struct {
	Status          employee.Status
	ActiveProjectID string
	// ClockInReminder is set when the employee is off although the shift has started.
	ClockInReminder bool
}

// DeriveLoginStatus recomputes the employee's status from the records of the current
// organizational day. It does not mutate its inputs, so repeated calls agree.
func DeriveLoginStatus(emp employee.Employee, records []Record, now time.Time, loc *time.Location) LoginStatus {
	nowOrg := now.In(loc)
	today := nowOrg.Format(DateLayout)

	todays := make([]Record, 0, len(records))
	for _, r := range records {
		if r.EmployeeID != emp.ID {
			continue
		}
		if r.Timestamp.In(loc).Format(DateLayout) != today {
			continue
		}
		todays = append(todays, r)
	}
	sort.SliceStable(todays, func(i, j int) bool {
		return todays[i].Timestamp.Before(todays[j].Timestamp)
	})

	result := LoginStatus{
		Status:          employee.StatusOff,
		ActiveProjectID: emp.ActiveProjectID,
	}

	if len(todays) == 0 {
		result.ClockInReminder = emp.Shift.StartPassed(nowOrg)
		return result
	}

	last := todays[len(todays)-1]
	switch last.Type {
	case RecordClockIn, RecordBreakEnd, RecordProjectChange:
		result.Status = employee.StatusActive
		if last.ProjectID != "" {
			result.ActiveProjectID = last.ProjectID
		}
	case RecordBreakStart:
		result.Status = employee.StatusBreak
	default:
		result.ClockInReminder = emp.Shift.StartPassed(nowOrg)
	}

	return result
}

// ApplyLoginStatus writes a derived status onto emp. It reports false when nothing changed.
func ApplyLoginStatus(emp employee.Employee, ls LoginStatus, now time.Time) (employee.Employee, bool) {
	if emp.Status == ls.Status && emp.ActiveProjectID == ls.ActiveProjectID {
		return emp, false
	}

	wasActive := emp.Status == employee.StatusActive
	emp.Status = ls.Status
	emp.ActiveProjectID = ls.ActiveProjectID
	switch {
	case ls.Status == employee.StatusActive && !wasActive:
		emp.LastTickAt = &now
	case ls.Status != employee.StatusActive:
		emp.LastTickAt = nil
	}

	return emp, true
}

// TickResult describes what one boundary tick did to an employee.
type TickResult struct {
	Employee employee.Employee
	// Record is set when the tick forced a clock-out.
	Record        *Record
	MinutesAdded  int
	DayRolledOver bool
	Changed       bool
}

// TickShiftBoundary is the only automatic status change: it clocks out a working employee
// whose shift has ended unless overtime is enabled, and otherwise accrues whole minutes
// worked since the previous tick. It also resets the daily total on a new organizational day.
func TickShiftBoundary(emp employee.Employee, now time.Time, loc *time.Location) TickResult {
	nowOrg := now.In(loc)
	today := nowOrg.Format(DateLayout)

	result := TickResult{Employee: emp}

	if emp.WorkDate != today {
		result.Employee.WorkDate = today
		result.Employee.TotalMinutesWorkedToday = 0
		result.DayRolledOver = true
		result.Changed = true
	}

	if emp.IsWorking() && emp.Shift.EndReached(nowOrg) && !emp.OTEnabled {
		record := Record{
			EmployeeID: emp.ID,
			Type:       RecordClockOut,
			Timestamp:  now,
			ProjectID:  emp.ActiveProjectID,
			Automatic:  true,
		}
		result.Employee = setStatus(result.Employee, employee.StatusOff, now)
		result.Record = &record
		result.Changed = true
		return result
	}

	if emp.Status != employee.StatusActive {
		return result
	}

	if emp.LastTickAt == nil {
		result.Employee.LastTickAt = &now
		result.Changed = true
		return result
	}

	anchor := *emp.LastTickAt
	if result.DayRolledOver {
		// Minutes before the organizational midnight belong to the previous day.
		dayStart := time.Date(nowOrg.Year(), nowOrg.Month(), nowOrg.Day(), 0, 0, 0, 0, loc).In(now.Location())
		if anchor.Before(dayStart) {
			anchor = dayStart
			result.Employee.LastTickAt = &anchor
		}
	}

	elapsed := int(now.Sub(anchor) / time.Minute)
	if elapsed <= 0 {
		return result
	}

	next := anchor.Add(time.Duration(elapsed) * time.Minute)
	result.Employee.LastTickAt = &next
	result.Employee.TotalMinutesWorkedToday += elapsed
	result.MinutesAdded = elapsed
	result.Changed = true

	return result
}
