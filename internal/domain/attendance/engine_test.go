package attendance

import (
	"testing"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orgLoc = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return loc
}()

func at(day, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+clock, orgLoc)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func newEmployee(status employee.Status) employee.Employee {
	return employee.Employee{
		ID:                "e1",
		Name:              "Ada Park",
		Role:              employee.RoleEmployee,
		Shift:             employee.Shift{Start: employee.MustClockTime("09:00"), End: employee.MustClockTime("17:00")},
		AllowedProjectIDs: []string{"p1", "p2"},
		ActiveProjectID:   "p1",
		Status:            status,
	}
}

func TestClassify(t *testing.T) {
	statuses := []employee.Status{employee.StatusActive, employee.StatusBreak, employee.StatusOff, employee.StatusLeave}

	want := map[employee.Status]map[employee.Status]RecordType{
		employee.StatusActive: {
			employee.StatusActive: RecordProjectChange,
			employee.StatusBreak:  RecordBreakStart,
			employee.StatusOff:    RecordClockOut,
			employee.StatusLeave:  RecordProjectChange,
		},
		employee.StatusBreak: {
			employee.StatusActive: RecordBreakEnd,
			employee.StatusBreak:  RecordBreakStart,
			employee.StatusOff:    RecordClockOut,
			employee.StatusLeave:  RecordProjectChange,
		},
		employee.StatusOff: {
			employee.StatusActive: RecordClockIn,
			employee.StatusBreak:  RecordBreakStart,
			employee.StatusOff:    RecordClockOut,
			employee.StatusLeave:  RecordProjectChange,
		},
		employee.StatusLeave: {
			employee.StatusActive: RecordProjectChange,
			employee.StatusBreak:  RecordBreakStart,
			employee.StatusOff:    RecordClockOut,
			employee.StatusLeave:  RecordProjectChange,
		},
	}

	for _, current := range statuses {
		for _, requested := range statuses {
			assert.Equal(t, want[current][requested], Classify(current, requested),
				"Classify(%s, %s)", current, requested)
		}
	}
}

func TestRecordTransition(t *testing.T) {
	now := at("2026-03-02", "09:05")

	t.Run("clock in keeps active project when none given", func(t *testing.T) {
		updated, rec := RecordTransition(newEmployee(employee.StatusOff), employee.StatusActive, "", now)

		assert.Equal(t, RecordClockIn, rec.Type)
		assert.Equal(t, "p1", rec.ProjectID)
		assert.Equal(t, now, rec.Timestamp)
		assert.False(t, rec.Automatic)
		assert.Equal(t, employee.StatusActive, updated.Status)
		require.NotNil(t, updated.LastActionTime)
		assert.Equal(t, now, *updated.LastActionTime)
		require.NotNil(t, updated.LastTickAt)
		assert.Equal(t, now, *updated.LastTickAt)
	})

	t.Run("project change while active switches project", func(t *testing.T) {
		emp := newEmployee(employee.StatusActive)
		anchor := now.Add(-time.Hour)
		emp.LastTickAt = &anchor

		updated, rec := RecordTransition(emp, employee.StatusActive, "p2", now)

		assert.Equal(t, RecordProjectChange, rec.Type)
		assert.Equal(t, "p2", rec.ProjectID)
		assert.Equal(t, "p2", updated.ActiveProjectID)
		require.NotNil(t, updated.LastTickAt)
		assert.Equal(t, anchor, *updated.LastTickAt, "staying active keeps the accrual anchor")
	})

	t.Run("break clears accrual anchor", func(t *testing.T) {
		emp := newEmployee(employee.StatusActive)
		emp.LastTickAt = &now

		updated, rec := RecordTransition(emp, employee.StatusBreak, "", now)

		assert.Equal(t, RecordBreakStart, rec.Type)
		assert.Equal(t, employee.StatusBreak, updated.Status)
		assert.Nil(t, updated.LastTickAt)
	})

	t.Run("input employee is not mutated", func(t *testing.T) {
		emp := newEmployee(employee.StatusOff)
		RecordTransition(emp, employee.StatusActive, "p2", now)
		assert.Equal(t, employee.StatusOff, emp.Status)
		assert.Equal(t, "p1", emp.ActiveProjectID)
		assert.Nil(t, emp.LastActionTime)
	})
}

func TestDeriveLoginStatus(t *testing.T) {
	day := "2026-03-02"
	rec := func(typ RecordType, clock, project string) Record {
		return Record{EmployeeID: "e1", Type: typ, Timestamp: at(day, clock), ProjectID: project}
	}

	tests := []struct {
		name         string
		records      []Record
		now          time.Time
		wantStatus   employee.Status
		wantProject  string
		wantReminder bool
	}{
		{
			name:         "no records after shift start reminds",
			now:          at(day, "09:30"),
			wantStatus:   employee.StatusOff,
			wantProject:  "p1",
			wantReminder: true,
		},
		{
			name:        "no records before shift start",
			now:         at(day, "08:00"),
			wantStatus:  employee.StatusOff,
			wantProject: "p1",
		},
		{
			name:        "last clock in makes active on its project",
			records:     []Record{rec(RecordClockIn, "09:00", "p2")},
			now:         at(day, "10:00"),
			wantStatus:  employee.StatusActive,
			wantProject: "p2",
		},
		{
			name:        "unordered records resolve by timestamp",
			records:     []Record{rec(RecordBreakStart, "12:00", "p1"), rec(RecordClockIn, "09:00", "p1")},
			now:         at(day, "12:10"),
			wantStatus:  employee.StatusBreak,
			wantProject: "p1",
		},
		{
			name:        "break end resumes active",
			records:     []Record{rec(RecordClockIn, "09:00", "p1"), rec(RecordBreakStart, "12:00", "p1"), rec(RecordBreakEnd, "12:30", "p1")},
			now:         at(day, "13:00"),
			wantStatus:  employee.StatusActive,
			wantProject: "p1",
		},
		{
			name:         "clock out leaves off with reminder",
			records:      []Record{rec(RecordClockIn, "09:00", "p1"), rec(RecordClockOut, "11:00", "p1")},
			now:          at(day, "11:30"),
			wantStatus:   employee.StatusOff,
			wantProject:  "p1",
			wantReminder: true,
		},
		{
			name: "yesterday's records are ignored",
			records: []Record{
				{EmployeeID: "e1", Type: RecordClockIn, Timestamp: at("2026-03-01", "09:00"), ProjectID: "p2"},
			},
			now:          at(day, "10:00"),
			wantStatus:   employee.StatusOff,
			wantProject:  "p1",
			wantReminder: true,
		},
		{
			name: "other employees' records are ignored",
			records: []Record{
				{EmployeeID: "e2", Type: RecordClockIn, Timestamp: at(day, "09:00"), ProjectID: "p2"},
			},
			now:         at(day, "08:30"),
			wantStatus:  employee.StatusOff,
			wantProject: "p1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveLoginStatus(newEmployee(employee.StatusOff), tt.records, tt.now, orgLoc)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantProject, got.ActiveProjectID)
			assert.Equal(t, tt.wantReminder, got.ClockInReminder)
		})
	}
}

func TestDeriveLoginStatus_Idempotent(t *testing.T) {
	now := at("2026-03-02", "12:00")
	records := []Record{
		{EmployeeID: "e1", Type: RecordBreakStart, Timestamp: at("2026-03-02", "11:00")},
		{EmployeeID: "e1", Type: RecordClockIn, Timestamp: at("2026-03-02", "09:00"), ProjectID: "p1"},
	}
	emp := newEmployee(employee.StatusActive)

	first := DeriveLoginStatus(emp, records, now, orgLoc)
	applied, changed := ApplyLoginStatus(emp, first, now)
	require.True(t, changed)
	assert.Equal(t, employee.StatusBreak, applied.Status)

	second := DeriveLoginStatus(applied, records, now, orgLoc)
	assert.Equal(t, first, second)

	_, changed = ApplyLoginStatus(applied, second, now)
	assert.False(t, changed)

	assert.Equal(t, RecordBreakStart, records[0].Type, "input order is preserved")
}

func TestApplyLoginStatus_ManagesAnchor(t *testing.T) {
	now := at("2026-03-02", "10:00")

	emp, changed := ApplyLoginStatus(newEmployee(employee.StatusOff), LoginStatus{Status: employee.StatusActive, ActiveProjectID: "p1"}, now)
	require.True(t, changed)
	require.NotNil(t, emp.LastTickAt)
	assert.Equal(t, now, *emp.LastTickAt)

	emp, changed = ApplyLoginStatus(emp, LoginStatus{Status: employee.StatusOff, ActiveProjectID: "p1"}, now)
	require.True(t, changed)
	assert.Nil(t, emp.LastTickAt)
}

func TestTickShiftBoundary(t *testing.T) {
	day := "2026-03-02"

	t.Run("forces clock out at shift end", func(t *testing.T) {
		emp := newEmployee(employee.StatusActive)
		emp.WorkDate = day
		now := at(day, "17:00")

		res := TickShiftBoundary(emp, now, orgLoc)

		require.NotNil(t, res.Record)
		assert.Equal(t, RecordClockOut, res.Record.Type)
		assert.True(t, res.Record.Automatic)
		assert.Equal(t, "p1", res.Record.ProjectID)
		assert.Equal(t, employee.StatusOff, res.Employee.Status)
		assert.Nil(t, res.Employee.LastTickAt)
		assert.True(t, res.Changed)
	})

	t.Run("forces clock out while on break", func(t *testing.T) {
		emp := newEmployee(employee.StatusBreak)
		emp.WorkDate = day

		res := TickShiftBoundary(emp, at(day, "18:30"), orgLoc)

		require.NotNil(t, res.Record)
		assert.Equal(t, employee.StatusOff, res.Employee.Status)
	})

	t.Run("overtime keeps working and accrues", func(t *testing.T) {
		emp := newEmployee(employee.StatusActive)
		emp.WorkDate = day
		emp.OTEnabled = true
		emp.TotalMinutesWorkedToday = 480
		anchor := at(day, "17:00")
		emp.LastTickAt = &anchor

		res := TickShiftBoundary(emp, at(day, "17:02").Add(30*time.Second), orgLoc)

		assert.Nil(t, res.Record)
		assert.Equal(t, employee.StatusActive, res.Employee.Status)
		assert.Equal(t, 2, res.MinutesAdded)
		assert.Equal(t, 482, res.Employee.TotalMinutesWorkedToday)
		require.NotNil(t, res.Employee.LastTickAt)
		assert.Equal(t, at(day, "17:02"), *res.Employee.LastTickAt, "partial minutes carry over")
	})

	t.Run("sub-minute tick changes nothing", func(t *testing.T) {
		emp := newEmployee(employee.StatusActive)
		emp.WorkDate = day
		anchor := at(day, "10:00")
		emp.LastTickAt = &anchor

		res := TickShiftBoundary(emp, anchor.Add(40*time.Second), orgLoc)

		assert.False(t, res.Changed)
		assert.Zero(t, res.MinutesAdded)
	})

	t.Run("active without anchor starts one", func(t *testing.T) {
		emp := newEmployee(employee.StatusActive)
		emp.WorkDate = day
		now := at(day, "10:00")

		res := TickShiftBoundary(emp, now, orgLoc)

		assert.True(t, res.Changed)
		require.NotNil(t, res.Employee.LastTickAt)
		assert.Equal(t, now, *res.Employee.LastTickAt)
		assert.Zero(t, res.MinutesAdded)
	})

	t.Run("off employees are left alone", func(t *testing.T) {
		emp := newEmployee(employee.StatusOff)
		emp.WorkDate = day

		res := TickShiftBoundary(emp, at(day, "20:00"), orgLoc)

		assert.False(t, res.Changed)
		assert.Nil(t, res.Record)
	})

	t.Run("new day resets the daily total", func(t *testing.T) {
		emp := newEmployee(employee.StatusOff)
		emp.WorkDate = "2026-03-01"
		emp.TotalMinutesWorkedToday = 300

		res := TickShiftBoundary(emp, at(day, "00:01"), orgLoc)

		assert.True(t, res.DayRolledOver)
		assert.Equal(t, day, res.Employee.WorkDate)
		assert.Zero(t, res.Employee.TotalMinutesWorkedToday)
	})

	t.Run("rollover accrues only from midnight", func(t *testing.T) {
		emp := newEmployee(employee.StatusActive)
		emp.Shift = employee.Shift{Start: employee.MustClockTime("22:00"), End: employee.MustClockTime("06:00")}
		emp.WorkDate = "2026-03-01"
		emp.TotalMinutesWorkedToday = 90
		anchor := at("2026-03-01", "23:50")
		emp.LastTickAt = &anchor

		res := TickShiftBoundary(emp, at(day, "00:05"), orgLoc)

		assert.True(t, res.DayRolledOver)
		assert.Equal(t, 5, res.MinutesAdded)
		assert.Equal(t, 5, res.Employee.TotalMinutesWorkedToday)
		require.NotNil(t, res.Employee.LastTickAt)
		assert.True(t, at(day, "00:05").Equal(*res.Employee.LastTickAt))
	})

	t.Run("rollover after an outage starts from midnight", func(t *testing.T) {
		emp := newEmployee(employee.StatusActive)
		emp.OTEnabled = true
		emp.WorkDate = "2026-02-27"
		anchor := at("2026-02-27", "16:00")
		emp.LastTickAt = &anchor

		res := TickShiftBoundary(emp, at(day, "00:00").Add(30*time.Second), orgLoc)

		assert.True(t, res.Changed)
		assert.Zero(t, res.MinutesAdded)
		assert.Zero(t, res.Employee.TotalMinutesWorkedToday)
		require.NotNil(t, res.Employee.LastTickAt)
		assert.True(t, at(day, "00:00").Equal(*res.Employee.LastTickAt))
	})

	t.Run("overnight shift is not ended after midnight", func(t *testing.T) {
		emp := newEmployee(employee.StatusActive)
		emp.Shift = employee.Shift{Start: employee.MustClockTime("22:00"), End: employee.MustClockTime("06:00")}
		emp.WorkDate = day

		res := TickShiftBoundary(emp, at(day, "02:00"), orgLoc)
		assert.Nil(t, res.Record)
		assert.Equal(t, employee.StatusActive, res.Employee.Status)

		res = TickShiftBoundary(emp, at(day, "06:00"), orgLoc)
		require.NotNil(t, res.Record)
		assert.Equal(t, employee.StatusOff, res.Employee.Status)
	})
}
