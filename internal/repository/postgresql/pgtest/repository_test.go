package pgtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/attendance"
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/domain/leave"
	"github.com/chronosforce/chronos-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestData(t *testing.T) (*TestDatabaseSetup, employee.Employee) {
	t.Helper()
	ctx := context.Background()

	setup := NewTestDatabase(t)
	require.NoError(t, setup.TruncateAllTables(ctx))

	emp, err := postgresql.NewEmployeeRepository(setup.DB).Create(ctx, employee.Employee{
		ID:                "e1",
		Code:              "E-001",
		Name:              "Ada Park",
		Email:             "ada@example.com",
		Role:              employee.RoleEmployee,
		Shift:             employee.Shift{Start: employee.MustClockTime("09:00"), End: employee.MustClockTime("17:00")},
		AllowedProjectIDs: []string{"p1"},
		Status:            employee.StatusOff,
	})
	require.NoError(t, err)
	return setup, emp
}

func TestEmployeeRepository_RoundTripsAttendanceState(t *testing.T) {
	setup, emp := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	now := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	emp.Status = employee.StatusActive
	emp.ActiveProjectID = "p1"
	emp.LastActionTime = &now
	emp.LastTickAt = &now
	emp.TotalMinutesWorkedToday = 42
	emp.WorkDate = "2026-03-02"
	require.NoError(t, repo.UpdateAttendanceState(ctx, emp))

	got, err := repo.GetByName(ctx, "ADA PARK")
	require.NoError(t, err)
	assert.Equal(t, employee.StatusActive, got.Status)
	assert.Equal(t, "p1", got.ActiveProjectID)
	assert.Equal(t, 42, got.TotalMinutesWorkedToday)
	assert.Equal(t, "2026-03-02", got.WorkDate)
	assert.Equal(t, "09:00", got.Shift.Start.String())
	assert.Equal(t, []string{"p1"}, got.AllowedProjectIDs)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRecordRepository_ListsWithinRange(t *testing.T) {
	setup, emp := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewRecordRepository(setup.DB)

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i, typ := range []attendance.RecordType{attendance.RecordClockIn, attendance.RecordBreakStart, attendance.RecordBreakEnd} {
		_, err := repo.Append(ctx, attendance.Record{
			EmployeeID: emp.ID,
			Type:       typ,
			Timestamp:  base.Add(time.Duration(i) * time.Hour),
			ProjectID:  "p1",
		})
		require.NoError(t, err)
	}

	records, err := repo.ListByEmployeeBetween(ctx, emp.ID, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, attendance.RecordClockIn, records[0].Type)
	assert.Equal(t, attendance.RecordBreakStart, records[1].Type)

	page, total, err := repo.List(ctx, attendance.RecordQuery{EmployeeID: emp.ID, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, attendance.RecordBreakEnd, page[0].Type)
}

func TestLeaveRequestRepository_UpdateDecisionRejectsStaleVersion(t *testing.T) {
	setup, emp := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(setup.DB)

	created, err := repo.Create(ctx, leave.LeaveRequest{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.Name,
		StartDate:        time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		Reason:           "family",
		TeamLeadStatus:   leave.StatusPending,
		SupervisorStatus: leave.StatusPending,
		DirectorStatus:   leave.StatusPending,
		FinalStatus:      leave.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)

	created.TeamLeadStatus = leave.StatusApproved
	updated, err := repo.UpdateDecision(ctx, created, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, leave.StatusApproved, updated.TeamLeadStatus)

	_, err = repo.UpdateDecision(ctx, created, 1)
	assert.True(t, errors.Is(err, leave.ErrVersionConflict))

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.UpdateDecision(ctx, created, 2)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setup, emp := setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	records := postgresql.NewRecordRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	boom := errors.New("boom")
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := repo.UpdateOvertime(ctx, emp.ID, true); err != nil {
			return err
		}
		if _, err := records.Append(ctx, attendance.Record{
			EmployeeID: emp.ID,
			Type:       attendance.RecordClockIn,
			Timestamp:  time.Now(),
		}); err != nil {
			return err
		}
		active := emp
		active.Status = employee.StatusActive
		if err := repo.UpdateAttendanceState(ctx, active); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, got.OTEnabled)
	assert.Equal(t, employee.StatusOff, got.Status)

	_, total, err := records.List(ctx, attendance.RecordQuery{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Zero(t, total)
}
