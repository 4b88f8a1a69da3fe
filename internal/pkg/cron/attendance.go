package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/attendance"
)

const JobShiftBoundaryTick = "shift_boundary_tick"

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	interval          time.Duration
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, interval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		interval:          interval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(JobShiftBoundaryTick, j.interval, j.TickShiftBoundaries)
}

// TickShiftBoundaries forces clock-outs at shift end and accrues worked minutes.
func (j *AttendanceJobs) TickShiftBoundaries(ctx context.Context) error {
	summary, err := j.attendanceService.TickShiftBoundaries(ctx)
	if err != nil {
		return fmt.Errorf("shift boundary tick: %w", err)
	}

	if summary.ForcedOff > 0 || summary.Failed > 0 || summary.DaysRolled > 0 {
		slog.Info("Cron: shift boundary tick",
			"checked", summary.Checked,
			"forced_off", summary.ForcedOff,
			"days_rolled", summary.DaysRolled,
			"minutes_added", summary.MinutesAdded,
			"failed", summary.Failed)
	}
	return nil
}
