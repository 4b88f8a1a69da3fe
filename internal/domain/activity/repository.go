package activity

import (
	"context"
	"time"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, log DailyActivityLog) (DailyActivityLog, error)
	// ListByEmployee returns logs with from <= date <= to, newest first. Zero bounds are open.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]DailyActivityLog, error)
}
