package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/activity"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type activityLogRepositoryImpl struct {
	db *database.DB
}

func NewActivityLogRepository(db *database.DB) activity.ActivityLogRepository {
	return &activityLogRepositoryImpl{db: db}
}

// Create implements activity.ActivityLogRepository.
func (r *activityLogRepositoryImpl) Create(ctx context.Context, log activity.DailyActivityLog) (activity.DailyActivityLog, error) {
	q := GetQuerier(ctx, r.db)

	if log.ID == "" {
		log.ID = uuid.Must(uuid.NewV7()).String()
	}
	projectIDs := log.ProjectIDs
	if projectIDs == nil {
		projectIDs = []string{}
	}

	query := `
		INSERT INTO daily_activity_logs (id, employee_id, date, start_time, end_time, overtime_hours, project_ids, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING submitted_at
	`
	err := q.QueryRow(ctx, query,
		log.ID, log.EmployeeID, log.Date, log.StartTime, log.EndTime, log.OvertimeHours, projectIDs, log.Note,
	).Scan(&log.SubmittedAt)
	if err != nil {
		return activity.DailyActivityLog{}, fmt.Errorf("failed to insert activity log: %w", err)
	}
	return log, nil
}

// ListByEmployee implements activity.ActivityLogRepository.
func (r *activityLogRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]activity.DailyActivityLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, start_time, end_time, overtime_hours, project_ids, note, submitted_at
		FROM daily_activity_logs
		WHERE employee_id = $1
			AND ($2::date IS NULL OR date >= $2)
			AND ($3::date IS NULL OR date <= $3)
		ORDER BY date DESC, submitted_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, nullableDate(from), nullableDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []activity.DailyActivityLog{}
	for rows.Next() {
		var l activity.DailyActivityLog
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.Date, &l.StartTime, &l.EndTime, &l.OvertimeHours, &l.ProjectIDs, &l.Note, &l.SubmittedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
