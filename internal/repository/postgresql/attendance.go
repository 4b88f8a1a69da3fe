package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/attendance"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const recordColumns = `id, employee_id, type, timestamp, COALESCE(project_id, ''), automatic, created_at`

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

// Append implements attendance.RecordRepository.
func (r *recordRepositoryImpl) Append(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO attendance_records (id, employee_id, type, timestamp, project_id, automatic)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Type, record.Timestamp, record.ProjectID, record.Automatic,
	).Scan(&record.CreatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to insert attendance record: %w", err)
	}
	return record, nil
}

// ListByEmployeeBetween implements attendance.RecordRepository.
func (r *recordRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp ASC, id ASC
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecords(rows)
}

// List implements attendance.RecordRepository.
func (r *recordRepositoryImpl) List(ctx context.Context, query attendance.RecordQuery) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if query.EmployeeID != "" {
		args = append(args, query.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if !query.From.IsZero() {
		args = append(args, query.From)
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", len(args)))
	}
	if !query.To.IsZero() {
		args = append(args, query.To)
		conditions = append(conditions, fmt.Sprintf("timestamp < $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_records `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	listQuery := `SELECT ` + recordColumns + ` FROM attendance_records ` + where + ` ORDER BY timestamp DESC, id DESC`
	if query.Limit > 0 {
		args = append(args, query.Limit)
		listQuery += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if query.Offset > 0 {
		args = append(args, query.Offset)
		listQuery += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	records := []attendance.Record{}
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Type, &rec.Timestamp, &rec.ProjectID, &rec.Automatic, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
