package attendance

import (
	"context"
	"time"
)

// RecordQuery selects records of one employee within [From, To). Zero bounds are open.
type RecordQuery struct {
	EmployeeID string
	From       time.Time
	To         time.Time
	Offset     int
	Limit      int
}

// RecordRepository is the append-only attendance event log.
type RecordRepository interface {
	Append(ctx context.Context, record Record) (Record, error)

	// ListByEmployeeBetween returns the employee's records with from <= timestamp < to, oldest first.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// List pages through matching records, newest first, and returns the total match count.
	List(ctx context.Context, query RecordQuery) ([]Record, int64, error)
}
