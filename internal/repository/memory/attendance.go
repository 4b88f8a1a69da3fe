package memory

import (
	"context"
	"sort"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/attendance"
)

type recordRepositoryImpl struct {
	store *Store
}

func NewRecordRepository(store *Store) attendance.RecordRepository {
	return &recordRepositoryImpl{store: store}
}

func (r *recordRepositoryImpl) Append(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	err := r.store.write(ctx, func() error {
		if record.ID == "" {
			record.ID = newID()
		}
		record.CreatedAt = r.store.now()
		n := len(r.store.records)
		r.store.onRollback(ctx, func() { r.store.records = r.store.records[:n] })
		r.store.records = append(r.store.records, record)
		return nil
	})
	return record, err
}

func (r *recordRepositoryImpl) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	records := r.match(attendance.RecordQuery{EmployeeID: employeeID, From: from, To: to})
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

func (r *recordRepositoryImpl) List(ctx context.Context, query attendance.RecordQuery) ([]attendance.Record, int64, error) {
	records := r.match(query)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	total := int64(len(records))
	offset := max(query.Offset, 0)
	if offset >= len(records) {
		return []attendance.Record{}, total, nil
	}
	records = records[offset:]
	if query.Limit > 0 && query.Limit < len(records) {
		records = records[:query.Limit]
	}
	return records, total, nil
}

func (r *recordRepositoryImpl) match(query attendance.RecordQuery) []attendance.Record {
	var records []attendance.Record
	r.store.read(func() {
		for _, rec := range r.store.records {
			if query.EmployeeID != "" && rec.EmployeeID != query.EmployeeID {
				continue
			}
			if !query.From.IsZero() && rec.Timestamp.Before(query.From) {
				continue
			}
			if !query.To.IsZero() && !rec.Timestamp.Before(query.To) {
				continue
			}
			records = append(records, rec)
		}
	})
	return records
}
