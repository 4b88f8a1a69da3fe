package memory

import (
	"context"
	"sort"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/activity"
)

type activityLogRepositoryImpl struct {
	store *Store
}

func NewActivityLogRepository(store *Store) activity.ActivityLogRepository {
	return &activityLogRepositoryImpl{store: store}
}

func (r *activityLogRepositoryImpl) Create(ctx context.Context, log activity.DailyActivityLog) (activity.DailyActivityLog, error) {
	err := r.store.write(ctx, func() error {
		if log.ID == "" {
			log.ID = newID()
		}
		log.ProjectIDs = append([]string(nil), log.ProjectIDs...)
		log.SubmittedAt = r.store.now()
		n := len(r.store.activityLogs)
		r.store.onRollback(ctx, func() { r.store.activityLogs = r.store.activityLogs[:n] })
		r.store.activityLogs = append(r.store.activityLogs, log)
		return nil
	})
	return log, err
}

func (r *activityLogRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]activity.DailyActivityLog, error) {
	logs := []activity.DailyActivityLog{}
	r.store.read(func() {
		for _, l := range r.store.activityLogs {
			if l.EmployeeID != employeeID {
				continue
			}
			if !from.IsZero() && l.Date.Before(from) {
				continue
			}
			if !to.IsZero() && l.Date.After(to) {
				continue
			}
			logs = append(logs, l)
		}
	})
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Date.After(logs[j].Date) })
	return logs, nil
}
