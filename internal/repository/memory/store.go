package memory

import (
	"context"
	"sync"
	"time"

	"github.com/chronosforce/chronos-backend-go/internal/domain/activity"
	"github.com/chronosforce/chronos-backend-go/internal/domain/attendance"
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/domain/leave"
	"github.com/chronosforce/chronos-backend-go/internal/domain/project"
	"github.com/google/uuid"
)

type txKey struct{}

// Store owns every collection of the in-process driver. Writers are serialized by
// writeMu; a transaction holds it for its whole duration.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex

	employees     map[string]employee.Employee
	projects      map[string]project.Project
	records       []attendance.Record
	leaveRequests map[string]leave.LeaveRequest
	activityLogs  []activity.DailyActivityLog

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees:     make(map[string]employee.Employee),
		projects:      make(map[string]project.Project),
		leaveRequests: make(map[string]leave.LeaveRequest),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithinTx implements database.Transactor. Changes made by fn are undone when it
// returns an error or panics. Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx := &txLog{}
	defer func() {
		if p := recover(); p != nil {
			s.rollback(tx)
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		s.rollback(tx)
		return err
	}
	return nil
}

// txLog holds the undo steps of one transaction in the order they were recorded.
type txLog struct {
	undo []func()
}

func txFrom(ctx context.Context) *txLog {
	tx, _ := ctx.Value(txKey{}).(*txLog)
	return tx
}

// onRollback registers an undo step for the transaction in ctx. Outside a transaction
// writes are final and fn is dropped. Callers hold the data lock.
func (s *Store) onRollback(ctx context.Context, fn func()) {
	if tx := txFrom(ctx); tx != nil {
		tx.undo = append(tx.undo, fn)
	}
}

func (s *Store) rollback(tx *txLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
}

// write runs fn under the data lock, taking the writer lock unless ctx is inside a transaction.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if txFrom(ctx) == nil {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func cloneEmployee(e employee.Employee) employee.Employee {
	e.AllowedProjectIDs = append([]string(nil), e.AllowedProjectIDs...)
	return e
}
