package attendance

import (
	"testing"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
)

func TestTolerantPolicy_AcceptsEverything(t *testing.T) {
	p := NewTransitionPolicy(false)
	for _, current := range []employee.Status{employee.StatusActive, employee.StatusBreak, employee.StatusOff, employee.StatusLeave} {
		for _, requested := range []employee.Status{employee.StatusActive, employee.StatusBreak, employee.StatusOff, employee.StatusLeave} {
			assert.NoError(t, p.Check(newEmployee(current), requested, ""), "%s -> %s", current, requested)
		}
	}
}

func TestStrictPolicy(t *testing.T) {
	p := NewTransitionPolicy(true)

	tests := []struct {
		name      string
		current   employee.Status
		requested employee.Status
		projectID string
		wantErr   error
	}{
		{"clock in", employee.StatusOff, employee.StatusActive, "", nil},
		{"clock out while off", employee.StatusOff, employee.StatusOff, "", ErrNotClockedIn},
		{"break while off", employee.StatusOff, employee.StatusBreak, "", ErrNotClockedIn},
		{"break twice", employee.StatusBreak, employee.StatusBreak, "", ErrAlreadyInStatus},
		{"break from active", employee.StatusActive, employee.StatusBreak, "", nil},
		{"resume from break", employee.StatusBreak, employee.StatusActive, "", nil},
		{"project change to new project", employee.StatusActive, employee.StatusActive, "p2", nil},
		{"project change to same project", employee.StatusActive, employee.StatusActive, "p1", ErrNoProjectChanged},
		{"project change without project", employee.StatusActive, employee.StatusActive, "", ErrNoProjectChanged},
		{"leave requested by hand", employee.StatusActive, employee.StatusLeave, "", ErrAlreadyInStatus},
		{"clock in while on leave", employee.StatusLeave, employee.StatusActive, "", ErrOnLeave},
		{"clock out while on leave", employee.StatusLeave, employee.StatusOff, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Check(newEmployee(tt.current), tt.requested, tt.projectID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
