package leave

import (
	"testing"

	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestVisibility(t *testing.T) {
	roster := employee.NewRoster([]employee.Employee{
		{ID: "dir", Role: employee.RoleDirector},
		{ID: "sup", Role: employee.RoleSupervisor, SupervisorID: strPtr("dir")},
		{ID: "lead", Role: employee.RoleTeamLead, SupervisorID: strPtr("sup")},
		{ID: "e1", Role: employee.RoleEmployee, SupervisorID: strPtr("lead")},
		{ID: "e2", Role: employee.RoleEmployee},
	})
	v := Visibility{RootID: "root", Roster: roster}

	requests := []LeaveRequest{
		{ID: "r1", EmployeeID: "e1"},
		{ID: "r2", EmployeeID: "e2"},
		{ID: "r3", EmployeeID: "lead"},
	}

	ids := func(rs []LeaveRequest) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"r1", "r2", "r3"}, ids(v.Filter("root", requests)))
	assert.Equal(t, []string{"r1", "r3"}, ids(v.Filter("dir", requests)))
	assert.Equal(t, []string{"r1"}, ids(v.Filter("lead", requests)))
	assert.Empty(t, v.Filter("e1", requests), "requests are not visible to their owner through the hierarchy")
	assert.Empty(t, v.Filter("", requests))
}
