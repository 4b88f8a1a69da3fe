package employee

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestRoster_IsSupervisorOf(t *testing.T) {
	r := NewRoster([]Employee{
		{ID: "A"},
		{ID: "B", SupervisorID: ptr("A")},
		{ID: "C", SupervisorID: ptr("B")},
	})

	assert.True(t, r.IsSupervisorOf("B", "C"))
	assert.True(t, r.IsSupervisorOf("A", "C"), "supervision is transitive")
	assert.False(t, r.IsSupervisorOf("C", "A"))
	assert.False(t, r.IsSupervisorOf("C", "C"), "no one supervises themselves")
	assert.False(t, r.IsSupervisorOf("", "C"))
	assert.False(t, r.IsSupervisorOf("A", "missing"))
}

func TestRoster_Cycle(t *testing.T) {
	r := NewRoster([]Employee{
		{ID: "X", SupervisorID: ptr("Y")},
		{ID: "Y", SupervisorID: ptr("X")},
	})

	assert.True(t, r.IsSupervisorOf("Y", "X"))
	assert.False(t, r.IsSupervisorOf("Z", "X"), "cyclic chain terminates")
}

func TestRoster_BrokenChain(t *testing.T) {
	r := NewRoster([]Employee{
		{ID: "C", SupervisorID: ptr("gone")},
	})

	assert.False(t, r.IsSupervisorOf("A", "C"))
	assert.True(t, r.IsSupervisorOf("gone", "C"), "the recorded supervisor still counts")
}

func TestRoster_Subordinates(t *testing.T) {
	r := NewRoster([]Employee{
		{ID: "A"},
		{ID: "B", SupervisorID: ptr("A")},
		{ID: "C", SupervisorID: ptr("B")},
		{ID: "D"},
	})

	var ids []string
	for _, e := range r.Subordinates("A") {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"B", "C"}, ids)
	assert.Empty(t, r.Subordinates("C"))
}
