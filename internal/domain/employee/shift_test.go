package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wall(clock string) time.Time {
	c := MustClockTime(clock)
	return time.Date(2026, 3, 2, int(c)/60, int(c)%60, 0, 0, time.UTC)
}

func TestParseClockTime(t *testing.T) {
	c, err := ParseClockTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(570), c)
	assert.Equal(t, "09:30", c.String())

	_, err = ParseClockTime("25:00")
	assert.ErrorIs(t, err, ErrInvalidClockTime)
}

func TestShift_DayShift(t *testing.T) {
	s, err := NewShift("09:00", "17:00")
	require.NoError(t, err)
	assert.False(t, s.Overnight())

	assert.False(t, s.StartPassed(wall("09:00")))
	assert.True(t, s.StartPassed(wall("09:01")))

	assert.False(t, s.EndReached(wall("16:59")))
	assert.True(t, s.EndReached(wall("17:00")))
	assert.True(t, s.EndReached(wall("23:00")))
}

func TestShift_Overnight(t *testing.T) {
	s, err := NewShift("22:00", "06:00")
	require.NoError(t, err)
	assert.True(t, s.Overnight())

	assert.False(t, s.EndReached(wall("23:30")))
	assert.False(t, s.EndReached(wall("03:00")))
	assert.True(t, s.EndReached(wall("06:00")))
	assert.True(t, s.EndReached(wall("12:00")))
	assert.False(t, s.EndReached(wall("22:00")))
}

func TestRole_Hierarchy(t *testing.T) {
	assert.True(t, RoleAdmin.Outranks(RoleTopManagement))
	assert.True(t, RoleDirector.AtLeast(RoleTeamLead))
	assert.True(t, RoleTeamLead.AtLeast(RoleTeamLead))
	assert.False(t, RoleEmployee.AtLeast(RoleTeamLead))
	assert.False(t, Role("INTERN").AtLeast(RoleEmployee))

	r, err := ParseRole(" team_lead ")
	require.NoError(t, err)
	assert.Equal(t, RoleTeamLead, r)

	_, err = ParseRole("boss")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
