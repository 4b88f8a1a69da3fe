package employee

import (
	"fmt"
	"time"
)

// ClockTime is a wall-clock time of day in minutes after midnight, without a date or zone.
type ClockTime int

const minutesPerDay = 24 * 60

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// MustClockTime is ParseClockTime for literals known to be valid.
func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf returns the wall-clock minute of t in t's own location.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c ClockTime) IsValid() bool {
	return c >= 0 && c < minutesPerDay
}

// On anchors c to the calendar day of t, in t's location.
func (c ClockTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), int(c)/60, int(c)%60, 0, 0, t.Location())
}

type Shift struct {
	Start ClockTime
	End   ClockTime
}

func NewShift(start, end string) (Shift, error) {
	s, err := ParseClockTime(start)
	if err != nil {
		return Shift{}, err
	}
	e, err := ParseClockTime(end)
	if err != nil {
		return Shift{}, err
	}
	return Shift{Start: s, End: e}, nil
}

// Overnight reports a shift whose end falls on the next calendar day.
func (s Shift) Overnight() bool {
	return s.End <= s.Start
}

// StartPassed reports whether wall-clock now is already past the shift start.
func (s Shift) StartPassed(now time.Time) bool {
	return ClockOf(now) > s.Start
}

// EndReached reports whether wall-clock now is at or past the shift end.
// For overnight shifts the window between end and the next start counts as past the end.
func (s Shift) EndReached(now time.Time) bool {
	c := ClockOf(now)
	if s.Overnight() {
		return c >= s.End && c < s.Start
	}
	return c >= s.End
}
