package utils

import (
	"time"

	"github.com/klokku/cashflow/pkg/calendar"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// Today is the calendar date of the clock's instant in loc.
func Today(clock Clock, loc *time.Location) calendar.Date {
	return calendar.DateOf(clock.Now().In(loc))
}
