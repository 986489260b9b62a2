package clock

import (
	"sync"
	"time"

	"github.com/spectrumpath/aba-scheduler/internal/timezone"
)

// Clock is the time source injected into the scheduling core. It keeps the
// "now" marker and date seeding testable.
type Clock interface {
	Now() time.Time
}

// System returns wall-clock time in the practice timezone.
type System struct {
	TZ string
}

func (s System) Now() time.Time {
	tz := s.TZ
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	return timezone.NowIn(tz)
}

// Manual is a controllable clock for tests.
type Manual struct {
	mu      sync.Mutex
	current time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{current: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.current = t
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	m.current = m.current.Add(d)
	updated := m.current
	m.mu.Unlock()
	return updated
}
