// Package clock supplies the logical time source for all date-sensitive
// business rules. Core packages never read time.Now() directly; they take a
// Clock so tests can simulate time passage.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current logical date and time.
type Clock interface {
	// Now returns the current logical instant.
	Now() time.Time
	// Today returns the current logical date truncated to UTC midnight.
	Today() time.Time
}

// Real is a Clock backed by wall-clock time.
type Real struct{}

// NewReal returns a wall-clock backed Clock.
func NewReal() *Real {
	return &Real{}
}

func (r *Real) Now() time.Time {
	return time.Now().UTC()
}

func (r *Real) Today() time.Time {
	return midnight(time.Now().UTC())
}

// Adjustable is a mutable Clock for tests and simulations. It is safe for
// concurrent use.
type Adjustable struct {
	mu  sync.RWMutex
	now time.Time
}

// NewAdjustable returns an Adjustable frozen at the given instant.
func NewAdjustable(at time.Time) *Adjustable {
	return &Adjustable{now: at.UTC()}
}

func (a *Adjustable) Now() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.now
}

func (a *Adjustable) Today() time.Time {
	return midnight(a.Now())
}

// Advance moves the logical clock forward by d.
func (a *Adjustable) Advance(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.now = a.now.Add(d)
}

// AdvanceDays moves the logical clock forward by whole days.
func (a *Adjustable) AdvanceDays(days int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.now = a.now.AddDate(0, 0, days)
}

// Set pins the logical clock to a specific instant.
func (a *Adjustable) Set(t time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.now = t.UTC()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
