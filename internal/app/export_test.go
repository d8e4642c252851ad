package app

import "time"

// WithClock replaces the clock used for build records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}
