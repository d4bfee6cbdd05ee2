// Package clock abstracts time so handlers can be tested with a
// deterministic clock.
package clock

import "time"

// Clock supplies the timestamp for each event about to be published.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

// Now returns the current time in UTC.
func (System) Now() time.Time { return time.Now().UTC() }
