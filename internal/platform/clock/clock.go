package clock

import "time"

// System is the server clock. Times are returned in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}
