package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "Asia/Manila"

var current atomic.Value

func init() {
	current.Store(Location(DefaultTimezone))
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC when the zone database
// is unavailable.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// SetDefault changes the zone Now reports in. Invalid names are ignored.
func SetDefault(tz string) bool {
	if !IsValid(tz) {
		return false
	}
	current.Store(Location(tz))
	return true
}

func Now() time.Time {
	return time.Now().In(current.Load().(*time.Location))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
