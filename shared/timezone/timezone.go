package timezone

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	locMu       sync.RWMutex
	appLocation *time.Location
	clock       = time.Now
)

// Setup loads the named IANA location as the application timezone. An empty
// or unknown name falls back to UTC.
func Setup(name string) {
	loc := time.UTC

	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
	} else {
		loaded, err := time.LoadLocation(name)
		if err != nil {
			log.Error().
				Err(err).
				Str("timezone", name).
				Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Europe/Lisbon', 'UTC'")
		} else {
			loc = loaded
		}
	}

	locMu.Lock()
	appLocation = loc
	locMu.Unlock()

	log.Info().Str("location", loc.String()).Msg("Application timezone initialized")
}

// SetClock replaces the time source and returns a function restoring the previous one.
func SetClock(now func() time.Time) (restore func()) {
	locMu.Lock()
	previous := clock
	clock = now
	locMu.Unlock()

	return func() {
		locMu.Lock()
		clock = previous
		locMu.Unlock()
	}
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	locMu.RLock()
	defer locMu.RUnlock()

	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Now returns the current time in the application timezone
func Now() time.Time {
	locMu.RLock()
	now := clock
	locMu.RUnlock()

	return now().In(GetLocation())
}

// Today returns the current calendar date of the application timezone as UTC midnight,
// the same representation used for reservation dates.
func Today() time.Time {
	now := Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
