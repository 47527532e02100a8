// Package timezone provides timezone utilities for the application.
//
// Usage:
//
//	timezone.Setup(cfg.App.Timezone)   // once, at startup
//	now := timezone.Now()              // current time in app timezone
//	today := timezone.Today()          // current calendar date, UTC midnight
//
// Reservation dates are calendar dates without a time of day. They are always
// represented as UTC midnight, and Today converts "now" in the configured
// timezone into that representation so "start in the past" checks follow the
// property's local calendar rather than the server clock.
package timezone
