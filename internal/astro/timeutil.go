// Package astro implements the calendar-based zodiac resolvers and the
// linear-drift planetary position model. Everything here is deterministic
// calendar arithmetic, not a real ephemeris; the approximations match the
// published product behavior and must not be "corrected" casually.
package astro

import (
	"math"
	"time"
)

// Wrap360 normalizes a longitude in degrees to [0, 360).
func Wrap360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// DaysSince returns fractional days elapsed from epoch to t (negative if t
// precedes epoch).
func DaysSince(epoch, t time.Time) float64 {
	return t.Sub(epoch).Hours() / 24
}

// DayOfYear returns the 1-based day of year for the given date.
func DayOfYear(year int, month time.Month, day int) int {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).YearDay()
}

// ValidDate reports whether year/month/day denote a real calendar date.
// time.Date normalizes out-of-range values (Feb 30 becomes Mar 2), so a
// round-trip comparison catches them.
func ValidDate(year int, month time.Month, day int) bool {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return y == year && m == month && d == day
}
