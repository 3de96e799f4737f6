// Package lunar classifies the moon's phase and finds upcoming quarter
// phases. The raw phase-fraction computation is a collaborator behind the
// PhaseSource interface; the bundled implementation is a low-precision
// synodic-cycle ephemeris, good to a few hours, which is all the product
// surface needs.
package lunar

import (
	"math"
	"time"
)

// PhaseSource supplies the continuous lunar phase for an instant.
type PhaseSource interface {
	// PhaseFraction returns the position in the synodic cycle in [0,1),
	// where 0 is the new moon and 0.5 the full moon.
	PhaseFraction(t time.Time) float64
	// Illumination returns the illuminated fraction of the disc in [0,1].
	Illumination(t time.Time) float64
}

// Ephemeris is the bundled PhaseSource: a mean synodic month anchored at a
// reference new moon. Any correct lunar ephemeris can replace it.
type Ephemeris struct{}

// synodicMonth is the mean length of the lunation cycle in days.
const synodicMonth = 29.530588853

// refNewMoon is the new moon of 2000-01-06 18:14 UTC (JD 2451550.26).
var refNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// PhaseFraction implements PhaseSource.
func (Ephemeris) PhaseFraction(t time.Time) float64 {
	days := t.Sub(refNewMoon).Hours() / 24
	frac := math.Mod(days/synodicMonth, 1)
	if frac < 0 {
		frac += 1
	}
	return frac
}

// Illumination implements PhaseSource. The illuminated fraction follows the
// phase angle: 0 at new moon, 1 at full.
func (e Ephemeris) Illumination(t time.Time) float64 {
	return (1 - math.Cos(2*math.Pi*e.PhaseFraction(t))) / 2
}
