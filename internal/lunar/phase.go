package lunar

import (
	"math"
	"time"
)

// The eight named phases.
const (
	PhaseNew            = "New Moon"
	PhaseWaxingCrescent = "Waxing Crescent"
	PhaseFirstQuarter   = "First Quarter"
	PhaseWaxingGibbous  = "Waxing Gibbous"
	PhaseFull           = "Full Moon"
	PhaseWaningGibbous  = "Waning Gibbous"
	PhaseLastQuarter    = "Last Quarter"
	PhaseWaningCrescent = "Waning Crescent"
)

// quarterTolerance snaps a fraction within ~1.25% of the cycle to the named
// quarter phase.
const quarterTolerance = 0.0125

// crossingTolerance is the near-miss band for the hour-by-hour quarter
// search. The moon moves ~0.0014 of the cycle per hour, so 0.005 guarantees
// a hit near each quarter.
const crossingTolerance = 0.005

// searchLimitHours bounds the next-quarter search to 35 days.
const searchLimitHours = 35 * 24

// quarter targets in cycle order.
var quarterFractions = [4]float64{0, 0.25, 0.5, 0.75}
var quarterNames = [4]string{PhaseNew, PhaseFirstQuarter, PhaseFull, PhaseLastQuarter}

// MoonPhase is the current lunar state plus the next quarter phase.
type MoonPhase struct {
	PhaseName           string
	IlluminationPercent int
	NextPhaseName       string
	NextPhaseDate       time.Time
}

// PhaseName classifies a phase fraction in [0,1) into one of the eight named
// phases. Fractions within quarterTolerance of a quarter point (including the
// 1.0→0.0 wrap at the new moon) snap to that quarter's name.
func PhaseName(fraction float64) string {
	f := math.Mod(fraction, 1)
	if f < 0 {
		f += 1
	}

	for i, q := range quarterFractions {
		d := math.Abs(f - q)
		if q == 0 && f > 0.5 {
			d = 1 - f // wrap distance to the new moon
		}
		if d <= quarterTolerance {
			return quarterNames[i]
		}
	}

	switch {
	case f < 0.25:
		return PhaseWaxingCrescent
	case f < 0.5:
		return PhaseWaxingGibbous
	case f < 0.75:
		return PhaseWaningGibbous
	default:
		return PhaseWaningCrescent
	}
}

// Current evaluates the moon at t, including the next quarter phase.
func Current(src PhaseSource, t time.Time) MoonPhase {
	name, at := NextMajorPhase(src, t)
	return MoonPhase{
		PhaseName:           PhaseName(src.PhaseFraction(t)),
		IlluminationPercent: int(math.Round(src.Illumination(t) * 100)),
		NextPhaseName:       name,
		NextPhaseDate:       at,
	}
}

// NextMajorPhase advances hour by hour from t and reports the first instant
// the phase fraction crosses (or comes within crossingTolerance of) one of
// the four quarter targets, handling the wrap back to zero at the new moon.
// If the bounded search finds nothing — which the cycle length makes
// practically impossible — it falls back to a "full moon in 14 days"
// estimate rather than failing.
func NextMajorPhase(src PhaseSource, t time.Time) (string, time.Time) {
	prev := src.PhaseFraction(t)
	for i := 1; i <= searchLimitHours; i++ {
		at := t.Add(time.Duration(i) * time.Hour)
		cur := src.PhaseFraction(at)

		for qi, q := range quarterFractions {
			if crossed(prev, cur, q) || math.Abs(cur-q) <= crossingTolerance {
				return quarterNames[qi], at
			}
		}
		prev = cur
	}

	return PhaseFull, t.Add(14 * 24 * time.Hour)
}

// crossed reports whether the fraction passed target q between prev and cur.
// The new moon target wraps: a fraction near 1.0 dropping to near 0.0 counts
// as crossing zero.
func crossed(prev, cur, q float64) bool {
	if q == 0 {
		return prev > 0.5 && cur < 0.5 && cur < prev
	}
	return prev < q && cur >= q
}
