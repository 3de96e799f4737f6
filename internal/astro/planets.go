package astro

import (
	"time"

	"github.com/mishcd/astrocusp/internal/zodiac"
)

// Position is one planet's approximate place in the zodiac at an instant.
type Position struct {
	Planet     string
	Sign       zodiac.Sign
	Degree     float64
	Retrograde bool
}

// Epoch anchors the linear longitude model. Base longitudes below are the
// hand-tuned values for this instant.
var Epoch = time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

// planetModel holds a planet's ecliptic longitude at Epoch and its linear
// daily drift. Longitude at any instant is wrap360(base + drift*days).
type planetModel struct {
	name  string
	base  float64 // degrees at Epoch
	drift float64 // degrees per day
}

// planetModels is ordered by distance from the sun; display order elsewhere
// follows this ordering.
var planetModels = []planetModel{
	{"Mercury", 122.0, 1.607},
	{"Venus", 62.3, 1.174},
	{"Mars", 155.4, 0.524},
	{"Jupiter", 95.2, 0.083},
	{"Saturn", 1.6, 0.034},
	{"Uranus", 59.8, 0.012},
	{"Neptune", 1.9, 0.006},
	{"Pluto", 302.8, 0.004},
	{"Chiron", 26.9, 0.008},
}

// retroWindow is a hand-authored [start, end] retrograde interval.
// These are published-ephemeris dates for product content, independent of
// the longitude drift model above; only the slow bodies carry windows, so
// Mercury, Venus, Mars, and Pluto are never flagged retrograde here.
type retroWindow struct {
	start time.Time
	end   time.Time
}

var retroWindows = map[string][]retroWindow{
	"Jupiter": {{date(2025, time.November, 11), date(2026, time.March, 10)}},
	"Saturn":  {{date(2025, time.July, 13), date(2025, time.November, 28)}},
	"Uranus":  {{date(2025, time.September, 6), date(2026, time.February, 4)}},
	"Neptune": {{date(2025, time.July, 4), date(2025, time.December, 10)}},
	"Chiron":  {{date(2025, time.July, 30), date(2025, time.December, 2)}},
}

// Model coverage. The retrograde tables and base longitudes are maintained
// for this interval; queries outside it (plus a caller-chosen grace) get a
// stale-model warning rather than silently plausible output.
var (
	ModelStart = date(2025, time.June, 1)
	ModelEnd   = date(2026, time.March, 31)
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Planets returns the tracked planet names in display order.
func Planets() []string {
	names := make([]string, len(planetModels))
	for i, m := range planetModels {
		names[i] = m.name
	}
	return names
}

// LongitudeAt returns the modeled ecliptic longitude of a planet at t.
func LongitudeAt(planet string, t time.Time) (float64, bool) {
	for _, m := range planetModels {
		if m.name == planet {
			return Wrap360(m.base + m.drift*DaysSince(Epoch, t)), true
		}
	}
	return 0, false
}

// IsRetrograde reports whether the planet's hand-authored retrograde
// windows cover t.
func IsRetrograde(planet string, t time.Time) bool {
	for _, w := range retroWindows[planet] {
		if !t.Before(w.start) && !t.After(w.end) {
			return true
		}
	}
	return false
}

// CurrentPositions evaluates every tracked planet at t. The longitude math
// is hemisphere-independent; callers order or filter for display.
func CurrentPositions(t time.Time) []Position {
	positions := make([]Position, 0, len(planetModels))
	for _, m := range planetModels {
		lon := Wrap360(m.base + m.drift*DaysSince(Epoch, t))
		sign, degree := zodiac.SignForLongitude(lon)
		positions = append(positions, Position{
			Planet:     m.name,
			Sign:       sign,
			Degree:     degree,
			Retrograde: IsRetrograde(m.name, t),
		})
	}
	return positions
}

// ModelCovers reports whether t falls inside the maintained model window,
// widened by graceDays on both ends.
func ModelCovers(t time.Time, graceDays int) bool {
	grace := time.Duration(graceDays) * 24 * time.Hour
	return !t.Before(ModelStart.Add(-grace)) && !t.After(ModelEnd.Add(grace))
}

// Station is a retrograde or direct station date for one planet.
type Station struct {
	Planet string
	Direct bool // false: stations retrograde; true: stations direct
	Date   time.Time
}

// StationsBetween returns the station dates falling inside [from, to],
// drawn from the static retrograde tables.
func StationsBetween(from, to time.Time) []Station {
	var stations []Station
	for _, m := range planetModels {
		for _, w := range retroWindows[m.name] {
			if !w.start.Before(from) && !w.start.After(to) {
				stations = append(stations, Station{Planet: m.name, Direct: false, Date: w.start})
			}
			if !w.end.Before(from) && !w.end.After(to) {
				stations = append(stations, Station{Planet: m.name, Direct: true, Date: w.end})
			}
		}
	}
	return stations
}

// Ingress is a planet's first sign change inside a scan window.
type Ingress struct {
	Planet string
	From   zodiac.Sign
	To     zodiac.Sign
	Date   time.Time
}

// IngressesBetween scans the longitude model day by day and reports each
// planet's first ingress inside [from, to], if any.
func IngressesBetween(from, to time.Time) []Ingress {
	var ingresses []Ingress
	for _, m := range planetModels {
		prevLon := Wrap360(m.base + m.drift*DaysSince(Epoch, from))
		prevSign, _ := zodiac.SignForLongitude(prevLon)
		for d := from.Add(24 * time.Hour); !d.After(to); d = d.Add(24 * time.Hour) {
			lon := Wrap360(m.base + m.drift*DaysSince(Epoch, d))
			sign, _ := zodiac.SignForLongitude(lon)
			if sign != prevSign {
				ingresses = append(ingresses, Ingress{Planet: m.name, From: prevSign, To: sign, Date: d})
				break
			}
			prevSign = sign
		}
	}
	return ingresses
}
