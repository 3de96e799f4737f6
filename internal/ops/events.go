package ops

import (
	"fmt"
	"sort"
	"time"

	"github.com/mishcd/astrocusp/internal/astro"
	"github.com/mishcd/astrocusp/internal/config"
	"github.com/mishcd/astrocusp/internal/lunar"
	"github.com/mishcd/astrocusp/internal/zodiac"
)

// Event kinds.
const (
	KindMoon          = "moon"
	KindPlanet        = "planet"
	KindMeteor        = "meteor"
	KindSolstice      = "solstice"
	KindEquinox       = "equinox"
	KindConjunction   = "conjunction"
	KindComet         = "comet"
	KindConstellation = "constellation"
)

// EventsInput contains parameters for the Events operation.
type EventsInput struct {
	Hemisphere string
	// WindowDays overrides the configured lookahead; 0 uses config (45 by
	// default).
	WindowDays int

	Clock  Clock
	Source lunar.PhaseSource
}

// Event is one upcoming sky event.
type Event struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Date            string `json:"date"` // YYYY-MM-DD
	HemisphereScope string `json:"hemisphere_scope"`
	Kind            string `json:"kind"`
}

// EventsOutput contains the result of the Events operation.
type EventsOutput struct {
	Hemisphere string  `json:"hemisphere"`
	WindowDays int     `json:"window_days"`
	Events     []Event `json:"events"`
}

// Events composes the upcoming-events window: lunar quarters, solstice and
// equinox markers, planetary ingresses, retrograde stations, seasonal meteor
// showers, and the evergreen seasonal constellation highlight — filtered to
// the window, sorted by date, de-duplicated by (name, date).
func Events(cfg *config.Config, input EventsInput) (*EventsOutput, error) {
	hemisphere, err := resolveHemisphere(input.Hemisphere, cfg)
	if err != nil {
		return nil, err
	}

	windowDays := input.WindowDays
	if windowDays == 0 {
		if cfg != nil && cfg.EventWindowDays > 0 {
			windowDays = cfg.EventWindowDays
		} else {
			windowDays = 45
		}
	}

	src := input.Source
	if src == nil {
		src = lunar.Ephemeris{}
	}

	from := now(input.Clock)
	to := from.Add(time.Duration(windowDays) * 24 * time.Hour)

	var events []Event
	events = append(events, lunarQuarterEvents(src, from)...)
	events = append(events, seasonMarkerEvents(from.Year(), hemisphere)...)
	events = append(events, ingressEvents(from, to)...)
	events = append(events, stationEvents(from, to)...)
	events = append(events, meteorShowerEvents(from.Year())...)
	events = append(events, constellationHighlight(from, hemisphere))

	filtered := events[:0]
	seen := make(map[string]bool)
	for _, e := range events {
		d, err := time.Parse("2006-01-02", e.Date)
		if err != nil || d.Before(from.Add(-24*time.Hour)) || d.After(to) {
			continue
		}
		if e.HemisphereScope != "Both" && e.HemisphereScope != string(hemisphere) {
			continue
		}
		key := e.Name + "|" + e.Date
		if seen[key] {
			continue
		}
		seen[key] = true
		filtered = append(filtered, e)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date < filtered[j].Date
	})

	return &EventsOutput{
		Hemisphere: string(hemisphere),
		WindowDays: windowDays,
		Events:     filtered,
	}, nil
}

// lunarQuarterEvents walks forward through the next four quarter phases.
func lunarQuarterEvents(src lunar.PhaseSource, from time.Time) []Event {
	events := make([]Event, 0, 4)
	at := from
	for i := 0; i < 4; i++ {
		name, phaseAt := lunar.NextMajorPhase(src, at)
		events = append(events, Event{
			Name:            name,
			Description:     fmt.Sprintf("The moon reaches its %s.", name),
			Date:            phaseAt.UTC().Format("2006-01-02"),
			HemisphereScope: "Both",
			Kind:            KindMoon,
		})
		// Step past the found quarter so the next search finds the next one.
		at = phaseAt.Add(36 * time.Hour)
	}
	return events
}

// seasonMarker is an approximate yearly solstice/equinox date with its
// hemisphere-dependent names.
type seasonMarker struct {
	month        time.Month
	day          int
	kind         string
	northernName string
	southernName string
}

var seasonMarkers = []seasonMarker{
	{time.March, 20, KindEquinox, "Spring Equinox", "Autumn Equinox"},
	{time.June, 21, KindSolstice, "Summer Solstice", "Winter Solstice"},
	{time.September, 22, KindEquinox, "Autumn Equinox", "Spring Equinox"},
	{time.December, 21, KindSolstice, "Winter Solstice", "Summer Solstice"},
}

// seasonMarkerEvents emits this year's and next year's markers, relabeled
// for the hemisphere; window filtering trims the excess.
func seasonMarkerEvents(year int, hemisphere zodiac.Hemisphere) []Event {
	var events []Event
	for _, y := range []int{year, year + 1} {
		for _, m := range seasonMarkers {
			name := m.northernName
			if hemisphere == zodiac.Southern {
				name = m.southernName
			}
			events = append(events, Event{
				Name:            name,
				Description:     fmt.Sprintf("The sun crosses its %s marker.", m.kind),
				Date:            fmt.Sprintf("%04d-%02d-%02d", y, int(m.month), m.day),
				HemisphereScope: "Both",
				Kind:            m.kind,
			})
		}
	}
	return events
}

func ingressEvents(from, to time.Time) []Event {
	var events []Event
	for _, in := range astro.IngressesBetween(from, to) {
		events = append(events, Event{
			Name:            fmt.Sprintf("%s enters %s", in.Planet, in.To),
			Description:     fmt.Sprintf("%s moves from %s into %s.", in.Planet, in.From, in.To),
			Date:            in.Date.UTC().Format("2006-01-02"),
			HemisphereScope: "Both",
			Kind:            KindPlanet,
		})
	}
	return events
}

func stationEvents(from, to time.Time) []Event {
	var events []Event
	for _, s := range astro.StationsBetween(from, to) {
		name := fmt.Sprintf("%s stations retrograde", s.Planet)
		desc := fmt.Sprintf("%s begins its retrograde period.", s.Planet)
		if s.Direct {
			name = fmt.Sprintf("%s stations direct", s.Planet)
			desc = fmt.Sprintf("%s ends its retrograde period.", s.Planet)
		}
		events = append(events, Event{
			Name:            name,
			Description:     desc,
			Date:            s.Date.UTC().Format("2006-01-02"),
			HemisphereScope: "Both",
			Kind:            KindPlanet,
		})
	}
	return events
}

// meteorShower is an annual shower peak.
type meteorShower struct {
	month time.Month
	day   int
	name  string
	scope string
}

var meteorShowers = []meteorShower{
	{time.January, 3, "Quadrantid Meteor Shower", "Northern"},
	{time.April, 22, "Lyrid Meteor Shower", "Both"},
	{time.May, 6, "Eta Aquariid Meteor Shower", "Southern"},
	{time.August, 12, "Perseid Meteor Shower", "Northern"},
	{time.October, 21, "Orionid Meteor Shower", "Both"},
	{time.December, 14, "Geminid Meteor Shower", "Both"},
}

func meteorShowerEvents(year int) []Event {
	var events []Event
	for _, y := range []int{year, year + 1} {
		for _, s := range meteorShowers {
			events = append(events, Event{
				Name:            s.name,
				Description:     fmt.Sprintf("The %s peaks tonight.", s.name),
				Date:            fmt.Sprintf("%04d-%02d-%02d", y, int(s.month), s.day),
				HemisphereScope: s.scope,
				Kind:            KindMeteor,
			})
		}
	}
	return events
}

// seasonalConstellations maps a quarter of the year to its marquee
// constellation per hemisphere.
var seasonalConstellations = map[zodiac.Hemisphere][4]string{
	zodiac.Northern: {"Orion", "Leo", "Cygnus", "Pegasus"},
	zodiac.Southern: {"Crux", "Carina", "Scorpius", "Grus"},
}

// constellationHighlight is the evergreen seasonal pseudo-event: always one
// per window, dated a week out so it sits naturally among the real events.
func constellationHighlight(from time.Time, hemisphere zodiac.Hemisphere) Event {
	quarter := (int(from.Month()) - 1) / 3
	name := seasonalConstellations[hemisphere][quarter]
	return Event{
		Name:            fmt.Sprintf("%s at its best", name),
		Description:     fmt.Sprintf("%s rides high in the %s sky this season.", name, hemisphere),
		Date:            from.Add(7 * 24 * time.Hour).UTC().Format("2006-01-02"),
		HemisphereScope: string(hemisphere),
		Kind:            KindConstellation,
	}
}
