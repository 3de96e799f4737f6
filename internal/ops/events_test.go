package ops

import (
	"testing"
	"time"

	"github.com/mishcd/astrocusp/internal/config"
	"github.com/mishcd/astrocusp/internal/errors"
)

var eventsClock = FixedClock{At: time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC)}

func TestEvents_WindowSortedAndDeduped(t *testing.T) {
	out, err := Events(config.DefaultConfig(), EventsInput{
		Hemisphere: "Northern",
		Clock:      eventsClock,
	})
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if out.WindowDays != 45 {
		t.Errorf("WindowDays = %d, want 45", out.WindowDays)
	}
	if len(out.Events) == 0 {
		t.Fatal("no events in a 45-day window")
	}

	limit := eventsClock.At.Add(45 * 24 * time.Hour)
	seen := map[string]bool{}
	for i, e := range out.Events {
		d, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			t.Fatalf("event date %q unparseable: %v", e.Date, err)
		}
		if d.After(limit) {
			t.Errorf("event %q at %s is past the window", e.Name, e.Date)
		}
		if i > 0 && out.Events[i-1].Date > e.Date {
			t.Errorf("events not sorted: %q after %q", out.Events[i-1].Date, e.Date)
		}
		key := e.Name + "|" + e.Date
		if seen[key] {
			t.Errorf("duplicate event %q", key)
		}
		seen[key] = true
	}
}

func TestEvents_ContainsExpectedKinds(t *testing.T) {
	out, err := Events(config.DefaultConfig(), EventsInput{
		Hemisphere: "Northern",
		Clock:      eventsClock,
	})
	if err != nil {
		t.Fatal(err)
	}

	kinds := map[string]int{}
	names := map[string]bool{}
	for _, e := range out.Events {
		kinds[e.Kind]++
		names[e.Name] = true
	}

	if kinds[KindMoon] != 4 {
		t.Errorf("moon events = %d, want 4 quarters", kinds[KindMoon])
	}
	if kinds[KindEquinox] == 0 {
		t.Error("September window should contain the equinox")
	}
	if kinds[KindConstellation] != 1 {
		t.Errorf("constellation highlights = %d, want exactly 1", kinds[KindConstellation])
	}
	// Aug 20 + 45 days covers the Uranus retrograde station on Sep 6.
	if !names["Uranus stations retrograde"] {
		t.Error("missing Uranus retrograde station")
	}
}

func TestEvents_HemisphereRelabelingAndScope(t *testing.T) {
	north, err := Events(config.DefaultConfig(), EventsInput{Hemisphere: "Northern", Clock: eventsClock})
	if err != nil {
		t.Fatal(err)
	}
	south, err := Events(config.DefaultConfig(), EventsInput{Hemisphere: "Southern", Clock: eventsClock})
	if err != nil {
		t.Fatal(err)
	}

	findByKind := func(events []Event, kind string) *Event {
		for i := range events {
			if events[i].Kind == kind {
				return &events[i]
			}
		}
		return nil
	}

	ne := findByKind(north.Events, KindEquinox)
	se := findByKind(south.Events, KindEquinox)
	if ne == nil || se == nil {
		t.Fatal("equinox missing from one hemisphere")
	}
	if ne.Name != "Autumn Equinox" || se.Name != "Spring Equinox" {
		t.Errorf("equinox names = (%q, %q), want (Autumn Equinox, Spring Equinox)", ne.Name, se.Name)
	}

	// The Northern-scoped constellation highlight must not leak south.
	for _, e := range south.Events {
		if e.HemisphereScope == "Northern" {
			t.Errorf("Northern-scoped event %q in Southern window", e.Name)
		}
	}
}

func TestEvents_CustomWindow(t *testing.T) {
	out, err := Events(config.DefaultConfig(), EventsInput{
		Hemisphere: "Northern",
		WindowDays: 7,
		Clock:      eventsClock,
	})
	if err != nil {
		t.Fatal(err)
	}
	limit := eventsClock.At.Add(7 * 24 * time.Hour)
	for _, e := range out.Events {
		d, _ := time.Parse("2006-01-02", e.Date)
		if d.After(limit) {
			t.Errorf("event %q at %s outside 7-day window", e.Name, e.Date)
		}
	}
}

func TestEvents_BadHemisphere(t *testing.T) {
	_, err := Events(config.DefaultConfig(), EventsInput{Hemisphere: "middle", Clock: eventsClock})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}
