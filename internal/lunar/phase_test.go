package lunar

import (
	"math"
	"testing"
	"time"
)

func TestPhaseName_Quarters(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
	}{
		{0, PhaseNew},
		{0.25, PhaseFirstQuarter},
		{0.5, PhaseFull},
		{0.75, PhaseLastQuarter},
		{0.995, PhaseNew}, // wrap tolerance
		{0.01, PhaseNew},
		{0.26, PhaseFirstQuarter},
	}
	for _, tt := range tests {
		if got := PhaseName(tt.fraction); got != tt.want {
			t.Errorf("PhaseName(%v) = %q, want %q", tt.fraction, got, tt.want)
		}
	}
}

func TestPhaseName_Buckets(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
	}{
		{0.1, PhaseWaxingCrescent},
		{0.4, PhaseWaxingGibbous},
		{0.6, PhaseWaningGibbous},
		{0.9, PhaseWaningCrescent},
	}
	for _, tt := range tests {
		if got := PhaseName(tt.fraction); got != tt.want {
			t.Errorf("PhaseName(%v) = %q, want %q", tt.fraction, got, tt.want)
		}
	}
}

func TestEphemeris_ReferenceNewMoon(t *testing.T) {
	var e Ephemeris
	f := e.PhaseFraction(refNewMoon)
	if f > 1e-9 {
		t.Errorf("PhaseFraction at reference new moon = %v, want 0", f)
	}
	if ill := e.Illumination(refNewMoon); ill > 1e-9 {
		t.Errorf("Illumination at new moon = %v, want 0", ill)
	}

	// Half a synodic month later: full moon, fully lit.
	full := refNewMoon.Add(time.Duration(synodicMonth / 2 * 24 * float64(time.Hour)))
	if f := e.PhaseFraction(full); math.Abs(f-0.5) > 0.001 {
		t.Errorf("PhaseFraction at full = %v, want 0.5", f)
	}
	if ill := e.Illumination(full); ill < 0.999 {
		t.Errorf("Illumination at full = %v, want ~1", ill)
	}
}

func TestEphemeris_FractionRange(t *testing.T) {
	var e Ephemeris
	// Includes instants before the reference epoch.
	for _, at := range []time.Time{
		time.Date(1969, time.July, 20, 20, 17, 0, 0, time.UTC),
		time.Date(2025, time.April, 20, 12, 0, 0, 0, time.UTC),
		time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC),
	} {
		f := e.PhaseFraction(at)
		if f < 0 || f >= 1 {
			t.Errorf("PhaseFraction(%v) = %v, out of [0,1)", at, f)
		}
		ill := e.Illumination(at)
		if ill < 0 || ill > 1 {
			t.Errorf("Illumination(%v) = %v, out of [0,1]", at, ill)
		}
	}
}

func TestNextMajorPhase_ReachesEachQuarter(t *testing.T) {
	var e Ephemeris
	// Start just after the reference new moon; walk through a full cycle of
	// quarter announcements.
	at := refNewMoon.Add(24 * time.Hour)
	want := []string{PhaseFirstQuarter, PhaseFull, PhaseLastQuarter, PhaseNew}
	for _, expected := range want {
		name, next := NextMajorPhase(e, at)
		if name != expected {
			t.Fatalf("NextMajorPhase at %v = %q, want %q", at, name, expected)
		}
		if !next.After(at) {
			t.Fatalf("next phase date %v is not after %v", next, at)
		}
		if next.Sub(at) > 9*24*time.Hour {
			t.Errorf("quarter %q is %v away, want under ~9 days", expected, next.Sub(at))
		}
		// Step past the found quarter before searching again.
		at = next.Add(24 * time.Hour)
	}
}

// fixedSource always reports the same fraction, so no crossing ever occurs
// and the search must fall back.
type fixedSource struct{ fraction float64 }

func (f fixedSource) PhaseFraction(time.Time) float64 { return f.fraction }
func (f fixedSource) Illumination(time.Time) float64  { return 0.3 }

func TestNextMajorPhase_Fallback(t *testing.T) {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	name, at := NextMajorPhase(fixedSource{fraction: 0.1}, start)
	if name != PhaseFull {
		t.Errorf("fallback phase = %q, want %q", name, PhaseFull)
	}
	if want := start.Add(14 * 24 * time.Hour); !at.Equal(want) {
		t.Errorf("fallback date = %v, want %v", at, want)
	}
}

func TestCurrent(t *testing.T) {
	var e Ephemeris
	phase := Current(e, refNewMoon)
	if phase.PhaseName != PhaseNew {
		t.Errorf("PhaseName = %q, want %q", phase.PhaseName, PhaseNew)
	}
	if phase.IlluminationPercent != 0 {
		t.Errorf("IlluminationPercent = %d, want 0", phase.IlluminationPercent)
	}
	if phase.NextPhaseName == "" || phase.NextPhaseDate.IsZero() {
		t.Error("next phase not populated")
	}
}
