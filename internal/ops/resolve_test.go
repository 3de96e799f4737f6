package ops

import (
	"testing"
	"time"

	"github.com/mishcd/astrocusp/internal/config"
	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/lunar"
)

func TestCusp_CuspDate(t *testing.T) {
	out, err := Cusp(CuspInput{Year: 1990, Month: 7, Day: 21, Seed: 7})
	if err != nil {
		t.Fatalf("Cusp failed: %v", err)
	}
	if !out.IsOnCusp {
		t.Fatal("July 21 should be on a cusp")
	}
	if out.PrimarySign != "Cancer" || out.SecondarySign != "Leo" {
		t.Errorf("signs = (%s, %s), want (Cancer, Leo)", out.PrimarySign, out.SecondarySign)
	}
	if out.CuspName != "Cancer–Leo Cusp" {
		t.Errorf("CuspName = %q", out.CuspName)
	}
	if out.SunDegree < 28.5 || out.SunDegree >= 30.5 {
		t.Errorf("SunDegree = %v, want in [28.5, 30.5)", out.SunDegree)
	}
}

func TestCusp_PureSignDate(t *testing.T) {
	out, err := Cusp(CuspInput{Year: 1990, Month: 7, Day: 15})
	if err != nil {
		t.Fatalf("Cusp failed: %v", err)
	}
	if out.IsOnCusp {
		t.Fatal("July 15 should not be on a cusp")
	}
	if out.PrimarySign != "Cancer" {
		t.Errorf("PrimarySign = %q, want Cancer", out.PrimarySign)
	}
	if out.SecondarySign != "" || out.CuspName != "" {
		t.Errorf("pure sign should leave cusp fields empty, got (%q, %q)", out.SecondarySign, out.CuspName)
	}
}

func TestCusp_SeededDeterminism(t *testing.T) {
	a, err := Cusp(CuspInput{Year: 2000, Month: 4, Day: 20, Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Cusp(CuspInput{Year: 2000, Month: 4, Day: 20, Seed: 99})
	if err != nil {
		t.Fatal(err)
	}
	if a.SunDegree != b.SunDegree {
		t.Errorf("same seed gave different degrees: %v vs %v", a.SunDegree, b.SunDegree)
	}
}

func TestCusp_InvalidDate(t *testing.T) {
	cases := []CuspInput{
		{Year: 2025, Month: 13, Day: 1},
		{Year: 2025, Month: 2, Day: 30},
		{Year: 2025, Month: 0, Day: 10},
	}
	for _, in := range cases {
		if _, err := Cusp(in); !errors.Is(err, errors.ErrInvalidDate) {
			t.Errorf("Cusp(%d-%d-%d) error = %v, want INVALID_DATE", in.Year, in.Month, in.Day, err)
		}
	}
}

func TestRising_KnownValues(t *testing.T) {
	out, err := Rising(RisingInput{Year: 2025, Month: 1, Day: 1, Hour: 0, Minute: 0})
	if err != nil {
		t.Fatalf("Rising failed: %v", err)
	}
	if out.Sign != "Aries" {
		t.Errorf("Sign = %q, want Aries", out.Sign)
	}
	if out.Description == "" {
		t.Error("description should never be empty")
	}
}

func TestRising_InvalidInputs(t *testing.T) {
	if _, err := Rising(RisingInput{Year: 2025, Month: 2, Day: 29, Hour: 8, Minute: 0}); !errors.Is(err, errors.ErrInvalidDate) {
		t.Errorf("non-leap Feb 29 error = %v, want INVALID_DATE", err)
	}
	if _, err := Rising(RisingInput{Year: 2025, Month: 6, Day: 10, Hour: 24, Minute: 0}); err == nil {
		t.Error("hour 24 should be rejected")
	}
	if _, err := Rising(RisingInput{Year: 2025, Month: 6, Day: 10, Hour: 12, Minute: 60}); err == nil {
		t.Error("minute 60 should be rejected")
	}
}

func TestSky_InsideModelWindow(t *testing.T) {
	clock := FixedClock{At: time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)}
	out, err := Sky(config.DefaultConfig(), SkyInput{Clock: clock})
	if err != nil {
		t.Fatalf("Sky failed: %v", err)
	}
	if len(out.Positions) != 9 {
		t.Errorf("positions = %d, want 9", len(out.Positions))
	}
	if out.Warning != "" {
		t.Errorf("unexpected warning: %q", out.Warning)
	}
	for _, p := range out.Positions {
		if p.Degree < 0 || p.Degree >= 30 {
			t.Errorf("%s degree = %v, want in [0, 30)", p.Planet, p.Degree)
		}
	}
}

func TestSky_StaleWarning(t *testing.T) {
	clock := FixedClock{At: time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)}
	out, err := Sky(config.DefaultConfig(), SkyInput{Clock: clock})
	if err != nil {
		t.Fatalf("Sky failed: %v", err)
	}
	if out.Warning == "" {
		t.Error("a query two years past the model window should carry a warning")
	}
	if len(out.Positions) != 9 {
		t.Errorf("stale queries still return positions, got %d", len(out.Positions))
	}
}

func TestSky_StrictStale(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StrictStale = true
	clock := FixedClock{At: time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)}
	if _, err := Sky(cfg, SkyInput{Clock: clock}); !errors.Is(err, errors.ErrStaleModel) {
		t.Errorf("error = %v, want STALE_MODEL", err)
	}
}

func TestMoon_KnownFullMoon(t *testing.T) {
	// One synodic half-month past the reference new moon.
	clock := FixedClock{At: time.Date(2000, time.January, 21, 4, 0, 0, 0, time.UTC)}
	out, err := Moon(MoonInput{Clock: clock})
	if err != nil {
		t.Fatalf("Moon failed: %v", err)
	}
	if out.PhaseName != "Full Moon" {
		t.Errorf("PhaseName = %q, want Full Moon", out.PhaseName)
	}
	if out.IlluminationPercent < 98 {
		t.Errorf("IlluminationPercent = %d, want near 100", out.IlluminationPercent)
	}
	if out.NextPhaseDate == "" {
		t.Error("NextPhaseDate should be set")
	}
}

func TestMoon_SourceOverride(t *testing.T) {
	clock := FixedClock{At: time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)}
	out, err := Moon(MoonInput{Clock: clock, Source: stuckSource{}})
	if err != nil {
		t.Fatal(err)
	}
	if out.NextPhaseName != "Full Moon" {
		t.Errorf("NextPhaseName = %q, want fallback Full Moon", out.NextPhaseName)
	}
	want := clock.At.Add(14 * 24 * time.Hour).Format("2006-01-02")
	if out.NextPhaseDate != want {
		t.Errorf("NextPhaseDate = %q, want %q", out.NextPhaseDate, want)
	}
}

// stuckSource reports the same mid-phase fraction forever, so no quarter
// crossing is ever found within the search limit.
type stuckSource struct{}

func (stuckSource) PhaseFraction(time.Time) float64 { return 0.1 }
func (stuckSource) Illumination(time.Time) float64  { return 0.1 }

var _ lunar.PhaseSource = stuckSource{}
