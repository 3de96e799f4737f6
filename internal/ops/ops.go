// Package ops is the orchestration layer: one file per operation, each with
// Input/Output structs and a plain function. Surfaces (CLI, MCP, web) only
// ever call into this package.
package ops

import (
	"time"

	"github.com/mishcd/astrocusp/internal/config"
	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/zodiac"
)

// Clock abstracts time.Now() so that "today"-dependent operations are
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock implements Clock with a constant instant.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.At
}

// now resolves an optional clock.
func now(c Clock) time.Time {
	if c == nil {
		return time.Now()
	}
	return c.Now()
}

// resolveHemisphere picks the request's hemisphere, falling back to the
// configured default.
func resolveHemisphere(requested string, cfg *config.Config) (zodiac.Hemisphere, error) {
	s := requested
	if s == "" && cfg != nil {
		s = cfg.DefaultHemisphere
	}
	if s == "" {
		return zodiac.Northern, nil
	}
	h, ok := zodiac.ParseHemisphere(s)
	if !ok {
		return "", errors.NewInvalidRequest("unrecognized hemisphere: " + requested)
	}
	return h, nil
}

// resolveLocation loads the anchoring timezone: the request's zone if given,
// else the configured zone, else UTC. An unknown zone name is an error on the
// request, a silent UTC fallback when it comes from config.
func resolveLocation(requested string, cfg *config.Config) (*time.Location, error) {
	if requested != "" {
		loc, err := time.LoadLocation(requested)
		if err != nil {
			return nil, errors.NewInvalidRequest("unknown timezone: " + requested)
		}
		return loc, nil
	}
	if cfg != nil && cfg.Timezone != "" {
		if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
			return loc, nil
		}
	}
	return time.UTC, nil
}
