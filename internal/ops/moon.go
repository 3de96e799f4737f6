package ops

import (
	"github.com/mishcd/astrocusp/internal/lunar"
)

// MoonInput contains parameters for the Moon operation.
type MoonInput struct {
	Clock Clock
	// Source overrides the bundled ephemeris; nil uses lunar.Ephemeris.
	Source lunar.PhaseSource
}

// MoonOutput contains the result of the Moon operation.
type MoonOutput struct {
	PhaseName           string `json:"phase_name"`
	IlluminationPercent int    `json:"illumination_percent"`
	NextPhaseName       string `json:"next_phase_name"`
	NextPhaseDate       string `json:"next_phase_date"` // YYYY-MM-DD
}

// Moon reports the current lunar phase and the next quarter phase.
func Moon(input MoonInput) (*MoonOutput, error) {
	src := input.Source
	if src == nil {
		src = lunar.Ephemeris{}
	}

	phase := lunar.Current(src, now(input.Clock))
	return &MoonOutput{
		PhaseName:           phase.PhaseName,
		IlluminationPercent: phase.IlluminationPercent,
		NextPhaseName:       phase.NextPhaseName,
		NextPhaseDate:       phase.NextPhaseDate.UTC().Format("2006-01-02"),
	}, nil
}
