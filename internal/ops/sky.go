package ops

import (
	"github.com/mishcd/astrocusp/internal/astro"
	"github.com/mishcd/astrocusp/internal/config"
	"github.com/mishcd/astrocusp/internal/errors"
)

// SkyInput contains parameters for the Sky operation.
type SkyInput struct {
	Clock Clock
}

// SkyPosition is one planet's place in the output.
type SkyPosition struct {
	Planet     string  `json:"planet"`
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`
	Retrograde bool    `json:"retrograde"`
}

// SkyOutput contains the result of the Sky operation.
type SkyOutput struct {
	Positions []SkyPosition `json:"positions"`
	// Warning is set when the query instant falls outside the maintained
	// model window: the positions are extrapolated and the retrograde flags
	// unvalidated.
	Warning string `json:"warning,omitempty"`
}

// Sky evaluates the approximate current positions of the tracked planets.
func Sky(cfg *config.Config, input SkyInput) (*SkyOutput, error) {
	at := now(input.Clock)

	grace := 0
	strict := false
	if cfg != nil {
		grace = cfg.StaleGraceDays
		strict = cfg.StrictStale
	}

	covered := astro.ModelCovers(at, grace)
	if !covered && strict {
		return nil, errors.NewStaleModel("all", at.Format("2006-01-02"))
	}

	positions := astro.CurrentPositions(at)
	out := &SkyOutput{Positions: make([]SkyPosition, 0, len(positions))}
	for _, p := range positions {
		out.Positions = append(out.Positions, SkyPosition{
			Planet:     p.Planet,
			Sign:       p.Sign.String(),
			Degree:     p.Degree,
			Retrograde: p.Retrograde,
		})
	}
	if !covered {
		out.Warning = "query instant is outside the maintained ephemeris window; positions are extrapolated and retrograde flags unvalidated"
	}
	return out, nil
}
