package ops

import (
	"math/rand"
	"time"

	"github.com/mishcd/astrocusp/internal/astro"
	"github.com/mishcd/astrocusp/internal/errors"
)

// CuspInput contains parameters for the Cusp operation.
type CuspInput struct {
	Year  int
	Month int
	Day   int

	// Seed fixes the cosmetic sun-degree randomness; 0 means non-deterministic.
	Seed int64
}

// CuspOutput contains the result of the Cusp operation.
type CuspOutput struct {
	IsOnCusp      bool    `json:"is_on_cusp"`
	PrimarySign   string  `json:"primary_sign"`
	SecondarySign string  `json:"secondary_sign,omitempty"`
	CuspName      string  `json:"cusp_name,omitempty"`
	SunDegree     float64 `json:"sun_degree"`
	Description   string  `json:"description"`
}

// Cusp resolves a birth date to its zodiac or cusp identity.
func Cusp(input CuspInput) (*CuspOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, errors.NewInvalidDate("month must be between 1 and 12")
	}

	var rng *rand.Rand
	if input.Seed != 0 {
		rng = rand.New(rand.NewSource(input.Seed))
	}

	res, err := astro.ResolveCusp(input.Year, time.Month(input.Month), input.Day, rng)
	if err != nil {
		return nil, err
	}

	out := &CuspOutput{
		IsOnCusp:    res.IsOnCusp,
		PrimarySign: res.PrimarySign.String(),
		SunDegree:   res.SunDegree,
		Description: res.Description,
	}
	if res.IsOnCusp {
		out.SecondarySign = res.SecondarySign.String()
		out.CuspName = res.CuspName
	}
	return out, nil
}
