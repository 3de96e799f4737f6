package ops

import (
	"time"

	"github.com/mishcd/astrocusp/internal/astro"
	"github.com/mishcd/astrocusp/internal/errors"
)

// RisingInput contains parameters for the Rising operation. The birth date
// is needed only for its day of year.
type RisingInput struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
}

// RisingOutput contains the result of the Rising operation.
type RisingOutput struct {
	Sign        string  `json:"sign"`
	Degree      float64 `json:"degree"`
	Description string  `json:"description"`
}

// Rising estimates the ascendant sign from birth date and time.
func Rising(input RisingInput) (*RisingOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, errors.NewInvalidDate("month must be between 1 and 12")
	}
	if !astro.ValidDate(input.Year, time.Month(input.Month), input.Day) {
		return nil, errors.NewInvalidDate("not a valid calendar date")
	}

	doy := astro.DayOfYear(input.Year, time.Month(input.Month), input.Day)
	res, err := astro.ResolveRising(input.Hour, input.Minute, doy)
	if err != nil {
		return nil, err
	}

	return &RisingOutput{
		Sign:        res.Sign.String(),
		Degree:      res.Degree,
		Description: res.Description,
	}, nil
}
