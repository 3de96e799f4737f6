package astro

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/zodiac"
)

// CuspResult is the zodiac identity derived from a birth date.
type CuspResult struct {
	IsOnCusp      bool
	PrimarySign   zodiac.Sign
	SecondarySign zodiac.Sign     // valid only when IsOnCusp
	Pair          zodiac.CuspPair // valid only when IsOnCusp
	CuspName      string          // "Cancer–Leo Cusp", empty when not on cusp
	SunDegree     float64
	Description   string
}

// cuspWindow is an inclusive date range assigned to a cusp pair. Windows may
// span two adjacent months but never a year boundary.
type cuspWindow struct {
	pair       zodiac.CuspPair
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

// cuspWindows lists the 12 cusp ranges in calendar order.
var cuspWindows = [12]cuspWindow{
	{zodiac.CapricornAquarius, time.January, 16, time.January, 23},
	{zodiac.AquariusPisces, time.February, 15, time.February, 21},
	{zodiac.PiscesAries, time.March, 17, time.March, 23},
	{zodiac.AriesTaurus, time.April, 16, time.April, 22},
	{zodiac.TaurusGemini, time.May, 17, time.May, 23},
	{zodiac.GeminiCancer, time.June, 17, time.June, 23},
	{zodiac.CancerLeo, time.July, 19, time.July, 25},
	{zodiac.LeoVirgo, time.August, 19, time.August, 25},
	{zodiac.VirgoLibra, time.September, 19, time.September, 25},
	{zodiac.LibraScorpio, time.October, 19, time.October, 25},
	{zodiac.ScorpioSagittarius, time.November, 18, time.November, 24},
	{zodiac.SagittariusCapricorn, time.December, 18, time.December, 24},
}

// signWindow is an inclusive pure-sign date range: the days of a sign's
// traditional span left over once the adjoining cusp windows are carved out.
// Together with cuspWindows these cover every day of the year exactly once.
type signWindow struct {
	sign       zodiac.Sign
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

var signWindows = [12]signWindow{
	{zodiac.Aquarius, time.January, 24, time.February, 14},
	{zodiac.Pisces, time.February, 22, time.March, 16}, // leap day lands here
	{zodiac.Aries, time.March, 24, time.April, 15},
	{zodiac.Taurus, time.April, 23, time.May, 16},
	{zodiac.Gemini, time.May, 24, time.June, 16},
	{zodiac.Cancer, time.June, 24, time.July, 18},
	{zodiac.Leo, time.July, 26, time.August, 18},
	{zodiac.Virgo, time.August, 26, time.September, 18},
	{zodiac.Libra, time.September, 26, time.October, 18},
	{zodiac.Scorpio, time.October, 26, time.November, 17},
	{zodiac.Sagittarius, time.November, 25, time.December, 17},
	{zodiac.Capricorn, time.December, 25, time.January, 15}, // wraps the year
}

// inRange checks inclusive membership of (month, day) in a window that is
// either single-month or spans two months (including the Dec→Jan wrap).
func inRange(month time.Month, day int, startMonth time.Month, startDay int, endMonth time.Month, endDay int) bool {
	if startMonth == endMonth {
		return month == startMonth && day >= startDay && day <= endDay
	}
	return (month == startMonth && day >= startDay) || (month == endMonth && day <= endDay)
}

// Cosmetic sun-degree bands. The degree shown to the user is a randomized
// value within the band implied by cusp status, not an ephemeris value.
const (
	cuspDegreeMin = 28.5
	cuspDegreeMax = 30.5
	pureDegreeMin = 2.5
	pureDegreeMax = 27.5
)

// ResolveCusp maps a birth date to its zodiac or cusp identity. The rng seeds
// the cosmetic sun degree; pass a fixed-seed source for reproducible output.
func ResolveCusp(year int, month time.Month, day int, rng *rand.Rand) (*CuspResult, error) {
	if !ValidDate(year, month, day) {
		return nil, errors.NewInvalidDate(fmt.Sprintf("not a valid calendar date: %04d-%02d-%02d", year, int(month), day))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for _, w := range cuspWindows {
		if inRange(month, day, w.startMonth, w.startDay, w.endMonth, w.endDay) {
			name := w.pair.Name()
			return &CuspResult{
				IsOnCusp:      true,
				PrimarySign:   w.pair.First(),
				SecondarySign: w.pair.Second(),
				Pair:          w.pair,
				CuspName:      name,
				SunDegree:     cuspDegreeMin + rng.Float64()*(cuspDegreeMax-cuspDegreeMin),
				Description:   cuspDescription(w.pair),
			}, nil
		}
	}

	for _, w := range signWindows {
		if inRange(month, day, w.startMonth, w.startDay, w.endMonth, w.endDay) {
			return &CuspResult{
				IsOnCusp:    false,
				PrimarySign: w.sign,
				SunDegree:   pureDegreeMin + rng.Float64()*(pureDegreeMax-pureDegreeMin),
				Description: signDescription(w.sign),
			}, nil
		}
	}

	// Unreachable while the two tables tile the calendar; the coverage test
	// in cusp_test.go guards that invariant.
	return nil, errors.NewInternal(fmt.Errorf("date %04d-%02d-%02d matched no window", year, int(month), day))
}

func cuspDescription(pair zodiac.CuspPair) string {
	return fmt.Sprintf("Born on the %s, you carry the blended energies of %s and %s — a threshold identity that draws from both signs.",
		pair.Name(), pair.First(), pair.Second())
}

func signDescription(sign zodiac.Sign) string {
	return fmt.Sprintf("Your sun sign is %s. The sun sat firmly within %s on the day you were born.", sign, sign)
}
