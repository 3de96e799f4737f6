package astro

import (
	"fmt"
	"math"

	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/zodiac"
)

// RisingResult is the estimated ascendant identity.
type RisingResult struct {
	Sign        zodiac.Sign
	Degree      float64
	Description string
}

// risingDescriptions holds one fixed blurb per ascendant sign.
var risingDescriptions = map[zodiac.Sign]string{
	zodiac.Aries:       "With Aries rising, you meet the world head-on: direct, energetic, and quick to act.",
	zodiac.Taurus:      "With Taurus rising, you project calm steadiness and an unhurried, grounded presence.",
	zodiac.Gemini:      "With Gemini rising, curiosity leads: you come across as quick, verbal, and adaptable.",
	zodiac.Cancer:      "With Cancer rising, you lead with care; others read you as protective and intuitive.",
	zodiac.Leo:         "With Leo rising, warmth and presence arrive before you do: you are hard to overlook.",
	zodiac.Virgo:       "With Virgo rising, you present as precise and observant, attentive to what others miss.",
	zodiac.Libra:       "With Libra rising, grace and fairness shape first impressions; you naturally harmonize a room.",
	zodiac.Scorpio:     "With Scorpio rising, you project intensity and reserve: magnetic, and not easily read.",
	zodiac.Sagittarius: "With Sagittarius rising, you come across as open, candid, and restless for the horizon.",
	zodiac.Capricorn:   "With Capricorn rising, you present as composed and capable, someone who takes the long view.",
	zodiac.Aquarius:    "With Aquarius rising, you read as original and a little unplaceable, oriented to the future.",
	zodiac.Pisces:      "With Pisces rising, you project a soft receptivity; others sense the dreamer straight away.",
}

const genericRisingDescription = "Your rising sign colors the first impression you make on the world."

// ResolveRising estimates the ascendant from the birth time of day and the
// day of year. This is a deliberately simplified modular-arithmetic model,
// not a true horizon calculation: there is no latitude, sidereal time, or
// horizon geometry, and changing the formula changes displayed results for
// every user.
func ResolveRising(hour, minute, dayOfYear int) (*RisingResult, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, errors.NewInvalidDate(fmt.Sprintf("not a valid time of day: %02d:%02d", hour, minute))
	}
	if dayOfYear < 1 || dayOfYear > 366 {
		return nil, errors.NewInvalidDate(fmt.Sprintf("day of year out of range: %d", dayOfYear))
	}

	timeInMinutes := hour*60 + minute
	signIndex := ((timeInMinutes + dayOfYear*4) / 120) % 12
	degree := math.Floor(float64((timeInMinutes+dayOfYear*2)%120) / 4)

	sign := zodiac.Sign(signIndex)
	desc, ok := risingDescriptions[sign]
	if !ok {
		desc = genericRisingDescription
	}

	return &RisingResult{
		Sign:        sign,
		Degree:      degree,
		Description: desc,
	}, nil
}
