// Package zodiac defines the canonical in-memory representation of zodiac
// identity: a closed enum of the 12 signs and a closed enum of the 12
// adjacent-sign cusp pairs. All external string labels (user input, content
// rows) are translated to and from these enums at the boundary by
// normalize.go; nothing outside this package does string munging on sign
// labels.
package zodiac

import "strings"

// Sign is one of the 12 zodiac signs, in ecliptic-longitude order
// (Aries = 0° .. Pisces = 330°).
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// signNames is indexed by Sign.
var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Signs lists all 12 signs in longitude order.
var Signs = [12]Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// String returns the display name, e.g. "Sagittarius".
func (s Sign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return "Unknown"
	}
	return signNames[s]
}

// Valid reports whether s is one of the 12 defined signs.
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

// ParseSign resolves a sign name case-insensitively.
func ParseSign(name string) (Sign, bool) {
	name = strings.TrimSpace(strings.ToLower(name))
	for i, n := range signNames {
		if strings.ToLower(n) == name {
			return Sign(i), true
		}
	}
	return -1, false
}

// SignForLongitude maps an ecliptic longitude in [0,360) to its 30°-wide sign
// segment and the degree within that segment.
func SignForLongitude(lon float64) (Sign, float64) {
	idx := int(lon / 30)
	if idx < 0 {
		idx = 0
	}
	if idx > 11 {
		idx = 11
	}
	return Sign(idx), lon - float64(idx)*30
}

// CuspPair is one of the 12 adjacent-sign cusp identities.
type CuspPair int

const (
	CapricornAquarius CuspPair = iota
	AquariusPisces
	PiscesAries
	AriesTaurus
	TaurusGemini
	GeminiCancer
	CancerLeo
	LeoVirgo
	VirgoLibra
	LibraScorpio
	ScorpioSagittarius
	SagittariusCapricorn
)

// cuspPairs is indexed by CuspPair, in calendar order starting mid-January.
var cuspPairs = [12][2]Sign{
	{Capricorn, Aquarius},
	{Aquarius, Pisces},
	{Pisces, Aries},
	{Aries, Taurus},
	{Taurus, Gemini},
	{Gemini, Cancer},
	{Cancer, Leo},
	{Leo, Virgo},
	{Virgo, Libra},
	{Libra, Scorpio},
	{Scorpio, Sagittarius},
	{Sagittarius, Capricorn},
}

// CuspPairs lists all 12 cusp pairs in calendar order.
var CuspPairs = [12]CuspPair{
	CapricornAquarius, AquariusPisces, PiscesAries, AriesTaurus,
	TaurusGemini, GeminiCancer, CancerLeo, LeoVirgo,
	VirgoLibra, LibraScorpio, ScorpioSagittarius, SagittariusCapricorn,
}

// First returns the earlier sign of the pair.
func (c CuspPair) First() Sign {
	return cuspPairs[c][0]
}

// Second returns the later sign of the pair.
func (c CuspPair) Second() Sign {
	return cuspPairs[c][1]
}

// Valid reports whether c is one of the 12 defined pairs.
func (c CuspPair) Valid() bool {
	return c >= CapricornAquarius && c <= SagittariusCapricorn
}

// Base returns the en-dash pair label without the "Cusp" suffix,
// e.g. "Cancer–Leo".
func (c CuspPair) Base() string {
	return c.First().String() + "–" + c.Second().String()
}

// Name returns the full display label, e.g. "Cancer–Leo Cusp".
func (c CuspPair) Name() string {
	return c.Base() + " Cusp"
}

// ParseCuspPair resolves a cusp label (any dash variant, with or without the
// "Cusp" suffix, case-insensitive) to its pair.
func ParseCuspPair(label string) (CuspPair, bool) {
	base := StripCuspSuffix(Normalize(label))
	parts := strings.SplitN(base, "-", 2)
	if len(parts) != 2 {
		return -1, false
	}
	first, ok1 := ParseSign(parts[0])
	second, ok2 := ParseSign(parts[1])
	if !ok1 || !ok2 {
		return -1, false
	}
	for _, c := range CuspPairs {
		if c.First() == first && c.Second() == second {
			return c, true
		}
	}
	return -1, false
}
