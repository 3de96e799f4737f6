package zodiac

import "strings"

// Hemisphere selects which seasonal relabeling and content rows apply.
type Hemisphere string

const (
	Northern Hemisphere = "Northern"
	Southern Hemisphere = "Southern"
)

// ParseHemisphere accepts long and short forms in any case:
// "Northern", "NH", "N", "Southern", "SH", "S".
func ParseHemisphere(s string) (Hemisphere, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "northern", "north", "nh", "n":
		return Northern, true
	case "southern", "south", "sh", "s":
		return Southern, true
	}
	return "", false
}

// Opposite returns the other hemisphere.
func (h Hemisphere) Opposite() Hemisphere {
	if h == Northern {
		return Southern
	}
	return Northern
}
