package zodiac

import (
	"regexp"
	"strings"
)

// whitespaceRegex matches one or more whitespace characters.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// hyphenSpacingRegex matches a hyphen with optional surrounding whitespace.
var hyphenSpacingRegex = regexp.MustCompile(`\s*-\s*`)

// cuspSuffixRegex matches a trailing "cusp" suffix with an optional
// version marker, e.g. " Cusp", " V2 Cusp", on already-lowercased input.
var cuspSuffixRegex = regexp.MustCompile(`(\s+v\d+)?\s*cusp$`)

// cuspWordRegex matches the word "cusp" anywhere, case-insensitive.
var cuspWordRegex = regexp.MustCompile(`(?i)\bcusp\b`)

// dashReplacer unifies the dash variants seen in content rows (en dash,
// em dash, figure dash, horizontal bar, non-breaking hyphen, Unicode minus)
// to a plain hyphen.
var dashReplacer = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"―", "-", // horizontal bar
	"−", "-", // minus sign
)

// Normalize canonicalizes a sign or cusp label for comparison:
// 1. Unify all dash variants to a plain hyphen
// 2. Trim leading/trailing whitespace
// 3. Lowercase
// 4. Collapse internal whitespace to single spaces
// 5. Drop whitespace around hyphens
func Normalize(s string) string {
	s = dashReplacer.Replace(s)
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	s = hyphenSpacingRegex.ReplaceAllString(s, "-")
	return s
}

// StripCuspSuffix removes a trailing "cusp" suffix (and an optional version
// marker like "v2" before it) from a normalized label. "aries-taurus cusp"
// becomes "aries-taurus"; labels without the suffix pass through unchanged.
func StripCuspSuffix(norm string) string {
	return strings.TrimSpace(cuspSuffixRegex.ReplaceAllString(norm, ""))
}

// IsCuspLabel reports whether the label mentions "cusp" anywhere.
func IsCuspLabel(label string) bool {
	return cuspWordRegex.MatchString(label)
}

// CandidateOptions controls candidate-list generation.
type CandidateOptions struct {
	// SingleSignFallback additionally emits each component sign of a cusp
	// label on its own, after all cusp-form candidates. Off by default:
	// showing a pure-sign reading to a cusp user is a content bug, not a
	// graceful degradation, so callers must opt in explicitly.
	SingleSignFallback bool
}

// BuildCandidates expands a requested sign or cusp label into the ordered
// list of label variants to try against content rows. Malformed or empty
// input yields an empty list, never an error; the caller treats an empty
// list the same as a content miss.
func BuildCandidates(label string, opts CandidateOptions) []string {
	norm := Normalize(label)
	if !containsLetter(norm) {
		return nil
	}

	if !IsCuspLabel(label) {
		// Pure sign: exact form only, plus the suffix-stripped base in case
		// the input carried stray decoration.
		return dedupe([]string{titleCase(norm), titleCase(StripCuspSuffix(norm))})
	}

	base := StripCuspSuffix(norm)
	if base == "" {
		return nil
	}

	// Prefer canonical enum names when the pair parses; otherwise fall back
	// to title-casing whatever the label contained.
	var display string
	if pair, ok := ParseCuspPair(label); ok {
		display = pair.First().String() + "-" + pair.Second().String()
	} else {
		display = titleCase(base)
	}
	enDash := strings.ReplaceAll(display, "-", "–")

	candidates := []string{
		enDash + " Cusp",
		display + " Cusp",
		enDash,
		display,
	}

	if opts.SingleSignFallback {
		for _, part := range strings.SplitN(display, "-", 2) {
			if part != "" {
				candidates = append(candidates, part)
			}
		}
	}

	return dedupe(candidates)
}

// LabelsMatch reports whether a candidate label matches a content-row label.
// Both sides are compared in normalized form, and the match tolerates the
// "Cusp" suffix being present on either side only: any of {full, base} of
// the candidate equal to any of {full, base} of the row is a match.
func LabelsMatch(candidate, row string) bool {
	cf := Normalize(candidate)
	rf := Normalize(row)
	if cf == "" || rf == "" {
		return false
	}
	cb := StripCuspSuffix(cf)
	rb := StripCuspSuffix(rf)
	return cf == rf || cf == rb || cb == rf || cb == rb
}

// titleCase capitalizes the first letter of each space- or hyphen-separated
// word of a normalized (lowercased) label.
func titleCase(norm string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range norm {
		if upperNext && r >= 'a' && r <= 'z' {
			b.WriteRune(r - 'a' + 'A')
		} else {
			b.WriteRune(r)
		}
		upperNext = r == ' ' || r == '-'
	}
	return b.String()
}

// containsLetter reports whether the label has any alphabetic content left
// after normalization. Pure punctuation/whitespace noise produces no
// candidates.
func containsLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
