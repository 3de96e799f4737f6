package ops

import (
	"database/sql"
	"time"

	"github.com/mishcd/astrocusp/internal/config"
	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/store"
	"github.com/mishcd/astrocusp/internal/zodiac"
)

// DailyInput contains parameters for the Daily operation.
type DailyInput struct {
	// Sign is the requested label: a pure sign ("Aries") or a cusp
	// ("Cancer–Leo Cusp", any dash/case convention).
	Sign       string
	Hemisphere string
	// Date pins the lookup to one YYYY-MM-DD key. Empty means "today",
	// resolved with the timezone-skew anchor sequence.
	Date string
	// Timezone overrides the configured IANA zone for date anchoring.
	Timezone string
	// SingleSignFallback opts a cusp request into falling back to the
	// first component sign's pure row when the day has no cusp rows at all.
	SingleSignFallback bool

	Clock Clock
}

// DailyOutput contains the result of the Daily operation. A content miss is
// a normal outcome: Found is false and Row nil, with no error.
type DailyOutput struct {
	Found bool       `json:"found"`
	Row   *store.Row `json:"row,omitempty"`
	// AnchorDate is the date key that produced the match.
	AnchorDate string `json:"anchor_date,omitempty"`
}

// Daily resolves the horoscope content row for a sign, hemisphere, and date.
func Daily(db *sql.DB, cfg *config.Config, input DailyInput) (*DailyOutput, error) {
	hemisphere, err := resolveHemisphere(input.Hemisphere, cfg)
	if err != nil {
		return nil, err
	}

	candidates := zodiac.BuildCandidates(input.Sign, zodiac.CandidateOptions{})
	if len(candidates) == 0 {
		// Label noise resolves to nothing; same caller branch as a miss.
		return &DailyOutput{Found: false}, nil
	}

	anchors, err := dateAnchors(input, cfg)
	if err != nil {
		return nil, err
	}

	for _, anchor := range anchors {
		rows, err := store.FindByDate(db, anchor, hemisphere)
		if err != nil {
			// Store failures propagate as-is; masking them as a miss would
			// make the caller render an empty state instead of retrying.
			return nil, err
		}
		if row := matchRows(rows, candidates, input); row != nil {
			return &DailyOutput{Found: true, Row: row, AnchorDate: anchor}, nil
		}
	}

	return &DailyOutput{Found: false}, nil
}

// dateAnchors builds the ordered date keys to try. An explicit date is used
// alone; "today" tolerates timezone-boundary skew between content publishing
// and the user's clock by also trying UTC today and the adjacent local days.
func dateAnchors(input DailyInput, cfg *config.Config) ([]string, error) {
	if input.Date != "" {
		if _, err := time.Parse("2006-01-02", input.Date); err != nil {
			return nil, errors.NewInvalidDate("date must be YYYY-MM-DD: " + input.Date)
		}
		return []string{input.Date}, nil
	}

	loc, err := resolveLocation(input.Timezone, cfg)
	if err != nil {
		return nil, err
	}

	nowAt := now(input.Clock)
	local := nowAt.In(loc)
	raw := []string{
		store.FormatDate(local),
		store.FormatDate(nowAt.UTC()),
		store.FormatDate(local.AddDate(0, 0, -1)),
		store.FormatDate(local.AddDate(0, 0, 1)),
	}

	// Local and UTC today often coincide; drop duplicates keeping order.
	seen := make(map[string]bool, len(raw))
	anchors := raw[:0]
	for _, a := range raw {
		if !seen[a] {
			seen[a] = true
			anchors = append(anchors, a)
		}
	}
	return anchors, nil
}

// matchRows scans the fetched row set against the candidate list in priority
// order. Cusp requests never silently fall through to a different cusp's or
// a pure sign's content: if the set holds any cusp row but none matching the
// requested cusp, the result is a miss. Only when the day carries no cusp
// content at all may an opted-in cusp request borrow its first component
// sign's pure row.
func matchRows(rows []store.Row, candidates []string, input DailyInput) *store.Row {
	for _, candidate := range candidates {
		for i := range rows {
			if zodiac.LabelsMatch(candidate, rows[i].SignRaw) {
				return &rows[i]
			}
		}
	}

	if !zodiac.IsCuspLabel(input.Sign) {
		// Pure signs get exact matches only.
		return nil
	}

	for i := range rows {
		if rows[i].IsCusp() {
			return nil
		}
	}

	if !input.SingleSignFallback {
		return nil
	}
	pair, ok := zodiac.ParseCuspPair(input.Sign)
	if !ok {
		return nil
	}
	first := pair.First().String()
	for i := range rows {
		if zodiac.LabelsMatch(first, rows[i].SignRaw) {
			return &rows[i]
		}
	}
	return nil
}
