package ops

import (
	"database/sql"

	"github.com/mishcd/astrocusp/internal/store"
	"github.com/mishcd/astrocusp/internal/zodiac"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	// Limit caps the number of dates returned, newest first. 0 means all.
	Limit int
}

// ListDateSummary is one content date with its per-hemisphere row counts.
type ListDateSummary struct {
	Date     string `json:"date"`
	Northern int    `json:"northern"`
	Southern int    `json:"southern"`
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Dates []ListDateSummary `json:"dates"`
}

// List summarizes stored content coverage by date.
func List(db *sql.DB, input ListInput) (*ListOutput, error) {
	dates, err := store.ListDates(db, input.Limit)
	if err != nil {
		return nil, err
	}

	out := &ListOutput{Dates: make([]ListDateSummary, 0, len(dates))}
	for _, d := range dates {
		north, err := store.CountByDate(db, d, zodiac.Northern)
		if err != nil {
			return nil, err
		}
		south, err := store.CountByDate(db, d, zodiac.Southern)
		if err != nil {
			return nil, err
		}
		out.Dates = append(out.Dates, ListDateSummary{Date: d, Northern: north, Southern: south})
	}
	return out, nil
}
