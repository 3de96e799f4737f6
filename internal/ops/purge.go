package ops

import (
	"database/sql"
	"time"

	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/store"
)

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	// Before removes rows dated strictly before this YYYY-MM-DD key.
	// Empty means derive the cutoff from KeepDays.
	Before string
	// KeepDays keeps the most recent N days relative to the clock when
	// Before is empty. Zero with an empty Before is rejected rather than
	// guessed at.
	KeepDays int

	Clock Clock
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Removed int64  `json:"removed"`
	Cutoff  string `json:"cutoff"`
}

// Purge removes stale content rows older than the cutoff.
func Purge(db *sql.DB, input PurgeInput) (*PurgeOutput, error) {
	cutoff := input.Before
	if cutoff == "" {
		if input.KeepDays <= 0 {
			return nil, errors.NewInvalidRequest("purge requires --before or --keep-days")
		}
		cutoff = store.FormatDate(now(input.Clock).AddDate(0, 0, -input.KeepDays))
	}
	if _, err := time.Parse("2006-01-02", cutoff); err != nil {
		return nil, errors.NewInvalidDate("cutoff must be YYYY-MM-DD: " + cutoff)
	}

	removed, err := store.DeleteBefore(db, cutoff)
	if err != nil {
		return nil, err
	}
	return &PurgeOutput{Removed: removed, Cutoff: cutoff}, nil
}
