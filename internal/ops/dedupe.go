package ops

import (
	"database/sql"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/mishcd/astrocusp/internal/config"
)

// Deduper collapses concurrent daily resolutions for the same
// (sign, hemisphere, date) key into a single store round trip: at most one
// resolution is in flight per key, and concurrent duplicates share its
// result. State is per-instance, so tests don't leak into each other.
type Deduper struct {
	group singleflight.Group
}

// NewDeduper creates a Deduper.
func NewDeduper() *Deduper {
	return &Deduper{}
}

// Daily runs the Daily operation through the in-flight guard.
func (d *Deduper) Daily(db *sql.DB, cfg *config.Config, input DailyInput) (*DailyOutput, error) {
	key := strings.Join([]string{
		strings.ToLower(input.Sign),
		strings.ToLower(input.Hemisphere),
		input.Date,
	}, "|")

	v, err, _ := d.group.Do(key, func() (any, error) {
		return Daily(db, cfg, input)
	})
	if err != nil {
		return nil, err
	}
	return v.(*DailyOutput), nil
}
