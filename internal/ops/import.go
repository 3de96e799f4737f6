package ops

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/store"
	"github.com/mishcd/astrocusp/internal/zodiac"
)

// ImportMode controls collision behavior.
type ImportMode string

const (
	// ImportSkip keeps the existing row when the key collides.
	ImportSkip ImportMode = "skip"
	// ImportReplace overwrites the existing row's text fields.
	ImportReplace ImportMode = "replace"
)

// ImportRecord is one entry of the import file: the export format of the
// upstream content pipeline.
type ImportRecord struct {
	Sign        string  `json:"sign"`
	Hemisphere  string  `json:"hemisphere"`
	Date        string  `json:"date"`
	DailyText   string  `json:"daily_text"`
	Affirmation *string `json:"affirmation,omitempty"`
	DeeperText  *string `json:"deeper_text,omitempty"`
}

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	// Path to a JSON file holding an array of ImportRecord. Ignored when
	// Reader is set.
	Path   string
	Reader io.Reader
	Mode   ImportMode

	Clock Clock
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int `json:"imported"`
	Replaced int `json:"replaced"`
	Skipped  int `json:"skipped"`
	// Rejected counts records with missing or unparseable key fields.
	Rejected int `json:"rejected"`
}

// Import loads horoscope content rows from a JSON export file.
func Import(db *sql.DB, input ImportInput) (*ImportOutput, error) {
	mode := input.Mode
	if mode == "" {
		mode = ImportSkip
	}
	if mode != ImportSkip && mode != ImportReplace {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown import mode: %q", mode))
	}

	reader := input.Reader
	if reader == nil {
		if input.Path == "" {
			return nil, errors.NewInvalidRequest("import requires a file path")
		}
		f, err := os.Open(input.Path)
		if err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("cannot open import file: %v", err))
		}
		defer f.Close()
		reader = f
	}

	var records []ImportRecord
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("import file is not a JSON array: %v", err))
	}

	out := &ImportOutput{}
	nowUnix := now(input.Clock).Unix()

	for _, rec := range records {
		hemisphere, hOK := zodiac.ParseHemisphere(rec.Hemisphere)
		_, dateErr := time.Parse("2006-01-02", rec.Date)
		signNorm := zodiac.Normalize(rec.Sign)
		if !hOK || dateErr != nil || signNorm == "" || rec.DailyText == "" {
			out.Rejected++
			continue
		}

		row := &store.Row{
			ID:          ulid.MustNew(ulid.Timestamp(time.Unix(nowUnix, 0)), rand.Reader).String(),
			SignRaw:     rec.Sign,
			SignNorm:    signNorm,
			Hemisphere:  string(hemisphere),
			Date:        rec.Date,
			DailyText:   rec.DailyText,
			Affirmation: rec.Affirmation,
			DeeperText:  rec.DeeperText,
			CreatedAt:   nowUnix,
			UpdatedAt:   nowUnix,
		}

		if mode == ImportReplace {
			existed, err := store.Exists(db, row.SignNorm, hemisphere, row.Date)
			if err != nil {
				return nil, err
			}
			if err := store.Upsert(db, row); err != nil {
				return nil, err
			}
			if existed {
				out.Replaced++
			} else {
				out.Imported++
			}
			continue
		}

		err := store.Insert(db, row)
		switch {
		case err == nil:
			out.Imported++
		case errors.Is(err, errors.ErrConflict):
			out.Skipped++
		default:
			return nil, err
		}
	}

	return out, nil
}
