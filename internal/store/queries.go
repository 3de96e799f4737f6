package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/zodiac"
)

// Row is one stored horoscope entry.
type Row struct {
	ID          string  `json:"id"`
	SignRaw     string  `json:"sign"`
	SignNorm    string  `json:"-"`
	Hemisphere  string  `json:"hemisphere"`
	Date        string  `json:"date"` // YYYY-MM-DD
	DailyText   string  `json:"daily_text"`
	Affirmation *string `json:"affirmation,omitempty"`
	DeeperText  *string `json:"deeper_text,omitempty"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

// IsCusp reports whether the row's published label is a cusp label.
func (r *Row) IsCusp() bool {
	return zodiac.IsCuspLabel(r.SignRaw)
}

const rowColumns = `id, sign_raw, sign_norm, hemisphere, date, daily_text, affirmation, deeper_text, created_at, updated_at`

// FindByDate returns all rows for one (date, hemisphere) key. This is the
// daily resolver's only read path; matching against requested labels happens
// in memory on the returned set. Store I/O failures surface as
// STORE_UNAVAILABLE, never as NOT_FOUND.
func FindByDate(db *sql.DB, date string, hemisphere zodiac.Hemisphere) ([]Row, error) {
	query := `SELECT ` + rowColumns + ` FROM horoscopes WHERE date = ? AND hemisphere = ? ORDER BY sign_norm`
	rows, err := db.Query(query, date, string(hemisphere))
	if err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, errors.NewStoreUnavailable(err)
		}
		result = append(result, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}
	return result, nil
}

// Insert stores a new row. A (sign_norm, hemisphere, date) collision returns
// CONFLICT.
func Insert(db *sql.DB, r *Row) error {
	query := `
		INSERT INTO horoscopes (` + rowColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query,
		r.ID, r.SignRaw, r.SignNorm, r.Hemisphere, r.Date,
		r.DailyText, r.Affirmation, r.DeeperText, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewConflict("row already exists for " + r.SignRaw + "/" + r.Hemisphere + "/" + r.Date)
		}
		return errors.NewStoreUnavailable(err)
	}
	return nil
}

// Upsert stores a row, replacing any existing row with the same
// (sign_norm, hemisphere, date) key. The existing row's id and created_at
// are preserved.
func Upsert(db *sql.DB, r *Row) error {
	query := `
		INSERT INTO horoscopes (` + rowColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sign_norm, hemisphere, date) DO UPDATE SET
			sign_raw = excluded.sign_raw,
			daily_text = excluded.daily_text,
			affirmation = excluded.affirmation,
			deeper_text = excluded.deeper_text,
			updated_at = excluded.updated_at
	`
	_, err := db.Exec(query,
		r.ID, r.SignRaw, r.SignNorm, r.Hemisphere, r.Date,
		r.DailyText, r.Affirmation, r.DeeperText, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return errors.NewStoreUnavailable(err)
	}
	return nil
}

// Exists reports whether a row is present for the exact key.
func Exists(db *sql.DB, signNorm string, hemisphere zodiac.Hemisphere, date string) (bool, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM horoscopes WHERE sign_norm = ? AND hemisphere = ? AND date = ?`,
		signNorm, string(hemisphere), date).Scan(&n)
	if err != nil {
		return false, errors.NewStoreUnavailable(err)
	}
	return n > 0, nil
}

// CountByDate returns the number of rows stored for one (date, hemisphere).
func CountByDate(db *sql.DB, date string, hemisphere zodiac.Hemisphere) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM horoscopes WHERE date = ? AND hemisphere = ?`,
		date, string(hemisphere)).Scan(&n)
	if err != nil {
		return 0, errors.NewStoreUnavailable(err)
	}
	return n, nil
}

// ListDates returns the distinct content dates in descending order, capped
// at limit (0 means no cap).
func ListDates(db *sql.DB, limit int) ([]string, error) {
	query := `SELECT DISTINCT date FROM horoscopes ORDER BY date DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, errors.NewStoreUnavailable(err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreUnavailable(err)
	}
	return dates, nil
}

// DeleteBefore removes all rows dated strictly before the cutoff and returns
// the number removed. Dates are YYYY-MM-DD, so string comparison orders
// correctly.
func DeleteBefore(db *sql.DB, cutoff string) (int64, error) {
	res, err := db.Exec(`DELETE FROM horoscopes WHERE date < ?`, cutoff)
	if err != nil {
		return 0, errors.NewStoreUnavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewStoreUnavailable(err)
	}
	return n, nil
}

// FormatDate renders a time as the store's date key.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (*Row, error) {
	var r Row
	var affirmation, deeper sql.NullString
	err := s.Scan(&r.ID, &r.SignRaw, &r.SignNorm, &r.Hemisphere, &r.Date,
		&r.DailyText, &affirmation, &deeper, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if affirmation.Valid {
		r.Affirmation = &affirmation.String
	}
	if deeper.Valid {
		r.DeeperText = &deeper.String
	}
	return &r, nil
}
