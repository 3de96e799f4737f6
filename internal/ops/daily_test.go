package ops

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mishcd/astrocusp/internal/config"
	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/store"
	"github.com/mishcd/astrocusp/internal/zodiac"
)

func testStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Init(t.TempDir())
	if err != nil {
		t.Fatalf("store.Init failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedRow(t *testing.T, db *sql.DB, sign, date string, hemisphere zodiac.Hemisphere) {
	t.Helper()
	nowUnix := time.Now().Unix()
	err := store.Insert(db, &store.Row{
		ID:         "01SEED" + sign + date + string(hemisphere),
		SignRaw:    sign,
		SignNorm:   zodiac.Normalize(sign),
		Hemisphere: string(hemisphere),
		Date:       date,
		DailyText:  "Reading for " + sign,
		CreatedAt:  nowUnix,
		UpdatedAt:  nowUnix,
	})
	if err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}
}

func TestDaily_CuspMatchCaseAndDashInsensitive(t *testing.T) {
	db := testStore(t)
	seedRow(t, db, "ARIES-TAURUS CUSP", "2025-04-20", zodiac.Northern)

	out, err := Daily(db, config.DefaultConfig(), DailyInput{
		Sign:       "Aries–Taurus Cusp",
		Hemisphere: "Northern",
		Date:       "2025-04-20",
	})
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if !out.Found {
		t.Fatal("Found = false, want true")
	}
	if out.Row.SignRaw != "ARIES-TAURUS CUSP" {
		t.Errorf("matched row = %q", out.Row.SignRaw)
	}
	if out.AnchorDate != "2025-04-20" {
		t.Errorf("AnchorDate = %q", out.AnchorDate)
	}
}

func TestDaily_PureSignNoCrossMatchWithCuspRow(t *testing.T) {
	db := testStore(t)
	seedRow(t, db, "ARIES-TAURUS CUSP", "2025-04-20", zodiac.Northern)

	out, err := Daily(db, config.DefaultConfig(), DailyInput{
		Sign:       "Aries",
		Hemisphere: "Northern",
		Date:       "2025-04-20",
	})
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if out.Found {
		t.Errorf("pure-sign request matched cusp row %q, want miss", out.Row.SignRaw)
	}
}

func TestDaily_CuspNeverSubstitutesAnotherCusp(t *testing.T) {
	db := testStore(t)
	// A different cusp's content exists for the day, plus a pure Cancer row.
	seedRow(t, db, "Leo-Virgo Cusp", "2025-07-21", zodiac.Northern)
	seedRow(t, db, "Cancer", "2025-07-21", zodiac.Northern)

	out, err := Daily(db, config.DefaultConfig(), DailyInput{
		Sign:               "Cancer–Leo Cusp",
		Hemisphere:         "Northern",
		Date:               "2025-07-21",
		SingleSignFallback: true,
	})
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if out.Found {
		t.Errorf("cusp request substituted %q, want miss while another cusp row exists", out.Row.SignRaw)
	}
}

func TestDaily_CuspSingleSignFallback(t *testing.T) {
	db := testStore(t)
	// No cusp rows at all for the day; only pure rows.
	seedRow(t, db, "Cancer", "2025-07-21", zodiac.Northern)
	seedRow(t, db, "Leo", "2025-07-21", zodiac.Northern)

	// Without the opt-in: miss.
	out, err := Daily(db, config.DefaultConfig(), DailyInput{
		Sign:       "Cancer–Leo Cusp",
		Hemisphere: "Northern",
		Date:       "2025-07-21",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Found {
		t.Error("cusp request fell back to pure row without opt-in")
	}

	// With the opt-in: the first component sign's pure row.
	out, err = Daily(db, config.DefaultConfig(), DailyInput{
		Sign:               "Cancer–Leo Cusp",
		Hemisphere:         "Northern",
		Date:               "2025-07-21",
		SingleSignFallback: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Found || out.Row.SignRaw != "Cancer" {
		t.Errorf("fallback row = %+v, want pure Cancer", out.Row)
	}
}

func TestDaily_RowWithoutCuspWordStillMatches(t *testing.T) {
	db := testStore(t)
	seedRow(t, db, "Aries-Taurus", "2025-04-20", zodiac.Northern) // stored without "Cusp"

	out, err := Daily(db, config.DefaultConfig(), DailyInput{
		Sign:       "Aries–Taurus Cusp",
		Hemisphere: "Northern",
		Date:       "2025-04-20",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Found {
		t.Fatal("row stored without the Cusp word should match the cusp request")
	}
}

func TestDaily_HemisphereIsolation(t *testing.T) {
	db := testStore(t)
	seedRow(t, db, "Gemini", "2025-06-01", zodiac.Southern)

	out, err := Daily(db, config.DefaultConfig(), DailyInput{
		Sign:       "Gemini",
		Hemisphere: "Northern",
		Date:       "2025-06-01",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Found {
		t.Error("Northern request matched Southern row")
	}

	out, err = Daily(db, config.DefaultConfig(), DailyInput{
		Sign:       "Gemini",
		Hemisphere: "SH", // short form
		Date:       "2025-06-01",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Found {
		t.Error("short-form hemisphere failed to match")
	}
}

func TestDaily_TodayAnchorsAcrossTimezoneSkew(t *testing.T) {
	db := testStore(t)
	// Content published under the UTC date; the user's local zone is a day
	// ahead at query time.
	seedRow(t, db, "Virgo", "2025-08-31", zodiac.Southern)

	// 2025-08-31 23:30 UTC is already 2025-09-01 09:30 in Sydney.
	clock := FixedClock{At: time.Date(2025, time.August, 31, 23, 30, 0, 0, time.UTC)}
	out, err := Daily(db, config.DefaultConfig(), DailyInput{
		Sign:       "Virgo",
		Hemisphere: "Southern",
		Timezone:   "Australia/Sydney",
		Clock:      clock,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Found {
		t.Fatal("UTC-today anchor should have matched")
	}
	if out.AnchorDate != "2025-08-31" {
		t.Errorf("AnchorDate = %q, want 2025-08-31", out.AnchorDate)
	}
}

func TestDaily_EmptyCandidates(t *testing.T) {
	db := testStore(t)
	out, err := Daily(db, config.DefaultConfig(), DailyInput{
		Sign:       "––",
		Hemisphere: "Northern",
		Date:       "2025-04-20",
	})
	if err != nil {
		t.Fatalf("label noise must not error: %v", err)
	}
	if out.Found {
		t.Error("label noise resolved to content")
	}
}

func TestDaily_InvalidInputs(t *testing.T) {
	db := testStore(t)

	_, err := Daily(db, config.DefaultConfig(), DailyInput{
		Sign: "Aries", Hemisphere: "equatorial", Date: "2025-04-20",
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("bad hemisphere error = %v, want INVALID_REQUEST", err)
	}

	_, err = Daily(db, config.DefaultConfig(), DailyInput{
		Sign: "Aries", Hemisphere: "Northern", Date: "20-04-2025",
	})
	if !errors.Is(err, errors.ErrInvalidDate) {
		t.Errorf("bad date error = %v, want INVALID_DATE", err)
	}

	_, err = Daily(db, config.DefaultConfig(), DailyInput{
		Sign: "Aries", Hemisphere: "Northern", Timezone: "Mars/Olympus",
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("bad timezone error = %v, want INVALID_REQUEST", err)
	}
}

func TestDaily_StoreErrorIsNotMaskedAsMiss(t *testing.T) {
	db := testStore(t)
	db.Close() // force I/O failure

	_, err := Daily(db, config.DefaultConfig(), DailyInput{
		Sign:       "Aries",
		Hemisphere: "Northern",
		Date:       "2025-04-20",
	})
	if !errors.Is(err, errors.ErrStoreUnavailable) {
		t.Errorf("closed store error = %v, want STORE_UNAVAILABLE", err)
	}
}

func TestDeduper_SharesResult(t *testing.T) {
	db := testStore(t)
	seedRow(t, db, "Aries", "2025-04-20", zodiac.Northern)

	d := NewDeduper()
	input := DailyInput{Sign: "Aries", Hemisphere: "Northern", Date: "2025-04-20"}

	done := make(chan *DailyOutput, 8)
	for i := 0; i < 8; i++ {
		go func() {
			out, err := d.Daily(db, config.DefaultConfig(), input)
			if err != nil {
				t.Error(err)
			}
			done <- out
		}()
	}
	for i := 0; i < 8; i++ {
		out := <-done
		if out == nil || !out.Found {
			t.Error("deduped resolution lost the result")
		}
	}
}
