package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var cuspToolDef = mcp.NewTool("astro_cusp",
	mcp.WithDescription("Resolve a birth date to its zodiac identity: either a pure sign or one of the twelve cusps, with an approximate sun degree and a short description."),
	mcp.WithNumber("year", mcp.Required(), mcp.Description("Birth year, e.g. 1990")),
	mcp.WithNumber("month", mcp.Required(), mcp.Description("Birth month, 1-12")),
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Birth day of month")),
	mcp.WithNumber("seed", mcp.Description("Fixes the cosmetic sun-degree randomness for reproducible output; omit for a fresh roll")),
)

var risingToolDef = mcp.NewTool("astro_rising",
	mcp.WithDescription("Estimate the rising (ascendant) sign from birth date and local birth time."),
	mcp.WithNumber("year", mcp.Required(), mcp.Description("Birth year")),
	mcp.WithNumber("month", mcp.Required(), mcp.Description("Birth month, 1-12")),
	mcp.WithNumber("day", mcp.Required(), mcp.Description("Birth day of month")),
	mcp.WithNumber("hour", mcp.Required(), mcp.Description("Birth hour, 0-23")),
	mcp.WithNumber("minute", mcp.Required(), mcp.Description("Birth minute, 0-59")),
)

var skyToolDef = mcp.NewTool("astro_sky",
	mcp.WithDescription("Approximate current positions of the nine tracked planets: sign, degree within sign, and retrograde flag."),
)

var moonToolDef = mcp.NewTool("astro_moon",
	mcp.WithDescription("Current lunar phase, illumination percentage, and the next quarter phase with its date."),
)

var eventsToolDef = mcp.NewTool("astro_events",
	mcp.WithDescription("Upcoming sky events within the lookahead window: lunar quarters, ingresses, retrograde stations, solstices and equinoxes, meteor showers."),
	mcp.WithString("hemisphere", mcp.Description("Northern or Southern; defaults to the configured hemisphere")),
	mcp.WithNumber("window_days", mcp.Description("Lookahead horizon in days; defaults to the configured window")),
)

var dailyToolDef = mcp.NewTool("horoscope_daily",
	mcp.WithDescription("Fetch the stored daily reading for a sign or cusp label. Matching is case-, dash-, and suffix-insensitive; cusp content never substitutes for another cusp."),
	mcp.WithString("sign", mcp.Required(), mcp.Description("Sign or cusp label, e.g. 'Leo' or 'Cancer-Leo Cusp'")),
	mcp.WithString("hemisphere", mcp.Description("Northern or Southern; defaults to the configured hemisphere")),
	mcp.WithString("date", mcp.Description("YYYY-MM-DD; omit to anchor on today with timezone-skew fallbacks")),
	mcp.WithString("timezone", mcp.Description("IANA zone for today-anchoring, e.g. Australia/Sydney")),
	mcp.WithBoolean("single_sign_fallback", mcp.Description("Allow a cusp request to fall back to its first component sign when no cusp content exists for the date")),
)

var importToolDef = mcp.NewTool("horoscope_import",
	mcp.WithDescription("Load horoscope content rows from a JSON export file."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path to a JSON array of content records")),
	mcp.WithString("mode", mcp.Description("Collision mode: 'skip' (default) or 'replace'")),
)

var listToolDef = mcp.NewTool("horoscope_list",
	mcp.WithDescription("Summarize stored content coverage: dates with per-hemisphere row counts, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of dates to return; 0 means all")),
)

var purgeToolDef = mcp.NewTool("horoscope_purge",
	mcp.WithDescription("Remove content rows dated strictly before a cutoff."),
	mcp.WithString("before", mcp.Description("YYYY-MM-DD cutoff; rows before this date are removed")),
	mcp.WithNumber("keep_days", mcp.Description("Derive the cutoff as today minus N days when 'before' is omitted")),
)
