package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// DefaultHemisphere is used when a request does not specify one.
	// "Northern" or "Southern".
	DefaultHemisphere string `json:"default_hemisphere"`

	// Timezone is the IANA timezone used for "today" date anchoring.
	// Empty means use the system local zone, falling back to UTC if that
	// cannot be determined.
	Timezone string `json:"timezone,omitempty"`

	// EventWindowDays is the lookahead horizon for upcoming-event queries.
	EventWindowDays int `json:"event_window_days"`

	// StaleGraceDays widens the planetary model's maintained window on both
	// ends before stale-model warnings fire.
	StaleGraceDays int `json:"stale_grace_days"`

	// StrictStale rejects sky queries outside the maintained model window
	// instead of attaching a warning to the output.
	StrictStale bool `json:"strict_stale,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is
	// locked" errors). 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultHemisphere: "Northern",
		EventWindowDays:   45,
		StaleGraceDays:    120,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.astrocusp.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.DefaultHemisphere = overlay.DefaultHemisphere
	if result.DefaultHemisphere == "" {
		result.DefaultHemisphere = base.DefaultHemisphere
	}

	result.Timezone = overlay.Timezone
	if result.Timezone == "" {
		result.Timezone = base.Timezone
	}

	result.EventWindowDays = overlay.EventWindowDays
	if result.EventWindowDays == 0 {
		result.EventWindowDays = base.EventWindowDays
	}

	result.StaleGraceDays = overlay.StaleGraceDays
	if result.StaleGraceDays == 0 {
		result.StaleGraceDays = base.StaleGraceDays
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	// Booleans: overlay wins if true, else base
	result.StrictStale = base.StrictStale || overlay.StrictStale

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
