package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mishcd/astrocusp/internal/config"
	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db     *sql.DB
	cfg    *config.Config
	dedupe *ops.Deduper
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg, dedupe: ops.NewDeduper()}
}

// Request types for each tool

// CuspRequest represents the arguments for astro_cusp.
type CuspRequest struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Day   int   `json:"day"`
	Seed  int64 `json:"seed,omitempty"`
}

// RisingRequest represents the arguments for astro_rising.
type RisingRequest struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// EventsRequest represents the arguments for astro_events.
type EventsRequest struct {
	Hemisphere string `json:"hemisphere,omitempty"`
	WindowDays int    `json:"window_days,omitempty"`
}

// DailyRequest represents the arguments for horoscope_daily.
type DailyRequest struct {
	Sign               string `json:"sign"`
	Hemisphere         string `json:"hemisphere,omitempty"`
	Date               string `json:"date,omitempty"`
	Timezone           string `json:"timezone,omitempty"`
	SingleSignFallback bool   `json:"single_sign_fallback,omitempty"`
}

// ImportRequest represents the arguments for horoscope_import.
type ImportRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

// ListRequest represents the arguments for horoscope_list.
type ListRequest struct {
	Limit int `json:"limit,omitempty"`
}

// PurgeRequest represents the arguments for horoscope_purge.
type PurgeRequest struct {
	Before   string `json:"before,omitempty"`
	KeepDays int    `json:"keep_days,omitempty"`
}

// Handler implementations

// HandleCusp handles the astro_cusp tool call.
func (h *Handlers) HandleCusp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CuspRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Cusp(ops.CuspInput{
		Year:  input.Year,
		Month: input.Month,
		Day:   input.Day,
		Seed:  input.Seed,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRising handles the astro_rising tool call.
func (h *Handlers) HandleRising(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RisingRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Rising(ops.RisingInput{
		Year:   input.Year,
		Month:  input.Month,
		Day:    input.Day,
		Hour:   input.Hour,
		Minute: input.Minute,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSky handles the astro_sky tool call.
func (h *Handlers) HandleSky(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Sky(h.cfg, ops.SkyInput{})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleMoon handles the astro_moon tool call.
func (h *Handlers) HandleMoon(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Moon(ops.MoonInput{})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleEvents handles the astro_events tool call.
func (h *Handlers) HandleEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EventsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Events(h.cfg, ops.EventsInput{
		Hemisphere: input.Hemisphere,
		WindowDays: input.WindowDays,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDaily handles the horoscope_daily tool call. Concurrent calls for
// the same key share one store round trip.
func (h *Handlers) HandleDaily(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DailyRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.dedupe.Daily(h.db, h.cfg, ops.DailyInput{
		Sign:               input.Sign,
		Hemisphere:         input.Hemisphere,
		Date:               input.Date,
		Timezone:           input.Timezone,
		SingleSignFallback: input.SingleSignFallback,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleImport handles the horoscope_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Import(h.db, ops.ImportInput{
		Path: input.Path,
		Mode: ops.ImportMode(input.Mode),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the horoscope_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.db, ops.ListInput{Limit: input.Limit})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePurge handles the horoscope_purge tool call.
func (h *Handlers) HandlePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PurgeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Purge(h.db, ops.PurgeInput{
		Before:   input.Before,
		KeepDays: input.KeepDays,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if astroErr, ok := err.(*errors.AstroError); ok {
		errorObj := map[string]any{
			"code":    astroErr.Code,
			"message": astroErr.Message,
			"status":  astroErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if astroErr.Code != errors.ErrInternal && astroErr.Details != nil {
			errorObj["details"] = astroErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
