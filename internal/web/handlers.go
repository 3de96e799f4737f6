package web

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/mishcd/astrocusp/internal/config"
	"github.com/mishcd/astrocusp/internal/errors"
	"github.com/mishcd/astrocusp/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
	dedupe   *ops.Deduper
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, renderer *Renderer) *Handlers {
	return &Handlers{db: db, cfg: cfg, renderer: renderer, dedupe: ops.NewDeduper()}
}

// HandleToday handles GET /today — current planetary positions and moon phase.
func (h *Handlers) HandleToday(w http.ResponseWriter, r *http.Request) {
	sky, err := ops.Sky(h.cfg, ops.SkyInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	moon, err := ops.Moon(ops.MoonInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "today", TodayPageData{
		PageData: PageData{
			Title:   "Today's Sky",
			Version: h.renderer.version,
			Nav:     "today",
		},
		Sky:        sky,
		Moon:       moon,
		Hemisphere: h.hemisphere(r),
	})
}

// HandleHoroscope handles GET /horoscope — the daily reading for a sign.
func (h *Handlers) HandleHoroscope(w http.ResponseWriter, r *http.Request) {
	sign := r.URL.Query().Get("sign")

	data := HoroscopePageData{
		PageData: PageData{
			Title:   "Daily Horoscope",
			Version: h.renderer.version,
			Nav:     "horoscope",
		},
		Sign:       sign,
		Hemisphere: h.hemisphere(r),
		Date:       r.URL.Query().Get("date"),
		HasQuery:   sign != "",
	}

	if sign == "" {
		h.renderer.renderPage(w, "horoscope", data)
		return
	}

	result, err := h.daily(r, sign)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data.Found = result.Found
	data.Row = result
	if result.Found {
		data.Date = result.AnchorDate
		data.RenderedHTML = renderMarkdown(result.Row.DailyText)
	}

	h.renderer.renderPage(w, "horoscope", data)
}

// HandleEvents handles GET /events — the upcoming-events window.
func (h *Handlers) HandleEvents(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Events(h.cfg, ops.EventsInput{
		Hemisphere: r.URL.Query().Get("hemisphere"),
		WindowDays: parseIntParam(r, "window_days", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "events", EventsPageData{
		PageData: PageData{
			Title:   "Upcoming Events",
			Version: h.renderer.version,
			Nav:     "events",
		},
		Hemisphere: result.Hemisphere,
		WindowDays: result.WindowDays,
		Events:     result.Events,
	})
}

// HandleCoverage handles GET /coverage — stored content summary by date.
func (h *Handlers) HandleCoverage(w http.ResponseWriter, r *http.Request) {
	result, err := ops.List(h.db, ops.ListInput{Limit: parseIntParam(r, "limit", 30)})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "coverage", CoveragePageData{
		PageData: PageData{
			Title:   "Content Coverage",
			Version: h.renderer.version,
			Nav:     "coverage",
		},
		Dates: result.Dates,
	})
}

// HandleAPISky handles GET /api/sky.
func (h *Handlers) HandleAPISky(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Sky(h.cfg, ops.SkyInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleAPIMoon handles GET /api/moon.
func (h *Handlers) HandleAPIMoon(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Moon(ops.MoonInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleAPIHoroscope handles GET /api/horoscope.
func (h *Handlers) HandleAPIHoroscope(w http.ResponseWriter, r *http.Request) {
	sign := r.URL.Query().Get("sign")
	if sign == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("sign query parameter is required"))
		return
	}

	result, err := h.daily(r, sign)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleAPIEvents handles GET /api/events.
func (h *Handlers) HandleAPIEvents(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Events(h.cfg, ops.EventsInput{
		Hemisphere: r.URL.Query().Get("hemisphere"),
		WindowDays: parseIntParam(r, "window_days", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// daily runs the deduplicated Daily operation with the request's parameters.
func (h *Handlers) daily(r *http.Request, sign string) (*ops.DailyOutput, error) {
	return h.dedupe.Daily(h.db, h.cfg, ops.DailyInput{
		Sign:               sign,
		Hemisphere:         r.URL.Query().Get("hemisphere"),
		Date:               r.URL.Query().Get("date"),
		Timezone:           r.URL.Query().Get("timezone"),
		SingleSignFallback: parseBoolParam(r, "single_sign_fallback"),
	})
}

// hemisphere reports the effective hemisphere for display.
func (h *Handlers) hemisphere(r *http.Request) string {
	if q := r.URL.Query().Get("hemisphere"); q != "" {
		return q
	}
	if h.cfg != nil && h.cfg.DefaultHemisphere != "" {
		return h.cfg.DefaultHemisphere
	}
	return "Northern"
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}
