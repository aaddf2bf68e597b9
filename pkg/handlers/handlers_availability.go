package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
	"github.com/arnavshah/freewindow-api-go/pkg/config"
	"github.com/arnavshah/freewindow-api-go/pkg/database"
	"github.com/arnavshah/freewindow-api-go/pkg/ingest"
	"github.com/arnavshah/freewindow-api-go/pkg/models"
	"github.com/arnavshah/freewindow-api-go/pkg/report"
)

// runParams are the per-request overrides of the configured defaults.
type runParams struct {
	windowStart *int
	windowEnd   *int
	step        *float64
	days        []string
	people      []string
}

// statusFor maps computation errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, availability.ErrInvalidWindow),
		errors.Is(err, availability.ErrInvalidStep),
		errors.Is(err, availability.ErrUnrecognizedTimeFormat),
		errors.Is(err, availability.ErrNoMatchingDays),
		errors.Is(err, ingest.ErrMissingColumns),
		errors.Is(err, ingest.ErrEmptyInput),
		errors.Is(err, ingest.ErrUnsupportedFormat):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) recorder() availability.Recorder {
	if h.Metrics == nil {
		return nil
	}
	return h.Metrics
}

func (h *Handler) engine(p runParams) (*availability.Engine, error) {
	window := h.Config.Window
	if p.windowStart != nil || p.windowEnd != nil {
		start, end := int(window.Start), int(window.End)
		if p.windowStart != nil {
			start = *p.windowStart
		}
		if p.windowEnd != nil {
			end = *p.windowEnd
		}
		w, err := availability.NewWindow(start, end)
		if err != nil {
			return nil, err
		}
		window = w
	}
	step := h.Config.Step
	if p.step != nil {
		step = availability.Hour(*p.step)
	}
	return availability.NewEngine(window,
		availability.WithStep(step),
		availability.WithLogger(h.Log),
		availability.WithRecorder(h.recorder()),
	)
}

// compute resolves rows, runs the engine and records usage for the calling key.
func (h *Handler) compute(c *gin.Context, source string, p runParams, rows []ingest.Row) (*availability.Result, error) {
	res, busy, err := h.run(p, rows)
	if h.Metrics != nil {
		participants := 0
		if res != nil {
			participants = len(res.Participants)
		}
		h.Metrics.ObserveComputation(source, participants, err)
	}
	if err != nil {
		h.Log.Warn().Err(err).Str("source", source).Str("request_id", c.GetString(ctxRequestID)).Msg("availability computation rejected")
		return nil, err
	}
	h.recordUsage(c, database.UsageDelta{People: len(res.Participants), Records: busy, Days: len(res.Days)})
	h.Log.Info().
		Str("source", source).
		Str("request_id", c.GetString(ctxRequestID)).
		Int("people", len(res.Participants)).
		Int("records", busy).
		Int("warnings", len(res.Warnings)).
		Msg("availability computed")
	return res, nil
}

func (h *Handler) run(p runParams, rows []ingest.Row) (*availability.Result, int, error) {
	engine, err := h.engine(p)
	if err != nil {
		return nil, 0, err
	}
	busy, warnings := ingest.Resolve(rows)
	if len(busy) == 0 && len(p.people) == 0 {
		return nil, 0, ingest.ErrEmptyInput
	}
	days := p.days
	if len(days) == 0 {
		days = h.Config.Days
	}
	res, err := engine.Compute(availability.Input{Days: days, Participants: p.people, Records: busy})
	if err != nil {
		return nil, 0, err
	}
	if rec := h.recorder(); rec != nil {
		for _, w := range warnings {
			rec.ObserveWarning(w.Code)
		}
	}
	res.Warnings = append(warnings, res.Warnings...)
	return res, len(busy), nil
}

// recordUsage adds this request to the key's daily usage row
func (h *Handler) recordUsage(c *gin.Context, d database.UsageDelta) {
	apiKeyRaw, exists := c.Get(ctxAPIKey)
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)
	if err := database.RecordUsage(h.DB, apiKey.ID, time.Now(), d); err != nil {
		h.Log.Error().Err(err).Uint("key_id", apiKey.ID).Msg("record usage")
	}
}

func rowsFromRecords(records []models.BusyRecord) []ingest.Row {
	rows := make([]ingest.Row, 0, len(records))
	for i, r := range records {
		rows = append(rows, ingest.Row{
			Line:   i + 1,
			Person: strings.TrimSpace(r.Person),
			Day:    strings.TrimSpace(r.Day),
			Start:  r.Start.RawTime,
			End:    r.End.RawTime,
		})
	}
	return rows
}

// AvailabilityJSON computes common free windows from a JSON body
func (h *Handler) AvailabilityJSON(c *gin.Context) {
	var input models.AvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.compute(c, "json", runParams{
		windowStart: input.WindowStart,
		windowEnd:   input.WindowEnd,
		step:        input.Step,
		days:        input.Days,
		people:      input.People,
	}, rowsFromRecords(input.Records))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	withSlots, _ := strconv.ParseBool(c.Query("slots"))
	c.JSON(http.StatusOK, models.NewAvailabilityResponse(c.GetString(ctxRequestID), res, withSlots))
}

func formInt(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.PostForm(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer hour", availability.ErrInvalidWindow, name)
	}
	return &v, nil
}

func uploadParams(c *gin.Context) (runParams, error) {
	var p runParams
	var err error
	if p.windowStart, err = formInt(c, "window_start"); err != nil {
		return p, err
	}
	if p.windowEnd, err = formInt(c, "window_end"); err != nil {
		return p, err
	}
	if raw := strings.TrimSpace(c.PostForm("step")); raw != "" {
		step, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, fmt.Errorf("%w: step %q is not a number", availability.ErrInvalidStep, raw)
		}
		p.step = &step
	}
	if raw := c.PostForm("days"); raw != "" {
		p.days = config.ParseDays(raw)
	}
	if raw := c.PostForm("people"); raw != "" {
		for _, person := range strings.Split(raw, ",") {
			if person = strings.TrimSpace(person); person != "" {
				p.people = append(p.people, person)
			}
		}
	}
	return p, nil
}

// AvailabilityUpload handles .csv and .xlsx timetable uploads
func (h *Handler) AvailabilityUpload(c *gin.Context) {
	fileHeader, _ := c.FormFile("schedule_file")
	if fileHeader == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "schedule_file is required"})
		return
	}

	p, err := uploadParams(c)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open schedule file"})
		return
	}
	defer file.Close()

	rows, err := ingest.Read(fileHeader.Filename, file, c.PostForm("sheet"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	res, err := h.compute(c, "upload", p, rows)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "csv" || c.PostForm("format") == "csv" {
		var out strings.Builder
		if err := report.CSV(&out, res); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render CSV"})
			return
		}
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out.String()))
		return
	}

	withSlots, _ := strconv.ParseBool(c.Query("slots"))
	c.JSON(http.StatusOK, models.NewAvailabilityResponse(c.GetString(ctxRequestID), res, withSlots))
}
