package availability

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Status is the terminal state reached for one day.
type Status string

const (
	// StatusAllFree means at least one window exists where everybody is free.
	StatusAllFree Status = "all_free"
	// StatusPartial means nobody-left-out windows do not exist and the best
	// partial overlap is reported instead.
	StatusPartial Status = "partial"
	// StatusNoData means there were no participants at all.
	StatusNoData Status = "no_data"
)

// Warning codes reported alongside a result.
const (
	WarnMalformedInterval = "malformed_interval"
	WarnUnknownDay        = "unknown_day"
	WarnMissingPerson     = "missing_person"
	WarnUnrecognizedTime  = "unrecognized_time_format"
	WarnMissingTime       = "missing_time"
)

// BusyInterval is one person's busy span on one day.
type BusyInterval struct {
	Person string `json:"person"`
	Day    string `json:"day"`
	Start  Hour   `json:"start"`
	End    Hour   `json:"end"`
}

// Warning is a data-quality problem that was recovered from.
type Warning struct {
	Code   string `json:"code"`
	Person string `json:"person,omitempty"`
	Day    string `json:"day,omitempty"`
	Row    int    `json:"row,omitempty"`
	Detail string `json:"detail"`
}

func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(w.Code)
	if w.Row > 0 {
		fmt.Fprintf(&b, " row %d", w.Row)
	}
	if w.Person != "" {
		fmt.Fprintf(&b, " person=%s", w.Person)
	}
	if w.Day != "" {
		fmt.Fprintf(&b, " day=%s", w.Day)
	}
	b.WriteString(": ")
	b.WriteString(w.Detail)
	return b.String()
}

// Input is everything one computation needs.
type Input struct {
	// Days are processed and reported in this order. Empty means DefaultDays.
	Days []string
	// Participants are counted even if they have no busy records.
	Participants []string
	Records      []BusyInterval
}

// DayResult is the outcome for one day. Common is set for StatusAllFree and
// StatusNoData; Slots, Best and MaxFree for StatusPartial.
type DayResult struct {
	Day          string     `json:"day"`
	Status       Status     `json:"status"`
	Participants int        `json:"participants"`
	Common       []Interval `json:"common,omitempty"`
	Slots        []Slot     `json:"slots,omitempty"`
	Best         []Slot     `json:"best,omitempty"`
	MaxFree      int        `json:"max_free"`
}

// Result holds every day's outcome in input day order.
type Result struct {
	Window       Window      `json:"window"`
	Step         Hour        `json:"step"`
	Participants []string    `json:"participants"`
	Days         []DayResult `json:"days"`
	Warnings     []Warning   `json:"warnings,omitempty"`
}

// Recorder receives per-day outcomes and warnings, e.g. for metrics.
type Recorder interface {
	ObserveDay(status Status)
	ObserveWarning(code string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveDay(Status)     {}
func (nopRecorder) ObserveWarning(string) {}

// Engine computes common free windows day by day.
type Engine struct {
	window   Window
	step     Hour
	log      zerolog.Logger
	recorder Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithStep sets the partial scan granularity in hours.
func WithStep(step Hour) Option {
	return func(e *Engine) { e.step = step }
}

// WithLogger sets the logger used for data-quality warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithRecorder sets the outcome recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// NewEngine validates the window and step before any computation runs.
func NewEngine(w Window, opts ...Option) (*Engine, error) {
	e := &Engine{
		window:   w,
		step:     DefaultStep,
		log:      zerolog.Nop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := validStep(e.step); err != nil {
		return nil, err
	}
	return e, nil
}

// Window returns the configured working window.
func (e *Engine) Window() Window { return e.window }

// Step returns the configured scan step.
func (e *Engine) Step() Hour { return e.step }

// Compute runs every day independently. Problems with single records are
// reported as warnings and never stop the other days, but records that all
// miss the requested days fail with ErrNoMatchingDays.
func (e *Engine) Compute(in Input) (*Result, error) {
	requested := uniqueNonEmpty(in.Days)
	if len(requested) == 0 {
		requested = slices.Clone(DefaultDays)
	}
	// Records are matched on DayKey and reported under the requested label.
	labels := make(map[string]string, len(requested))
	days := make([]string, 0, len(requested))
	for _, d := range requested {
		k := DayKey(d)
		if _, dup := labels[k]; dup {
			continue
		}
		labels[k] = d
		days = append(days, d)
	}

	var warnings []Warning
	people := uniqueNonEmpty(in.Participants)
	seen := make(map[string]bool, len(people))
	for _, p := range people {
		seen[p] = true
	}

	busy := make(map[string]map[string][]Interval, len(days))
	var named, matched int
	for _, r := range in.Records {
		r.Person = strings.TrimSpace(r.Person)
		r.Day = strings.TrimSpace(r.Day)
		if r.Person == "" {
			warnings = append(warnings, Warning{Code: WarnMissingPerson, Day: r.Day, Detail: "record without person skipped"})
			continue
		}
		if !seen[r.Person] {
			seen[r.Person] = true
			people = append(people, r.Person)
		}
		named++
		day, ok := labels[DayKey(r.Day)]
		if !ok {
			warnings = append(warnings, Warning{Code: WarnUnknownDay, Person: r.Person, Day: r.Day, Detail: "day not in the requested day set"})
			continue
		}
		matched++
		if busy[day] == nil {
			busy[day] = make(map[string][]Interval)
		}
		busy[day][r.Person] = append(busy[day][r.Person], Interval{Start: r.Start, End: r.End})
	}
	if named > 0 && matched == 0 {
		return nil, fmt.Errorf("%w: requested %s", ErrNoMatchingDays, strings.Join(days, ", "))
	}
	slices.Sort(people)

	out := make([]DayResult, len(days))
	dayWarnings := make([][]Warning, len(days))
	var g errgroup.Group
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			res, warns, err := e.computeDay(day, people, busy[day])
			if err != nil {
				return fmt.Errorf("day %s: %w", day, err)
			}
			out[i] = res
			dayWarnings[i] = warns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, w := range dayWarnings {
		warnings = append(warnings, w...)
	}

	for _, w := range warnings {
		e.recorder.ObserveWarning(w.Code)
		e.log.Warn().Str("code", w.Code).Str("person", w.Person).Str("day", w.Day).Msg(w.Detail)
	}
	for _, d := range out {
		e.recorder.ObserveDay(d.Status)
	}

	return &Result{
		Window:       e.window,
		Step:         e.step,
		Participants: people,
		Days:         out,
		Warnings:     warnings,
	}, nil
}

func (e *Engine) computeDay(day string, people []string, busy map[string][]Interval) (DayResult, []Warning, error) {
	res := DayResult{Day: day, Participants: len(people)}
	var warnings []Warning

	free := make(map[string][]Interval, len(people))
	for _, p := range people {
		f, malformed := DeriveFree(busy[p], e.window)
		for _, m := range malformed {
			warnings = append(warnings, Warning{
				Code:   WarnMalformedInterval,
				Person: p,
				Day:    day,
				Detail: fmt.Sprintf("busy interval %s-%s ignored: start must be before end", FormatHour(m.Start), FormatHour(m.End)),
			})
		}
		free[p] = f
	}

	common, err := IntersectAll(free)
	if errors.Is(err, ErrNoParticipants) {
		res.Status = StatusNoData
		res.Common = []Interval{e.window.Interval()}
		return res, warnings, nil
	}
	if err != nil {
		return res, warnings, err
	}
	if len(common) > 0 {
		res.Status = StatusAllFree
		res.Common = common
		res.MaxFree = len(people)
		return res, warnings, nil
	}

	perBusy := make(map[string][]Interval, len(people))
	for _, p := range people {
		perBusy[p] = busy[p]
	}
	slots, err := ScanPartial(perBusy, e.window, e.step)
	if err != nil {
		return res, warnings, err
	}
	res.Status = StatusPartial
	res.Slots = slots
	res.MaxFree, res.Best = Best(slots)
	return res, warnings, nil
}

func uniqueNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
