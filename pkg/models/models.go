package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
)

// TimeValue is a start or end time as sent by a client: a number of hours,
// an "HH:MM[:SS]" string, an RFC3339 timestamp (only its time of day is used)
// or null.
type TimeValue struct {
	availability.RawTime
}

// UnmarshalJSON resolves the JSON shape into a tagged raw time.
func (v *TimeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		v.RawTime = availability.RawTime{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			v.RawTime = availability.ClockTime(ts)
			return nil
		}
		v.RawTime = availability.ParseRaw(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %s", availability.ErrUnrecognizedTimeFormat, data)
	}
	v.RawTime = availability.NumericTime(f)
	return nil
}

// MarshalJSON writes the value back in its original shape.
func (v TimeValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case availability.KindNumeric:
		return json.Marshal(v.Numeric)
	case availability.KindText:
		return json.Marshal(v.Text)
	case availability.KindClock:
		return json.Marshal(v.Clock.Format(time.RFC3339))
	}
	return []byte("null"), nil
}

// BusyRecord is one row of a person's weekly timetable.
type BusyRecord struct {
	Person string    `json:"person"`
	Day    string    `json:"day"`
	Start  TimeValue `json:"start"`
	End    TimeValue `json:"end"`
}

// AvailabilityInput is the data structure for the availability endpoint
type AvailabilityInput struct {
	WindowStart *int         `json:"window_start,omitempty"`
	WindowEnd   *int         `json:"window_end,omitempty"`
	Step        *float64     `json:"step,omitempty"`
	Days        []string     `json:"days,omitempty"`
	People      []string     `json:"people,omitempty"`
	Records     []BusyRecord `json:"records"`
}

// TimeRange is an interval as both hours and clock strings
type TimeRange struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	FreeCount *int    `json:"free_count,omitempty"`
}

// DayView is one day of an availability response
type DayView struct {
	Day          string      `json:"day"`
	Status       string      `json:"status"`
	Participants int         `json:"participants"`
	Common       []TimeRange `json:"common"`
	Best         []TimeRange `json:"best_alternative,omitempty"`
	MaxFree      int         `json:"max_free"`
	Slots        []TimeRange `json:"slots,omitempty"`
}

// WarningView is a skipped or corrected record
type WarningView struct {
	Code   string `json:"code"`
	Person string `json:"person,omitempty"`
	Day    string `json:"day,omitempty"`
	Row    int    `json:"row,omitempty"`
	Detail string `json:"detail"`
}

// AvailabilityResponse is the data structure for the availability result
type AvailabilityResponse struct {
	RunID        string        `json:"run_id"`
	Window       TimeRange     `json:"window"`
	Step         float64       `json:"step"`
	Participants []string      `json:"participants"`
	Days         []DayView     `json:"days"`
	Warnings     []WarningView `json:"warnings,omitempty"`
}

func rangeOf(iv availability.Interval) TimeRange {
	return TimeRange{
		Start: float64(iv.Start),
		End:   float64(iv.End),
		From:  availability.FormatHour(iv.Start),
		To:    availability.FormatHour(iv.End),
	}
}

func rangesOfSlots(slots []availability.Slot) []TimeRange {
	if len(slots) == 0 {
		return nil
	}
	out := make([]TimeRange, 0, len(slots))
	for _, s := range slots {
		tr := rangeOf(s.Interval())
		count := s.Free
		tr.FreeCount = &count
		out = append(out, tr)
	}
	return out
}

// NewAvailabilityResponse flattens an engine result for JSON clients. Full
// scan slots are only included when withSlots is set.
func NewAvailabilityResponse(runID string, res *availability.Result, withSlots bool) AvailabilityResponse {
	resp := AvailabilityResponse{
		RunID:        runID,
		Window:       rangeOf(res.Window.Interval()),
		Step:         float64(res.Step),
		Participants: res.Participants,
		Days:         make([]DayView, 0, len(res.Days)),
	}
	for _, d := range res.Days {
		view := DayView{
			Day:          d.Day,
			Status:       string(d.Status),
			Participants: d.Participants,
			Common:       make([]TimeRange, 0, len(d.Common)),
			Best:         rangesOfSlots(d.Best),
			MaxFree:      d.MaxFree,
		}
		for _, iv := range d.Common {
			view.Common = append(view.Common, rangeOf(iv))
		}
		if withSlots {
			view.Slots = rangesOfSlots(d.Slots)
		}
		resp.Days = append(resp.Days, view)
	}
	for _, w := range res.Warnings {
		resp.Warnings = append(resp.Warnings, WarningView(w))
	}
	return resp
}
