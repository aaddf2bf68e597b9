package availability

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognizedTimeFormat is returned when a raw value is not a numeric hour,
// an "HH:MM[:SS]" string or a time-of-day value.
var ErrUnrecognizedTimeFormat = errors.New("unrecognized time format")

// Hour is a fractional clock hour, e.g. 8.5 is 08:30.
type Hour float64

// NoTime marks an absent time value. It is never a valid Hour.
const NoTime Hour = -1

// IsSet reports whether h holds a time rather than the NoTime marker.
func (h Hour) IsSet() bool {
	return h != NoTime
}

func (h Hour) valid() bool {
	f := float64(h)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

// RawKind tags the shape of a RawTime.
type RawKind int

const (
	KindNone RawKind = iota
	KindNumeric
	KindText
	KindClock
)

func (k RawKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	case KindClock:
		return "clock"
	}
	return "unknown"
}

// RawTime is a time value as it arrived from outside, resolved to one of the
// recognised shapes at ingestion.
type RawTime struct {
	Kind    RawKind
	Numeric float64
	Text    string
	Clock   time.Time
}

// NumericTime wraps an hour number.
func NumericTime(v float64) RawTime { return RawTime{Kind: KindNumeric, Numeric: v} }

// TextTime wraps an "HH:MM[:SS]" string.
func TextTime(s string) RawTime { return RawTime{Kind: KindText, Text: s} }

// ClockTime wraps a time-of-day value; the date part is ignored.
func ClockTime(t time.Time) RawTime { return RawTime{Kind: KindClock, Clock: t} }

func (r RawTime) String() string {
	switch r.Kind {
	case KindNone:
		return "<none>"
	case KindNumeric:
		return strconv.FormatFloat(r.Numeric, 'f', -1, 64)
	case KindText:
		return strconv.Quote(r.Text)
	case KindClock:
		return r.Clock.Format("15:04:05")
	}
	return "<invalid>"
}

// ParseRaw classifies a cell or field read as text. Blank means no time, a
// float literal is an hour number and anything else is kept as text for
// Normalize to accept or reject.
func ParseRaw(s string) RawTime {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null") {
		return RawTime{}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return NumericTime(v)
	}
	return TextTime(s)
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// Normalize converts a raw time value to a fractional hour. Absent values map
// to NoTime without error.
func Normalize(v RawTime) (Hour, error) {
	switch v.Kind {
	case KindNone:
		return NoTime, nil
	case KindNumeric:
		h := Hour(v.Numeric)
		if !h.valid() {
			return NoTime, fmt.Errorf("%w: %s", ErrUnrecognizedTimeFormat, v)
		}
		return h, nil
	case KindText:
		m := clockPattern.FindStringSubmatch(strings.TrimSpace(v.Text))
		if m == nil {
			return NoTime, fmt.Errorf("%w: %s", ErrUnrecognizedTimeFormat, v)
		}
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		if hours > 24 || minutes > 59 || (hours == 24 && minutes > 0) {
			return NoTime, fmt.Errorf("%w: %s", ErrUnrecognizedTimeFormat, v)
		}
		if m[3] != "" {
			if seconds, _ := strconv.Atoi(m[3]); seconds > 59 || (hours == 24 && seconds > 0) {
				return NoTime, fmt.Errorf("%w: %s", ErrUnrecognizedTimeFormat, v)
			}
		}
		return Hour(float64(hours) + float64(minutes)/60), nil
	case KindClock:
		return Hour(float64(v.Clock.Hour()) + float64(v.Clock.Minute())/60), nil
	}
	return NoTime, fmt.Errorf("%w: kind %d", ErrUnrecognizedTimeFormat, v.Kind)
}

// FormatHour renders h as "HH:MM". The hour is truncated and the remaining
// minutes rounded half-up, carrying 60 minutes into the next hour.
func FormatHour(h Hour) string {
	if !h.valid() {
		return "--:--"
	}
	hours := int(h)
	minutes := int(math.Floor((float64(h)-float64(hours))*60 + 0.5))
	if minutes >= 60 {
		hours++
		minutes -= 60
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
