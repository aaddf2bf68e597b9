package availability

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidWindow is returned for a working window whose start is not before its end.
	ErrInvalidWindow = errors.New("invalid working window")
	// ErrInvalidStep is returned when the scan granularity is not a positive finite number.
	ErrInvalidStep = errors.New("scan step must be positive")
)

// DefaultStep is the partial scan granularity in hours (15 minutes).
const DefaultStep Hour = 0.25

// DefaultDays is the ordered set of days used when the caller supplies none.
var DefaultDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Window is the daily span [Start, End) within which availability is considered.
type Window struct {
	Start Hour `json:"start"`
	End   Hour `json:"end"`
}

// DefaultWindow returns the 08:00-18:00 working window.
func DefaultWindow() Window {
	return Window{Start: 8, End: 18}
}

// NewWindow builds a window from whole clock hours.
func NewWindow(startHour, endHour int) (Window, error) {
	if startHour < 0 || startHour > 23 {
		return Window{}, fmt.Errorf("%w: start hour %d outside 0-23", ErrInvalidWindow, startHour)
	}
	if endHour < 1 || endHour > 24 {
		return Window{}, fmt.Errorf("%w: end hour %d outside 1-24", ErrInvalidWindow, endHour)
	}
	if startHour >= endHour {
		return Window{}, fmt.Errorf("%w: start %d must be before end %d", ErrInvalidWindow, startHour, endHour)
	}
	return Window{Start: Hour(startHour), End: Hour(endHour)}, nil
}

// Validate checks a window built by hand rather than through NewWindow.
func (w Window) Validate() error {
	if !w.Start.valid() || !w.End.valid() || w.Start >= w.End || w.End > 24 {
		return fmt.Errorf("%w: %v-%v", ErrInvalidWindow, float64(w.Start), float64(w.End))
	}
	return nil
}

// Interval returns the window as a single free interval.
func (w Window) Interval() Interval {
	return Interval{Start: w.Start, End: w.End}
}

// Clip restricts iv to the window. ok is false when nothing is left.
func (w Window) Clip(iv Interval) (Interval, bool) {
	start := math.Max(float64(iv.Start), float64(w.Start))
	end := math.Min(float64(iv.End), float64(w.End))
	if start >= end {
		return Interval{}, false
	}
	return Interval{Start: Hour(start), End: Hour(end)}, true
}

func validStep(step Hour) error {
	if math.IsNaN(float64(step)) || math.IsInf(float64(step), 0) || step <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidStep, float64(step))
	}
	return nil
}
