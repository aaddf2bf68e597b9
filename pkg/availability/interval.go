package availability

import (
	"cmp"
	"slices"
)

// Interval is a half-open span [Start, End) of fractional hours.
type Interval struct {
	Start Hour `json:"start"`
	End   Hour `json:"end"`
}

// Valid reports whether the interval is non-empty.
func (iv Interval) Valid() bool {
	return iv.Start < iv.End
}

// Duration is the interval length in hours.
func (iv Interval) Duration() Hour {
	return iv.End - iv.Start
}

// Overlaps reports whether two half-open intervals share any instant.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && o.Start < iv.End
}

// Contains reports whether t falls inside [Start, End).
func (iv Interval) Contains(t Hour) bool {
	return iv.Start <= t && t < iv.End
}

func (iv Interval) String() string {
	return FormatHour(iv.Start) + " - " + FormatHour(iv.End)
}

func sortIntervals(ivs []Interval) {
	slices.SortFunc(ivs, func(a, b Interval) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
}

// Merge returns the canonical form of ivs: sorted, with overlapping or
// touching intervals joined. Empty intervals are dropped. The input is not
// modified.
func Merge(ivs []Interval) []Interval {
	sorted := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Valid() {
			sorted = append(sorted, iv)
		}
	}
	sortIntervals(sorted)

	out := make([]Interval, 0, len(sorted))
	for _, iv := range sorted {
		if n := len(out); n > 0 && iv.Start <= out[n-1].End {
			out[n-1].End = max(out[n-1].End, iv.End)
			continue
		}
		out = append(out, iv)
	}
	return out
}
