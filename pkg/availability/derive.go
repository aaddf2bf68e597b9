package availability

// DeriveFree returns the complement of busy within the window. Busy intervals
// are clipped to the window; those with Start >= End are left out of the
// computation and returned as malformed so the caller can report them.
func DeriveFree(busy []Interval, w Window) (free []Interval, malformed []Interval) {
	clipped := make([]Interval, 0, len(busy))
	for _, b := range busy {
		if !b.Valid() {
			malformed = append(malformed, b)
			continue
		}
		if c, ok := w.Clip(b); ok {
			clipped = append(clipped, c)
		}
	}
	sortIntervals(clipped)

	// The cursor only moves forward, which folds overlapping and nested
	// busy intervals without a separate merge pass.
	cursor := w.Start
	for _, b := range clipped {
		if b.Start > cursor {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		cursor = max(cursor, b.End)
	}
	if cursor < w.End {
		free = append(free, Interval{Start: cursor, End: w.End})
	}
	return free, malformed
}
