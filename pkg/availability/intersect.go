package availability

import (
	"errors"
	"slices"
)

// ErrNoParticipants is returned when there is nobody to intersect.
var ErrNoParticipants = errors.New("no participants")

// Intersect returns the canonical pairwise intersection of two interval sets.
func Intersect(a, b []Interval) []Interval {
	var out []Interval
	for _, x := range a {
		for _, y := range b {
			start := max(x.Start, y.Start)
			end := min(x.End, y.End)
			if start < end {
				out = append(out, Interval{Start: start, End: end})
			}
		}
	}
	return Merge(out)
}

// IntersectAll folds every person's free intervals into the set of windows in
// which all of them are free. People are visited in identifier order and the
// accumulator is kept canonical, so the result does not depend on map order.
func IntersectAll(perPerson map[string][]Interval) ([]Interval, error) {
	if len(perPerson) == 0 {
		return nil, ErrNoParticipants
	}
	people := make([]string, 0, len(perPerson))
	for p := range perPerson {
		people = append(people, p)
	}
	slices.Sort(people)

	common := Merge(perPerson[people[0]])
	for _, p := range people[1:] {
		if len(common) == 0 {
			break
		}
		common = Intersect(common, perPerson[p])
	}
	return common, nil
}
