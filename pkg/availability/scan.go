package availability

// Slot is a maximal run of the scan grid during which the same number of
// people are free.
type Slot struct {
	Start Hour `json:"start"`
	End   Hour `json:"end"`
	Free  int  `json:"free_count"`
}

// Interval drops the free count.
func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// ScanPartial samples the window every step hours and counts, per sample, the
// people without a busy interval covering it. Equal consecutive counts are
// joined; the last slot always ends at the window end. Boundaries are only as
// precise as the step.
func ScanPartial(perPerson map[string][]Interval, w Window, step Hour) ([]Slot, error) {
	if err := validStep(step); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	total := len(perPerson)
	var slots []Slot
	for i := 0; ; i++ {
		t := w.Start + Hour(i)*step
		if t >= w.End {
			break
		}
		free := total
		for _, busy := range perPerson {
			if busyAt(busy, t) {
				free--
			}
		}
		n := len(slots)
		if n > 0 && slots[n-1].Free == free {
			continue
		}
		if n > 0 {
			slots[n-1].End = t
		}
		slots = append(slots, Slot{Start: t, Free: free})
	}
	if n := len(slots); n > 0 {
		slots[n-1].End = w.End
	}
	return slots, nil
}

func busyAt(busy []Interval, t Hour) bool {
	for _, b := range busy {
		if b.Contains(t) {
			return true
		}
	}
	return false
}

// Best returns the highest free count in slots and the slots reaching it, in
// order.
func Best(slots []Slot) (int, []Slot) {
	if len(slots) == 0 {
		return 0, nil
	}
	top := slots[0].Free
	for _, s := range slots[1:] {
		top = max(top, s.Free)
	}
	var best []Slot
	for _, s := range slots {
		if s.Free == top {
			best = append(best, s)
		}
	}
	return top, best
}
