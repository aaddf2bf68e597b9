package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
)

// Text writes one line per day in the console format:
//
//	Monday: 08:00 - 09:00, 11:00 - 18:00
//	Tuesday: no common free time; best alternative 1 of 2 free: 08:00 - 18:00
func Text(w io.Writer, res *availability.Result) error {
	for _, d := range res.Days {
		if _, err := fmt.Fprintln(w, DayLine(d)); err != nil {
			return err
		}
	}
	return nil
}

// DayLine renders a single day.
func DayLine(d availability.DayResult) string {
	switch d.Status {
	case availability.StatusAllFree:
		return d.Day + ": " + joinIntervals(d.Common)
	case availability.StatusNoData:
		return fmt.Sprintf("%s: no participants; whole window %s", d.Day, joinIntervals(d.Common))
	}
	if len(d.Best) == 0 {
		return d.Day + ": no common free time"
	}
	ivs := make([]availability.Interval, 0, len(d.Best))
	for _, s := range d.Best {
		ivs = append(ivs, s.Interval())
	}
	return fmt.Sprintf("%s: no common free time; best alternative %d of %d free: %s",
		d.Day, d.MaxFree, d.Participants, joinIntervals(ivs))
}

func joinIntervals(ivs []availability.Interval) string {
	parts := make([]string, 0, len(ivs))
	for _, iv := range ivs {
		parts = append(parts, iv.String())
	}
	return strings.Join(parts, ", ")
}

// CSV writes one row per reported window. All-free windows carry the full
// participant count as their free count.
func CSV(w io.Writer, res *availability.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"day", "status", "start", "end", "free_count", "participants"}); err != nil {
		return err
	}
	for _, d := range res.Days {
		participants := strconv.Itoa(d.Participants)
		if d.Status == availability.StatusPartial {
			for _, s := range d.Best {
				if err := writer.Write([]string{
					d.Day, string(d.Status),
					availability.FormatHour(s.Start), availability.FormatHour(s.End),
					strconv.Itoa(s.Free), participants,
				}); err != nil {
					return err
				}
			}
			continue
		}
		for _, iv := range d.Common {
			if err := writer.Write([]string{
				d.Day, string(d.Status),
				availability.FormatHour(iv.Start), availability.FormatHour(iv.End),
				participants, participants,
			}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
