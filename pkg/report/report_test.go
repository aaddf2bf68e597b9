package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
)

func sampleResult() *availability.Result {
	return &availability.Result{
		Window: availability.DefaultWindow(),
		Step:   availability.DefaultStep,
		Days: []availability.DayResult{
			{
				Day: "Monday", Status: availability.StatusAllFree, Participants: 2, MaxFree: 2,
				Common: []availability.Interval{{Start: 8, End: 9}, {Start: 11, End: 18}},
			},
			{
				Day: "Tuesday", Status: availability.StatusPartial, Participants: 2, MaxFree: 1,
				Best: []availability.Slot{{Start: 8, End: 18, Free: 1}},
			},
			{
				Day: "Wednesday", Status: availability.StatusNoData,
				Common: []availability.Interval{{Start: 8, End: 18}},
			},
		},
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleResult()))
	assert.Equal(t,
		"Monday: 08:00 - 09:00, 11:00 - 18:00\n"+
			"Tuesday: no common free time; best alternative 1 of 2 free: 08:00 - 18:00\n"+
			"Wednesday: no participants; whole window 08:00 - 18:00\n",
		buf.String())
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, sampleResult()))
	assert.Equal(t,
		"day,status,start,end,free_count,participants\n"+
			"Monday,all_free,08:00,09:00,2,2\n"+
			"Monday,all_free,11:00,18:00,2,2\n"+
			"Tuesday,partial,08:00,18:00,1,2\n"+
			"Wednesday,no_data,08:00,18:00,0,0\n",
		buf.String())
}

var errSinkClosed = errors.New("sink closed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errSinkClosed }

func TestCSV_WriteError(t *testing.T) {
	// Enough rows to overflow the csv writer's buffer before Flush.
	day := availability.DayResult{Day: "Monday", Status: availability.StatusAllFree, Participants: 3}
	for i := 0; i < 400; i++ {
		start := availability.Hour(8) + availability.Hour(i)*0.025
		day.Common = append(day.Common, availability.Interval{Start: start, End: start + 0.01})
	}
	res := &availability.Result{Window: availability.DefaultWindow(), Days: []availability.DayResult{day}}

	assert.ErrorIs(t, CSV(failingWriter{}, res), errSinkClosed)
	assert.ErrorIs(t, CSV(failingWriter{}, sampleResult()), errSinkClosed)
}
