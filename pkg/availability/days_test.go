package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	assert.Equal(t, DayKey("Monday"), DayKey("Montag"))
	assert.Equal(t, DayKey("monday"), DayKey(" MO "))
	assert.Equal(t, DayKey("Thursday"), DayKey("Do."))
	assert.Equal(t, DayKey("Sunday"), DayKey("Sonntag"))
	assert.NotEqual(t, DayKey("Monday"), DayKey("Tuesday"))
	assert.Equal(t, "Week 1", DayKey(" Week 1 "))
	assert.NotEqual(t, DayKey("Week A"), DayKey("week a"))
}
