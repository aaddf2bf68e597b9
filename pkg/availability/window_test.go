package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	w, err := NewWindow(8, 18)
	require.NoError(t, err)
	assert.Equal(t, DefaultWindow(), w)

	w, err = NewWindow(0, 24)
	require.NoError(t, err)
	assert.Equal(t, Window{Start: 0, End: 24}, w)

	for _, bad := range [][2]int{{18, 8}, {8, 8}, {-1, 10}, {24, 24}, {8, 25}, {0, 0}} {
		_, err := NewWindow(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidWindow, "window %v", bad)
	}
}

func TestWindowClip(t *testing.T) {
	w := DefaultWindow()
	c, ok := w.Clip(Interval{Start: 7, End: 9})
	require.True(t, ok)
	assert.Equal(t, Interval{Start: 8, End: 9}, c)

	_, ok = w.Clip(Interval{Start: 18, End: 19})
	assert.False(t, ok)
}
