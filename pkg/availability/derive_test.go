package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFree_NoBusy(t *testing.T) {
	free, malformed := DeriveFree(nil, DefaultWindow())
	assert.Empty(t, malformed)
	assert.Equal(t, []Interval{{8, 18}}, free)
}

func TestDeriveFree_MergesOverlaps(t *testing.T) {
	busy := []Interval{{13, 14}, {9, 10}, {9.5, 11}, {9.75, 10.5}}
	free, _ := DeriveFree(busy, DefaultWindow())
	assert.Equal(t, []Interval{{8, 9}, {11, 13}, {14, 18}}, free)
}

func TestDeriveFree_ClipsToWindow(t *testing.T) {
	busy := []Interval{{6, 9}, {17, 20}, {19, 21}, {2, 3}}
	free, _ := DeriveFree(busy, DefaultWindow())
	assert.Equal(t, []Interval{{9, 17}}, free)
}

func TestDeriveFree_ExcludesMalformed(t *testing.T) {
	busy := []Interval{{10, 9}, {12, 12}, {14, 15}}
	free, malformed := DeriveFree(busy, DefaultWindow())
	assert.Equal(t, []Interval{{10, 9}, {12, 12}}, malformed)
	assert.Equal(t, []Interval{{8, 14}, {15, 18}}, free)
}

func TestDeriveFree_ComplementCoversWindow(t *testing.T) {
	w := DefaultWindow()
	busy := []Interval{{7.5, 8.25}, {10, 11}, {10.5, 12}, {16, 19}}
	free, _ := DeriveFree(busy, w)

	var clipped []Interval
	for _, b := range busy {
		if c, ok := w.Clip(b); ok {
			clipped = append(clipped, c)
		}
	}
	for _, f := range free {
		for _, b := range clipped {
			assert.False(t, f.Overlaps(b), "free %v overlaps busy %v", f, b)
		}
	}
	union := Merge(append(append([]Interval{}, free...), clipped...))
	require.Len(t, union, 1)
	assert.Equal(t, w.Interval(), union[0])
}

func TestDeriveFree_SortedEqualsUnsorted(t *testing.T) {
	w := DefaultWindow()
	canonical := []Interval{{9, 11}, {13, 15}}
	messy := []Interval{{14, 15}, {10, 11}, {13, 14.5}, {9, 10.5}}
	a, _ := DeriveFree(canonical, w)
	b, _ := DeriveFree(messy, w)
	assert.Equal(t, a, b)
}
