package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectAll_ScenarioA(t *testing.T) {
	w := DefaultWindow()
	x, _ := DeriveFree([]Interval{{9, 10}}, w)
	y, _ := DeriveFree([]Interval{{9.5, 11}}, w)

	common, err := IntersectAll(map[string][]Interval{"x": x, "y": y})
	require.NoError(t, err)
	assert.Equal(t, []Interval{{8, 9}, {11, 18}}, common)
}

func TestIntersectAll_Empty(t *testing.T) {
	_, err := IntersectAll(nil)
	assert.ErrorIs(t, err, ErrNoParticipants)
}

func TestIntersectAll_SinglePerson(t *testing.T) {
	common, err := IntersectAll(map[string][]Interval{"solo": {{8, 18}}})
	require.NoError(t, err)
	assert.Equal(t, []Interval{{8, 18}}, common)
}

func TestIntersectAll_ShortCircuitsOnEmpty(t *testing.T) {
	common, err := IntersectAll(map[string][]Interval{
		"a": {{8, 9}},
		"b": {{10, 11}},
		"c": {{8, 18}},
	})
	require.NoError(t, err)
	assert.Empty(t, common)
}

func TestIntersectAll_Commutative(t *testing.T) {
	lists := [][]Interval{
		{{8, 9.5}, {10, 12}, {13, 18}},
		{{8.25, 11}, {11.5, 17}},
		{{9, 10.5}, {12, 16}},
	}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	var want []Interval
	for i, perm := range perms {
		m := map[string][]Interval{}
		for pos, idx := range perm {
			m[string(rune('a'+pos))] = lists[idx]
		}
		got, err := IntersectAll(m)
		require.NoError(t, err)
		if i == 0 {
			want = got
			continue
		}
		assert.Equal(t, want, got, "permutation %v", perm)
	}
	assert.Equal(t, []Interval{{9, 9.5}, {10, 10.5}, {13, 16}}, want)
}

func TestMerge(t *testing.T) {
	got := Merge([]Interval{{11, 12}, {8, 9}, {9, 10}, {11.5, 13}, {14, 14}})
	assert.Equal(t, []Interval{{8, 10}, {11, 13}}, got)
}
