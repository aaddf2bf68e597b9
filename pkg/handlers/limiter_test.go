package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimiterStore(t *testing.T) {
	s := newLimiterStore()

	assert.True(t, s.allow(1, 2))
	assert.True(t, s.allow(1, 2))
	assert.False(t, s.allow(1, 2))

	// other keys are independent
	assert.True(t, s.allow(2, 2))

	// a new limit resets the bucket
	assert.True(t, s.allow(1, 3))

	for i := 0; i < 100; i++ {
		assert.True(t, s.allow(3, 0))
	}
}
