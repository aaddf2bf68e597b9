package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)

	rec.ObserveDay(availability.StatusAllFree)
	rec.ObserveDay(availability.StatusPartial)
	rec.ObserveDay(availability.StatusAllFree)
	rec.ObserveWarning(availability.WarnMalformedInterval)
	rec.ObserveComputation("json", 3, nil)
	rec.ObserveComputation("upload", 0, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.days.WithLabelValues("all_free")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.days.WithLabelValues("partial")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.warnings.WithLabelValues(availability.WarnMalformedInterval)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.computations.WithLabelValues("upload", "error")))
}

func TestNewRecorder_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewRecorder(reg)
	require.NoError(t, err)
	second, err := NewRecorder(reg)
	require.NoError(t, err)

	first.ObserveWarning("x")
	assert.Equal(t, 1.0, testutil.ToFloat64(second.warnings.WithLabelValues("x")))
}
