package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
)

// Recorder counts availability computations in Prometheus.
type Recorder struct {
	computations *prometheus.CounterVec
	days         *prometheus.CounterVec
	warnings     *prometheus.CounterVec
	people       prometheus.Histogram
}

// NewRecorder registers the collectors on reg, or on the default registerer
// when reg is nil. Collectors that are already registered are reused.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freewindow_computations_total",
		Help: "Availability computations by source and outcome",
	}, []string{"source", "outcome"})
	days := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freewindow_days_total",
		Help: "Computed days by terminal status",
	}, []string{"status"})
	warnings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freewindow_warnings_total",
		Help: "Records skipped or corrected, by warning code",
	}, []string{"code"})
	people := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "freewindow_participants",
		Help:    "Participants per computation",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})

	var err error
	if computations, err = register(reg, computations); err != nil {
		return nil, err
	}
	if days, err = register(reg, days); err != nil {
		return nil, err
	}
	if warnings, err = register(reg, warnings); err != nil {
		return nil, err
	}
	if people, err = register(reg, people); err != nil {
		return nil, err
	}
	return &Recorder{computations: computations, days: days, warnings: warnings, people: people}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveDay implements availability.Recorder.
func (r *Recorder) ObserveDay(status availability.Status) {
	r.days.WithLabelValues(string(status)).Inc()
}

// ObserveWarning implements availability.Recorder.
func (r *Recorder) ObserveWarning(code string) {
	r.warnings.WithLabelValues(code).Inc()
}

// ObserveComputation records one finished or failed computation.
func (r *Recorder) ObserveComputation(source string, participants int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.computations.WithLabelValues(source, outcome).Inc()
	if err == nil {
		r.people.Observe(float64(participants))
	}
}
