package instrumentation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	// StageLatency tracks latency of individual pipeline stages
	StageLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "logostamp_stage_duration_seconds",
			Help:    "A histogram of latencies for individual pipeline stages",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"stage", "status"},
	)

	// StageCounter tracks pipeline stage executions
	StageCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logostamp_stage_total",
			Help: "Total number of pipeline stage executions",
		},
		[]string{"stage", "status"},
	)
)

func init() {
	prometheus.MustRegister(StageLatency)
	prometheus.MustRegister(StageCounter)
}

// Instrumentation provides stage-level metrics tracking
type Instrumentation struct {
	Logger *zap.Logger
}

// New creates a new Instrumentation instance
func New(logger *zap.Logger) *Instrumentation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Instrumentation{Logger: logger}
}

// StageTimer times one pipeline stage execution
type StageTimer struct {
	instrumentation *Instrumentation
	stage           string
	start           time.Time
}

// NewStageTimer creates a timer for the named stage, safe on nil receiver
func (i *Instrumentation) NewStageTimer(stage string) *StageTimer {
	return &StageTimer{
		instrumentation: i,
		stage:           stage,
		start:           time.Now(),
	}
}

// ObserveDuration records the stage duration
func (st *StageTimer) ObserveDuration() {
	st.ObserveDurationWithError(nil)
}

// ObserveDurationWithError records the stage duration and status
func (st *StageTimer) ObserveDurationWithError(err error) {
	if st == nil || st.instrumentation == nil {
		return
	}
	st.instrumentation.RecordStageDuration(st.stage, time.Since(st.start), err)
}

// RecordStageDuration records the duration and status of a pipeline stage
func (i *Instrumentation) RecordStageDuration(stage string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StageLatency.WithLabelValues(stage, status).Observe(duration.Seconds())
	StageCounter.WithLabelValues(stage, status).Inc()

	if i.Logger != nil {
		i.Logger.Debug("stage",
			zap.String("stage", stage),
			zap.Duration("duration", duration),
			zap.String("status", status),
			zap.Error(err))
	}
}
