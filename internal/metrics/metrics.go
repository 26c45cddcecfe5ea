package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "deskclock_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	ticksTotal       prometheus.Counter
	tickLatency      prometheus.Histogram
	stageErrorsTotal *prometheus.CounterVec
	alarmFiredTotal  *prometheus.CounterVec
	telemetryTotal   *prometheus.CounterVec
	temperature      prometheus.Gauge
	utcOffset        prometheus.Gauge
	alarmArmed       prometheus.Gauge
)

// Init registers the clock metrics on reg (the default registerer when nil).
// Only the first call has an effect.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ticksTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "ticks_total",
			Help: "Total clock loop iterations",
		})
		tickLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "tick_duration_seconds",
			Help:    "Time spent in one clock loop iteration, including tone playback",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
		})
		stageErrorsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "stage_errors_total",
				Help: "Collaborator failures caught at the tick boundary by stage",
			},
			[]string{"stage"},
		)
		alarmFiredTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alarm_fired_total",
				Help: "Alarm firings by recurrence",
			},
			[]string{"recurrence"},
		)
		telemetryTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "telemetry_sends_total",
				Help: "Telemetry upload attempts by result",
			},
			[]string{"result"},
		)
		temperature = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "temperature_celsius",
			Help: "Last successful temperature reading",
		})
		utcOffset = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "utc_offset_hours",
			Help: "UTC offset applied to the displayed time",
		})
		alarmArmed = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "alarm_armed",
			Help: "1 when an alarm target is set",
		})

		reg.MustRegister(
			ticksTotal,
			tickLatency,
			stageErrorsTotal,
			alarmFiredTotal,
			telemetryTotal,
			temperature,
			utcOffset,
			alarmArmed,
		)
	})
}

// ObserveTick counts one loop iteration and its duration.
func ObserveTick(duration time.Duration) {
	if ticksTotal != nil {
		ticksTotal.Inc()
	}
	if tickLatency != nil {
		tickLatency.Observe(duration.Seconds())
	}
}

// IncStageError counts a collaborator failure.
func IncStageError(stage string) {
	if stage == "" {
		stage = "unknown"
	}
	if stageErrorsTotal != nil {
		stageErrorsTotal.WithLabelValues(stage).Inc()
	}
}

// IncAlarmFired counts an alarm firing.
func IncAlarmFired(recurrence string) {
	if recurrence == "" {
		recurrence = "unknown"
	}
	if alarmFiredTotal != nil {
		alarmFiredTotal.WithLabelValues(recurrence).Inc()
	}
}

// ObserveTelemetry counts an upload attempt.
func ObserveTelemetry(err error) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	if telemetryTotal != nil {
		telemetryTotal.WithLabelValues(result).Inc()
	}
}

// SetTemperature records the latest reading.
func SetTemperature(c float64) {
	if temperature != nil {
		temperature.Set(c)
	}
}

// SetUTCOffset records the offset in hours.
func SetUTCOffset(hours int) {
	if utcOffset != nil {
		utcOffset.Set(float64(hours))
	}
}

// SetAlarmArmed records whether an alarm is armed.
func SetAlarmArmed(armed bool) {
	if alarmArmed == nil {
		return
	}
	if armed {
		alarmArmed.Set(1)
		return
	}
	alarmArmed.Set(0)
}
