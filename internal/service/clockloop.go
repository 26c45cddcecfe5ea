package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"deskclock/internal/alarm"
	"deskclock/internal/clock"
	"deskclock/internal/device"
	"deskclock/internal/logger"
	"deskclock/internal/metrics"
	"deskclock/internal/models"
	"deskclock/internal/repository"
	"deskclock/internal/telemetry"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Tick stages that can fail.
const (
	StageSensor  = "sensor"
	StageDisplay = "display"
	StageNetwork = "network"
	StageTone    = "tone"
	StagePersist = "persist"
)

// StageError is a collaborator failure inside one tick.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StatePublisher receives every snapshot the loop produces.
type StatePublisher interface {
	Publish(st models.ClockState)
}

// LoopDeps are the collaborators driven by the clock loop.
type LoopDeps struct {
	Time    *clock.LocalTimeProvider
	Sensor  device.TemperatureReader
	Display device.DisplayRenderer
	Sender  device.NetworkSender
	Tone    device.TonePlayer

	StateRepo repository.StateRepo
	EventRepo repository.EventRepo
	AlarmRepo repository.AlarmRepo

	Feed StatePublisher

	Log *logger.Logger
}

// LoopSettings tune the loop behaviour.
type LoopSettings struct {
	Alarm      models.AlarmConfig
	Melody     device.Melody
	Tempo      float64
	ErrorPause time.Duration
}

// ClockLoop owns the alarm scheduler and the telemetry gate. Only the
// goroutine running Run (or the caller of Tick) may touch them.
type ClockLoop struct {
	deps LoopDeps

	scheduler *alarm.Scheduler
	gate      *telemetry.Gate

	melody     device.Melody
	tempo      float64
	errorPause time.Duration

	reloadMu sync.Mutex
	reload   chan models.AlarmConfig

	lastInstant time.Time
	lastLocal   models.LocalTime

	pause func(ctx context.Context, d time.Duration) error
}

// NewClockLoop wires the collaborators. A nil Log discards output.
func NewClockLoop(deps LoopDeps, s LoopSettings) *ClockLoop {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if len(s.Melody) == 0 {
		s.Melody = device.DefaultMelody
	}
	if s.Tempo <= 0 {
		s.Tempo = 1
	}
	return &ClockLoop{
		deps:       deps,
		scheduler:  alarm.NewScheduler(s.Alarm),
		gate:       telemetry.NewGate(),
		melody:     s.Melody,
		tempo:      s.Tempo,
		errorPause: s.ErrorPause,
		reload:     make(chan models.AlarmConfig, 1),
		pause:      sleepCtx,
	}
}

// Run ticks immediately and then every tick interval until ctx is canceled.
func (l *ClockLoop) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()

	l.deps.Log.Infow("clock_loop_started", "tick", tick.String(), "alarm", l.scheduler.Summary())
	for {
		if err := l.Tick(ctx); err != nil {
			l.recoverFrom(ctx, err)
		}
		select {
		case <-ctx.Done():
			l.deps.Log.Infow("clock_loop_stopped")
			return
		case <-t.C:
		}
	}
}

// Configure replaces the alarm configuration before the next tick.
// Only the latest pending configuration is kept.
func (l *ClockLoop) Configure(cfg models.AlarmConfig) {
	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()
	select {
	case <-l.reload:
	default:
	}
	l.reload <- cfg.Clone()
}

// Tick runs one iteration: local time, temperature, display, telemetry, alarm.
// Collaborator failures are returned as *StageError values combined with
// multierr; the remaining stages still run.
func (l *ClockLoop) Tick(ctx context.Context) error {
	started := time.Now()
	defer func() { metrics.ObserveTick(time.Since(started)) }()

	errs := l.applyPending(ctx)

	reading := l.deps.Time.Read()
	l.lastInstant = reading.Instant
	l.lastLocal = reading.Local
	local := reading.Local
	metrics.SetUTCOffset(reading.Offset)

	temp, tempErr := l.readTemperature(ctx)
	if tempErr != nil {
		errs = multierr.Append(errs, tempErr)
	} else {
		metrics.SetTemperature(temp)
	}

	frame := device.Frame{
		Local:        local,
		TemperatureC: temp,
		HasReading:   tempErr == nil,
		AlarmSummary: l.scheduler.Summary(),
	}
	errs = multierr.Append(errs, guard(StageDisplay, func() error {
		return l.deps.Display.Render(ctx, frame)
	}))

	if tempErr == nil && l.gate.Due(local.Minute) {
		errs = multierr.Append(errs, l.sendTelemetry(ctx, reading.Instant, local, temp))
	}

	errs = multierr.Append(errs, l.checkAlarm(ctx, reading.Instant, local))
	metrics.SetAlarmArmed(l.scheduler.Armed())

	errs = multierr.Append(errs, l.saveSnapshot(ctx, reading, temp, tempErr == nil, errs))
	return errs
}

// applyPending installs the latest configuration handed to Configure and
// writes it back to the alarm store, so a disarm saved by an earlier tick
// never outlives a newer configuration.
func (l *ClockLoop) applyPending(ctx context.Context) error {
	select {
	case cfg := <-l.reload:
		l.scheduler.Reset(cfg)
		l.deps.Log.Infow("alarm_reconfigured", "alarm", l.scheduler.Summary())
		return l.persistAlarm(ctx)
	default:
		return nil
	}
}

func (l *ClockLoop) reloadPending() bool {
	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()
	return len(l.reload) > 0
}

func (l *ClockLoop) persistAlarm(ctx context.Context) error {
	if l.deps.AlarmRepo == nil {
		return nil
	}
	if err := l.deps.AlarmRepo.Save(ctx, l.scheduler.Config()); err != nil {
		return &StageError{Stage: StagePersist, Err: err}
	}
	return nil
}

func (l *ClockLoop) readTemperature(ctx context.Context) (float64, error) {
	var temp float64
	err := guard(StageSensor, func() error {
		v, err := l.deps.Sensor.Read(ctx)
		temp = v
		return err
	})
	if err != nil {
		return 0, err
	}
	return temp, nil
}

func (l *ClockLoop) sendTelemetry(ctx context.Context, at time.Time, local models.LocalTime, temp float64) error {
	minute := local.Minute
	err := guard(StageNetwork, func() error {
		return l.deps.Sender.Send(ctx, temp)
	})
	metrics.ObserveTelemetry(err)
	if err != nil {
		l.record(ctx, models.ClockEvent{
			OccurredAt:  at,
			Type:        models.EventTelemetryFailed,
			Description: "Telemetry upload failed; retrying this minute",
			Meta:        &models.EventMeta{LocalTime: local.String(), Minute: &minute, Error: err.Error()},
		})
		return err
	}
	l.gate.MarkSent(local.Minute)
	l.deps.Log.Debugw("telemetry_sent", "minute", local.Minute, "temperature_c", temp)
	l.record(ctx, models.ClockEvent{
		OccurredAt:  at,
		Type:        models.EventTelemetrySent,
		Description: fmt.Sprintf("Sent %.1f C", temp),
		Meta:        &models.EventMeta{LocalTime: local.String(), Minute: &minute, TemperatureC: &temp},
	})
	return nil
}

// checkAlarm plays the melody synchronously when the alarm fires and persists
// the disarmed configuration of a fired one-shot alarm unless a newer
// configuration is waiting.
func (l *ClockLoop) checkAlarm(ctx context.Context, at time.Time, local models.LocalTime) error {
	before := l.scheduler.Config()
	if !l.scheduler.Check(local) {
		return nil
	}

	metrics.IncAlarmFired(string(before.Recurrence))
	l.deps.Log.Infow("alarm_fired", "local_time", local.String(), "recurrence", before.Recurrence)
	l.record(ctx, models.ClockEvent{
		OccurredAt:  at,
		Type:        models.EventAlarmFired,
		Description: fmt.Sprintf("Alarm fired at %02d:%02d", local.Hour, local.Minute),
		Meta:        &models.EventMeta{LocalTime: local.String(), Recurrence: before.Recurrence},
	})

	var errs error
	if !l.scheduler.Armed() {
		// A pending configuration was already saved by the API and replaces
		// this one at the start of the next tick.
		if !l.reloadPending() {
			errs = l.persistAlarm(ctx)
		}
		l.record(ctx, models.ClockEvent{
			OccurredAt:  at,
			Type:        models.EventAlarmDisarmed,
			Description: "One-shot alarm disarmed after firing",
			Meta:        &models.EventMeta{LocalTime: local.String(), Recurrence: before.Recurrence},
		})
	}

	errs = multierr.Append(errs, guard(StageTone, func() error {
		return l.deps.Tone.Play(ctx, l.melody, l.tempo)
	}))
	return errs
}

// saveSnapshot publishes the tick's snapshot to live readers and persists it.
func (l *ClockLoop) saveSnapshot(ctx context.Context, r clock.Reading, temp float64, hasTemp bool, tickErr error) error {
	cfg := l.scheduler.Config()
	st := models.ClockState{
		ID:           1,
		LocalTime:    r.Local,
		OffsetHours:  r.Offset,
		Alarm:        cfg,
		AlarmSummary: cfg.Summary(),
		ErrorCodes:   stagesOf(tickErr),
		UpdatedAt:    r.Instant,
	}
	if hasTemp {
		st.TemperatureC = &temp
	}
	if m, ok := l.gate.LastSent(); ok {
		st.LastSentMinute = &m
	}
	if l.deps.Feed != nil {
		l.deps.Feed.Publish(st)
	}
	if l.deps.StateRepo == nil {
		return nil
	}
	if err := l.deps.StateRepo.Save(ctx, st); err != nil {
		return &StageError{Stage: StagePersist, Err: err}
	}
	return nil
}

// recoverFrom logs every failed stage, forces the buzzer silent and pauses.
func (l *ClockLoop) recoverFrom(ctx context.Context, err error) {
	stages := stagesOf(err)
	for _, e := range multierr.Errors(err) {
		stage := StagePersist
		var se *StageError
		if errors.As(e, &se) {
			stage = se.Stage
		}
		metrics.IncStageError(stage)
		l.deps.Log.Errorw("tick_stage_failed", "stage", stage, "err", e)
	}

	if serr := l.deps.Tone.Silence(); serr != nil {
		l.deps.Log.Warnw("silence_failed", "err", serr)
	}

	l.record(ctx, models.ClockEvent{
		OccurredAt:  l.lastInstant,
		Type:        models.EventTickError,
		Description: err.Error(),
		Meta:        &models.EventMeta{LocalTime: l.lastLocal.String(), Stages: stages},
	})

	if l.errorPause > 0 {
		_ = l.pause(ctx, l.errorPause)
	}
}

// record appends to the event log; failures are only logged.
func (l *ClockLoop) record(ctx context.Context, ev models.ClockEvent) {
	if l.deps.EventRepo == nil {
		return
	}
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if err := l.deps.EventRepo.Append(ctx, ev); err != nil {
		l.deps.Log.Warnw("event_append_failed", "type", ev.Type, "err", err)
	}
}

// guard runs fn and turns its error or panic into a *StageError.
func guard(stage string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &StageError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if e := fn(); e != nil {
		return &StageError{Stage: stage, Err: e}
	}
	return nil
}

func stagesOf(err error) []string {
	var out []string
	for _, e := range multierr.Errors(err) {
		var se *StageError
		if errors.As(e, &se) && !hasString(out, se.Stage) {
			out = append(out, se.Stage)
		}
	}
	return out
}

func hasString(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
