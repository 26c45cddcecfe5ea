// Package alarm decides when the configured alarm should ring.
//
// A Scheduler is either ARMED (a target is set) or DISARMED. A DAILY alarm
// matches on hour and minute and stays armed forever. A ONE_SHOT alarm
// matches on the full local date and time and disarms itself after firing.
// Firing is suppressed for the rest of a minute once it happened, so a loop
// ticking several times per minute rings exactly once.
//
// Matching is exact: if no tick lands inside the target minute the
// occurrence is missed.
package alarm

import "deskclock/internal/models"

// Scheduler holds the alarm configuration and the minute it last fired in.
// lastFired is only set while the most recently observed minute is the one
// the alarm fired in. It is not safe for concurrent use; the clock loop owns it.
type Scheduler struct {
	cfg       models.AlarmConfig
	lastFired *models.MinuteOfDay
}

// NewScheduler returns a scheduler armed with cfg (or disarmed if cfg has no target).
func NewScheduler(cfg models.AlarmConfig) *Scheduler {
	return &Scheduler{cfg: cfg.Clone()}
}

// Check reports whether the alarm fires at now.
func (s *Scheduler) Check(now models.LocalTime) bool {
	if s.cfg.Target == nil {
		return false
	}
	current := now.MinuteOfDay()
	if s.lastFired != nil {
		if *s.lastFired == current {
			return false
		}
		// The observed minute moved on; tomorrow's occurrence may fire again.
		s.lastFired = nil
	}
	if !s.matches(now) {
		return false
	}
	s.lastFired = &current
	if s.cfg.Recurrence == models.RecurrenceOneShot {
		s.cfg.Target = nil
	}
	return true
}

func (s *Scheduler) matches(now models.LocalTime) bool {
	t := s.cfg.Target
	if now.Hour != t.Hour || now.Minute != t.Minute {
		return false
	}
	if s.cfg.Recurrence == models.RecurrenceDaily {
		return true
	}
	return now.Year == t.Year && int(now.Month) == t.Month && now.Day == t.Day
}

// Armed reports whether a target is set.
func (s *Scheduler) Armed() bool {
	return s.cfg.Target != nil
}

// Config returns a copy of the current configuration.
func (s *Scheduler) Config() models.AlarmConfig {
	return s.cfg.Clone()
}

// Summary is the display text for the current configuration.
func (s *Scheduler) Summary() string {
	return s.cfg.Summary()
}

// Reset replaces the configuration. The last fired minute is kept so that
// re-applying the same alarm inside its minute does not ring twice.
func (s *Scheduler) Reset(cfg models.AlarmConfig) {
	s.cfg = cfg.Clone()
}
