package device

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"deskclock/internal/logger"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// BaseBeat is the length of one beat at tempo 1.0.
const BaseBeat = 250 * time.Millisecond

// Rest is the pitch name of a silent note.
const Rest = "R"

var (
	errEmptyMelody = errors.New("melody is empty")
	errBadTempo    = errors.New("tempo must be > 0")
)

// Note is a pitch (e.g. "A4", "C#5", "R") held for Beats beats.
type Note struct {
	Pitch string
	Beats float64
}

// Melody is a sequence of notes and rests.
type Melody []Note

// DefaultMelody is a short rising arpeggio.
var DefaultMelody = Melody{
	{"C5", 1}, {"E5", 1}, {"G5", 1}, {"C6", 2}, {Rest, 1},
	{"C5", 1}, {"E5", 1}, {"G5", 1}, {"C6", 2}, {Rest, 2},
}

// ParseMelody reads "C5:1 E5:1 G5:2 R:1". The ":beats" suffix defaults to 1.
func ParseMelody(s string) (Melody, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errEmptyMelody
	}
	m := make(Melody, 0, len(fields))
	for _, f := range fields {
		pitch, beatsStr, hasBeats := strings.Cut(f, ":")
		beats := 1.0
		if hasBeats {
			b, err := strconv.ParseFloat(beatsStr, 64)
			if err != nil || b <= 0 {
				return nil, fmt.Errorf("note %q: invalid beats", f)
			}
			beats = b
		}
		pitch = strings.ToUpper(pitch)
		if pitch != Rest {
			if _, err := Frequency(pitch); err != nil {
				return nil, fmt.Errorf("note %q: %w", f, err)
			}
		}
		m = append(m, Note{Pitch: pitch, Beats: beats})
	}
	return m, nil
}

var semitones = map[string]int{
	"C": -9, "C#": -8, "DB": -8, "D": -7, "D#": -6, "EB": -6, "E": -5, "F": -4,
	"F#": -3, "GB": -3, "G": -2, "G#": -1, "AB": -1, "A": 0, "A#": 1, "BB": 1, "B": 2,
}

// Frequency returns the equal-temperament frequency in Hz (A4 = 440 Hz).
func Frequency(pitch string) (float64, error) {
	pitch = strings.ToUpper(pitch)
	if len(pitch) < 2 {
		return 0, fmt.Errorf("unknown pitch %q", pitch)
	}
	name, octStr := pitch[:len(pitch)-1], pitch[len(pitch)-1:]
	semi, ok := semitones[name]
	if !ok {
		return 0, fmt.Errorf("unknown pitch %q", pitch)
	}
	oct, err := strconv.Atoi(octStr)
	if err != nil {
		return 0, fmt.Errorf("unknown pitch %q", pitch)
	}
	n := semi + (oct-4)*12
	return 440 * math.Pow(2, float64(n)/12), nil
}

// PWMPin is the subset of gpio.PinOut the buzzer needs.
type PWMPin interface {
	Out(l gpio.Level) error
	PWM(duty gpio.Duty, f physic.Frequency) error
}

// BuzzerPlayer drives a passive buzzer with a square wave.
type BuzzerPlayer struct {
	pin   PWMPin
	sleep func(ctx context.Context, d time.Duration) error
}

// NewBuzzerPlayer returns a player on pin.
func NewBuzzerPlayer(pin PWMPin) *BuzzerPlayer {
	return &BuzzerPlayer{pin: pin, sleep: sleepCtx}
}

// Play holds each note for Beats*BaseBeat*tempo, then silences the pin.
func (p *BuzzerPlayer) Play(ctx context.Context, m Melody, tempo float64) error {
	if tempo <= 0 {
		return errBadTempo
	}
	defer func() { _ = p.Silence() }()
	for _, n := range m {
		if n.Pitch == Rest {
			if err := p.pin.Out(gpio.Low); err != nil {
				return fmt.Errorf("rest: %w", err)
			}
		} else {
			hz, err := Frequency(n.Pitch)
			if err != nil {
				return err
			}
			if err := p.pin.PWM(gpio.DutyHalf, physic.Frequency(hz*float64(physic.Hertz))); err != nil {
				return fmt.Errorf("tone %s: %w", n.Pitch, err)
			}
		}
		d := time.Duration(n.Beats * tempo * float64(BaseBeat))
		if err := p.sleep(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// Silence drives the pin low.
func (p *BuzzerPlayer) Silence() error {
	return p.pin.Out(gpio.Low)
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

// LogPin stands in for a buzzer pin on hosts without GPIO.
type LogPin struct {
	Log *logger.Logger
}

func (p LogPin) Out(l gpio.Level) error {
	p.Log.Debugw("buzzer_out", "level", l.String())
	return nil
}

func (p LogPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	p.Log.Debugw("buzzer_pwm", "duty", duty.String(), "freq", f.String())
	return nil
}
