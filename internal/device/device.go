// Package device holds the hardware and network collaborators driven by the
// clock loop: temperature sensor, display, buzzer and telemetry uploader.
// Every call is synchronous and blocks the loop for its duration.
package device

import (
	"context"

	"deskclock/internal/models"
)

// TemperatureReader samples the room temperature in °C.
type TemperatureReader interface {
	Read(ctx context.Context) (float64, error)
}

// TonePlayer plays melodies on the buzzer.
type TonePlayer interface {
	// Play blocks until the melody finished or ctx is done.
	Play(ctx context.Context, m Melody, tempo float64) error
	// Silence forces the buzzer off.
	Silence() error
}

// DisplayRenderer draws one frame.
type DisplayRenderer interface {
	Render(ctx context.Context, f Frame) error
}

// NetworkSender uploads a temperature reading. A nil error means success.
type NetworkSender interface {
	Send(ctx context.Context, value float64) error
}

// Frame is everything the display shows for a tick.
type Frame struct {
	Local        models.LocalTime
	TemperatureC float64
	HasReading   bool
	AlarmSummary string
}
