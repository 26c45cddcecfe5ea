package device

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
)

// MCP9700 transfer function and the 16-bit, 3.3 V ADC it is wired to.
const (
	mcp9700V0       = 0.5  // V at 0 °C
	mcp9700TC       = 0.01 // V per °C
	adcReferenceV   = 3.3
	adcFullScaleU16 = 65535
)

var errADCOutOfRange = errors.New("adc reading out of range")

// ADC returns a conversion scaled to 16 bits (0..65535 for 0..3.3 V).
type ADC interface {
	ReadU16() (uint16, error)
}

// MCP9700 converts an analog MCP9700 reading into °C.
type MCP9700 struct {
	adc ADC
}

func NewMCP9700(adc ADC) *MCP9700 {
	return &MCP9700{adc: adc}
}

// Read samples the ADC and returns the temperature rounded to 0.1 °C.
func (s *MCP9700) Read(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	raw, err := s.adc.ReadU16()
	if err != nil {
		return 0, fmt.Errorf("read adc: %w", err)
	}
	return RawToCelsius(raw), nil
}

// RawToCelsius applies the MCP9700 formula to a 16-bit ADC count.
func RawToCelsius(raw uint16) float64 {
	voltage := float64(raw) / adcFullScaleU16 * adcReferenceV
	temp := (voltage - mcp9700V0) / mcp9700TC
	return math.Round(temp*10) / 10
}

// CelsiusToRaw is the inverse of RawToCelsius, clamped to the ADC range.
func CelsiusToRaw(c float64) uint16 {
	v := c*mcp9700TC + mcp9700V0
	raw := math.Round(v / adcReferenceV * adcFullScaleU16)
	switch {
	case raw < 0:
		return 0
	case raw > adcFullScaleU16:
		return adcFullScaleU16
	}
	return uint16(raw)
}

// SimulatedADC produces a slow triangle wave around a base temperature.
type SimulatedADC struct {
	mu     sync.Mutex
	BaseC  float64
	SwingC float64
	Steps  int
	n      int
}

func NewSimulatedADC(baseC, swingC float64) *SimulatedADC {
	return &SimulatedADC{BaseC: baseC, SwingC: swingC, Steps: 120}
}

func (a *SimulatedADC) ReadU16() (uint16, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	steps := a.Steps
	if steps <= 0 {
		steps = 1
	}
	phase := float64(a.n%(2*steps)) / float64(steps) // 0..2
	a.n++
	if phase > 1 {
		phase = 2 - phase
	}
	return CelsiusToRaw(a.BaseC + a.SwingC*(2*phase-1)), nil
}

// IIOADC reads a Linux industrial-I/O raw voltage file, e.g.
// /sys/bus/iio/devices/iio:device0/in_voltage0_raw, and scales it to 16 bits.
type IIOADC struct {
	Path string
	Bits int // converter resolution, 12 on most SoCs
}

func (a IIOADC) ReadU16() (uint16, error) {
	b, err := os.ReadFile(a.Path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", a.Path, err)
	}
	bits := a.Bits
	if bits <= 0 || bits > 16 {
		bits = 16
	}
	if v < 0 || v >= 1<<bits {
		return 0, fmt.Errorf("%w: %d (%d bits)", errADCOutOfRange, v, bits)
	}
	return uint16(v << (16 - bits)), nil
}
