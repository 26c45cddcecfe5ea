package main

import (
	"fmt"

	"deskclock/internal/config"
	"deskclock/internal/device"
	"deskclock/internal/logger"

	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Driver names accepted in the configuration.
const (
	sensorIIO     = "iio"
	displaySH1107 = "sh1107"
	toneGPIO      = "gpio"

	simBaseC  = 21.0
	simSwingC = 1.5
)

type devices struct {
	sensor  device.TemperatureReader
	display device.DisplayRenderer
	sender  device.NetworkSender
	tone    device.TonePlayer

	closers []func() error
}

// openDevices builds the collaborators selected by cfg. periph's host drivers
// are only loaded when real hardware is requested.
func openDevices(cfg *config.Config, log *logger.Logger) (*devices, error) {
	d := &devices{}

	if cfg.Display.Driver == displaySH1107 || cfg.Tone.Driver == toneGPIO {
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("periph host init: %w", err)
		}
	}

	switch cfg.Sensor.Driver {
	case sensorIIO:
		d.sensor = device.NewMCP9700(device.IIOADC{Path: cfg.Sensor.IIOPath, Bits: cfg.Sensor.IIOBits})
	default:
		d.sensor = device.NewMCP9700(device.NewSimulatedADC(simBaseC, simSwingC))
	}

	switch cfg.Display.Driver {
	case displaySH1107:
		bus, err := i2creg.Open(cfg.Display.I2CBus)
		if err != nil {
			return nil, fmt.Errorf("open i2c bus %q: %w", cfg.Display.I2CBus, err)
		}
		d.closers = append(d.closers, bus.Close)
		panel, err := device.NewSH1107(&i2c.Dev{Bus: bus, Addr: cfg.Display.Address}, cfg.Display.Width, cfg.Display.Height)
		if err != nil {
			_ = d.closeAll()
			return nil, err
		}
		d.display = device.NewOLEDDisplay(panel)
	default:
		d.display = device.NewConsoleDisplay(log)
	}

	switch cfg.Tone.Driver {
	case toneGPIO:
		pin := gpioreg.ByName(cfg.Tone.Pin)
		if pin == nil {
			_ = d.closeAll()
			return nil, fmt.Errorf("gpio pin %q not found", cfg.Tone.Pin)
		}
		d.tone = device.NewBuzzerPlayer(pin)
	default:
		d.tone = device.NewBuzzerPlayer(device.LogPin{Log: log})
	}

	if cfg.Telemetry.URL == "" {
		log.Infow("telemetry.url not set; readings are not uploaded")
		d.sender = device.DiscardSender{}
	} else {
		s, err := device.NewHTTPSender(cfg.Telemetry.URL, cfg.Telemetry.DeviceID, device.WithTimeout(cfg.Telemetry.Timeout))
		if err != nil {
			_ = d.closeAll()
			return nil, err
		}
		d.sender = s
	}

	return d, nil
}

func (d *devices) closeAll() error {
	var err error
	for i := len(d.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, d.closers[i]())
	}
	d.closers = nil
	return err
}

// Close silences the buzzer and releases hardware handles.
func (d *devices) Close(log *logger.Logger) {
	if d.tone != nil {
		if err := d.tone.Silence(); err != nil {
			log.Warnw("failed to silence buzzer", "err", err)
		}
	}
	if err := d.closeAll(); err != nil {
		log.Warnw("failed to release devices", "err", err)
	}
}
