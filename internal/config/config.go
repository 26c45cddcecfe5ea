package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"deskclock/internal/alarm"
	"deskclock/internal/device"
	"deskclock/internal/models"

	"github.com/spf13/viper"
)

// Config is the whole process configuration.
type Config struct {
	Port string `mapstructure:"port"`
	HTTP struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"` // for /ws; empty = same origin
	} `mapstructure:"http"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`
	Auth struct {
		PasswordHash string        `mapstructure:"password_hash"` // bcrypt; empty locks alarm writes
		SigningKey   string        `mapstructure:"signing_key"`
		TokenTTL     time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`
	Loop struct {
		Tick       time.Duration `mapstructure:"tick"`
		ErrorPause time.Duration `mapstructure:"error_pause"`
	} `mapstructure:"loop"`
	Alarm     AlarmSettings `mapstructure:"alarm"`
	Telemetry struct {
		URL      string        `mapstructure:"url"`
		DeviceID string        `mapstructure:"device_id"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"telemetry"`
	Sensor struct {
		Driver  string `mapstructure:"driver"` // sim | iio
		IIOPath string `mapstructure:"iio_path"`
		IIOBits int    `mapstructure:"iio_bits"`
	} `mapstructure:"sensor"`
	Display struct {
		Driver  string `mapstructure:"driver"` // console | sh1107
		I2CBus  string `mapstructure:"i2c_bus"`
		Address uint16 `mapstructure:"address"`
		Width   int    `mapstructure:"width"`
		Height  int    `mapstructure:"height"`
	} `mapstructure:"display"`
	Tone struct {
		Driver string `mapstructure:"driver"` // log | gpio
		Pin    string `mapstructure:"pin"`
	} `mapstructure:"tone"`
}

// AlarmSettings is the raw alarm input; see Alarm and Melody for the parsed forms.
type AlarmSettings struct {
	Time       string  `mapstructure:"time"`       // HH:MM, empty = no alarm
	Date       string  `mapstructure:"date"`       // YYYY-MM-DD, one-shot only
	Recurrence string  `mapstructure:"recurrence"` // daily | once
	Tempo      float64 `mapstructure:"tempo"`
	Melody     string  `mapstructure:"melody"`
}

var errBadTick = errors.New("loop.tick must be > 0")

// Load reads configs/config.yml (or the file at path when non-empty),
// overlays DESKCLOCK_* environment variables and validates the result.
// A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DESKCLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("http.allowed_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "deskclock.db")
	v.SetDefault("auth.password_hash", "")
	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("loop.tick", time.Second)
	v.SetDefault("loop.error_pause", 2*time.Second)
	v.SetDefault("alarm.time", "")
	v.SetDefault("alarm.date", "")
	v.SetDefault("alarm.recurrence", "daily")
	v.SetDefault("alarm.tempo", 1.0)
	v.SetDefault("alarm.melody", "")
	v.SetDefault("telemetry.url", "")
	v.SetDefault("telemetry.device_id", "deskclock")
	v.SetDefault("telemetry.timeout", 10*time.Second)
	v.SetDefault("sensor.driver", "sim")
	v.SetDefault("sensor.iio_path", "/sys/bus/iio/devices/iio:device0/in_voltage0_raw")
	v.SetDefault("sensor.iio_bits", 12)
	v.SetDefault("display.driver", "console")
	v.SetDefault("display.i2c_bus", "")
	v.SetDefault("display.address", device.SH1107DefaultAddr)
	v.SetDefault("display.width", 128)
	v.SetDefault("display.height", 128)
	v.SetDefault("tone.driver", "log")
	v.SetDefault("tone.pin", "GPIO18")
}

func (c *Config) validate() error {
	if c.Loop.Tick <= 0 {
		return errBadTick
	}
	if _, err := c.AlarmConfig(); err != nil {
		return err
	}
	if _, err := c.Melody(); err != nil {
		return fmt.Errorf("alarm.melody: %w", err)
	}
	if c.Alarm.Tempo <= 0 {
		return fmt.Errorf("%w: tempo must be > 0", alarm.ErrInvalidAlarm)
	}
	return nil
}

// AlarmConfig parses the alarm section.
func (c *Config) AlarmConfig() (models.AlarmConfig, error) {
	return alarm.ParseConfig(c.Alarm.Time, c.Alarm.Date, c.Alarm.Recurrence)
}

// Melody parses the alarm melody, falling back to device.DefaultMelody.
func (c *Config) Melody() (device.Melody, error) {
	if strings.TrimSpace(c.Alarm.Melody) == "" {
		return device.DefaultMelody, nil
	}
	return device.ParseMelody(c.Alarm.Melody)
}
