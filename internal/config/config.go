// Runtime configuration loaded from an optional TOML file
package config

import (
	"image/color"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds display, camera and logging settings.
// Every field has a default, so the application runs without a config file.
type Config struct {
	Debug bool `toml:"debug"`

	// Display surface
	PanelWidth  int    `toml:"panel_width"`
	PanelHeight int    `toml:"panel_height"`
	Background  string `toml:"background"` // "#rrggbb"

	// Camera polling
	CameraDevice int      `toml:"camera_device"`
	PollInterval Duration `toml:"poll_interval"`

	// Reload the loaded image when it changes on disk
	WatchImage bool `toml:"watch_image"`

	// Optional rotating log file
	LogFile       string `toml:"log_file"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`
}

// Duration wraps time.Duration so it can be written as "10ms" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", string(text))
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

const (
	DefaultPanelWidth   = 450
	DefaultPanelHeight  = 500
	DefaultBackground   = "#d3d3d3"
	DefaultPollInterval = 10 * time.Millisecond

	maxPanelDimension = 4096
	minPollInterval   = time.Millisecond
	maxPollInterval   = time.Second
)

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		PanelWidth:    DefaultPanelWidth,
		PanelHeight:   DefaultPanelHeight,
		Background:    DefaultBackground,
		CameraDevice:  0,
		PollInterval:  Duration{DefaultPollInterval},
		WatchImage:    true,
		LogFile:       "",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.PanelWidth <= 0 || c.PanelWidth > maxPanelDimension {
		c.PanelWidth = DefaultPanelWidth
	}
	if c.PanelHeight <= 0 || c.PanelHeight > maxPanelDimension {
		c.PanelHeight = DefaultPanelHeight
	}
	if c.CameraDevice < 0 {
		c.CameraDevice = 0
	}
	if c.PollInterval.Duration < minPollInterval || c.PollInterval.Duration > maxPollInterval {
		c.PollInterval = Duration{DefaultPollInterval}
	}
	if _, err := ParseHexColor(c.Background); err != nil {
		c.Background = DefaultBackground
	}
	if c.LogMaxSizeMB <= 0 {
		c.LogMaxSizeMB = 10
	}
	if c.LogMaxBackups < 0 {
		c.LogMaxBackups = 0
	}
	return nil
}

// BackgroundColor returns the neutral colour used for cleared panels.
func (c *Config) BackgroundColor() color.NRGBA {
	bg, err := ParseHexColor(c.Background)
	if err != nil {
		bg, _ = ParseHexColor(DefaultBackground)
	}
	return bg
}

// Load reads configuration from the given TOML file. A missing file yields
// DefaultConfig(). On decode error it returns defaults together with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "stat config %s", path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), errors.Wrapf(err, "decode config %s", path)
	}

	_ = cfg.Validate()
	return cfg, nil
}

// ParseHexColor parses "#rrggbb" into an opaque colour.
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return c, errors.Errorf("invalid colour %q", s)
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[1+2*i])
		lo, ok2 := hexNibble(s[2+2*i])
		if !ok1 || !ok2 {
			return c, errors.Errorf("invalid colour %q", s)
		}
		rgb[i] = hi<<4 | lo
	}

	c.R, c.G, c.B = rgb[0], rgb[1], rgb[2]
	return c, nil
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
