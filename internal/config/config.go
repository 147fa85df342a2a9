package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. OVERLAY_TRACKING_FAST_HZ.
	EnvPrefix = "overlay"

	appDir   = "cursor-overlay"
	fileName = "config.yaml"
)

type Config struct {
	Tracking struct {
		// Source selects the pointer event producer: "hook" or "poll".
		Source string `yaml:"source" envconfig:"source"`
		FastHz int    `yaml:"fast_hz" envconfig:"fast_hz"`
		SlowHz int    `yaml:"slow_hz" envconfig:"slow_hz"`
		PollHz int    `yaml:"poll_hz" envconfig:"poll_hz"`
	} `yaml:"tracking" envconfig:"tracking"`
	Visibility struct {
		RecheckInterval time.Duration `yaml:"recheck_interval" envconfig:"recheck_interval"`
	} `yaml:"visibility" envconfig:"visibility"`
	Cursor struct {
		// Hex encoded BLAKE2b-256 digests of the hand cursors sharing the pointing hand size.
		Digests struct {
			PointingHand string `yaml:"pointing_hand" envconfig:"pointing_hand"`
			OpenHand     string `yaml:"open_hand" envconfig:"open_hand"`
			ClosedHand   string `yaml:"closed_hand" envconfig:"closed_hand"`
		} `yaml:"digests" envconfig:"digests"`
		// Reference PNGs of the same cursors, hashed once at startup. Missing files are skipped.
		Images struct {
			PointingHand string `yaml:"pointing_hand" envconfig:"pointing_hand"`
			OpenHand     string `yaml:"open_hand" envconfig:"open_hand"`
			ClosedHand   string `yaml:"closed_hand" envconfig:"closed_hand"`
		} `yaml:"images" envconfig:"images"`
	} `yaml:"cursor" envconfig:"cursor"`
	Overlay struct {
		// Backend is "window" for the on-screen overlay or "log" for headless runs.
		Backend string `yaml:"backend" envconfig:"backend"`
		Width   int    `yaml:"width" envconfig:"width"`
		Height  int    `yaml:"height" envconfig:"height"`
	} `yaml:"overlay" envconfig:"overlay"`
	Preferences struct {
		Path string `yaml:"path" envconfig:"path"`
	} `yaml:"preferences" envconfig:"preferences"`
	Logging struct {
		Level  string `yaml:"level" envconfig:"level"`
		Format string `yaml:"format" envconfig:"format"`
	} `yaml:"logging" envconfig:"logging"`
}

func NewConfig() *Config {
	cfg := &Config{}

	cfg.Tracking.Source = "hook"
	cfg.Tracking.FastHz = 60
	cfg.Tracking.SlowHz = 5
	cfg.Tracking.PollHz = 120

	cfg.Visibility.RecheckInterval = 1500 * time.Millisecond

	cursors := filepath.Join(defaultDir(), "cursors")
	cfg.Cursor.Images.PointingHand = filepath.Join(cursors, "pointing-hand.png")
	cfg.Cursor.Images.OpenHand = filepath.Join(cursors, "open-hand.png")
	cfg.Cursor.Images.ClosedHand = filepath.Join(cursors, "closed-hand.png")

	cfg.Overlay.Backend = "window"
	cfg.Overlay.Width = 50
	cfg.Overlay.Height = 50

	cfg.Preferences.Path = filepath.Join(defaultDir(), "preferences.yaml")

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"

	return cfg
}

// DefaultPath is where Load looks when no explicit config file is given.
func DefaultPath() string {
	return filepath.Join(defaultDir(), fileName)
}

// Load builds a Config from defaults, then the YAML file at path, then environment
// overrides. A missing file at the default path is not an error.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Tracking.Source {
	case "hook", "poll":
	default:
		return fmt.Errorf("invalid tracking source %q", c.Tracking.Source)
	}
	if c.Tracking.SlowHz <= 0 {
		return fmt.Errorf("invalid slow cadence: %d Hz", c.Tracking.SlowHz)
	}
	if c.Tracking.FastHz <= c.Tracking.SlowHz {
		return fmt.Errorf("fast cadence (%d Hz) must exceed slow cadence (%d Hz)", c.Tracking.FastHz, c.Tracking.SlowHz)
	}
	if c.Tracking.Source == "poll" && c.Tracking.PollHz <= 0 {
		return fmt.Errorf("invalid poll rate: %d Hz", c.Tracking.PollHz)
	}
	if c.Visibility.RecheckInterval <= 0 {
		return fmt.Errorf("invalid recheck interval: %v", c.Visibility.RecheckInterval)
	}
	switch c.Overlay.Backend {
	case "window", "log":
	default:
		return fmt.Errorf("invalid overlay backend %q", c.Overlay.Backend)
	}
	if c.Overlay.Width <= 0 || c.Overlay.Height <= 0 {
		return fmt.Errorf("invalid overlay size %dx%d", c.Overlay.Width, c.Overlay.Height)
	}
	if c.Preferences.Path == "" {
		return errors.New("preferences path must not be empty")
	}
	return nil
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appDir)
}
