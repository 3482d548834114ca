package config

import (
	"fmt"
	"time"

	"github.com/dshills/focustrack/internal/focus"
	"github.com/dshills/focustrack/internal/logging"
	"github.com/dshills/focustrack/internal/platform"
)

// Config is the complete focustrack configuration.
type Config struct {
	// Selector selects the editable regions to track.
	Selector string `toml:"selector" yaml:"selector"`

	Timing   TimingConfig   `toml:"timing" yaml:"timing"`
	Hit      HitConfig      `toml:"hit" yaml:"hit"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Platform PlatformConfig `toml:"platform" yaml:"platform"`
}

// TimingConfig holds the delays used by the selection synchronizer.
type TimingConfig struct {
	ThrottleInterval Duration `toml:"throttle_interval" yaml:"throttle_interval"`
	CharInsertDelay  Duration `toml:"char_insert_delay" yaml:"char_insert_delay"`
	TextInsertDelay  Duration `toml:"text_insert_delay" yaml:"text_insert_delay"`
	OrientationDelay Duration `toml:"orientation_delay" yaml:"orientation_delay"`
}

// HitConfig bounds the poll started by a pointer hit.
type HitConfig struct {
	PollInterval Duration `toml:"poll_interval" yaml:"poll_interval"`
	MaxDuration  Duration `toml:"max_duration" yaml:"max_duration"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// PlatformConfig describes the host platform.
type PlatformConfig struct {
	// UserAgent is matched against known buggy mobile browsers.
	UserAgent string `toml:"user_agent" yaml:"user_agent"`

	// BuggyMobile forces range sanitizing on regardless of UserAgent.
	BuggyMobile bool `toml:"buggy_mobile" yaml:"buggy_mobile"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Selector: ".editable",
		Timing: TimingConfig{
			ThrottleInterval: Duration(100 * time.Millisecond),
			CharInsertDelay:  Duration(20 * time.Millisecond),
			TextInsertDelay:  Duration(20 * time.Millisecond),
			OrientationDelay: Duration(500 * time.Millisecond),
		},
		Hit: HitConfig{
			PollInterval: Duration(10 * time.Millisecond),
			MaxDuration:  Duration(5 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks every setting and returns the first problem found.
func (c Config) Validate() error {
	if c.Selector == "" {
		return &ValidationError{Path: "selector", Value: c.Selector, Message: "must not be empty"}
	}

	positive := []struct {
		path string
		val  Duration
	}{
		{"timing.throttle_interval", c.Timing.ThrottleInterval},
		{"hit.poll_interval", c.Hit.PollInterval},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return &ValidationError{Path: p.path, Value: p.val, Message: "must be positive"}
		}
	}

	nonNegative := []struct {
		path string
		val  Duration
	}{
		{"timing.char_insert_delay", c.Timing.CharInsertDelay},
		{"timing.text_insert_delay", c.Timing.TextInsertDelay},
		{"timing.orientation_delay", c.Timing.OrientationDelay},
		{"hit.max_duration", c.Hit.MaxDuration},
	}
	for _, p := range nonNegative {
		if p.val < 0 {
			return &ValidationError{Path: p.path, Value: p.val, Message: "must not be negative"}
		}
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn or error"}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ValidationError{Path: "logging.format", Value: c.Logging.Format, Message: "must be text or json"}
	}
	return nil
}

// Probe returns the platform probe described by the config.
func (c Config) Probe() platform.Probe {
	if c.Platform.BuggyMobile {
		return platform.Static{BuggyMobile: true}
	}
	return platform.UserAgent(c.Platform.UserAgent)
}

// TrackerOptions converts the timing and hit settings to tracker options.
func (c Config) TrackerOptions() []focus.Option {
	return []focus.Option{
		focus.WithThrottleInterval(c.Timing.ThrottleInterval.Std()),
		focus.WithCharInsertDelay(c.Timing.CharInsertDelay.Std()),
		focus.WithTextInsertDelay(c.Timing.TextInsertDelay.Std()),
		focus.WithOrientationDelay(c.Timing.OrientationDelay.Std()),
		focus.WithHitPollInterval(c.Hit.PollInterval.Std()),
		focus.WithHitMaxDuration(c.Hit.MaxDuration.Std()),
	}
}

// LoggerConfig returns the logging settings in the logger's own shape.
func (c Config) LoggerConfig() logging.Config {
	return logging.Config{Level: c.Logging.Level, Format: c.Logging.Format}
}

// String summarizes the effective timing, for debug logging.
func (c Config) String() string {
	return fmt.Sprintf("selector=%q throttle=%s char=%s text=%s orientation=%s hit=%s/%s",
		c.Selector,
		c.Timing.ThrottleInterval, c.Timing.CharInsertDelay, c.Timing.TextInsertDelay,
		c.Timing.OrientationDelay, c.Hit.PollInterval, c.Hit.MaxDuration)
}
