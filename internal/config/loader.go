package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FOCUSTRACK_"

// DefaultEnvFile is the .env file read by default.
const DefaultEnvFile = ".env"

// Loader resolves a Config from defaults, a file and the environment.
type Loader struct {
	path     string
	envFile  string
	lookup   func(string) (string, bool)
	readFile func(string) ([]byte, error)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEnvFile sets the .env file to read. An empty path disables it.
func WithEnvFile(path string) LoaderOption {
	return func(l *Loader) {
		l.envFile = path
	}
}

// WithLookupEnv replaces os.LookupEnv, mainly for tests.
func WithLookupEnv(fn func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.lookup = fn
	}
}

// NewLoader creates a loader for the config file at path. An empty path
// skips the file layer.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{
		path:     path,
		envFile:  DefaultEnvFile,
		lookup:   os.LookupEnv,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads path with the default loader settings.
func Load(path string) (Config, error) {
	return NewLoader(path).Load()
}

// Load resolves and validates the configuration.
func (l *Loader) Load() (Config, error) {
	cfg := Defaults()

	if l.path != "" {
		if err := l.loadFile(&cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := l.readEnvFile()
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg, func(key string) (string, bool) {
		if v, ok := l.lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l *Loader) loadFile(cfg *Config) error {
	data, err := l.readFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return decode(l.path, data, cfg)
}

func (l *Loader) readEnvFile() (map[string]string, error) {
	if l.envFile == "" {
		return nil, nil
	}
	vals, err := godotenv.Read(l.envFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &ParseError{Path: l.envFile, Message: err.Error(), Err: err}
	}
	return vals, nil
}

// decode unmarshals data over cfg, choosing the format by extension.
func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			perr := &ParseError{Path: path, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return perr
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			// An empty document is fine.
			if errors.Is(err, io.EOF) {
				return nil
			}
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// envSetting maps one environment variable onto a field.
type envSetting struct {
	name string
	set  func(*Config, string) error
}

func durationSetter(field func(*Config) *Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		return field(c).UnmarshalText([]byte(v))
	}
}

var envSettings = []envSetting{
	{"SELECTOR", func(c *Config, v string) error { c.Selector = v; return nil }},
	{"THROTTLE_INTERVAL", durationSetter(func(c *Config) *Duration { return &c.Timing.ThrottleInterval })},
	{"CHAR_INSERT_DELAY", durationSetter(func(c *Config) *Duration { return &c.Timing.CharInsertDelay })},
	{"TEXT_INSERT_DELAY", durationSetter(func(c *Config) *Duration { return &c.Timing.TextInsertDelay })},
	{"ORIENTATION_DELAY", durationSetter(func(c *Config) *Duration { return &c.Timing.OrientationDelay })},
	{"HIT_POLL_INTERVAL", durationSetter(func(c *Config) *Duration { return &c.Hit.PollInterval })},
	{"HIT_MAX_DURATION", durationSetter(func(c *Config) *Duration { return &c.Hit.MaxDuration })},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Logging.Level = v; return nil }},
	{"LOG_FORMAT", func(c *Config, v string) error { c.Logging.Format = v; return nil }},
	{"USER_AGENT", func(c *Config, v string) error { c.Platform.UserAgent = v; return nil }},
	{"BUGGY_MOBILE", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Platform.BuggyMobile = b
		return nil
	}},
}

// EnvNames lists every recognized environment variable.
func EnvNames() []string {
	names := make([]string, len(envSettings))
	for i, s := range envSettings {
		names[i] = EnvPrefix + s.name
	}
	return names
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, s := range envSettings {
		key := EnvPrefix + s.name
		v, ok := lookup(key)
		if !ok {
			continue
		}
		if err := s.set(cfg, strings.TrimSpace(v)); err != nil {
			return &ParseError{Path: key, Message: err.Error(), Err: err}
		}
	}
	return nil
}
