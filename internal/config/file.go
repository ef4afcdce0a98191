package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"glescraft/internal/registry"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the on-disk configuration.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	World    WorldConfig    `toml:"world"`
	Controls ControlsConfig `toml:"controls"`
	Log      LogConfig      `toml:"log"`
}

// WindowConfig is the [window] section
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	// Initial frame rate limit in Hz, 0 = unlimited
	Framerate int `toml:"framerate"`
}

// ControlsConfig is the [controls] section
type ControlsConfig struct {
	MoveSpeed          float32 `toml:"move_speed"`
	MouseSpeed         float32 `toml:"mouse_speed"`
	FocusOnTransparent bool    `toml:"focus_on_transparent"`
	BuildType          string  `toml:"build_type"`
}

// LogConfig is the [log] section
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     640,
			Height:    480,
			Title:     "GLEScraft",
			Framerate: 24,
		},
		World: defaultWorld(),
		Controls: ControlsConfig{
			MoveSpeed:          10,
			MouseSpeed:         0.001,
			FocusOnTransparent: true,
			BuildType:          "dirt",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a TOML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML on top of the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}

// Validate checks every section. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Window.Framerate < 0 || c.Window.Framerate > maxFramerate {
		errs = append(errs, fmt.Errorf("%w: framerate %d out of range 0..%d", ErrInvalid, c.Window.Framerate, maxFramerate))
	}
	if err := c.World.validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Controls.MoveSpeed <= 0 {
		errs = append(errs, fmt.Errorf("%w: move_speed must be positive", ErrInvalid))
	}
	if c.Controls.MouseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("%w: mouse_speed must be positive", ErrInvalid))
	}
	if _, ok := registry.Lookup(c.Controls.BuildType); !ok {
		errs = append(errs, fmt.Errorf("%w: unknown build_type %q", ErrInvalid, c.Controls.BuildType))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

// BlockType returns the configured initial build block.
func (c ControlsConfig) BlockType() registry.BlockType {
	b, ok := registry.Lookup(c.BuildType)
	if !ok {
		return registry.BlockTypeDirt
	}
	return b
}

// SlogLevel parses the level name ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	return level, nil
}
