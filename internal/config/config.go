// Package config loads gosnap settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/philipparndt/gosnap/pkg/snap"
)

// ErrInvalid reports a configuration value outside its allowed range
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete configuration
type Config struct {
	Snap     snap.Options   `toml:"snap"`
	Watch    WatchConfig    `toml:"watch"`
	Snapshot SnapshotConfig `toml:"snapshot"`
}

// WatchConfig controls model reloading
type WatchConfig struct {
	DebounceMs int `toml:"debounce_ms"`
}

// Debounce returns the debounce interval
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// SnapshotConfig controls flattened still images
type SnapshotConfig struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	FOV        float64 `toml:"fov"`
	Background string  `toml:"background"` // #rrggbb
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Snap:  snap.DefaultOptions(),
		Watch: WatchConfig{DebounceMs: 500},
		Snapshot: SnapshotConfig{
			Width:      1024,
			Height:     768,
			FOV:        camera.DefaultFOV,
			Background: "#1e1e23",
		},
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := checkUndecoded(meta); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults
func Parse(data string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := checkUndecoded(meta); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkUndecoded(meta toml.MetaData) error {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
}

// Validate checks value ranges
func (c Config) Validate() error {
	s := c.Snap
	switch {
	case s.Tolerance < 0:
		return fmt.Errorf("%w: snap_tolerance must not be negative", ErrInvalid)
	case s.MaxVerticesForSnap < 0, s.MaxCircleVertices < 0, s.MaxEdgeTriangles < 0:
		return fmt.Errorf("%w: scan budgets must not be negative", ErrInvalid)
	case s.CircleFitTolerance < 0 || s.CircleFitTolerance >= 1:
		return fmt.Errorf("%w: circle_fit_tolerance must be in [0, 1)", ErrInvalid)
	case s.MinCirclePoints != 0 && s.MinCirclePoints < 3:
		return fmt.Errorf("%w: min_circle_points must be at least 3", ErrInvalid)
	case c.Watch.DebounceMs < 0:
		return fmt.Errorf("%w: debounce_ms must not be negative", ErrInvalid)
	case c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0:
		return fmt.Errorf("%w: snapshot size must be positive", ErrInvalid)
	case !(c.Snapshot.FOV > 0 && c.Snapshot.FOV < 180):
		return fmt.Errorf("%w: snapshot fov must be in (0, 180)", ErrInvalid)
	}
	return nil
}

// Encode renders the configuration as TOML
func (c Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return b.String(), nil
}
