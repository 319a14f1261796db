package solar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// TweenConfig configures the Tween strategy.
type TweenConfig struct {
	// Duration is the approach time in seconds, the same for every body.
	Duration float64 `toml:"duration"`
	Easing   string  `toml:"easing"`
}

// WindowConfig is consumed by the hosts, not the core.
type WindowConfig struct {
	Title  string  `toml:"title"`
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Zoom   float64 `toml:"zoom"`
}

// Config is the scene configuration, usually read from a TOML file.
type Config struct {
	Strategy      Strategy `toml:"strategy"`
	DefaultTarget string   `toml:"default_target"`
	// FrameRate is the nominal frames per second. Tween transitions advance
	// by 1/FrameRate seconds per frame unless ScaleByDelta is set.
	FrameRate float64 `toml:"frame_rate"`
	// ScaleByDelta scales rotation and transitions by measured frame time
	// instead of assuming one tick per frame.
	ScaleByDelta bool `toml:"scale_by_delta"`
	// CameraPivotSpin is the rig pivot's drift about Y in radians per tick
	// (Reparent only; the rig rides the framed body).
	CameraPivotSpin float64 `toml:"camera_pivot_spin"`
	// Tables is a path to a TOML body table; empty uses the embedded table.
	Tables string       `toml:"tables"`
	Debug  bool         `toml:"debug"`
	Tween  TweenConfig  `toml:"tween"`
	Window WindowConfig `toml:"window"`
}

// DefaultConfig returns the configuration of the stock orrery:
// re-parenting camera, 60 frames per second, frame-coupled rotation.
func DefaultConfig() Config {
	return Config{
		Strategy:        StrategyReparent,
		DefaultTarget:   DefaultTarget,
		FrameRate:       60,
		CameraPivotSpin: 0.001,
		Tween: TweenConfig{
			Duration: DefaultTweenDuration,
			Easing:   DefaultEasing,
		},
		Window: WindowConfig{
			Title:  "solar",
			Width:  1280,
			Height: 720,
			Zoom:   1,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	var errs []error
	if c.Strategy != StrategyReparent && c.Strategy != StrategyTween {
		errs = append(errs, fmt.Errorf("strategy: unknown value %d", c.Strategy))
	}
	if c.DefaultTarget == "" {
		errs = append(errs, errors.New("default_target: must not be empty"))
	}
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame_rate: must be positive, got %v", c.FrameRate))
	}
	if c.Tween.Duration <= 0 {
		errs = append(errs, fmt.Errorf("tween.duration: must be positive, got %v", c.Tween.Duration))
	}
	if _, err := Easing(c.Tween.Easing); err != nil {
		errs = append(errs, fmt.Errorf("tween.easing: %w", err))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("window.zoom: must be positive, got %v", c.Window.Zoom))
	}
	return errors.Join(errs...)
}

// OpenTables returns the tables named by c.Tables, or the embedded ones.
func (c Config) OpenTables() (*Tables, error) {
	if c.Tables == "" {
		return DefaultTables()
	}
	return LoadTables(c.Tables)
}
