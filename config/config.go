package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

// Mode selects the order of the sub-step pipeline.
type Mode string

const (
	// ModePredict resolves the predicted state and commits it.
	ModePredict Mode = "predict"
	// ModeLockstep resolves the committed state, then integrates it in place.
	ModeLockstep Mode = "lockstep"
)

const (
	DefaultFixedStep = 1.0 / 60.0
	DefaultSlop      = 0.1
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Physics Physics `yaml:"physics"`
	Script  Script  `yaml:"script"`
	Scene   string  `yaml:"scene"`
	Window  Window  `yaml:"window"`
	Log     Log     `yaml:"log"`
}

type Physics struct {
	FixedStep float64 `yaml:"fixed_step"`
	Slop      float64 `yaml:"slop"`
	// MaxSubsteps caps sub-steps per frame; 0 leaves it unbounded.
	MaxSubsteps int       `yaml:"max_substeps"`
	Mode        Mode      `yaml:"mode"`
	Gravity     cp.Vector `yaml:"gravity"`
}

type Script struct {
	Path string `yaml:"path"`
}

type Window struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Title  string  `yaml:"title"`
	Zoom   float64 `yaml:"zoom"`
}

type Log struct {
	Debug bool `yaml:"debug"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Physics: DefaultPhysics(),
		Script:  Script{Path: "scripts/demo.tengo"},
		Scene:   "scenes/demo.yaml",
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "physics2d",
			Zoom:   32,
		},
	}
}

func DefaultPhysics() Physics {
	return Physics{
		FixedStep: DefaultFixedStep,
		Slop:      DefaultSlop,
		Mode:      ModePredict,
	}
}

// Load reads a YAML file over Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default, fills zero fields with defaults and
// validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	cfg.Physics = cfg.Physics.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize replaces zero values with defaults.
func (p Physics) Normalize() Physics {
	if p.FixedStep == 0 {
		p.FixedStep = DefaultFixedStep
	}
	if p.Slop == 0 {
		p.Slop = DefaultSlop
	}
	if p.Mode == "" {
		p.Mode = ModePredict
	}
	return p
}

func (c Config) Validate() error {
	p := c.Physics
	if p.FixedStep <= 0 {
		return fmt.Errorf("%w: physics.fixed_step must be > 0, got %v", ErrInvalidConfig, p.FixedStep)
	}
	if p.Slop < 0 {
		return fmt.Errorf("%w: physics.slop must be >= 0, got %v", ErrInvalidConfig, p.Slop)
	}
	if p.MaxSubsteps < 0 {
		return fmt.Errorf("%w: physics.max_substeps must be >= 0, got %d", ErrInvalidConfig, p.MaxSubsteps)
	}
	switch p.Mode {
	case ModePredict, ModeLockstep:
	default:
		return fmt.Errorf("%w: physics.mode %q", ErrInvalidConfig, p.Mode)
	}
	if c.Window.Zoom < 0 {
		return fmt.Errorf("%w: window.zoom must be >= 0", ErrInvalidConfig)
	}
	return nil
}
