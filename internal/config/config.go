// Package config holds the tunables of the site hosts: defaults as
// constants, optionally overlaid by a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"csethon/internal/intro"
)

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "CSE-A-THON"
)

// Frame pacing.
const (
	FPS = 60
	// MaxFrameDelta caps the clock advance after a stall (window drag,
	// breakpoint) so timers do not fire in a burst.
	MaxFrameDelta = 250 * time.Millisecond
)

// Intro rain.
const (
	FontSize        = 14.0
	ResetChance     = 0.02
	HighlightChance = 0.02
)

// Ambient animators.
const (
	StarCount   = 100
	SymbolCount = 150
)

// Audio.
const (
	SampleRate = 44100
	Volume     = 0.35
)

// Headless rendering.
const (
	SnapshotFrames = 420
	SnapshotEvery  = 30
	SnapshotDir    = "frames"
)

// SeedEnv overrides the random seed.
const SeedEnv = "CSETHON_SEED"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window   Window   `yaml:"window"`
	FPS      int      `yaml:"fps"`
	Seed     uint64   `yaml:"seed"`
	Content  string   `yaml:"content"`
	Intro    Intro    `yaml:"intro"`
	Ambient  Ambient  `yaml:"ambient"`
	Audio    Audio    `yaml:"audio"`
	Snapshot Snapshot `yaml:"snapshot"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Intro struct {
	Schedule        intro.Schedule `yaml:"schedule"`
	FontSize        float64        `yaml:"font_size"`
	ResetChance     float64        `yaml:"reset_chance"`
	HighlightChance float64        `yaml:"highlight_chance"`
	Shader          bool           `yaml:"shader"`
}

type Ambient struct {
	Stars   int `yaml:"stars"`
	Symbols int `yaml:"symbols"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type Snapshot struct {
	Frames int    `yaml:"frames"`
	Every  int    `yaml:"every"`
	Dir    string `yaml:"dir"`
}

func Default() Config {
	return Config{
		Window: Window{Width: WindowWidth, Height: WindowHeight, Title: WindowTitle},
		FPS:    FPS,
		Intro: Intro{
			Schedule:        intro.DefaultSchedule(),
			FontSize:        FontSize,
			ResetChance:     ResetChance,
			HighlightChance: HighlightChance,
			Shader:          true,
		},
		Ambient:  Ambient{Stars: StarCount, Symbols: SymbolCount},
		Audio:    Audio{Enabled: true, Volume: Volume},
		Snapshot: Snapshot{Frames: SnapshotFrames, Every: SnapshotEvery, Dir: SnapshotDir},
	}
}

// Load returns the defaults overlaid with the YAML file at path (if any)
// and the environment, validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() error {
	s := os.Getenv(SeedEnv)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, SeedEnv, s, err)
	}
	c.Seed = v
	return nil
}

// SeedOr returns the configured seed, or fallback when none was set.
func (c Config) SeedOr(fallback uint64) uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return fallback
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.Intro.FontSize <= 0:
		return fmt.Errorf("%w: intro font size %v", ErrInvalid, c.Intro.FontSize)
	case c.Intro.ResetChance < 0 || c.Intro.ResetChance > 1:
		return fmt.Errorf("%w: reset chance %v", ErrInvalid, c.Intro.ResetChance)
	case c.Intro.HighlightChance < 0 || c.Intro.HighlightChance > 1:
		return fmt.Errorf("%w: highlight chance %v", ErrInvalid, c.Intro.HighlightChance)
	case c.Ambient.Stars < 0 || c.Ambient.Symbols < 0:
		return fmt.Errorf("%w: negative ambient count", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: volume %v", ErrInvalid, c.Audio.Volume)
	case c.Snapshot.Frames < 0 || c.Snapshot.Every <= 0:
		return fmt.Errorf("%w: snapshot frames %d every %d", ErrInvalid, c.Snapshot.Frames, c.Snapshot.Every)
	}
	if err := c.Intro.Schedule.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// FrameInterval is the nominal time between frames.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
