package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/repulse/internal/repulse"
)

const (
	DefaultFPS      = 60
	DefaultWidth    = 960.0
	DefaultHeight   = 640.0
	DefaultCellW    = 8.0
	DefaultCellH    = 16.0
	DefaultLogLevel = "info"
)

type Config struct {
	Scene    string         `yaml:"scene"`
	Trace    string         `yaml:"trace"`
	FPS      int            `yaml:"fps"`
	Viewport ViewportConfig `yaml:"viewport"`
	Cell     CellConfig     `yaml:"cell"`
	Profiles ProfilesConfig `yaml:"profiles"`
	LogLevel string         `yaml:"log_level"`
}

// ViewportConfig sizes the headless page when no scene file is given.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CellConfig maps terminal cells to page pixels in the live view.
type CellConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ProfileConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
	Spring   float64 `yaml:"spring"`
}

type ProfilesConfig struct {
	Heading ProfileConfig `yaml:"heading"`
	Letter  ProfileConfig `yaml:"letter"`
}

func fromProfile(p repulse.Profile) ProfileConfig {
	return ProfileConfig{Radius: p.Radius, Strength: p.Strength, Spring: p.Spring}
}

func (p ProfileConfig) Profile() repulse.Profile {
	return repulse.Profile{Radius: p.Radius, Strength: p.Strength, Spring: p.Spring}
}

func DefaultConfig() *Config {
	return &Config{
		FPS:      DefaultFPS,
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
		Cell:     CellConfig{Width: DefaultCellW, Height: DefaultCellH},
		Profiles: ProfilesConfig{
			Heading: fromProfile(repulse.HeadingProfile),
			Letter:  fromProfile(repulse.LetterProfile),
		},
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RepulsionProfiles returns the profiles the animator is built with. They are
// read once at startup and never change afterwards.
func (c *Config) RepulsionProfiles() repulse.Profiles {
	return repulse.Profiles{
		Heading: c.Profiles.Heading.Profile(),
		Letter:  c.Profiles.Letter.Profile(),
	}
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Cell.Width <= 0 || c.Cell.Height <= 0 {
		return fmt.Errorf("cell size must be positive, got %gx%g", c.Cell.Width, c.Cell.Height)
	}
	return c.RepulsionProfiles().Validate()
}

// SetProfile overrides one class's profile by name ("heading" or "letter").
func (c *Config) SetProfile(class string, p repulse.Profile) error {
	cls, err := repulse.ParseClass(class)
	if err != nil {
		return err
	}
	switch cls {
	case repulse.ClassHeading:
		c.Profiles.Heading = fromProfile(p)
	case repulse.ClassLetter:
		c.Profiles.Letter = fromProfile(p)
	}
	return nil
}

// ParseProfile reads "radius,strength,spring", e.g. "100,1.5,0.2".
func ParseProfile(s string) (repulse.Profile, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return repulse.Profile{}, fmt.Errorf("profile %q: want radius,strength,spring", s)
	}
	var vals [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return repulse.Profile{}, fmt.Errorf("profile %q: %w", s, err)
		}
		vals[i] = v
	}
	p := repulse.Profile{Radius: vals[0], Strength: vals[1], Spring: vals[2]}
	return p, p.Validate()
}

// OverrideProfiles applies "radius,strength,spring" strings keyed by class
// name. Empty values are skipped.
func (c *Config) OverrideProfiles(overrides map[string]string) error {
	for class, raw := range overrides {
		if raw == "" {
			continue
		}
		p, err := ParseProfile(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", class, err)
		}
		if err := c.SetProfile(class, p); err != nil {
			return err
		}
	}
	return nil
}
