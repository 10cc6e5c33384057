package config

import (
	"slices"

	"github.com/san-kum/repulse/internal/repulse"
)

var Presets = map[string]ProfilesConfig{
	"default": {
		Heading: fromProfile(repulse.HeadingProfile),
		Letter:  fromProfile(repulse.LetterProfile),
	},
	"calm": {
		Heading: ProfileConfig{Radius: 80, Strength: 0.8, Spring: 0.3},
		Letter:  ProfileConfig{Radius: 40, Strength: 0.4, Spring: 0.35},
	},
	"lively": {
		Heading: ProfileConfig{Radius: 140, Strength: 3.0, Spring: 0.12},
		Letter:  ProfileConfig{Radius: 90, Strength: 1.6, Spring: 0.15},
	},
}

// GetPreset returns a default config carrying the named profiles, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Profiles = p
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
