package experiment

import (
	"errors"
	"testing"

	"github.com/san-kum/repulse/internal/repulse"
)

func TestApplyParams(t *testing.T) {
	base := repulse.DefaultProfiles()

	got, err := ApplyParams(base, map[string]float64{"heading.spring": 0.3, "letter.radius": 80})
	if err != nil {
		t.Fatal(err)
	}
	if got.Heading.Spring != 0.3 || got.Letter.Radius != 80 {
		t.Errorf("overrides not applied: %+v", got)
	}
	if got.Heading.Radius != base.Heading.Radius {
		t.Errorf("untouched field changed: %+v", got.Heading)
	}

	tests := []struct {
		name   string
		params map[string]float64
	}{
		{"no dot", map[string]float64{"spring": 1}},
		{"bad class", map[string]float64{"button.spring": 1}},
		{"bad field", map[string]float64{"heading.mass": 1}},
		{"invalid value", map[string]float64{"letter.radius": -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ApplyParams(base, tt.params); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := ApplyParams(base, map[string]float64{"letter.radius": -1}); !errors.Is(err, repulse.ErrInvalidProfile) {
		t.Errorf("err = %v, want ErrInvalidProfile", err)
	}
}
