package experiment

import (
	"fmt"
	"strings"

	"github.com/san-kum/repulse/internal/repulse"
)

// ApplyParams overrides profile fields named "<class>.<field>", e.g.
// "heading.spring" or "letter.radius". The result is validated.
func ApplyParams(p repulse.Profiles, params map[string]float64) (repulse.Profiles, error) {
	for key, v := range params {
		class, field, ok := strings.Cut(key, ".")
		if !ok {
			return p, fmt.Errorf("param %q: want <class>.<field>", key)
		}
		cls, err := repulse.ParseClass(class)
		if err != nil {
			return p, fmt.Errorf("param %q: %w", key, err)
		}

		target := &p.Heading
		if cls == repulse.ClassLetter {
			target = &p.Letter
		}
		switch field {
		case "radius":
			target.Radius = v
		case "strength":
			target.Strength = v
		case "spring":
			target.Spring = v
		default:
			return p, fmt.Errorf("param %q: unknown field %q", key, field)
		}
	}
	return p, p.Validate()
}
