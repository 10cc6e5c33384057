package repulse

import "fmt"

// Damping scales velocity once per tick before the spring is applied.
const Damping = 0.9

type Class int

const (
	ClassHeading Class = iota
	ClassLetter
)

func (c Class) String() string {
	switch c {
	case ClassHeading:
		return "heading"
	case ClassLetter:
		return "letter"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

func ParseClass(s string) (Class, error) {
	switch s {
	case "heading":
		return ClassHeading, nil
	case "letter":
		return ClassLetter, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// Profile configures how one class of elements reacts to the cursor.
type Profile struct {
	Radius   float64 // px; no force at or beyond this distance
	Strength float64 // force at zero distance
	Spring   float64 // restoring coefficient toward rest
}

var (
	HeadingProfile = Profile{Radius: 100, Strength: 1.5, Spring: 0.2}
	LetterProfile  = Profile{Radius: 60, Strength: 0.8, Spring: 0.25}
)

func (p Profile) Validate() error {
	if p.Radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidProfile, p.Radius)
	}
	if p.Strength < 0 {
		return fmt.Errorf("%w: strength must be non-negative, got %g", ErrInvalidProfile, p.Strength)
	}
	if p.Spring < 0 {
		return fmt.Errorf("%w: spring must be non-negative, got %g", ErrInvalidProfile, p.Spring)
	}
	return nil
}

// Profiles holds one profile per element class.
type Profiles struct {
	Heading Profile
	Letter  Profile
}

func DefaultProfiles() Profiles {
	return Profiles{Heading: HeadingProfile, Letter: LetterProfile}
}

func (p Profiles) For(c Class) Profile {
	if c == ClassLetter {
		return p.Letter
	}
	return p.Heading
}

func (p Profiles) Validate() error {
	if err := p.Heading.Validate(); err != nil {
		return fmt.Errorf("heading: %w", err)
	}
	if err := p.Letter.Validate(); err != nil {
		return fmt.Errorf("letter: %w", err)
	}
	return nil
}
