package scene

import (
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Node describes one element of a scene file. With Letters set, the text is
// split into one span.letter child per non-space rune, each Advance wide.
type Node struct {
	Tag      string   `yaml:"tag"`
	ID       string   `yaml:"id,omitempty"`
	Class    []string `yaml:"class,omitempty"`
	Text     string   `yaml:"text,omitempty"`
	Box      Box      `yaml:"box"`
	Letters  bool     `yaml:"letters,omitempty"`
	Advance  float64  `yaml:"advance,omitempty"`
	Children []Node   `yaml:"children,omitempty"`
}

type Spec struct {
	Name     string `yaml:"name"`
	Viewport Size   `yaml:"viewport"`
	Nodes    []Node `yaml:"nodes"`
}

func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func Save(path string, spec *Spec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Spec) Validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport must be positive, got %gx%g", ErrParse, s.Viewport.Width, s.Viewport.Height)
	}
	var walk func(path string, nodes []Node) error
	walk = func(path string, nodes []Node) error {
		for i, n := range nodes {
			p := fmt.Sprintf("%s/%d", path, i)
			if n.Tag == "" {
				return fmt.Errorf("%w: node %s has no tag", ErrParse, p)
			}
			if n.Box.W < 0 || n.Box.H < 0 {
				return fmt.Errorf("%w: node %s has negative size", ErrParse, p)
			}
			if err := walk(p, n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk("", s.Nodes)
}

// Default is the stock landing page: a title block, an #intro section with
// letter-split copy, and more headings below the fold.
func Default(width, height float64) *Spec {
	const adv = 16.0

	centered := func(tag, text string, y, charW, h float64) Node {
		w := float64(utf8.RuneCountInString(text)) * charW
		return Node{Tag: tag, Text: text, Box: Box{X: (width - w) / 2, Y: y, W: w, H: h}}
	}
	letters := func(text string, y float64) Node {
		n := centered("p", text, y, adv, 16)
		n.Letters = true
		n.Advance = adv
		return n
	}

	intro := Node{
		Tag: "section",
		ID:  "intro",
		Box: Box{X: 0, Y: height * 0.45, W: width, H: 200},
		Children: []Node{
			centered("h2", "Who We Are", height*0.45, adv, 16),
			letters("We grow skills like trees.", height*0.45+64),
			letters("One branch at a time.", height*0.45+112),
		},
	}

	return &Spec{
		Name:     "default",
		Viewport: Size{Width: width, Height: height},
		Nodes: []Node{
			centered("h1", "SKILLTREE", height*0.12, adv*2, 32),
			centered("h3", "map what you know", height*0.12+64, adv, 16),
			intro,
			centered("h2", "Features", height*1.1, adv, 16),
			centered("h4", "paths", height*1.1+96, adv, 16),
			centered("h5", "progress", height*1.1+160, adv, 16),
			centered("h6", "community", height*1.1+224, adv, 16),
		},
	}
}

type glyph struct {
	r   rune
	col int
}

// splitLetters returns the non-space runes of text with their column.
func splitLetters(text string) []glyph {
	out := make([]glyph, 0, len(text))
	col := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			out = append(out, glyph{r: r, col: col})
		}
		col++
	}
	return out
}
