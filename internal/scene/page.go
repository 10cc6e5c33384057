package scene

import (
	"log/slog"
	"math"
	"slices"

	"github.com/san-kum/repulse/internal/repulse"
)

// Page is an in-memory document: elements with page-space boxes, a viewport
// and a vertical scroll position. It keeps every element's client rect in
// sync with the scroll, the way browser layout does between frames.
type Page struct {
	name     string
	viewport repulse.Vec2
	elements []*repulse.Element
	boxes    []repulse.Rect
	scroll   repulse.Vec2
	height   float64
	cache    map[string]selector
}

func New(spec *Spec) (*Page, error) {
	p := &Page{cache: make(map[string]selector)}
	if err := p.Reload(spec); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload replaces the element tree. Old elements are dropped, so their
// physics state goes away once nothing else references them.
func (p *Page) Reload(spec *Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	p.name = spec.Name
	p.viewport = repulse.Vec2{X: spec.Viewport.Width, Y: spec.Viewport.Height}
	p.elements = p.elements[:0:0]
	p.boxes = p.boxes[:0:0]
	p.height = spec.Viewport.Height

	for _, n := range spec.Nodes {
		p.build(n, nil)
	}
	p.SetScroll(p.scroll.X, p.scroll.Y)
	return nil
}

func (p *Page) build(n Node, parent *repulse.Element) {
	el := &repulse.Element{
		Tag:     n.Tag,
		ID:      n.ID,
		Classes: slices.Clone(n.Class),
		Text:    n.Text,
		Parent:  parent,
	}
	box := repulse.Rect{X: n.Box.X, Y: n.Box.Y, W: n.Box.W, H: n.Box.H}
	p.append(el, box)

	if n.Letters {
		adv := n.Advance
		if adv <= 0 {
			adv = n.Box.H * 0.6
		}
		for _, g := range splitLetters(n.Text) {
			letter := &repulse.Element{
				Tag:     "span",
				Classes: []string{"letter"},
				Text:    string(g.r),
				Parent:  el,
			}
			p.append(letter, repulse.Rect{X: box.X + float64(g.col)*adv, Y: box.Y, W: adv, H: box.H})
		}
	}
	for _, child := range n.Children {
		p.build(child, el)
	}
}

func (p *Page) append(el *repulse.Element, box repulse.Rect) {
	p.elements = append(p.elements, el)
	p.boxes = append(p.boxes, box)
	p.height = math.Max(p.height, box.Y+box.H)
}

func (p *Page) Name() string                 { return p.name }
func (p *Page) Viewport() repulse.Vec2       { return p.viewport }
func (p *Page) ContentHeight() float64       { return p.height }
func (p *Page) Scroll() repulse.Vec2         { return p.scroll }
func (p *Page) Elements() []*repulse.Element { return p.elements }

// MaxScroll is the furthest the page can scroll down.
func (p *Page) MaxScroll() float64 {
	return math.Max(0, p.height-p.viewport.Y)
}

// SetScroll moves the viewport, clamping to the content, refreshes client
// rects and returns the applied offset. Horizontal scroll is always 0.
func (p *Page) SetScroll(_, y float64) repulse.Vec2 {
	y = math.Max(0, math.Min(y, p.MaxScroll()))
	p.scroll = repulse.Vec2{X: 0, Y: y}
	for i, el := range p.elements {
		el.SetRect(p.boxes[i].Offset(repulse.Vec2{X: 0, Y: -y}))
	}
	return p.scroll
}

func (p *Page) ScrollBy(dy float64) repulse.Vec2 {
	return p.SetScroll(0, p.scroll.Y+dy)
}

// Query returns elements matching selector in document order.
func (p *Page) Query(s string) ([]*repulse.Element, error) {
	sel, ok := p.cache[s]
	if !ok {
		var err error
		sel, err = parseSelector(s)
		if err != nil {
			return nil, err
		}
		p.cache[s] = sel
	}

	out := make([]*repulse.Element, 0)
	for _, el := range p.elements {
		if sel.matches(el) {
			out = append(out, el)
		}
	}
	return out, nil
}

// QuerySelectorAll is Query without the error; bad selectors match nothing.
func (p *Page) QuerySelectorAll(s string) []*repulse.Element {
	els, err := p.Query(s)
	if err != nil {
		slog.Warn("selector rejected", "selector", s, "error", err)
		return nil
	}
	return els
}

// Visible reports whether el's client rect intersects the viewport.
func (p *Page) Visible(el *repulse.Element) bool {
	r := el.BoundingClientRect()
	return r.X+r.W >= 0 && r.Y+r.H >= 0 && r.X <= p.viewport.X && r.Y <= p.viewport.Y
}
