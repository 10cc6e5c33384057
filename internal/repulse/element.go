package repulse

import "slices"

// Element is a node of the page the animator can move. Its client rect is
// maintained by whoever owns the layout; the animator only reads it and
// writes the transform.
type Element struct {
	Tag     string
	ID      string
	Classes []string
	Text    string
	Parent  *Element

	rect      Rect
	transform string
}

// BoundingClientRect returns the element's box relative to the viewport.
func (e *Element) BoundingClientRect() Rect { return e.rect }

// SetRect updates the viewport-relative box. Layout owners call it between
// ticks, e.g. after scrolling.
func (e *Element) SetRect(r Rect) { e.rect = r }

func (e *Element) SetTransform(t string) { e.transform = t }
func (e *Element) Transform() string     { return e.transform }

func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.Classes, name)
}
