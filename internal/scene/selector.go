package scene

import (
	"fmt"
	"strings"

	"github.com/san-kum/repulse/internal/repulse"
)

// compound is one simple-selector sequence such as "span.letter#a".
type compound struct {
	tag     string
	id      string
	classes []string
}

// chain is a descendant chain: the last compound matches the element, the
// rest must match ancestors in order.
type chain []compound

type selector []chain

func parseSelector(s string) (selector, error) {
	var sel selector
	for _, group := range strings.Split(s, ",") {
		fields := strings.Fields(group)
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: empty selector group in %q", ErrSelector, s)
		}
		c := make(chain, 0, len(fields))
		for _, f := range fields {
			cp, err := parseCompound(f)
			if err != nil {
				return nil, err
			}
			c = append(c, cp)
		}
		sel = append(sel, c)
	}
	return sel, nil
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	for i < len(s) && s[i] != '.' && s[i] != '#' {
		i++
	}
	c.tag = strings.ToLower(s[:i])
	if c.tag == "*" {
		c.tag = ""
	}

	for i < len(s) {
		kind := s[i]
		j := i + 1
		for j < len(s) && s[j] != '.' && s[j] != '#' {
			j++
		}
		name := s[i+1 : j]
		if name == "" {
			return c, fmt.Errorf("%w: dangling %q in %q", ErrSelector, kind, s)
		}
		if kind == '#' {
			c.id = name
		} else {
			c.classes = append(c.classes, name)
		}
		i = j
	}
	return c, nil
}

func (c compound) matches(el *repulse.Element) bool {
	if c.tag != "" && c.tag != el.Tag {
		return false
	}
	if c.id != "" && c.id != el.ID {
		return false
	}
	for _, cls := range c.classes {
		if !el.HasClass(cls) {
			return false
		}
	}
	return true
}

func (c chain) matches(el *repulse.Element) bool {
	last := len(c) - 1
	if !c[last].matches(el) {
		return false
	}
	i := last - 1
	for anc := el.Parent; anc != nil && i >= 0; anc = anc.Parent {
		if c[i].matches(anc) {
			i--
		}
	}
	return i < 0
}

func (s selector) matches(el *repulse.Element) bool {
	for _, c := range s {
		if c.matches(el) {
			return true
		}
	}
	return false
}
