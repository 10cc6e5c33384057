package repulse

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeDoc places elements at fixed page boxes and derives client rects from
// the scroll offset.
type fakeDoc struct {
	headings []*Element
	letters  []*Element
	boxes    map[*Element]Rect
	scroll   Vec2
	queries  int
}

func newFakeDoc() *fakeDoc {
	return &fakeDoc{boxes: make(map[*Element]Rect)}
}

func (d *fakeDoc) add(el *Element, box Rect) *Element {
	d.boxes[el] = box
	el.SetRect(box.Offset(Vec2{-d.scroll.X, -d.scroll.Y}))
	if el.HasClass("letter") {
		d.letters = append(d.letters, el)
	} else {
		d.headings = append(d.headings, el)
	}
	return el
}

func (d *fakeDoc) setScroll(y float64) {
	d.scroll = Vec2{0, y}
	for el, box := range d.boxes {
		el.SetRect(box.Offset(Vec2{0, -y}))
	}
}

func (d *fakeDoc) QuerySelectorAll(selector string) []*Element {
	d.queries++
	switch selector {
	case HeadingSelector:
		return d.headings
	case LetterSelector:
		return d.letters
	}
	return nil
}

func (d *fakeDoc) Scroll() Vec2 { return d.scroll }

type frameQueue struct {
	pending []func()
}

func (q *frameQueue) RequestAnimationFrame(fn func()) { q.pending = append(q.pending, fn) }

func (q *frameQueue) flush() {
	pending := q.pending
	q.pending = nil
	for _, fn := range pending {
		fn()
	}
}

type tickRecorder struct {
	ticks []Tick
}

func (r *tickRecorder) OnTick(t *Tick) { r.ticks = append(r.ticks, *t) }

var _ = Describe("Animator", func() {
	var (
		doc     *fakeDoc
		frames  *frameQueue
		anim    *Animator
		heading *Element
		letter  *Element
	)

	BeforeEach(func() {
		doc = newFakeDoc()
		frames = &frameQueue{}
		heading = doc.add(&Element{Tag: "h1", Text: "Welcome"}, Rect{X: 100, Y: 100, W: 200, H: 40})
		letter = doc.add(&Element{Tag: "span", Classes: []string{"letter"}, Text: "W"}, Rect{X: 400, Y: 600, W: 20, H: 30})
		anim = New(doc, frames, DefaultProfiles())
	})

	Describe("Init", func() {
		It("registers headings and letters once", func() {
			Expect(anim.Init()).To(Equal(2))
			Expect(anim.Registry().Len()).To(Equal(2))

			t, ok := anim.Registry().Lookup(letter)
			Expect(ok).To(BeTrue())
			Expect(t.Class).To(Equal(ClassLetter))
		})

		It("leaves existing state untouched on re-registration", func() {
			anim.Init()
			anim.PointerMove(200, 120)
			before, _ := anim.Registry().Lookup(heading)
			snapshot := *before.State

			Expect(anim.Init()).To(Equal(0))
			after, _ := anim.Registry().Lookup(heading)
			Expect(after.State).To(BeIdenticalTo(before.State))
			Expect(*after.State).To(Equal(snapshot))
		})
	})

	Describe("PointerMove", func() {
		BeforeEach(func() { anim.Init() })

		It("pushes an element whose center is under the cursor along +x", func() {
			anim.PointerMove(200, 120)

			s, ok := anim.State(heading)
			Expect(ok).To(BeTrue())
			Expect(s.VelocityX).To(BeNumerically("~", 1.5*Damping, 1e-12))
			Expect(s.VelocityY).To(BeZero())
			Expect(s.OffsetX).To(BeNumerically("~", 1.35, 1e-12))
			Expect(heading.Transform()).To(Equal(Translate(s.OffsetX, s.OffsetY)))
		})

		It("applies no force beyond the radius", func() {
			anim.PointerMove(200, 120+150)

			s, _ := anim.State(heading)
			Expect(s).To(Equal(State{}))
			Expect(heading.Transform()).To(Equal("translate(0px, 0px)"))
		})

		It("keeps integrating after the cursor leaves", func() {
			anim.PointerMove(190, 120)
			pushed, _ := anim.State(heading)
			Expect(pushed.OffsetX).To(BeNumerically(">", 0))

			for i := 0; i < 300; i++ {
				anim.PointerMove(900, 900)
			}
			rest, _ := anim.State(heading)
			Expect(rest.Offset().Len()).To(BeNumerically("<", 1e-3))
		})

		It("skips elements without state", func() {
			stray := doc.add(&Element{Tag: "h2"}, Rect{X: 190, Y: 110, W: 20, H: 20})
			anim.PointerMove(200, 120)

			Expect(stray.Transform()).To(BeEmpty())
			_, ok := anim.State(stray)
			Expect(ok).To(BeFalse())
		})

		It("re-queries the document every tick", func() {
			before := doc.queries
			anim.PointerMove(0, 0)
			anim.PointerMove(1, 1)
			Expect(doc.queries - before).To(Equal(4))
		})

		It("reports samples to observers", func() {
			rec := &tickRecorder{}
			anim.AddObserver(rec)
			anim.PointerMove(200, 120)

			Expect(rec.ticks).To(HaveLen(1))
			tick := rec.ticks[0]
			Expect(tick.Synthetic).To(BeFalse())
			Expect(tick.Cursor).To(Equal(Vec2{200, 120}))
			Expect(tick.Samples).To(HaveLen(2))
			Expect(tick.Samples[0].Force).To(Equal(HeadingProfile.Strength))
			Expect(tick.Samples[1].Force).To(BeZero())
		})
	})

	Describe("Scroll", func() {
		BeforeEach(func() { anim.Init() })

		It("waits for the next animation frame", func() {
			rec := &tickRecorder{}
			anim.AddObserver(rec)

			anim.Scroll()
			Expect(rec.ticks).To(BeEmpty())

			frames.flush()
			Expect(rec.ticks).To(HaveLen(1))
			Expect(rec.ticks[0].Synthetic).To(BeTrue())
		})

		It("uses the origin when the pointer never moved", func() {
			doc.setScroll(50)
			anim.Scroll()
			frames.flush()

			Expect(anim.Cursor().Moved).To(BeFalse())
			Expect(anim.Cursor().Page).To(Equal(Vec2{0, 50}))
			s, _ := anim.State(heading)
			Expect(s).To(Equal(State{}))
		})

		It("is deterministic across runs", func() {
			run := func() State {
				d := newFakeDoc()
				q := &frameQueue{}
				h := d.add(&Element{Tag: "h1"}, Rect{X: -20, Y: 20, W: 40, H: 40})
				a := New(d, q, DefaultProfiles())
				a.Init()
				d.setScroll(10)
				a.Scroll()
				q.flush()
				s, _ := a.State(h)
				return s
			}
			first := run()
			Expect(first.Offset().Len()).To(BeNumerically(">", 0))
			for i := 0; i < 10; i++ {
				Expect(run()).To(Equal(first))
			}
		})

		It("reacts to content scrolled under a still pointer", func() {
			anim.PointerMove(410, 115)
			s, _ := anim.State(letter)
			Expect(s).To(Equal(State{}))

			doc.setScroll(500)
			anim.Scroll()
			frames.flush()

			Expect(anim.Cursor().Page).To(Equal(Vec2{410, 615}))
			s, _ = anim.State(letter)
			Expect(s.OffsetX).To(BeNumerically(">", 0))
		})
	})
})
