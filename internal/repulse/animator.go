package repulse

import "log/slog"

const (
	HeadingSelector = "h1, h2, h3, h4, h5, h6"
	LetterSelector  = "#intro .letter"
)

// Document is the page the animator works on.
type Document interface {
	// QuerySelectorAll returns matching elements in document order.
	QuerySelectorAll(selector string) []*Element
	// Scroll returns the current page scroll offset.
	Scroll() Vec2
}

// Scheduler runs callbacks on the next animation frame.
type Scheduler interface {
	RequestAnimationFrame(fn func())
}

type Observer interface {
	OnTick(t *Tick)
}

// Cursor is the pointer context shared by move and scroll handling. Client
// is the last viewport position; Page is Client plus the scroll at the time
// of the last tick.
type Cursor struct {
	Client Vec2
	Page   Vec2
	Moved  bool
}

// Sample is one element's contribution to a tick.
type Sample struct {
	ID     int
	Class  Class
	Center Vec2
	Force  float64
	State  State
}

type Tick struct {
	Seq       int
	Cursor    Vec2
	Synthetic bool
	Samples   []Sample
}

type Animator struct {
	doc       Document
	sched     Scheduler
	profiles  Profiles
	registry  *Registry
	cursor    Cursor
	observers []Observer
	seq       int
	logger    *slog.Logger
}

type Option func(*Animator)

func WithLogger(l *slog.Logger) Option {
	return func(a *Animator) { a.logger = l }
}

// WithRegistry shares a registry between animators, e.g. across a scene
// reload.
func WithRegistry(r *Registry) Option {
	return func(a *Animator) { a.registry = r }
}

func New(doc Document, sched Scheduler, profiles Profiles, opts ...Option) *Animator {
	a := &Animator{
		doc:       doc,
		sched:     sched,
		profiles:  profiles,
		observers: make([]Observer, 0),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = NewRegistry()
	}
	return a
}

func (a *Animator) AddObserver(o Observer) { a.observers = append(a.observers, o) }
func (a *Animator) Registry() *Registry    { return a.registry }
func (a *Animator) Profiles() Profiles     { return a.profiles }
func (a *Animator) Cursor() Cursor         { return a.cursor }

// Init registers every heading and intro letter currently in the document
// and returns how many new entries were created. Calling it again only picks
// up elements that appeared since.
func (a *Animator) Init() int {
	created := 0
	for _, el := range a.doc.QuerySelectorAll(HeadingSelector) {
		if a.Register(el, ClassHeading) {
			created++
		}
	}
	for _, el := range a.doc.QuerySelectorAll(LetterSelector) {
		if a.Register(el, ClassLetter) {
			created++
		}
	}
	a.logger.Debug("repulsion registered", "created", created, "tracked", a.registry.Len())
	return created
}

func (a *Animator) Register(el *Element, class Class) bool {
	_, created := a.registry.Register(el, class)
	return created
}

func (a *Animator) State(el *Element) (State, bool) {
	t, ok := a.registry.Lookup(el)
	if !ok {
		return State{}, false
	}
	return *t.State, true
}

// PointerMove handles a pointer movement at viewport position (x, y).
func (a *Animator) PointerMove(x, y float64) {
	a.cursor.Client = Vec2{x, y}
	a.cursor.Moved = true
	a.dispatch(false)
}

// Scroll re-delivers the last cursor position on the next animation frame so
// content that moved under a still pointer reacts right away.
func (a *Animator) Scroll() {
	a.sched.RequestAnimationFrame(func() { a.dispatch(true) })
}

func (a *Animator) dispatch(synthetic bool) {
	scroll := a.doc.Scroll()
	a.cursor.Page = a.cursor.Client.Add(scroll)

	tick := Tick{Seq: a.seq, Cursor: a.cursor.Page, Synthetic: synthetic}
	record := len(a.observers) > 0

	a.update(HeadingSelector, a.profiles.Heading, scroll, &tick, record)
	a.update(LetterSelector, a.profiles.Letter, scroll, &tick, record)
	a.seq++

	for _, obs := range a.observers {
		obs.OnTick(&tick)
	}
}

func (a *Animator) update(selector string, p Profile, scroll Vec2, tick *Tick, record bool) {
	for _, el := range a.doc.QuerySelectorAll(selector) {
		t, ok := a.registry.Lookup(el)
		if !ok {
			continue
		}
		center := el.BoundingClientRect().Center().Add(scroll)
		force := Repel(t.State, center, tick.Cursor, p)
		Integrate(t.State, p)
		el.SetTransform(Translate(t.State.OffsetX, t.State.OffsetY))

		if record {
			tick.Samples = append(tick.Samples, Sample{
				ID:     t.ID,
				Class:  t.Class,
				Center: center,
				Force:  force,
				State:  *t.State,
			})
		}
	}
}
