package viz

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/repulse/internal/repulse"
	"github.com/san-kum/repulse/internal/scene"
	"github.com/san-kum/repulse/internal/trace"
	"github.com/san-kum/repulse/internal/treeline"
	"github.com/san-kum/repulse/internal/watch"
)

const (
	width           = 80
	height          = 24
	footerRows      = 7
	historyCapacity = 600
	wheelLines      = 3
	linePoints      = 64
)

// Options configures the live host.
type Options struct {
	// Scene is a scene file to load and watch. Empty means the stock page
	// laid out for the terminal size.
	Scene    string
	Profiles repulse.Profiles
	FPS      int
	CellW    float64
	CellH    float64
	Logger   *slog.Logger
}

func (o *Options) defaults() {
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.CellW <= 0 {
		o.CellW = 8
	}
	if o.CellH <= 0 {
		o.CellH = 16
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Profiles == (repulse.Profiles{}) {
		o.Profiles = repulse.DefaultProfiles()
	}
}

type TickMsg time.Time

type sceneChangedMsg string

type watchErrMsg struct{ err error }

// Model hosts a page and its animator in the terminal. Mouse motion is the
// pointer, the wheel scrolls, and every tick is one animation frame.
type Model struct {
	opts     Options
	page     *scene.Page
	anim     *repulse.Animator
	frames   *trace.FrameQueue
	watcher  *watch.Watcher
	canvas   *Canvas
	cols     int
	rows     int
	theme    int
	showLine bool
	showHelp bool
	ticks    int
	energy   []float64
	status   string
}

func NewModel(opts Options) (Model, error) {
	opts.defaults()
	m := Model{
		opts:     opts,
		frames:   &trace.FrameQueue{},
		canvas:   NewCanvas(width, height-footerRows),
		cols:     width,
		rows:     height,
		showLine: true,
		energy:   make([]float64, 0, historyCapacity),
	}

	spec, err := m.loadSpec()
	if err != nil {
		return Model{}, err
	}
	m.page, err = scene.New(spec)
	if err != nil {
		return Model{}, err
	}
	m.anim = repulse.New(m.page, m.frames, opts.Profiles, repulse.WithLogger(opts.Logger))
	m.anim.Init()

	if opts.Scene != "" {
		m.watcher, err = watch.New(opts.Scene)
		if err != nil {
			return Model{}, fmt.Errorf("watch scene: %w", err)
		}
	}
	m.status = fmt.Sprintf("%s: %d elements tracked", m.page.Name(), m.anim.Registry().Len())
	return m, nil
}

// Close releases the scene watcher, if any.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

func (m Model) viewport() scene.Size {
	return scene.Size{
		Width:  float64(m.cols) * m.opts.CellW,
		Height: float64(max(m.rows-footerRows, 1)) * m.opts.CellH,
	}
}

func (m Model) loadSpec() (*scene.Spec, error) {
	vp := m.viewport()
	if m.opts.Scene == "" {
		return scene.Default(vp.Width, vp.Height), nil
	}
	spec, err := scene.Load(m.opts.Scene)
	if err != nil {
		return nil, err
	}
	spec.Viewport = vp
	return spec, nil
}

// reload rebuilds the page from its source and registers the new elements.
func (m *Model) reload() error {
	spec, err := m.loadSpec()
	if err != nil {
		return err
	}
	if err := m.page.Reload(spec); err != nil {
		return err
	}
	created := m.anim.Init()
	m.opts.Logger.Info("scene reloaded", "scene", m.page.Name(), "created", created)
	m.status = fmt.Sprintf("%s: reloaded, %d new elements", m.page.Name(), created)
	return nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) waitScene() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			return sceneChangedMsg(name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err}
		}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitScene())
}

// Update handles input events and advances animation frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "l":
			m.showLine = !m.showLine
		case "r":
			if err := m.reload(); err != nil {
				m.status = "reload failed: " + err.Error()
			}
		case "j", "down":
			m.scroll(wheelLines * m.opts.CellH)
		case "k", "up":
			m.scroll(-wheelLines * m.opts.CellH)
		case "pgdown", " ":
			m.scroll(m.viewport().Height)
		case "pgup":
			m.scroll(-m.viewport().Height)
		}

	case tea.MouseMsg:
		switch {
		case msg.Button == tea.MouseButtonWheelDown:
			m.scroll(wheelLines * m.opts.CellH)
		case msg.Button == tea.MouseButtonWheelUp:
			m.scroll(-wheelLines * m.opts.CellH)
		case msg.Action == tea.MouseActionMotion:
			if msg.Y < m.canvas.Height {
				p := CellCenter(msg.X, msg.Y, m.opts.CellW, m.opts.CellH)
				m.anim.PointerMove(p.X, p.Y)
			}
		}

	case tea.WindowSizeMsg:
		m.cols, m.rows = max(msg.Width, 1), max(msg.Height, footerRows+1)
		m.canvas.Resize(m.cols, m.rows-footerRows)
		if err := m.reload(); err != nil {
			m.status = "layout failed: " + err.Error()
		}

	case sceneChangedMsg:
		if err := m.reload(); err != nil {
			m.opts.Logger.Warn("scene reload failed", "path", string(msg), "error", err)
			m.status = "reload failed: " + err.Error()
		}
		return m, m.waitScene()

	case watchErrMsg:
		m.opts.Logger.Warn("scene watch error", "error", msg.err)
		return m, m.waitScene()

	case TickMsg:
		m.frames.Flush()
		m.ticks++
		m.record()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) scroll(dy float64) {
	m.page.ScrollBy(dy)
	m.anim.Scroll()
}

func (m *Model) record() {
	total := 0.0
	for _, e := range m.anim.Registry().Live() {
		total += e.State.KineticEnergy()
	}
	if len(m.energy) == historyCapacity {
		copy(m.energy, m.energy[1:])
		m.energy = m.energy[:historyCapacity-1]
	}
	m.energy = append(m.energy, total)
}

// CellCenter maps a terminal cell to the viewport pixel at its center.
func CellCenter(col, row int, cellW, cellH float64) repulse.Vec2 {
	return repulse.Vec2{X: (float64(col) + 0.5) * cellW, Y: (float64(row) + 0.5) * cellH}
}

// CellAt maps a viewport pixel to the cell containing it.
func CellAt(p repulse.Vec2, cellW, cellH float64) (int, int) {
	return int(math.Floor(p.X / cellW)), int(math.Floor(p.Y / cellH))
}

func inkFor(el *repulse.Element) Ink {
	if el.HasClass("letter") {
		return InkLetter
	}
	if len(el.Tag) == 2 && el.Tag[0] == 'h' && el.Tag[1] >= '1' && el.Tag[1] <= '6' {
		return InkHeading
	}
	return InkLetter
}

func (m *Model) draw() {
	m.canvas.Clear()
	vp := m.viewport()

	if m.showLine {
		pts := treeline.For(vp.Width, m.page.Scroll().Y).Points(linePoints)
		dot := func(p repulse.Vec2) (int, int) {
			return int(p.X / m.opts.CellW * 2), int(p.Y / m.opts.CellH * 4)
		}
		for i := 1; i < len(pts); i++ {
			x0, y0 := dot(pts[i-1])
			x1, y1 := dot(pts[i])
			m.canvas.DrawLine(x0, y0, x1, y1)
		}
	}

	containers := make(map[*repulse.Element]bool)
	for _, el := range m.page.Elements() {
		if el.HasClass("letter") && el.Parent != nil {
			containers[el.Parent] = true
		}
	}
	for _, el := range m.page.Elements() {
		if el.Text == "" || containers[el] || !m.page.Visible(el) {
			continue
		}
		r := el.BoundingClientRect()
		s, _ := m.anim.State(el)
		col, row := CellAt(repulse.Vec2{X: r.X + s.OffsetX, Y: r.Y + r.H/2 + s.OffsetY}, m.opts.CellW, m.opts.CellH)
		m.canvas.Text(col, row, el.Text, inkFor(el))
	}
}

func (m Model) View() string {
	m.draw()
	th := Themes[m.theme]

	var footer strings.Builder
	cur := m.anim.Cursor()
	fmt.Fprintf(&footer, "%s %s\n", titleStyle.Foreground(th.Accent).Render("repulse"), labelStyle.Render(m.status))
	fmt.Fprintf(&footer, "%s %s  %s %s  %s %s\n",
		labelStyle.Render("cursor"), valueStyle.Render(fmt.Sprintf("(%.0f, %.0f)", cur.Page.X, cur.Page.Y)),
		labelStyle.Render("scroll"), valueStyle.Render(fmt.Sprintf("%.0f/%.0f", m.page.Scroll().Y, m.page.MaxScroll())),
		labelStyle.Render("frame"), valueStyle.Render(fmt.Sprintf("%d", m.ticks)),
	)

	stats := footer.String() + helpStyle.Render("move mouse • wheel scroll • l line • t theme • ? help • q quit")
	chart := ""
	if len(m.energy) > 1 {
		chartW := max(m.cols-lipgloss.Width(stats)-12, 10)
		hist := m.energy
		if len(hist) > chartW {
			hist = hist[len(hist)-chartW:]
		}
		chart = graphStyle.Render(asciigraph.Plot(hist,
			asciigraph.Height(3),
			asciigraph.Width(chartW),
			asciigraph.Caption("Energy"),
		))
	} else {
		chart = graphStyle.Render("Energy " + Sparkline(m.energy, 10))
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		m.canvas.Render(th),
		lipgloss.JoinHorizontal(lipgloss.Top, stats, "  ", chart),
	)

	if m.showHelp {
		help := boxStyle.BorderForeground(th.Accent).Render(strings.Join([]string{
			titleStyle.Render("Keys"),
			"j/k  scroll a few lines",
			"pgdn/pgup  scroll a page",
			"l  toggle scroll line",
			"t  next theme (" + th.Name + ")",
			"r  reload scene",
			"q  quit",
		}, "\n"))
		return lipgloss.Place(m.cols, m.rows, lipgloss.Center, lipgloss.Center, help)
	}
	return screen
}

// Run starts the live host and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
