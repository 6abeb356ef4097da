package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/logger"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/sim"
)

const (
	width           = 60
	height          = 22
	historyCapacity = 600
	maxSpeed        = 1 << 24
	minSpeed        = 1.0 / 16
	maxTrackRows    = 8
)

type TickMsg time.Time

type Options struct {
	Dt    float64
	FPS   int
	Title string
}

// Model renders a domain system and, when the system is a sim.Driver,
// advances it on every tick.
type Model struct {
	sys     domain.System
	driver  sim.Driver
	t, dt   float64
	speed   float64
	frame   time.Duration
	title   string
	canvas  *Canvas
	running bool
	entropy []float64
	spread  []float64
	err     error
}

func NewModel(sys domain.System, opts Options) Model {
	if opts.Dt <= 0 {
		opts.Dt = 0.1
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Title == "" {
		opts.Title = string(sys.Kind())
	}
	m := Model{
		sys:     sys,
		dt:      opts.Dt,
		speed:   1,
		frame:   time.Second / time.Duration(opts.FPS),
		title:   opts.Title,
		canvas:  NewCanvas(width, height),
		entropy: make([]float64, 0, historyCapacity),
		spread:  make([]float64, 0, historyCapacity),
	}
	if d, ok := sys.(sim.Driver); ok {
		m.driver = d
		m.running = true
	}
	m.record()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.driver != nil && m.err == nil {
				m.running = !m.running
			}
		case "[":
			m.speed = math.Max(minSpeed, m.speed/2)
		case "]":
			m.speed = math.Min(maxSpeed, m.speed*2)
		case "r":
			m.reset()
		case "t":
			SetTheme(nextTheme())
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// Time returns the simulated time.
func (m Model) Time() float64 { return m.t }

// Speed returns the multiplier applied to dt.
func (m Model) Speed() float64 { return m.speed }

func (m Model) Running() bool { return m.running }

func (m *Model) step() {
	h := m.dt * m.speed
	if err := m.driver.Step(m.t, h); err != nil {
		logger.L().Warn("viz.step_failed", "t", m.t, "err", err)
		m.err = err
		m.running = false
		return
	}
	m.t += h
	m.record()
}

func (m *Model) record() {
	reg := m.sys.Registry()
	spread := metrics.NewSpread()
	spread.Observe(reg, m.t)

	m.entropy = appendCapped(m.entropy, analysis.Entropy(reg))
	m.spread = appendCapped(m.spread, spread.Value())
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (m *Model) reset() {
	if r, ok := m.sys.(sim.Resetter); ok {
		if err := r.Reset(); err != nil {
			m.err = err
			return
		}
	}
	m.t = 0
	m.speed = 1
	m.err = nil
	m.running = m.driver != nil
	m.entropy = m.entropy[:0]
	m.spread = m.spread[:0]
	m.record()
}

// draw projects every track as an ellipse around the center and every
// placed entity as a dot. Unassigned entities are not drawn.
func (m *Model) draw() {
	m.canvas.Clear()
	reg := m.sys.Registry()
	cw, ch := m.canvas.SubSize()
	cx, cy := cw/2, ch/2

	outer := 0.0
	for _, t := range reg.Tracks() {
		outer = math.Max(outer, t.Major)
	}
	scale := 0.0
	if outer > 0 {
		scale = math.Min(float64(cx-2), float64(cy-2)) / outer
	}

	for _, t := range reg.Tracks() {
		if t.IsUnassigned() {
			continue
		}
		m.canvas.DrawEllipse(cx, cy, t.Major*scale, t.Minor*scale)
	}
	if c, _ := reg.Center(); c != nil {
		m.canvas.Dot(cx-1, cy-1)
	}
	for _, id := range reg.Entities() {
		e, _ := reg.Entity(id)
		t := e.Track()
		if t.IsUnassigned() {
			continue
		}
		a := e.Angle() * math.Pi / 180
		x := cx + int(math.Round(t.Major*scale*math.Cos(a)))
		y := cy - int(math.Round(t.Minor*scale*math.Sin(a)))
		m.canvas.Dot(x-1, y-1)
	}
}

func (m Model) View() string {
	m.draw()
	theme := CurrentTheme
	canvasView := canvasStyle.Render(m.canvas.Render(
		lipgloss.NewStyle().Foreground(theme.Track),
		lipgloss.NewStyle().Foreground(theme.Entity).Bold(true),
	))

	reg := m.sys.Registry()
	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.title), theme.Primary, theme.Secondary) + "\n\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.entropy) > 1 {
		chart := asciigraph.Plot(m.entropy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Entropy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(stat("Time", fmt.Sprintf("%.2f", m.t)))
	s.WriteString(stat("Speed", fmt.Sprintf("x%g", m.speed)))
	s.WriteString(stat("Entities", fmt.Sprintf("%d", reg.Len())))
	s.WriteString(stat("Tracks", fmt.Sprintf("%d", len(reg.Tracks()))))
	s.WriteString(stat("Entropy", fmt.Sprintf("%.4f", last(m.entropy))))
	s.WriteString(stat("Spread", fmt.Sprintf("%.4g", last(m.spread))))
	s.WriteString(labelStyle.Render("") + SparklineChart(m.spread, 24) + "\n")

	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(trackTable(reg))
	s.WriteString(helpStyle.Render("SP:Pause [ ]:Speed R:Reset T:Theme Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return SparkLow.Render("ERROR: " + m.err.Error())
	case m.driver == nil:
		return StatusPaused.Render("STATIC")
	case m.running:
		return StatusRunning.Render("RUNNING")
	}
	return StatusPaused.Render("PAUSED")
}

func stat(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func last(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return xs[len(xs)-1]
}

// trackTable lists the innermost tracks with their share of entities.
func trackTable(reg *orbit.Registry) string {
	counts := reg.TrackCounts()
	n := reg.Len()
	if n == 0 {
		return valueStyle.Render("(empty)") + "\n"
	}
	tracks := reg.Tracks()
	var s strings.Builder
	for i, t := range tracks {
		if i == maxTrackRows {
			s.WriteString(helpStyle.Render(fmt.Sprintf("… %d more", len(tracks)-maxTrackRows)) + "\n")
			break
		}
		share := float64(counts[t]) / float64(n)
		s.WriteString(labelStyle.Render(clip(t.String(), 11)) + OccupancyBar(share, 16) + valueStyle.Render(fmt.Sprintf(" %d", counts[t])) + "\n")
	}
	return s.String()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the live view full screen and blocks until it quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
