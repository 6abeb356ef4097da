package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/loader"
)

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateMenu = iota
	stateSim
)

type entry struct {
	kind   domain.Kind
	name   string
	preset *config.Preset
}

// Browser lists the built-in presets and opens the selected one in the
// live view. Esc returns to the list.
type Browser struct {
	state   int
	cursor  int
	entries []entry
	opts    Options
	live    Model
	err     error
}

func NewBrowser(opts Options) Browser {
	b := Browser{opts: opts}
	for _, kind := range domain.Kinds() {
		for _, name := range config.ListPresets(kind) {
			b.entries = append(b.entries, entry{kind: kind, name: name, preset: config.GetPreset(kind, name)})
		}
	}
	return b
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if b.state == stateSim {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			b.state = stateMenu
			return b, nil
		}
		next, cmd := b.live.Update(msg)
		b.live = next.(Model)
		return b, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return b, tea.Quit
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.entries)-1 {
			b.cursor++
		}
	case "enter", " ":
		return b.open()
	}
	return b, nil
}

func (b Browser) open() (Browser, tea.Cmd) {
	if len(b.entries) == 0 {
		return b, nil
	}
	e := b.entries[b.cursor]
	sys, err := loader.Load(context.Background(), e.kind, strings.NewReader(e.preset.Source), loader.Options{})
	if err != nil {
		b.err = fmt.Errorf("%s/%s: %w", e.kind, e.name, err)
		return b, nil
	}
	opts := b.opts
	opts.Title = string(e.kind) + " · " + e.name
	b.err = nil
	b.live = NewModel(sys, opts)
	b.state = stateSim
	return b, b.live.Init()
}

// Selected returns the domain and preset under the cursor.
func (b Browser) Selected() (domain.Kind, string) {
	if len(b.entries) == 0 {
		return "", ""
	}
	e := b.entries[b.cursor]
	return e.kind, e.name
}

func (b Browser) View() string {
	if b.state == stateSim {
		return b.live.View() + "\n" + helpStyle.Render("esc: back to presets")
	}

	var s strings.Builder
	s.WriteString("\n\n    " + menuTitle.Render("ORBSIM") + "\n    " + menuSub.Render("orbital system explorer") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, e := range b.entries {
		label := fmt.Sprintf("%-8s %-10s", e.kind, e.name)
		if i == b.cursor {
			s.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(label), menuDesc.Render(e.preset.Description)))
		} else {
			s.WriteString(fmt.Sprintf("      %s  %s\n", menuIdle.Render(label), menuIdle.Render(e.preset.Description)))
		}
	}
	if b.err != nil {
		s.WriteString("\n    " + SparkLow.Render(b.err.Error()) + "\n")
	}
	s.WriteString("\n    " + menuKey.Render("j/k") + menuIdle.Render(" navigate  ") + menuKey.Render("enter") + menuIdle.Render(" open  ") + menuKey.Render("q") + menuIdle.Render(" quit") + "\n")
	return s.String()
}

func RunBrowser(opts Options) error {
	_, err := tea.NewProgram(NewBrowser(opts), tea.WithAltScreen()).Run()
	return err
}
