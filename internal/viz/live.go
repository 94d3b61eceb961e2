package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/episim/internal/sim"
)

const (
	liveWidth       = 70
	liveHeight      = 12
	historyCapacity = 600
	substepsPerTick = 20
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Live animates an epidemic in the terminal: the compartment curves
// grow as the simulation advances, and beta/gamma can be nudged with
// the keyboard mid-run.
type Live struct {
	dyn       sim.Dynamics
	integ     sim.Integrator
	ctrl      sim.Controller
	modelName string
	labels    []string

	x       sim.State
	t, dt   float64
	running bool

	history [][]float64
	fps     int
}

func NewLive(dyn sim.Dynamics, integ sim.Integrator, ctrl sim.Controller, x0 sim.State, dt float64, modelName string, labels []string, fps int) Live {
	if fps <= 0 {
		fps = 30
	}
	history := make([][]float64, len(x0))
	for i := range history {
		history[i] = make([]float64, 0, historyCapacity)
	}
	return Live{
		dyn:       dyn,
		integ:     integ,
		ctrl:      ctrl,
		modelName: modelName,
		labels:    labels,
		x:         x0.Clone(),
		dt:        dt,
		running:   true,
		history:   history,
		fps:       fps,
	}
}

func (m Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Live) Init() tea.Cmd {
	return m.tick()
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "b":
			m.adjustParam("beta", -0.05)
		case "B":
			m.adjustParam("beta", 0.05)
		case "g":
			m.adjustParam("gamma", -0.05)
		case "G":
			m.adjustParam("gamma", 0.05)
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Live) adjustParam(name string, delta float64) {
	tunable, ok := m.dyn.(sim.Configurable)
	if !ok {
		return
	}
	v, exists := tunable.Params()[name]
	if !exists {
		return
	}
	v += delta
	if v < 0 {
		v = 0
	}
	_ = tunable.SetParam(name, v)
}

func (m *Live) advance() {
	for i := 0; i < substepsPerTick; i++ {
		var u sim.Control
		if m.ctrl != nil {
			u = m.ctrl.Compute(m.x, m.t)
		} else {
			u = make(sim.Control, m.dyn.ControlDim())
		}

		next := m.integ.Step(m.dyn, m.x, u, m.t, m.dt)
		if !next.IsValid() {
			m.running = false
			return
		}
		m.x = next
		m.t += m.dt
	}

	for i, v := range m.x {
		m.history[i] = append(m.history[i], v)
		if len(m.history[i]) > historyCapacity {
			m.history[i] = m.history[i][1:]
		}
	}
}

func (m Live) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("episim live: %s", m.modelName)))
	b.WriteString("\n")

	if len(m.history) > 0 && len(m.history[0]) > 1 {
		colors := make([]asciigraph.AnsiColor, len(m.history))
		for i := range colors {
			colors[i] = seriesColors[i%len(seriesColors)]
		}
		graph := asciigraph.PlotMany(m.history,
			asciigraph.Height(liveHeight),
			asciigraph.Width(liveWidth),
			asciigraph.SeriesColors(colors...),
			asciigraph.SeriesLegends(m.labels...),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}

	b.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.2f", m.t)) + "\n")
	for i, label := range m.labels {
		if i < len(m.x) {
			b.WriteString(labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf("%.5f", m.x[i])) + "\n")
		}
	}

	if tunable, ok := m.dyn.(sim.Configurable); ok {
		params := tunable.Params()
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(labelStyle.Render(name) + valueStyle.Render(fmt.Sprintf("%.3f", params[name])) + "\n")
		}
	}

	if !m.running {
		b.WriteString(pausedStyle.Render("paused") + "\n")
	}

	b.WriteString(helpStyle.Render("space pause · b/B beta · g/G gamma · q quit"))
	b.WriteString("\n")

	return b.String()
}
