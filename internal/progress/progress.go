// Package progress shows a terminal progress bar while the direct engine
// works through its energy samples.
package progress

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/spectra/internal/spectral"
)

const barWidth = 40

var (
	barFull  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	barEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))
	label    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	value    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	failed   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

// SampleMsg reports one finished energy sample.
type SampleMsg struct {
	Index  int
	Energy float64
	DOS    float64
}

// DoneMsg ends the program with the computation's error.
type DoneMsg struct{ Err error }

type Model struct {
	total     int
	done      int
	last      SampleMsg
	start     time.Time
	err       error
	finished  bool
	cancelled bool
}

func NewModel(total int) Model {
	return Model{total: total, start: time.Now()}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SampleMsg:
		m.done++
		m.last = msg
	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	frac := 0.0
	if m.total > 0 {
		frac = float64(m.done) / float64(m.total)
	}
	filled := int(frac * barWidth)

	var b strings.Builder
	b.WriteString(barFull.Render(strings.Repeat("█", filled)))
	b.WriteString(barEmpty.Render(strings.Repeat("░", barWidth-filled)))
	fmt.Fprintf(&b, " %s %s", value.Render(fmt.Sprintf("%d/%d", m.done, m.total)),
		label.Render(time.Since(m.start).Round(100*time.Millisecond).String()))
	if m.done > 0 {
		fmt.Fprintf(&b, "  %s %s  %s %s",
			label.Render("E"), value.Render(fmt.Sprintf("%.4f", m.last.Energy)),
			label.Render("dos"), value.Render(fmt.Sprintf("%.5g", m.last.DOS)))
	}
	if m.err != nil {
		b.WriteString("\n" + failed.Render("failed: "+m.err.Error()))
	}
	return b.String() + "\n"
}

// Done reports how many samples have finished.
func (m Model) Done() int { return m.done }

// Observer forwards engine samples to a running program.
type Observer struct {
	p *tea.Program
}

var _ spectral.Observer = Observer{}

func (o Observer) OnSample(index int, energy, dos float64) {
	o.p.Send(SampleMsg{Index: index, Energy: energy, DOS: dos})
}

// Run executes fn while rendering progress for total samples to out.
// Quitting the view cancels the context passed to fn.
func Run(ctx context.Context, total int, out io.Writer, fn func(context.Context, spectral.Observer) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(total), tea.WithOutput(out), tea.WithContext(ctx))
	go func() {
		err := fn(ctx, Observer{p: p})
		p.Send(DoneMsg{Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	m := final.(Model)
	if m.cancelled {
		return context.Canceled
	}
	return m.err
}
