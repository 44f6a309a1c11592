// Package tui renders live DAW sync state: transport, beat, BPM, Song
// Position and MTC timecode from one input stream.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"midisync/theme"
	"midisync/transport"
	"midisync/wire"
)

type Model struct {
	Transport *transport.Transport
	Theme     *theme.Theme
	PortName  string

	errs     <-chan error
	state    transport.State
	lastErr  string
	errCount int
	quitting bool
}

type StateMsg transport.State

type StreamErrMsg error

// NewModel wires the monitor to a transport and an error feed. errs may
// be nil when the caller does not surface decode errors.
func NewModel(tr *transport.Transport, th *theme.Theme, portName string, errs <-chan error) Model {
	return Model{
		Transport: tr,
		Theme:     th,
		PortName:  portName,
		errs:      errs,
		state:     tr.State(),
	}
}

func ListenForUpdates(tr *transport.Transport) tea.Cmd {
	return func() tea.Msg {
		return StateMsg(<-tr.Updates())
	}
}

func ListenForErrors(errs <-chan error) tea.Cmd {
	if errs == nil {
		return nil
	}
	return func() tea.Msg {
		return StreamErrMsg(<-errs)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Transport),
		ListenForErrors(m.errs),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "c":
			m.lastErr = ""
			m.errCount = 0
		}

	case StateMsg:
		m.state = transport.State(msg)
		return m, ListenForUpdates(m.Transport)

	case StreamErrMsg:
		m.lastErr = msg.Error()
		m.errCount++
		return m, ListenForErrors(m.errs)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.state

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	bodyStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	runStyle := lipgloss.NewStyle().Foreground(m.Theme.Running())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	header := headerStyle.Render(fmt.Sprintf("midisync daw-sync  %s", m.PortName))

	// Transport line with a per-beat pulse
	sym := m.Theme.Symbols
	transportLine := fmt.Sprintf("%c STOP", sym.Stopped)
	style := dimStyle
	if s.Running {
		pulse := sym.Tick
		if s.ClockInBeat < 6 {
			pulse = sym.Pulse
		}
		transportLine = fmt.Sprintf("%c PLAY %c  beat %-6d %6.2f bpm", sym.Playing, pulse, s.Beat, s.BPM)
		style = runStyle
	}

	sppLine := bodyStyle.Render(fmt.Sprintf("SPP %-6d QN %-8.2f bar(4/4) %.2f",
		s.SongPos, wire.QuarterNotes(s.SongPos), wire.Bars(s.SongPos)))

	mtcLine := dimStyle.Render("MTC --:--:--:--")
	if s.HasTimecode {
		mtcLine = bodyStyle.Render(fmt.Sprintf("MTC %s  (%.3f s)",
			s.Timecode, s.Timecode.TotalSeconds()))
	}

	help := dimStyle.Render("q:quit  c:clear errors")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(style.Render(transportLine))
	out.WriteString("\n")
	out.WriteString(sppLine)
	out.WriteString("\n")
	out.WriteString(mtcLine)
	out.WriteString("\n")
	if m.errCount > 0 {
		out.WriteString(warnStyle.Render(fmt.Sprintf("stream errors: %d (last: %s)", m.errCount, m.lastErr)))
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(help)
	out.WriteString("\n")

	return out.String()
}
