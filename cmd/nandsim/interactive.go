package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/nandvm"
	"github.com/wippyai/nandvm/circuit"
)

// Interactive mode states
type interactiveState int

const (
	stateSelectCircuit interactiveState = iota
	stateInputBits
	stateShowResult
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			MarginBottom(1)

	circuitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Background(lipgloss.Color("236"))

	resultStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

type circuitEntry struct {
	id      int
	inputs  int
	outputs int
}

type evalResultMsg struct {
	output string
	stats  string
	err    error
}

type interactiveModel struct {
	machine *nandvm.Machine
	state   interactiveState

	circuits []circuitEntry
	cursor   int

	input  textinput.Model
	result evalResultMsg
}

func newInteractiveModel(m *nandvm.Machine) interactiveModel {
	var circuits []circuitEntry
	for _, id := range m.Registry().IDs() {
		c, _ := m.Registry().Lookup(id)
		circuits = append(circuits, circuitEntry{
			id:      id,
			inputs:  c.Inputs,
			outputs: c.Outputs,
		})
	}
	return interactiveModel{
		machine:  m,
		state:    stateSelectCircuit,
		circuits: circuits,
	}
}

func (m interactiveModel) Init() tea.Cmd {
	return nil
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case evalResultMsg:
		m.result = msg
		m.state = stateShowResult
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateSelectCircuit:
			return m.updateSelectCircuit(msg)
		case stateInputBits:
			return m.updateInputBits(msg)
		case stateShowResult:
			return m.updateShowResult(msg)
		}
	}
	return m, nil
}

func (m interactiveModel) updateSelectCircuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.circuits)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.circuits) == 0 {
			return m, nil
		}
		entry := m.circuits[m.cursor]
		ti := textinput.New()
		ti.Placeholder = strings.Repeat("0", entry.inputs)
		ti.CharLimit = entry.inputs
		ti.Width = entry.inputs + 4
		ti.Focus()
		m.input = ti
		m.state = stateInputBits
		return m, textinput.Blink
	}
	return m, nil
}

func (m interactiveModel) updateInputBits(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.state = stateSelectCircuit
		return m, nil

	case "enter":
		entry := m.circuits[m.cursor]
		bits := m.input.Value()
		return m, m.evaluate(entry.id, bits)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m interactiveModel) updateShowResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc", "enter":
		m.state = stateSelectCircuit
		return m, nil
	}
	return m, nil
}

func (m interactiveModel) evaluate(id int, bits string) tea.Cmd {
	return func() tea.Msg {
		inputs, err := parseBits(bits)
		if err != nil {
			return evalResultMsg{err: err}
		}

		out, err := m.machine.Evaluate(id, inputs)
		if err != nil {
			return evalResultMsg{err: err}
		}

		var b strings.Builder
		for _, s := range out {
			b.WriteString(s.String())
		}
		stats := m.machine.Stats()
		return evalResultMsg{
			output: b.String(),
			stats:  fmt.Sprintf("nand evaluations: %d, retries: %d", stats.NandEvals, stats.Retries),
		}
	}
}

func (m interactiveModel) View() string {
	var b strings.Builder

	switch m.state {
	case stateSelectCircuit:
		b.WriteString(titleStyle.Render("Select a circuit"))
		b.WriteString("\n")

		if len(m.circuits) == 0 {
			b.WriteString("No circuits registered.\n")
			b.WriteString(helpStyle.Render("q: quit"))
			break
		}

		for i, entry := range m.circuits {
			line := fmt.Sprintf("%2d: %d in, %d out", entry.id, entry.inputs, entry.outputs)
			if entry.id == circuit.Primitive {
				line += " (primitive)"
			}
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString(circuitStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("up/down: navigate, enter: select, q: quit"))

	case stateInputBits:
		entry := m.circuits[m.cursor]
		b.WriteString(titleStyle.Render(fmt.Sprintf("Circuit %d", entry.id)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Enter %d input bits (0, 1 or ?):\n\n", entry.inputs))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: evaluate, esc: back"))

	case stateShowResult:
		entry := m.circuits[m.cursor]
		b.WriteString(titleStyle.Render(fmt.Sprintf("Circuit %d", entry.id)))
		b.WriteString("\n")

		if m.result.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.result.err)))
		} else {
			b.WriteString(resultStyle.Render(fmt.Sprintf("Output: %s", m.result.output)))
			b.WriteString("\n")
			b.WriteString(m.result.stats)
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc: back, q: quit"))
	}

	return b.String()
}

func runInteractive(m *nandvm.Machine) error {
	p := tea.NewProgram(newInteractiveModel(m), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
