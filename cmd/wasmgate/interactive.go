package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tessob/wasmgate"
	"github.com/tessob/wasmgate/introspect"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type inspectModel struct {
	err        error
	gate       *wasmgate.Gate
	filename   string
	instanceID string
	result     string
	rows       []introspect.Descriptor
	inputs     []textinput.Model
	selected   int
	focusIdx   int
	state      modelState
}

func newInspectModel(gate *wasmgate.Gate, filename string) *inspectModel {
	return &inspectModel{
		gate:     gate,
		filename: filename,
		state:    stateSelectFunc,
	}
}

type loadedMsg struct {
	err  error
	id   string
	rows []introspect.Descriptor
}

type callResultMsg struct {
	err    error
	result string
}

func (m *inspectModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *inspectModel) loadModule() tea.Msg {
	ctx := context.Background()

	id, err := m.gate.Load(ctx, m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	rows, err := m.gate.ExportsOf(id)
	if err != nil {
		return loadedMsg{err: err}
	}

	return loadedMsg{id: id, rows: rows}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.rows)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				if len(m.rows) == 0 {
					return m, nil
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callFunction
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.instanceID = msg.id
		m.rows = msg.rows

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *inspectModel) prepareInputs() {
	tags := inputTags(m.rows[m.selected])
	m.inputs = make([]textinput.Model, len(tags))
	for i, tag := range tags {
		ti := textinput.New()
		ti.Placeholder = tag
		ti.Prompt = fmt.Sprintf("arg%d: ", i)
		ti.Width = 24
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *inspectModel) callFunction() tea.Msg {
	row := m.rows[m.selected]

	args := make([]int64, len(m.inputs))
	for i, input := range m.inputs {
		v, err := strconv.ParseInt(strings.TrimSpace(input.Value()), 10, 64)
		if err != nil {
			return callResultMsg{err: fmt.Errorf("arg%d: %q is not an integer", i, input.Value())}
		}
		args[i] = v
	}

	value, hasValue, err := m.gate.Invoke(context.Background(), m.instanceID, row.Name, args...)
	if err != nil {
		return callResultMsg{err: err}
	}

	if !hasValue {
		return callResultMsg{result: "(no value)"}
	}
	return callResultMsg{result: strconv.FormatInt(value, 10)}
}

func (m *inspectModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.instanceID == "" {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("wasmgate"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.instanceID))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		if len(m.rows) == 0 {
			b.WriteString("Module has no callable exports.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			break
		}
		b.WriteString("Select a function to call:\n\n")
		for i, row := range m.rows {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + formatRow(row)))
			} else {
				b.WriteString(cursor + formatRow(row))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		row := m.rows[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(row.Name)))
		tags := inputTags(row)
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(tags[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		row := m.rows[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(row.Name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatRow(row introspect.Descriptor) string {
	var params []string
	for _, tag := range inputTags(row) {
		params = append(params, typeStyle.Render(tag))
	}
	result := ""
	if row.Outputs != "" {
		result = " -> " + typeStyle.Render(row.Outputs)
	}
	return funcStyle.Render(row.Name) + "(" + strings.Join(params, ", ") + ")" + result
}

func inputTags(row introspect.Descriptor) []string {
	if row.Inputs == "" {
		return nil
	}
	return strings.Split(row.Inputs, ",")
}

func runInteractive(cmd *cobra.Command, filename string) error {
	gate, err := newGate(cmd)
	if err != nil {
		return err
	}
	defer gate.Close(context.Background())

	p := tea.NewProgram(newInspectModel(gate, filename), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
