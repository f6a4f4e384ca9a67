package monitor

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// lineModel is a minimal bubbletea program that reads a single line of
// input and quits, playing the role of the monitor's external
// read_line()/write() collaborator for one prompt cycle.
type lineModel struct {
	prompt string
	input  []rune
	done   bool
}

func (m lineModel) Init() tea.Cmd { return nil }

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyCtrlC:
		m.done = true
		m.input = append([]rune("c"), 'q')
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyRunes:
		m.input = append(m.input, keyMsg.Runes...)
		return m, nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
		return m, nil
	}
	return m, nil
}

func (m lineModel) View() string {
	return promptStyle.Render(m.prompt) + string(m.input)
}

// TUI is a bubbletea/lipgloss-backed line reader and writer: each ReadLine call runs a
// fresh single-prompt bubbletea program against the real terminal.
type TUI struct {
	Prompt string
}

// NewTUI returns a TUI with the conventional ">>" prompt.
func NewTUI() *TUI {
	return &TUI{Prompt: ">> "}
}

// ReadLine prompts and blocks for one line of input.
func (t *TUI) ReadLine() (string, error) {
	p := tea.NewProgram(lineModel{prompt: t.Prompt})
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	lm := final.(lineModel)
	return string(lm.input), nil
}

// Write renders s to the terminal, styling it as an error when isError is
// set and as normal output otherwise.
func (t *TUI) Write(s string, isError bool) {
	if isError {
		fmt.Print(errorStyle.Render(s))
		return
	}
	fmt.Print(outputStyle.Render(s))
}

// Loop runs the read-eval-print cycle against mon using t for I/O until
// ReadLine returns an error (EOF, interrupt) or quit is requested via
// Ctrl-C, which the line model reports as the line "cq". The grammar
// parsing and execution are pure; only this loop and TUI touch the
// terminal.
func Loop(mon *Monitor, t *TUI) error {
	for {
		t.Write(t.Prompt+"\n", false)
		line, err := t.ReadLine()
		if err != nil {
			return err
		}
		if line == "cq" {
			return nil
		}
		if line == "" {
			continue
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			t.Write(err.Error()+"\n", true)
			continue
		}
		out, err := mon.Execute(cmd)
		if err != nil {
			t.Write(err.Error()+"\n", true)
			continue
		}
		t.Write(out, false)
	}
}
