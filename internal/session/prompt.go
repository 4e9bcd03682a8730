package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrPromptCancelled is returned when the user aborts the prompt.
var ErrPromptCancelled = errors.New("session prompt cancelled")

const (
	promptIntro = "In order to download the inputs from the Advent of Code website, this program requires your session cookie."
	promptHow   = "Please log into the Advent of Code website, then check your browser cookies and enter the value of the 'session' cookie now."
)

var (
	introStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewPrompter picks the interactive prompt when in is a terminal and the
// plain line reader otherwise.
func NewPrompter(in, out *os.File) Prompter {
	if term.IsTerminal(int(in.Fd())) {
		return &TeaPrompter{In: in, Out: out}
	}
	return &LinePrompter{In: in, Out: out}
}

// LinePrompter prints instructions and reads a single line.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

// Prompt implements Prompter.
func (p *LinePrompter) Prompt(_ context.Context) (string, error) {
	if _, err := fmt.Fprintf(p.Out, "%s\n%s\n", promptIntro, promptHow); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read session cookie: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// TeaPrompter asks for the cookie with a masked Bubble Tea text input.
type TeaPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Prompt implements Prompter.
func (p *TeaPrompter) Prompt(ctx context.Context) (string, error) {
	program := tea.NewProgram(newPromptModel(),
		tea.WithContext(ctx),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
	)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}
	m, ok := final.(promptModel)
	if !ok || m.cancelled {
		return "", ErrPromptCancelled
	}
	return m.Value(), nil
}

type promptModel struct {
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newPromptModel() promptModel {
	input := textinput.New()
	input.Prompt = "session> "
	input.Placeholder = "53616c7465645f5f..."
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.CharLimit = 0
	input.Focus()
	return promptModel{input: input}
}

// Value returns the trimmed text entered so far.
func (m promptModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Init implements tea.Model.
func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			if m.Value() == "" {
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m promptModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	return introStyle.Render(promptIntro) + "\n" +
		introStyle.Render(promptHow) + "\n\n" +
		m.input.View() + "\n\n" +
		hintStyle.Render("enter: save • esc: cancel") + "\n"
}
