package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#AD8EE6"})

	promptSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#00FF00"})

	promptUnselectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})

	promptCursorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#AD8EE6"})

	promptDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
)

type promptKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultPromptKeyMap() promptKeyMap {
	return promptKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("left", "h", "y", "Y"),
			key.WithHelp("←/y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("right", "l", "n", "N"),
			key.WithHelp("→/n", "no"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c", "esc", "q"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// YesNoPrompt is an arrow-key yes/no question.
type YesNoPrompt struct {
	question    string
	description string
	selected    bool // true = Yes
	confirmed   bool
	cancelled   bool
	keys        promptKeyMap
}

// NewYesNoPrompt creates a new yes/no prompt
func NewYesNoPrompt(question, description string, defaultYes bool) YesNoPrompt {
	return YesNoPrompt{
		question:    question,
		description: description,
		selected:    defaultYes,
		keys:        defaultPromptKeyMap(),
	}
}

func (m YesNoPrompt) Init() tea.Cmd {
	return nil
}

func (m YesNoPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.selected = true
	case key.Matches(keyMsg, m.keys.No):
		m.selected = false
	case key.Matches(keyMsg, m.keys.Toggle):
		m.selected = !m.selected
	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirmed = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m YesNoPrompt) View() string {
	var b strings.Builder

	b.WriteString(promptTitleStyle.Render("? "+m.question) + "\n")
	if m.description != "" {
		b.WriteString(promptDimStyle.Render("  "+m.description) + "\n")
	}

	yesStyle, noStyle := promptUnselectedStyle, promptUnselectedStyle
	yesCursor, noCursor := "  ", "  "
	if m.selected {
		yesStyle = promptSelectedStyle
		yesCursor = promptCursorStyle.Render("❯ ")
	} else {
		noStyle = promptSelectedStyle
		noCursor = promptCursorStyle.Render("❯ ")
	}

	b.WriteString("\n")
	b.WriteString(yesCursor + yesStyle.Render("Yes") + "    ")
	b.WriteString(noCursor + noStyle.Render("No") + "\n")
	b.WriteString("\n")
	b.WriteString(promptDimStyle.Render("  ← → to select • enter to confirm • esc to cancel"))

	return b.String()
}

// Result returns the selected value and whether it was confirmed
func (m YesNoPrompt) Result() (bool, bool) {
	return m.selected, m.confirmed && !m.cancelled
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Confirm asks a yes/no question. Without a terminal it returns defaultYes
// without asking. A cancelled prompt counts as no.
func Confirm(question, description string, defaultYes bool) (bool, error) {
	if !IsInteractive() {
		return defaultYes, nil
	}

	p := tea.NewProgram(NewYesNoPrompt(question, description, defaultYes))
	model, err := p.Run()
	if err != nil {
		return false, err
	}

	selected, confirmed := model.(YesNoPrompt).Result()
	if !confirmed {
		return false, nil
	}
	return selected, nil
}
