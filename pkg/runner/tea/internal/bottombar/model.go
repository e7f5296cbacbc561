package bottombar

import (
	"fmt"
	"strings"

	"tableflip.dev/roster/pkg/runner/tea/internal/theme"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "CMD"
	case ModeHelp:
		return "HELP"
	default:
		return "NORMAL"
	}
}

// CommandOption describes a command palette entry.
type CommandOption struct {
	Name        string
	Description string
}

// Model tracks footer/help/status rendering state.
type Model struct {
	mode            Mode
	statusLine      string
	summary         string
	commandInput    string
	commandView     string
	commandOptions  []CommandOption
	filteredOptions []CommandOption
	maxSuggestions  int
	styles          theme.FooterTheme
}

// New returns a footer model with sensible defaults.
func New() Model {
	return Model{
		mode:           ModeNormal,
		maxSuggestions: 6,
		styles:         theme.Default().Footer,
	}
}

// SetMode updates the visual mode.
func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	if mode != ModeCommand {
		m.filteredOptions = nil
		m.commandInput = ""
		m.commandView = ""
	}
}

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string) {
	m.statusLine = status
}

// SetSummary sets the roster summary shown at the end of the line.
func (m *Model) SetSummary(summary string) {
	m.summary = summary
}

// SetCommandDefinitions configures the available command palette entries.
func (m *Model) SetCommandDefinitions(cmds []CommandOption) {
	m.commandOptions = cmds
	m.filterSuggestions(m.commandInput)
}

// UpdateCommandInput refreshes the command palette filter and rendered line.
func (m *Model) UpdateCommandInput(value string, view string) {
	m.commandInput = value
	m.commandView = ":" + view
	m.filterSuggestions(value)
}

// Height reports the number of lines consumed by the footer.
func (m Model) Height() int {
	if m.mode != ModeCommand {
		return 1
	}
	lines := len(m.filteredOptions)
	if lines > m.maxSuggestions {
		lines = m.maxSuggestions
	}
	return lines + 1
}

// ExtraHeight returns lines beyond the baseline single footer row.
func (m Model) ExtraHeight() int {
	return m.Height() - 1
}

// View renders the footer string and reports lines consumed.
func (m Model) View() (string, int) {
	if m.mode == ModeCommand {
		return m.renderCommandMode()
	}
	return m.renderStatusLine(), 1
}

func (m Model) renderStatusLine() string {
	segments := []string{m.styles.Mode.Render(fmt.Sprintf("[%s]", m.mode))}
	if m.statusLine != "" {
		segments = append(segments, m.styles.Status.Render(m.statusLine))
	}
	line := strings.Join(segments, " ")
	if m.summary != "" {
		line += " │ " + m.styles.Summary.Render(m.summary)
	}
	return line
}

func (m Model) renderCommandMode() (string, int) {
	var lines []string
	limit := len(m.filteredOptions)
	if limit > m.maxSuggestions {
		limit = m.maxSuggestions
	}
	for i := 0; i < limit; i++ {
		opt := m.filteredOptions[i]
		name := m.styles.CommandName.Render(":" + opt.Name)
		if i == 0 && len(m.filteredOptions) == 1 {
			name = m.styles.CommandSelectedName.Render(":" + opt.Name)
		}
		if opt.Description == "" {
			lines = append(lines, name)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s  %s", name, m.styles.CommandDescription.Render(opt.Description)))
	}
	commandLine := m.commandView
	if commandLine == "" {
		commandLine = ":"
	}
	lines = append(lines, commandLine)
	return strings.Join(lines, "\n"), len(lines)
}

// filterSuggestions matches on the first word only, so arguments keep the
// chosen command visible.
func (m *Model) filterSuggestions(input string) {
	if m.mode != ModeCommand {
		m.filteredOptions = nil
		return
	}
	fields := strings.Fields(input)
	if len(fields) == 0 {
		m.filteredOptions = append([]CommandOption(nil), m.commandOptions...)
		return
	}
	prefix := strings.ToLower(fields[0])
	exact := len(fields) > 1 || strings.HasSuffix(input, " ")
	m.filteredOptions = m.filteredOptions[:0]
	for _, opt := range m.commandOptions {
		name := strings.ToLower(opt.Name)
		if (exact && name == prefix) || (!exact && strings.HasPrefix(name, prefix)) {
			m.filteredOptions = append(m.filteredOptions, opt)
		}
	}
}
