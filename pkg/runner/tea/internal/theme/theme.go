package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/glyph"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Detail DetailTheme
	Help   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/command bar.
type FooterTheme struct {
	Help                lipgloss.Style
	Mode                lipgloss.Style
	Status              lipgloss.Style
	Summary             lipgloss.Style
	CommandName         lipgloss.Style
	CommandDescription  lipgloss.Style
	CommandSelectedName lipgloss.Style
}

// DetailTheme styles the account pane.
type DetailTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Muted lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	commandName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)

	return Theme{
		Footer: FooterTheme{
			Help:                lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Mode:                lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Status:              lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Summary:             lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			CommandName:         commandName,
			CommandDescription:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			CommandSelectedName: commandName.Reverse(true),
		},
		Detail: DetailTheme{
			Frame: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
			Label: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Muted: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		},
		Help: lipgloss.NewStyle().Italic(true),
	}
}

// Status colors a status the same way the glyph legend does.
func Status(s account.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(glyph.For(s).Shade))
}
