package render

import "github.com/charmbracelet/lipgloss"

// Theme styles the terminal table.
type Theme struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Retro  lipgloss.Style
	Border lipgloss.Style
	Faint  lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:  lipgloss.NewStyle().Bold(true),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
		Retro:  lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#8B0000")).Bold(true),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Faint:  lipgloss.NewStyle().Faint(true),
	}
}

// PlainTheme has no colors or emphasis; useful for logs and tests.
func PlainTheme() Theme {
	pad := lipgloss.NewStyle().Padding(0, 1)
	return Theme{
		Title:  lipgloss.NewStyle(),
		Header: pad,
		Cell:   pad,
		Retro:  pad,
		Border: lipgloss.NewStyle(),
		Faint:  lipgloss.NewStyle(),
	}
}
