// Package ui holds the terminal styles shared by the CLI help and the REPL.
package ui

import "github.com/charmbracelet/lipgloss"

// Plain ANSI colors so the output follows the user's terminal theme.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// BotStyle prefixes replies in the interactive chat.
	BotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)
