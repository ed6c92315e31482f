package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

var (
	keywordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"})

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"})

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#FF8800", Dark: "#FFB454"})

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#ED567A", Dark: "#ED567A"})
)

func keyword(s string) string {
	return keywordStyle.Render(s)
}

func subtle(s string) string {
	return subtleStyle.Render(s)
}

func paragraph(s string) string {
	return indent.String(wordwrap.String(s, 78), 2)
}

func isTerminalOutput() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
