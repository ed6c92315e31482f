// Package ui implements the interactive terminal surfaces: a checkbox
// selector for tool servers and its plain-text fallback for dumb terminals.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clawkit/clawkit/internal/mcp"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	checkedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	uncheckedBox  = lipgloss.NewStyle().Faint(true)
	descStyle     = lipgloss.NewStyle().Faint(true)
	selectedCount = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

type selectKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Accept key.Binding
	Cancel key.Binding
}

func defaultSelectKeys() selectKeyMap {
	return selectKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "finish")),
		Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc/q", "cancel")),
	}
}

func (k selectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Accept, k.Cancel}
}

func (k selectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// SelectModel is the Bubble Tea model for the server checkbox menu.
type SelectModel struct {
	specs    []mcp.ServerSpec
	selected map[string]bool
	cursor   int

	keys selectKeyMap
	help help.Model

	accepted bool
	canceled bool
}

// NewSelectModel builds the menu with the currently configured servers
// pre-checked.
func NewSelectModel(current map[string]bool) SelectModel {
	selected := make(map[string]bool, len(current))
	for id, on := range current {
		if on {
			selected[id] = true
		}
	}
	return SelectModel{
		specs:    mcp.Catalog(),
		selected: selected,
		keys:     defaultSelectKeys(),
		help:     help.New(),
	}
}

// Init implements tea.Model.
func (m SelectModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.specs) - 1
		}
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.specs)
	case key.Matches(keyMsg, m.keys.Toggle):
		id := m.specs[m.cursor].ID
		if m.selected[id] {
			delete(m.selected, id)
		} else {
			m.selected[id] = true
		}
	case key.Matches(keyMsg, m.keys.Accept):
		m.accepted = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.canceled = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m SelectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("MCP Server Selection"))
	b.WriteString("\n\n")

	for i, spec := range m.specs {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("→ ")
		}

		checkbox := uncheckedBox.Render("☐")
		name := spec.Name
		if m.selected[spec.ID] {
			checkbox = checkedStyle.Render("✓")
			name = checkedStyle.Render(name)
		}

		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, checkbox, name, descStyle.Render("— "+spec.Description))
	}

	b.WriteString("\n")
	b.WriteString(selectedCount.Render(fmt.Sprintf("Selected: %d servers", len(m.selected))))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Selection returns the chosen ID set and whether the menu was canceled.
func (m SelectModel) Selection() (map[string]bool, bool) {
	return m.selected, m.canceled || !m.accepted
}

// RunSelect opens the interactive menu and returns the desired server set.
// canceled is true when the user backed out, in which case the selection must
// not be applied.
func RunSelect(current map[string]bool) (selection map[string]bool, canceled bool, err error) {
	final, err := tea.NewProgram(NewSelectModel(current)).Run()
	if err != nil {
		return nil, true, fmt.Errorf("run selection menu: %w", err)
	}
	m, ok := final.(SelectModel)
	if !ok {
		return nil, true, fmt.Errorf("unexpected model type %T", final)
	}
	selection, canceled = m.Selection()
	return selection, canceled, nil
}

// SelectFallback is the text-mode menu used when stdout is not a terminal:
// numbered toggles, "all", "none", and "done", one command per line.
func SelectFallback(r io.Reader, w io.Writer, current map[string]bool) (map[string]bool, error) {
	specs := mcp.Catalog()
	selected := make(map[string]bool, len(current))
	for id, on := range current {
		if on {
			selected[id] = true
		}
	}

	printMenu := func() {
		fmt.Fprintln(w, "\nMCP server configuration:")
		for i, spec := range specs {
			mark := "☐"
			if selected[spec.ID] {
				mark = "✓"
			}
			fmt.Fprintf(w, "%d. %s %s (%s) — %s\n", i+1, mark, spec.Name, spec.ID, spec.Description)
		}
		fmt.Fprintf(w, "Selected: %d. Enter numbers to toggle (e.g. 1,3), 'all', 'none', or 'done':\n", len(selected))
	}

	printMenu()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		choice := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch choice {
		case "", "done":
			return selected, nil
		case "all":
			for _, spec := range specs {
				selected[spec.ID] = true
			}
		case "none":
			selected = map[string]bool{}
		default:
			for _, field := range strings.Split(choice, ",") {
				n, err := strconv.Atoi(strings.TrimSpace(field))
				if err != nil || n < 1 || n > len(specs) {
					fmt.Fprintf(w, "invalid choice: %s\n", field)
					continue
				}
				id := specs[n-1].ID
				if selected[id] {
					delete(selected, id)
				} else {
					selected[id] = true
				}
			}
		}
		printMenu()
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read selection input: %w", err)
	}
	return selected, nil
}
