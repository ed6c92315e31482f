package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyPress(m SelectModel, keys ...string) SelectModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(SelectModel)
	}
	return m
}

func TestSelectModel_ToggleAndAccept(t *testing.T) {
	m := NewSelectModel(nil)

	// Toggle the first entry, move down two, toggle the third.
	m = keyPress(m, "space", "down", "down", "space", "enter")

	selection, canceled := m.Selection()
	if canceled {
		t.Fatal("selection reported canceled after enter")
	}
	if len(selection) != 2 {
		t.Fatalf("selected %d servers, want 2: %v", len(selection), selection)
	}
	if !selection["firecrawl"] || !selection["elevenlabs"] {
		t.Errorf("selection = %v, want firecrawl and elevenlabs", selection)
	}
}

func TestSelectModel_ToggleTwiceDeselects(t *testing.T) {
	m := NewSelectModel(nil)
	m = keyPress(m, "space", "space", "enter")

	selection, _ := m.Selection()
	if len(selection) != 0 {
		t.Errorf("selection = %v, want empty after double toggle", selection)
	}
}

func TestSelectModel_PreselectsCurrent(t *testing.T) {
	m := NewSelectModel(map[string]bool{"serena": true, "github": false})

	selection, _ := m.Selection()
	if !selection["serena"] {
		t.Error("serena not pre-selected")
	}
	if selection["github"] {
		t.Error("github pre-selected despite false")
	}
}

func TestSelectModel_CursorWraps(t *testing.T) {
	m := NewSelectModel(nil)

	m = keyPress(m, "up") // from the top, wraps to the last entry
	m = keyPress(m, "space", "enter")

	selection, _ := m.Selection()
	if !selection["serena"] {
		t.Errorf("selection = %v, want serena (last catalog entry)", selection)
	}
}

func TestSelectModel_Cancel(t *testing.T) {
	m := NewSelectModel(map[string]bool{"github": true})
	m = keyPress(m, "space", "esc")

	_, canceled := m.Selection()
	if !canceled {
		t.Fatal("esc did not cancel")
	}
}

func TestSelectModel_ViewShowsCheckboxes(t *testing.T) {
	m := NewSelectModel(map[string]bool{"github": true})
	view := m.View()

	if !strings.Contains(view, "GitHub MCP") {
		t.Error("view missing server name")
	}
	if !strings.Contains(view, "✓") {
		t.Error("view missing checked marker")
	}
	if !strings.Contains(view, "Selected: 1") {
		t.Error("view missing selection count")
	}
}

func TestSelectFallback(t *testing.T) {
	in := strings.NewReader("1,4\n2\n2\ndone\n")
	var out strings.Builder

	selection, err := SelectFallback(in, &out, nil)
	if err != nil {
		t.Fatalf("SelectFallback failed: %v", err)
	}
	if len(selection) != 2 || !selection["firecrawl"] || !selection["context7"] {
		t.Errorf("selection = %v, want firecrawl and context7", selection)
	}
}

func TestSelectFallback_AllNone(t *testing.T) {
	in := strings.NewReader("all\nnone\n3\ndone\n")
	var out strings.Builder

	selection, err := SelectFallback(in, &out, map[string]bool{"github": true})
	if err != nil {
		t.Fatalf("SelectFallback failed: %v", err)
	}
	if len(selection) != 1 || !selection["elevenlabs"] {
		t.Errorf("selection = %v, want only elevenlabs", selection)
	}
}

func TestSelectFallback_InvalidInputIsTolerated(t *testing.T) {
	in := strings.NewReader("banana\n99\n1\ndone\n")
	var out strings.Builder

	selection, err := SelectFallback(in, &out, nil)
	if err != nil {
		t.Fatalf("SelectFallback failed: %v", err)
	}
	if len(selection) != 1 || !selection["firecrawl"] {
		t.Errorf("selection = %v, want only firecrawl", selection)
	}
	if !strings.Contains(out.String(), "invalid choice") {
		t.Error("output missing invalid-choice notice")
	}
}
