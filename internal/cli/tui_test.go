package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/rbdraw/pkg/config"
	"github.com/matzehuels/rbdraw/pkg/pipeline"
)

func newBuilder(keys ...int) AABuilderModel {
	return NewAABuilderModel(pipeline.FromConfig(config.Default()), keys)
}

func typeKeys(m AABuilderModel, s string) AABuilderModel {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(AABuilderModel)
	}
	return m
}

func press(m AABuilderModel, k tea.KeyType) (AABuilderModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(AABuilderModel), cmd
}

func TestAABuilderInsert(t *testing.T) {
	m := newBuilder(5, 3)
	if m.Tree.Len() != 2 {
		t.Fatalf("seeded tree has %d keys", m.Tree.Len())
	}

	m = typeKeys(m, "4x2")
	if m.Input != "42" {
		t.Errorf("Input = %q, want non-digits dropped", m.Input)
	}
	m, _ = press(m, tea.KeyBackspace)
	if m.Input != "4" {
		t.Errorf("Input after backspace = %q", m.Input)
	}
	m, _ = press(m, tea.KeyEnter)

	if !m.Tree.Contains(4) || m.Tree.Len() != 3 || m.Input != "" {
		t.Errorf("after enter: keys %v, input %q", m.Tree.Keys(), m.Input)
	}
	if !m.Tree.IsAA() {
		t.Error("tree lost the AA invariants")
	}
	if m.Last != 4 {
		t.Errorf("Last = %d, want 4", m.Last)
	}
}

func TestAABuilderNegativeKeys(t *testing.T) {
	m := typeKeys(newBuilder(), "-7-")
	if m.Input != "-7" {
		t.Errorf("Input = %q, want -7", m.Input)
	}
	m, _ = press(m, tea.KeyEnter)
	if !m.Tree.Contains(-7) {
		t.Error("negative key not inserted")
	}

	// A lone minus sign is not a key.
	m = typeKeys(m, "-")
	m, _ = press(m, tea.KeyEnter)
	if m.err == nil || m.Tree.Len() != 1 {
		t.Errorf("lone minus: err %v, %d keys", m.err, m.Tree.Len())
	}
}

func TestAABuilderQuit(t *testing.T) {
	m, cmd := press(newBuilder(1), tea.KeyCtrlS)
	if !m.Saved || cmd == nil {
		t.Errorf("ctrl+s: saved %v, cmd %v", m.Saved, cmd)
	}

	m, cmd = press(newBuilder(1), tea.KeyEsc)
	if m.Saved || cmd == nil {
		t.Errorf("esc: saved %v, cmd %v", m.Saved, cmd)
	}
}

func TestAABuilderView(t *testing.T) {
	empty := newBuilder().View()
	if !strings.Contains(empty, "AA Tree Builder") || !strings.Contains(empty, "empty tree") {
		t.Errorf("empty view:\n%s", empty)
	}

	view := newBuilder(20, 10, 30).View()
	for _, want := range []string{"10", "20", "30", "3 keys"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q:\n%s", want, view)
		}
	}
}

func TestAABuilderResize(t *testing.T) {
	next, _ := newBuilder(1, 2, 3).Update(tea.WindowSizeMsg{Width: 10, Height: 20})
	if m := next.(AABuilderModel); m.Width != 20 {
		t.Errorf("Width = %d, want the 20 column minimum", m.Width)
	}
}
