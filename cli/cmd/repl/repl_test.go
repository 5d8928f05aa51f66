package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/modreq/log"
	"github.com/ardnew/modreq/request"
)

func testModel(t *testing.T, cfg Config) model {
	t.Helper()

	m, err := newModel(context.Background(), cfg, NewHistory(""))
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}

	return m
}

func typeText(m model, s string) model {
	for _, r := range s {
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func TestNewModel_Errors(t *testing.T) {
	if _, err := newModel(context.Background(), Config{Format: "xml"}, NewHistory("")); !errors.Is(err, request.ErrUnknownOutput) {
		t.Errorf("error = %v, want request.ErrUnknownOutput", err)
	}

	if _, err := newModel(context.Background(), Config{Filter: "loader_count >"}, NewHistory("")); err == nil {
		t.Error("expected error for invalid filter")
	}
}

func TestModel_Preview(t *testing.T) {
	m := testModel(t, Config{Filter: "loader_count == 1", Logger: log.Make(nil)})
	m = typeText(m, "!!raw!./file?q")

	view := m.View()
	for _, want := range []string{"raw!./file?q", "1 loader", "file resource", "loader_count == 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view %q missing %q", view, want)
		}
	}
}

func TestModel_PreviewNullChain(t *testing.T) {
	m := typeText(testModel(t, Config{}), "?q")

	view := m.View()
	for _, want := range []string{"no loaders", "query-only resource"} {
		if !strings.Contains(view, want) {
			t.Errorf("view %q missing %q", view, want)
		}
	}
}

func TestModel_ExecuteAddsHistory(t *testing.T) {
	m := typeText(testModel(t, Config{Format: "canon"}), "a!!b")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected output command")
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if m.history.Len() != 1 {
		t.Fatalf("history length = %d, want 1", m.history.Len())
	}

	e, _ := m.history.Entry(0)
	if e.Line != "a!!b" || e.Mode != modeParse {
		t.Errorf("history entry = %+v", e)
	}
}

func TestModel_TabCompletion(t *testing.T) {
	m := testModel(t, Config{})
	_ = m.history.Add("style-loader!./a.css", modeParse)
	_ = m.history.Add("sass-loader!./b.scss", modeParse)

	m = typeText(m, "raw!sty")
	if len(m.matches) == 0 {
		t.Fatal("expected matches for 'sty'")
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})

	if got := m.input.Value(); got != "raw!style-loader" {
		t.Errorf("after tab, input = %q, want %q", got, "raw!style-loader")
	}
}

func TestModel_CtrlMode(t *testing.T) {
	m := testModel(t, Config{})

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeCtrl {
		t.Fatal("Esc did not enter control mode")
	}

	m = typeText(m, "format yaml")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if m.format != "yaml" {
		t.Errorf("format = %q, want yaml", m.format)
	}

	m = typeText(m, "filter has_resource")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if m.filter == nil || m.filter.String() != "has_resource" {
		t.Errorf("filter = %v", m.filter)
	}

	m = typeText(m, "filter -")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if m.filter != nil {
		t.Errorf("filter not cleared: %v", m.filter)
	}

	m = typeText(m, "quit")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if !m.quitting {
		t.Error("quit did not quit")
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	m := testModel(t, Config{})
	_ = m.history.Add("a!./one", modeParse)
	_ = m.history.Add("help", modeCtrl)
	m.historyIdx = m.history.Len()

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "help" || m.mode != modeCtrl {
		t.Errorf("after up: %q in mode %d", m.input.Value(), m.mode)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "a!./one" || m.mode != modeParse {
		t.Errorf("after second up: %q in mode %d", m.input.Value(), m.mode)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyDown})

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("after down: %q at %d", m.input.Value(), m.historyIdx)
	}
}

func TestModel_CtrlCQuitsOnEmptyLine(t *testing.T) {
	m := typeText(testModel(t, Config{}), "abc")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.quitting || m.input.Value() != "" {
		t.Fatalf("first Ctrl+C: quitting=%v input=%q", m.quitting, m.input.Value())
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.quitting {
		t.Error("second Ctrl+C did not quit")
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"canon", "raw!./file"},
		{"json", `"identifier": "raw!!./file"`},
		{"yaml", "loaders:"},
		{"text", "loader 0"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := render(context.Background(), tt.format, "raw!!./file", false)
			if err != nil {
				t.Fatal(err)
			}

			if !strings.Contains(out, tt.want) {
				t.Errorf("render(%s) = %q, missing %q", tt.format, out, tt.want)
			}
		})
	}

	if _, err := render(context.Background(), "xml", "a", false); !errors.Is(err, request.ErrUnknownOutput) {
		t.Errorf("error = %v, want request.ErrUnknownOutput", err)
	}
}

func TestModel_WindowSize(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		// The prompt is two cells wide but four bytes long.
		{40, 36},
		{80, 76},
		{3, 1},
	}

	for _, tt := range tests {
		next, _ := testModel(t, Config{}).Update(tea.WindowSizeMsg{Width: tt.width, Height: 10})

		m, ok := next.(model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}

		if m.input.Width != tt.want {
			t.Errorf("width %d: input width = %d, want %d", tt.width, m.input.Width, tt.want)
		}
	}
}

func TestByteOffset(t *testing.T) {
	tests := []struct {
		s    string
		pos  int
		want int
	}{
		{"abc", 0, 0},
		{"abc", 2, 2},
		{"abc", 5, 3},
		{"é!x", 1, 2},
		{"é!x", 2, 3},
	}

	for _, tt := range tests {
		if got := byteOffset(tt.s, tt.pos); got != tt.want {
			t.Errorf("byteOffset(%q, %d) = %d, want %d", tt.s, tt.pos, got, tt.want)
		}
	}
}
