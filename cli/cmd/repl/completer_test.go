package repl

import (
	"slices"
	"strings"
	"testing"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name   string
		mode   inputMode
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{"empty", modeParse, "", 0, "", 0, 0},
		{"single segment", modeParse, "raw", 3, "raw", 0, 3},
		{"second segment", modeParse, "raw!./fi", 8, "./fi", 4, 8},
		{"cursor inside", modeParse, "raw!./file", 2, "raw", 0, 3},
		{"after separator", modeParse, "raw!", 4, "", 4, 4},
		{"spaces kept in parse mode", modeParse, "a b!c", 3, "a b", 0, 3},
		{"command", modeCtrl, "for", 3, "for", 0, 3},
		{"command argument", modeCtrl, "format js", 9, "js", 7, 9},
		{"cursor past end", modeCtrl, "he", 10, "he", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor, boundary(tt.mode))
			if word != tt.word || start != tt.start || end != tt.end {
				t.Errorf("wordBounds(%q, %d) = %q, %d, %d; want %q, %d, %d",
					tt.input, tt.cursor, word, start, end, tt.word, tt.start, tt.end)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	h := NewHistory("")
	_ = h.Add("style!css?modules!./a.css", modeParse)
	_ = h.Add("raw!./a.css", modeParse)
	_ = h.Add("format json", modeCtrl)

	got := candidates(modeParse, "", 0, h)
	want := []string{"raw", "./a.css", "style", "css?modules"}

	if !slices.Equal(got, want) {
		t.Errorf("parse candidates = %v, want %v", got, want)
	}

	if got := candidates(modeCtrl, "fo", 0, h); !slices.Equal(got, ctrlCommands) {
		t.Errorf("command candidates = %v", got)
	}

	if got := candidates(modeCtrl, "format j", 7, h); !slices.Equal(got, formatNames) {
		t.Errorf("format candidates = %v", got)
	}

	if got := candidates(modeCtrl, "quit x", 5, h); got != nil {
		t.Errorf("argument candidates = %v, want nil", got)
	}
}

func TestFindMatches(t *testing.T) {
	if m := findMatches("", ctrlCommands); m != nil {
		t.Errorf("empty word matched %v", m)
	}

	if m := findMatches("help", ctrlCommands); m != nil {
		t.Errorf("exact word matched %v", m)
	}

	m := findMatches("fi", ctrlCommands)
	if len(m) == 0 || m[0].Str != "filter" {
		t.Errorf("findMatches(fi) = %v", m)
	}
}

func TestRenderCandidateBar(t *testing.T) {
	s := makeStyles(false)
	matches := findMatches("r", []string{"raw", "raw-loader", "resolve-url-loader"})

	bar := renderCandidateBar(matches, -1, false, 80, s)
	for _, want := range []string{"raw", "raw-loader", "resolve-url-loader"} {
		if !strings.Contains(bar, want) {
			t.Errorf("bar %q missing %q", bar, want)
		}
	}

	narrow := renderCandidateBar(matches, -1, false, 8, s)
	if !strings.HasSuffix(narrow, "…") {
		t.Errorf("narrow bar %q not truncated", narrow)
	}
}
