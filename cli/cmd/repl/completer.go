package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/modreq/request"
)

// ctrlCommands are the commands of control mode.
var ctrlCommands = []string{"help", "format", "filter", "history", "clear", "quit"}

// formatNames are the arguments accepted by the format command.
var formatNames = request.Outputs()

// boundary reports whether r ends a completion word in mode.
// Identifier segments are completed one at a time, commands word by word.
func boundary(mode inputMode) func(rune) bool {
	if mode == modeParse {
		return func(r rune) bool { return r == request.Separator }
	}

	return unicode.IsSpace
}

// wordBounds returns the word around cursor and its byte offsets in input.
func wordBounds(input string, cursor int, isBoundary func(rune) bool) (word string, start, end int) {
	cursor = max(0, min(cursor, len(input)))

	for start = cursor; start > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isBoundary(r) {
			break
		}

		start -= size
	}

	for end = cursor; end < len(input); {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the completions available for the word starting at
// wordStart.
//
// In parse mode these are the loader and resource segments of previously
// parsed identifiers, most recent first. In control mode they are the
// command names, or format names after "format".
func candidates(mode inputMode, input string, wordStart int, h *History) []string {
	if mode == modeCtrl {
		switch strings.TrimSpace(input[:wordStart]) {
		case "":
			return ctrlCommands
		case "format":
			return formatNames
		default:
			return nil
		}
	}

	seen := make(map[string]struct{})

	var out []string

	add := func(s string) {
		if _, ok := seen[s]; ok || s == "" {
			return
		}

		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, line := range h.Lines(modeParse) {
		r := request.Parse(line)

		for _, l := range r.Loaders.All() {
			add(l.String())
		}

		if r.Resource != nil {
			add(r.Resource.String())
		}
	}

	return out
}

// findMatches fuzzy-matches word against cands. An empty word, or a word
// that already equals a candidate, matches nothing.
func findMatches(word string, cands []string) fuzzy.Matches {
	if word == "" {
		return nil
	}

	matches := fuzzy.Find(word, cands)
	for _, m := range matches {
		if m.Str == word {
			return nil
		}
	}

	return matches
}

// renderCandidateBar renders matches on one line no wider than width,
// highlighting the selected candidate when tab-cycling is active.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	active bool,
	width int,
	s styles,
) string {
	const sep = "  "

	var (
		b    strings.Builder
		used int
	)

	for i, m := range matches {
		text := m.Str
		w := lipgloss.Width(text) + len(sep)

		if used+w > width && i > 0 {
			b.WriteString(s.hint.Render("…"))

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		switch {
		case active && i == selected:
			b.WriteString(s.selected.Render(text))
		default:
			b.WriteString(highlight(m, s))
		}

		used += w
	}

	return b.String()
}

// highlight renders a match with its matched characters emphasized.
func highlight(m fuzzy.Match, s styles) string {
	var b strings.Builder

	matched := make(map[int]bool, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		matched[i] = true
	}

	for i, r := range m.Str {
		if matched[i] {
			b.WriteString(s.matched.Render(string(r)))
		} else {
			b.WriteString(s.suggestion.Render(string(r)))
		}
	}

	return b.String()
}
