package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// baseHistory is the file name of the history file in the cache directory.
const baseHistory = "history"

// maxHistory is the number of entries kept in the history file.
const maxHistory = 1000

// Entry is a line of input and the mode it was entered in.
type Entry struct {
	Line string
	Mode inputMode
}

// History is the persistent, de-duplicated list of entered lines.
// Index 0 is the oldest entry. A History is safe for concurrent use.
type History struct {
	path    string
	entries []Entry
	mu      sync.RWMutex
}

// NewHistory returns an empty History persisted at path.
// An empty path keeps history in memory only.
func NewHistory(path string) *History {
	return &History{path: path}
}

// modePrefix maps each mode to the prefix of its lines in the history file.
var modePrefix = map[inputMode]string{
	modeParse: "P:",
	modeCtrl:  "C:",
}

// Load replaces the entries with the contents of the history file.
// A missing file yields an empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	if h.path == "" {
		return nil
	}

	f, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if e, ok := decodeEntry(scanner.Text()); ok {
			h.entries = append(h.entries, e)
		}
	}

	if len(h.entries) > maxHistory {
		h.entries = slices.Clone(h.entries[len(h.entries)-maxHistory:])
	}

	return scanner.Err()
}

func decodeEntry(line string) (Entry, bool) {
	for mode, prefix := range modePrefix {
		if s, ok := strings.CutPrefix(line, prefix); ok && s != "" {
			return Entry{Line: s, Mode: mode}, true
		}
	}

	return Entry{}, false
}

func (e Entry) encode() string { return modePrefix[e.Mode] + e.Line + "\n" }

// Add appends line, moving any earlier copy entered in the same mode to the
// end. Blank lines are ignored.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.ContainsAny(line, "\r\n") {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	e := Entry{Line: line, Mode: mode}

	if n := len(h.entries); n > 0 && h.entries[n-1] == e {
		return nil
	}

	i := slices.Index(h.entries, e)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, e)

	if len(h.entries) > maxHistory {
		h.entries = slices.Delete(h.entries, 0, len(h.entries)-maxHistory)
		i = 0
	}

	if i >= 0 {
		return h.rewrite()
	}

	return h.append(e)
}

// Entry returns the entry at index i.
func (h *History) Entry(i int) (Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return Entry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries.
func (h *History) Entries() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// Lines returns the lines entered in mode, newest first.
func (h *History) Lines(mode inputMode) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	lines := make([]string, 0, len(h.entries))
	for _, e := range slices.Backward(h.entries) {
		if e.Mode == mode {
			lines = append(lines, e.Line)
		}
	}

	return lines
}

func (h *History) append(e Entry) error {
	if h.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(e.encode())

	return err
}

// rewrite replaces the history file with the current entries.
// The caller must hold h.mu.
func (h *History) rewrite() error {
	if h.path == "" {
		return nil
	}

	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e.encode())
	}

	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}
