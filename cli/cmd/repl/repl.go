// Package repl implements an interactive identifier parser.
//
// Each line entered in parse mode is parsed and printed in the selected
// format, while a live preview of the parse is shown beneath the input as
// it is typed. Esc toggles control mode, which accepts the commands listed
// by help.
package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/modreq/log"
	"github.com/ardnew/modreq/request"
)

const (
	parsePrompt = "➜ "
	ctrlPrompt  = " :"
)

const helpMessage = `
: Commands (press Esc to toggle mode):

  help            Print this help
  format [NAME]   Show or set the output format (text, json, yaml, canon)
  filter [EXPR]   Show or set the filter expression ("filter -" clears it)
  history         List parsed identifiers, newest last
  clear           Clear the screen
  quit            Exit

Usage:
  Type an identifier and press Enter to parse it
  A preview of the parse appears below the input as you type
  Press Tab / Shift-Tab to cycle through segment completions
  Use Up/Down for history, Shift+Up/Shift+Down within the current mode
  Press Ctrl+C on an empty line or Ctrl+D to exit
`

// inputMode is the interpretation of entered lines.
type inputMode int

const (
	modeParse inputMode = iota
	modeCtrl
)

type styles struct {
	prompt     lipgloss.Style
	ctrlPrompt lipgloss.Style
	input      lipgloss.Style
	result     lipgloss.Style
	err        lipgloss.Style
	hint       lipgloss.Style
	suggestion lipgloss.Style
	matched    lipgloss.Style
	selected   lipgloss.Style
}

func makeStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()

		return styles{
			plain, plain, plain, plain, plain, plain, plain, plain,
			plain.Reverse(true),
		}
	}

	return styles{
		prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		ctrlPrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		input:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		result:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		err:        lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		hint:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		matched:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")),
	}
}

// Config configures a REPL session.
type Config struct {
	Logger   log.Logger
	Input    io.Reader // nil uses the terminal
	Output   io.Writer // nil uses os.Stdout
	CacheDir string    // directory of the history file; empty disables persistence
	Format   string    // initial output format
	Filter   string    // initial filter expression
	Color    bool
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var path string
	if cfg.CacheDir != "" {
		path = filepath.Join(cfg.CacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("history", path),
		slog.Int("entries", history.Len()),
	)

	m, err := newModel(ctx, cfg, history)
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}

	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}

	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	_, err = tea.NewProgram(m, opts...).Run()

	return err
}

const defaultWidth = 80

// saved is the input state of a mode that is not active.
type saved struct {
	text   string
	cursor int
}

type model struct {
	ctxFunc      func() context.Context
	history      *History
	filter       *request.Filter
	logger       log.Logger
	input        textinput.Model
	styles       styles
	matches      fuzzy.Matches
	format       string
	saved        [2]saved
	historyIdx   int
	wordStart    int
	wordEnd      int
	suggIdx      int
	preTabText   string
	preTabCursor int
	width        int
	mode         inputMode
	tabActive    bool
	quitting     bool
	color        bool
}

func newModel(ctx context.Context, cfg Config, history *History) (model, error) {
	s := makeStyles(cfg.Color)

	ti := textinput.New()
	ti.Prompt = s.prompt.Render(parsePrompt)
	ti.CharLimit = 4096
	ti.Width = defaultWidth
	ti.Focus()

	m := model{
		ctxFunc:    func() context.Context { return ctx },
		history:    history,
		logger:     cfg.Logger,
		input:      ti,
		styles:     s,
		format:     cfg.Format,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeParse,
		color:      cfg.Color,
	}

	if m.format == "" {
		m.format = formatNames[0]
	}

	if !slices.Contains(formatNames, m.format) {
		return model{}, request.ErrUnknownOutput.With(slog.String("format", m.format))
	}

	if cfg.Filter != "" {
		f, err := request.CompileFilter(cfg.Filter)
		if err != nil {
			return model{}, err
		}

		m.filter = f
	}

	return m, nil
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(1, msg.Width-lipgloss.Width(parsePrompt)-2)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.hintLine() + "\n"
}

// hintLine is the line shown beneath the input.
func (m model) hintLine() string {
	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		return m.styles.hint.Render(
			strconv.Itoa(m.historyIdx+1) + "/" + strconv.Itoa(m.history.Len()),
		)

	case strings.TrimSpace(input) == "":
		if m.mode == modeParse {
			return m.styles.hint.Render("Type an identifier or press Esc for commands")
		}

		return m.styles.hint.Render("Type: " + strings.Join(ctrlCommands, ", ") + " (Esc to return)")

	case len(m.matches) > 0:
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width, m.styles)

	case m.mode == modeParse:
		return preview(input, m.filter, m.styles)

	default:
		return ""
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()

			return m, nil
		}

		return m.switchMode(1 - m.mode), nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}
	} else {
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle selects the next (dir > 0) or previous completion candidate,
// replacing the current word with it.
func (m model) cycle(dir int) model {
	switch len(m.matches) {
	case 0:
		return m

	case 1:
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = -1
		if dir < 0 {
			m.suggIdx = 0
		}
	}

	n := len(m.matches)
	m.suggIdx = ((m.suggIdx+dir)%n + n) % n
	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

func (m *model) replaceWord(s string) {
	input := m.input.Value()

	head := input[:m.wordStart] + s

	m.input.SetValue(head + input[m.wordEnd:])
	m.input.SetCursor(utf8.RuneCountInString(head))
	m.wordEnd = len(head)
}

// refreshMatches recomputes completions for the word at the cursor.
// Matches are frozen while tab-cycling.
func (m *model) refreshMatches() {
	if m.tabActive {
		return
	}

	input := m.input.Value()

	var word string

	word, m.wordStart, m.wordEnd = wordBounds(input, byteOffset(input, m.input.Position()), boundary(m.mode))
	m.matches = findMatches(word, candidates(m.mode, input, m.wordStart, m.history))
	m.suggIdx = -1
}

// byteOffset converts a rune position in s, as used by textinput, to a byte
// offset.
func byteOffset(s string, pos int) int {
	for i := range s {
		if pos == 0 {
			return i
		}

		pos--
	}

	return len(s)
}

// historyStep moves through history by dir. Unless sameMode is set, the
// mode switches to that of the recalled entry.
func (m model) historyStep(dir int, sameMode bool) model {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		e, err := m.history.Entry(i)
		if err != nil || (sameMode && e.Mode != m.mode) {
			continue
		}

		if e.Mode != m.mode {
			m = m.switchMode(e.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(e.Line)
		m.input.CursorEnd()
		m.refreshMatches()

		return m
	}

	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches()
	}

	return m
}

// switchMode activates mode, saving and restoring each mode's input.
func (m model) switchMode(mode inputMode) model {
	m.saved[m.mode] = saved{m.input.Value(), m.input.Position()}
	m.mode = mode
	m.tabActive = false

	if mode == modeParse {
		m.input.Prompt = m.styles.prompt.Render(parsePrompt)
	} else {
		m.input.Prompt = m.styles.ctrlPrompt.Render(ctrlPrompt)
	}

	m.input.SetValue(m.saved[mode].text)
	m.input.SetCursor(m.saved[mode].cursor)
	m.refreshMatches()

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.saved = [2]saved{}
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(line, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(line)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl parse", slog.String("identifier", line))

	echo := tea.Println(m.styles.prompt.Render(parsePrompt) + m.styles.input.Render(line))

	out, err := render(m.ctxFunc(), m.format, line, m.color)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(m.styles.err.Render("error: "+err.Error())))
	}

	if m.filter != nil {
		out += "\n" + filterMark(m.filter, request.Parsed{Identifier: line, Request: request.Parse(line)}, m.styles)
	}

	return m, tea.Sequence(echo, tea.Println(out))
}

func (m model) executeCommand(line string) (model, tea.Cmd) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	echo := tea.Println(m.styles.ctrlPrompt.Render(ctrlPrompt) + m.styles.input.Render(line))
	reply := func(s string) (model, tea.Cmd) { return m, tea.Sequence(echo, tea.Println(s)) }
	fail := func(s string) (model, tea.Cmd) { return reply(m.styles.err.Render(s)) }

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name),
		slog.String("arg", arg),
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return reply(helpMessage)

	case "c", "clear":
		return m, tea.ClearScreen

	case "format":
		if arg == "" {
			return reply("format: " + m.format)
		}

		if !slices.Contains(formatNames, arg) {
			return fail("unknown format: " + arg + " (" + strings.Join(formatNames, ", ") + ")")
		}

		m.format = arg

		return reply("format: " + arg)

	case "filter":
		switch arg {
		case "":
			if m.filter == nil {
				return reply("filter: none")
			}

			return reply("filter: " + m.filter.String())

		case "-":
			m.filter = nil

			return reply("filter cleared")
		}

		f, err := request.CompileFilter(arg)
		if err != nil {
			return fail("error: " + err.Error())
		}

		m.filter = f

		return reply("filter: " + f.String())

	case "history":
		lines := m.history.Lines(modeParse)
		slices.Reverse(lines)

		var b strings.Builder
		for i, l := range lines {
			fmt.Fprintf(&b, "%4d  %s\n", i+1, l)
		}

		return reply(strings.TrimRight(b.String(), "\n"))

	default:
		return fail("unknown command: " + name + " (try 'help')")
	}
}
