// Package ui hosts the bubbletea program that drives the engines: an edit
// mode around a textarea, a select mode with mouse-driven column selection,
// and prompt flows for find/replace, batch rules, patterns and history.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"blockpad/internal/config"
	"blockpad/internal/history"
	"blockpad/internal/patterns"
	"blockpad/internal/search"
	"blockpad/internal/selection"
	"blockpad/internal/theme"
)

const headerHeight = 1
const statusHeight = 1

type mode int

const (
	modeEdit mode = iota
	modeSelect
	modeBatch
	modeHistory
)

type prompt int

const (
	promptNone prompt = iota
	promptFind
	promptReplaceFind
	promptReplaceWith
	promptRange
	promptFilter
	promptSaveName
	promptLoadName
	promptExport
	promptBatchFind
	promptBatchReplace
)

type Config struct {
	FilePath       string
	InitialContent string
	Theme          theme.Theme
	Settings       config.Settings
	History        *history.Log
	Patterns       *patterns.Store
	ExportDir      string
	Version        string
}

// matchSpan is a match projected onto one buffer row, in character columns.
type matchSpan struct {
	startCol int
	endCol   int
	idx      int
}

type Model struct {
	cfg   Config
	theme theme.Theme

	width  int
	height int
	ready  bool

	mode   mode
	prompt prompt

	editor textarea.Model
	view   viewport.Model

	buffer string

	region selection.Region
	frozen []selection.Bounds

	findInput textinput.Model
	auxInput  textinput.Model

	opts        search.Options
	findExpr    string
	replaceExpr string
	matches     []search.Match
	matchIdx    int
	marked      map[int]bool
	matchSpans  map[int][]matchSpan

	rules           []search.Rule
	batchCursor     int
	pendingRuleFind string

	historyList list.Model
	historyInit bool

	showHelp    bool
	showPreview bool
	preview     string

	status statusMsg
}

func New(cfg Config) Model {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetValue(cfg.InitialContent)

	find := textinput.New()
	find.Prompt = ""
	find.Placeholder = "find expression"

	aux := textinput.New()
	aux.Prompt = ""

	opts := search.Options{}
	if cfg.Settings.ContextWindow > 0 {
		opts.ContextWindow = cfg.Settings.ContextWindow
	}

	m := Model{
		cfg:       cfg,
		theme:     cfg.Theme,
		mode:      modeEdit,
		editor:    ta,
		findInput: find,
		auxInput:  aux,
		opts:      opts,
		buffer:    cfg.InitialContent,
		marked:    map[int]bool{},
	}
	if cfg.InitialContent != "" {
		m.mode = modeSelect
	} else {
		m.editor.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.mode == modeEdit {
		return textarea.Blink
	}
	return nil
}

func (m *Model) setStatus(level statusLevel, text string) {
	m.status = statusMsg{text: text, level: level}
}

func (m *Model) lines() []string {
	return strings.Split(m.buffer, "\n")
}

// setBuffer replaces the document text and invalidates everything derived
// from offsets into the old text.
func (m *Model) setBuffer(text string) {
	m.buffer = text
	m.editor.SetValue(text)
	m.clearMatches()
	m.region.Clear()
	m.frozen = nil
	m.renderSelect()
}

func (m *Model) clearMatches() {
	m.matches = nil
	m.matchIdx = 0
	m.marked = map[int]bool{}
	m.matchSpans = nil
	m.showPreview = false
	m.preview = ""
}

func (m *Model) enterEdit() tea.Cmd {
	m.mode = modeEdit
	m.editor.SetValue(m.buffer)
	return m.editor.Focus()
}

func (m *Model) leaveEdit() {
	m.editor.Blur()
	if v := m.editor.Value(); v != m.buffer {
		m.buffer = v
		m.clearMatches()
		m.region.Clear()
		m.frozen = nil
	}
	m.mode = modeSelect
	m.renderSelect()
}

func (m *Model) contentHeight() int {
	h := m.height - headerHeight - statusHeight
	if m.prompt != promptNone {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	ch := m.contentHeight()
	m.editor.SetWidth(width)
	m.editor.SetHeight(ch)
	if m.view.Width == 0 {
		m.view = viewport.New(width, ch)
	} else {
		m.view.Width = width
		m.view.Height = ch
	}
	if m.historyInit {
		m.historyList.SetSize(width, ch)
	}
	m.renderSelect()
}

func (m *Model) focusedInput() *textinput.Model {
	switch m.prompt {
	case promptFind, promptReplaceFind, promptBatchFind:
		return &m.findInput
	case promptNone:
		return nil
	default:
		return &m.auxInput
	}
}

func (m *Model) openPrompt(p prompt, placeholder, initial string) tea.Cmd {
	m.prompt = p
	in := m.focusedInput()
	in.Placeholder = placeholder
	in.SetValue(initial)
	in.CursorEnd()
	m.resize(m.width, m.height)
	return in.Focus()
}

func (m *Model) closePrompt() {
	in := m.focusedInput()
	if in != nil {
		in.Blur()
	}
	m.prompt = promptNone
	m.resize(m.width, m.height)
}
