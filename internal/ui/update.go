package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"blockpad/internal/export"
	"blockpad/internal/grid"
	"blockpad/internal/patterns"
	"blockpad/internal/search"
	"blockpad/internal/selection"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case statusMsg:
		m.status = msg
		return m, nil
	case tea.MouseMsg:
		if m.mode == modeSelect && m.prompt == promptNone && !m.showHelp && !m.showPreview {
			m.handleMouse(msg)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.routeToFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		m.renderSelect()
		return m, nil
	}
	if m.showPreview {
		switch msg.String() {
		case "esc", "t", "q":
			m.showPreview = false
			m.renderSelect()
			return m, nil
		}
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	switch m.mode {
	case modeEdit:
		return m.handleEditKey(msg)
	case modeSelect:
		return m.handleSelectKey(msg)
	case modeBatch:
		return m.handleBatchKey(msg)
	case modeHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.leaveEdit()
		m.setStatus(statusInfo, "Select mode — drag to select columns, / to find, ? for keys")
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e", "i":
		return m, m.enterEdit()
	case "?":
		m.showHelp = true
		return m, nil
	case "esc":
		if m.region.Present() || len(m.frozen) > 0 {
			m.region.Clear()
			m.frozen = nil
		} else if len(m.matches) > 0 {
			m.clearMatches()
		}
		m.renderSelect()
		return m, nil
	case "/":
		return m, m.openPrompt(promptFind, "find expression", m.findExpr)
	case "r":
		return m, m.openPrompt(promptReplaceFind, "find expression", m.findExpr)
	case "n":
		m.cycleMatch(1)
		return m, nil
	case "N":
		m.cycleMatch(-1)
		return m, nil
	case "m":
		m.toggleMark()
		return m, nil
	case "M":
		m.marked = map[int]bool{}
		m.renderSelect()
		m.setStatus(statusInfo, "Marks cleared")
		return m, nil
	case "a":
		return m, m.applyReplace(applyAll)
	case "f":
		return m, m.applyReplace(applyFirst)
	case "s":
		return m, m.applyReplace(applyMarked)
	case "t":
		m.togglePreview()
		return m, nil
	case "C":
		m.opts.CaseSensitive = !m.opts.CaseSensitive
		return m, m.rescan()
	case "W":
		m.opts.WholeWord = !m.opts.WholeWord
		return m, m.rescan()
	case "R":
		m.opts.Regex = !m.opts.Regex
		return m, m.rescan()
	case "S":
		m.opts.PreserveCase = !m.opts.PreserveCase
		m.setStatus(statusInfo, fmt.Sprintf("Preserve case %s", onOff(m.opts.PreserveCase)))
		return m, nil
	case "F":
		m.opts.FirstOnly = !m.opts.FirstOnly
		m.setStatus(statusInfo, fmt.Sprintf("First only %s", onOff(m.opts.FirstOnly)))
		return m, nil
	case "L":
		return m, m.openPrompt(promptRange, "line range start:end, empty clears", formatLineRange(m.opts.LineRange))
	case "K":
		return m, m.openPrompt(promptFilter, "context filter pattern, empty clears", m.opts.ContextFilter)
	case "p":
		if m.findExpr == "" {
			m.setStatus(statusWarn, "Nothing to save — set a find expression first")
			return m, nil
		}
		return m, m.openPrompt(promptSaveName, "pattern name", "")
	case "o":
		return m, m.openPrompt(promptLoadName, "pattern name"+patternHint(m.cfg.Patterns), "")
	case "b":
		m.mode = modeBatch
		return m, nil
	case "h":
		m.openHistory()
		return m, nil
	case "y", "c":
		return m, m.copySelection()
	case "x":
		return m, m.openPrompt(promptExport, "export filename", defaultExportName(m.cfg.FilePath))
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) handleBatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.mode = modeSelect
		m.renderSelect()
		return m, nil
	case "j", "down":
		if m.batchCursor < len(m.rules)-1 {
			m.batchCursor++
		}
		return m, nil
	case "k", "up":
		if m.batchCursor > 0 {
			m.batchCursor--
		}
		return m, nil
	case " ":
		if m.batchCursor < len(m.rules) {
			m.rules[m.batchCursor].Enabled = !m.rules[m.batchCursor].Enabled
		}
		return m, nil
	case "d":
		if m.batchCursor < len(m.rules) {
			m.rules = append(m.rules[:m.batchCursor], m.rules[m.batchCursor+1:]...)
			if m.batchCursor >= len(m.rules) && m.batchCursor > 0 {
				m.batchCursor--
			}
		}
		return m, nil
	case "n", "a":
		return m, m.openPrompt(promptBatchFind, "rule find expression", "")
	case "enter":
		return m.runBatch()
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "h", "q":
		if m.historyList.FilterState() != list.Filtering {
			m.mode = modeSelect
			m.renderSelect()
			return m, nil
		}
	case "enter":
		if it, ok := m.historyList.SelectedItem().(historyItem); ok {
			m.mode = modeSelect
			m.findExpr = it.op.Find
			m.replaceExpr = it.op.Replace
			m.opts = it.op.Options
			return m, m.rescan()
		}
	case "X":
		if err := m.cfg.History.Reset(); err != nil {
			m.setStatus(statusError, fmt.Sprintf("Reset failed: %v", err))
			return m, nil
		}
		m.refreshHistoryItems()
		m.setStatus(statusSuccess, "Operation history cleared")
		return m, nil
	}
	var cmd tea.Cmd
	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		return m.submitPrompt()
	}
	in := m.focusedInput()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	p := m.prompt
	value := strings.TrimSpace(m.focusedInput().Value())
	m.closePrompt()

	switch p {
	case promptFind:
		m.findExpr = value
		return m, m.rescan()
	case promptReplaceFind:
		m.findExpr = value
		return m, m.openPrompt(promptReplaceWith, "replacement text", m.replaceExpr)
	case promptReplaceWith:
		m.replaceExpr = m.auxInput.Value() // replacement whitespace is significant
		cmd := m.rescan()
		if len(m.matches) > 0 {
			m.setStatus(statusInfo, fmt.Sprintf("%d match(es) — a all, f first, s marked, t preview", len(m.matches)))
		}
		return m, cmd
	case promptRange:
		lr, err := parseLineRange(value)
		if err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.opts.LineRange = lr
		return m, m.rescan()
	case promptFilter:
		m.opts.ContextFilter = value
		return m, m.rescan()
	case promptSaveName:
		err := m.cfg.Patterns.Save(patterns.Pattern{
			Name:    value,
			Find:    m.findExpr,
			Replace: m.replaceExpr,
			Options: m.opts,
		})
		if err != nil {
			m.setStatus(statusError, fmt.Sprintf("Save failed: %v", err))
			return m, nil
		}
		m.setStatus(statusSuccess, fmt.Sprintf("Pattern %q saved", value))
		return m, nil
	case promptLoadName:
		pat, ok := m.cfg.Patterns.Get(value)
		if !ok {
			m.setStatus(statusWarn, fmt.Sprintf("No pattern named %q", value))
			return m, nil
		}
		m.findExpr = pat.Find
		m.replaceExpr = pat.Replace
		m.opts = pat.Options
		return m, m.rescan()
	case promptExport:
		return m, m.exportText(value)
	case promptBatchFind:
		if value == "" {
			m.setStatus(statusWarn, "Rule discarded — find expression required")
			return m, nil
		}
		m.pendingRuleFind = value
		return m, m.openPrompt(promptBatchReplace, "rule replacement text", "")
	case promptBatchReplace:
		m.rules = append(m.rules, search.Rule{
			Find:    m.pendingRuleFind,
			Replace: m.auxInput.Value(),
			Enabled: true,
		})
		m.pendingRuleFind = ""
		m.batchCursor = len(m.rules) - 1
		return m, nil
	}
	return m, nil
}

type applyKind int

const (
	applyAll applyKind = iota
	applyFirst
	applyMarked
)

func (m *Model) applyReplace(kind applyKind) tea.Cmd {
	if m.findExpr == "" {
		m.setStatus(statusWarn, "No find expression")
		return nil
	}
	if len(m.matches) == 0 {
		m.setStatus(statusInfo, "No matches to replace")
		return nil
	}

	opts := m.opts
	var subset []int
	switch kind {
	case applyAll:
		opts.FirstOnly = false
	case applyFirst:
		opts.FirstOnly = true
	case applyMarked:
		opts.FirstOnly = false
		if len(m.marked) == 0 {
			m.setStatus(statusWarn, "No matches marked — m marks the current match")
			return nil
		}
		subset = make([]int, 0, len(m.marked))
		for i := range m.marked {
			subset = append(subset, i)
		}
		sort.Ints(subset)
	}

	res := search.Replace(m.buffer, m.matches, m.replaceExpr, opts, subset)
	if res.Applied == 0 {
		m.setStatus(statusInfo, "Nothing replaced")
		return nil
	}
	m.recordOperation(m.findExpr, m.replaceExpr, opts, res.Applied)
	m.setBuffer(res.NewText)
	m.setStatus(statusSuccess, fmt.Sprintf("Replaced %d occurrence(s)", res.Applied))
	return nil
}

func (m Model) runBatch() (tea.Model, tea.Cmd) {
	res := search.ApplyBatch(m.buffer, m.rules, m.opts)
	failed := 0
	for _, out := range res.Rules {
		if out.Err != nil {
			failed++
			continue
		}
		if out.Applied > 0 {
			opts := m.opts
			opts.FirstOnly = false
			m.recordOperation(out.Rule.Find, out.Rule.Replace, opts, out.Applied)
		}
	}
	if res.Applied > 0 {
		m.setBuffer(res.NewText)
	}
	switch {
	case failed > 0:
		m.setStatus(statusWarn, fmt.Sprintf("Batch replaced %d occurrence(s), %d rule(s) failed to compile", res.Applied, failed))
	case res.Applied == 0:
		m.setStatus(statusInfo, "Batch made no replacements")
	default:
		m.setStatus(statusSuccess, fmt.Sprintf("Batch replaced %d occurrence(s)", res.Applied))
	}
	m.mode = modeSelect
	return m, nil
}

func (m *Model) recordOperation(find, replace string, opts search.Options, applied int) {
	if m.cfg.History == nil {
		return
	}
	err := m.cfg.History.Append(historyOperation(find, replace, opts, applied))
	if err != nil {
		m.setStatus(statusWarn, fmt.Sprintf("History not recorded: %v", err))
	}
}

func (m *Model) rescan() tea.Cmd {
	m.clearMatches()
	if m.findExpr == "" {
		m.renderSelect()
		return nil
	}
	matches, err := search.Scan(m.buffer, m.findExpr, m.opts)
	if err != nil {
		m.renderSelect()
		m.setStatus(statusError, fmt.Sprintf("Invalid pattern: %v", err))
		return nil
	}
	m.matches = matches
	m.rebuildMatchSpans()
	m.renderSelect()
	if len(matches) == 0 {
		m.setStatus(statusInfo, fmt.Sprintf("No matches for %q", m.findExpr))
	} else {
		m.ensureMatchVisible()
		m.setStatus(statusInfo, fmt.Sprintf("%d match(es)", len(matches)))
	}
	return nil
}

func (m *Model) cycleMatch(step int) {
	if len(m.matches) == 0 {
		m.setStatus(statusInfo, "No matches")
		return
	}
	m.matchIdx = (m.matchIdx + step + len(m.matches)) % len(m.matches)
	m.ensureMatchVisible()
	m.renderSelect()
	cur := m.matches[m.matchIdx]
	m.setStatus(statusInfo, fmt.Sprintf("Match %d/%d on line %d: %s", m.matchIdx+1, len(m.matches), cur.Line, cur.Context))
}

func (m *Model) toggleMark() {
	if len(m.matches) == 0 {
		m.setStatus(statusInfo, "No matches to mark")
		return
	}
	if m.marked[m.matchIdx] {
		delete(m.marked, m.matchIdx)
	} else {
		m.marked[m.matchIdx] = true
	}
	m.renderSelect()
	m.setStatus(statusInfo, fmt.Sprintf("%d match(es) marked", len(m.marked)))
}

func (m *Model) togglePreview() {
	if m.showPreview {
		m.showPreview = false
		m.renderSelect()
		return
	}
	if m.findExpr == "" || len(m.matches) == 0 {
		m.setStatus(statusInfo, "Nothing to preview")
		return
	}
	m.preview = m.buildPreview()
	m.showPreview = true
	m.renderPreview()
}

// copySelection extracts every frozen block plus the live region, in the
// order they were made, and hands the joined blocks to the clipboard.
func (m *Model) copySelection() tea.Cmd {
	bounds := make([]selection.Bounds, 0, len(m.frozen)+1)
	bounds = append(bounds, m.frozen...)
	if m.region.Present() {
		bounds = append(bounds, m.region.NormalizedBounds())
	}
	if len(bounds) == 0 {
		m.setStatus(statusInfo, "No selection")
		return nil
	}

	blocks := make([]string, 0, len(bounds))
	allBlank := true
	for _, b := range bounds {
		block := selection.Extract(m.buffer, b)
		if !selection.Blank(block) {
			allBlank = false
		}
		blocks = append(blocks, block)
	}
	if allBlank {
		m.setStatus(statusWarn, "Selection is blank — nothing to copy")
		return nil
	}
	payload := strings.Join(blocks, "\n")

	label := "Selection copied"
	if len(bounds) > 1 {
		label = fmt.Sprintf("%d blocks copied", len(bounds))
	}
	return copyToClipboard(payload, label)
}

func (m *Model) exportText(filename string) tea.Cmd {
	text := m.buffer
	if m.region.Present() || len(m.frozen) > 0 {
		bounds := append([]selection.Bounds{}, m.frozen...)
		if m.region.Present() {
			bounds = append(bounds, m.region.NormalizedBounds())
		}
		blocks := make([]string, 0, len(bounds))
		for _, b := range bounds {
			blocks = append(blocks, selection.Extract(m.buffer, b))
		}
		text = strings.Join(blocks, "\n")
	}
	dir := m.cfg.ExportDir
	return func() tea.Msg {
		path, err := export.Write(dir, filename, text)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export failed: %v", err), level: statusError}
		}
		return statusMsg{text: fmt.Sprintf("Exported to %s", path), level: statusSuccess}
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.view.LineUp(3)
		return
	case tea.MouseButtonWheelDown:
		m.view.LineDown(3)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		pos, ok := m.gridPosition(msg.X, msg.Y)
		if !ok {
			return
		}
		if msg.Shift {
			if m.region.Present() {
				m.frozen = append(m.frozen, m.region.NormalizedBounds())
			}
		} else {
			m.frozen = nil
		}
		m.region.Begin(pos)
	case tea.MouseActionMotion:
		if !m.region.Active() {
			return
		}
		if pos, ok := m.gridPosition(msg.X, msg.Y); ok {
			m.region.Extend(pos)
		}
	case tea.MouseActionRelease:
		m.region.Finish()
	default:
		return
	}
	m.renderSelect()
}

// gridPosition maps a terminal coordinate to a character cell in the buffer.
// The gutter and header are part of the origin; the viewport offset is the
// scroll. The display cell is then resolved to a character column so a wide
// rune under the pointer selects as one column.
func (m *Model) gridPosition(x, y int) (grid.Position, bool) {
	if y < headerHeight || y >= headerHeight+m.view.Height {
		return grid.Position{}, false
	}
	lines := m.lines()
	metrics := grid.Metrics{
		CellWidth:  1,
		LineHeight: 1,
		OriginX:    float64(m.gutterWidth()),
		OriginY:    float64(headerHeight),
		ScrollY:    float64(m.view.YOffset),
	}
	pos, ok := grid.ToPosition(float64(x), float64(y), metrics, len(lines))
	if !ok {
		return grid.Position{}, false
	}
	if pos.Row < len(lines) {
		pos.Col = grid.ColumnForCell(lines[pos.Row], pos.Col)
	}
	return pos, true
}

func (m Model) routeToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.prompt != promptNone:
		in := m.focusedInput()
		*in, cmd = in.Update(msg)
	case m.mode == modeEdit:
		m.editor, cmd = m.editor.Update(msg)
	case m.mode == modeHistory:
		m.historyList, cmd = m.historyList.Update(msg)
	}
	return m, cmd
}

func parseLineRange(value string) (*search.LineRange, error) {
	if value == "" {
		return nil, nil
	}
	sep := ":"
	if !strings.Contains(value, sep) {
		sep = "-"
	}
	parts := strings.SplitN(value, sep, 2)
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid line range %q", value)
	}
	end := start
	if len(parts) == 2 {
		end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid line range %q", value)
		}
	}
	if start < 1 || end < 1 {
		return nil, fmt.Errorf("line range is 1-indexed")
	}
	if start > end {
		start, end = end, start
	}
	return &search.LineRange{Start: start, End: end}, nil
}

func formatLineRange(lr *search.LineRange) string {
	if lr == nil {
		return ""
	}
	return fmt.Sprintf("%d:%d", lr.Start, lr.End)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func defaultExportName(filePath string) string {
	if filePath == "" {
		return "blockpad.txt"
	}
	return "export_" + export.Sanitize(filePath)
}

func patternHint(store *patterns.Store) string {
	if store == nil {
		return ""
	}
	names := store.List()
	if len(names) == 0 {
		return ""
	}
	shown := make([]string, 0, 3)
	for i, p := range names {
		if i == 3 {
			break
		}
		shown = append(shown, p.Name)
	}
	return " (" + strings.Join(shown, ", ") + ")"
}
