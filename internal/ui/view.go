package ui

import (
	"fmt"
	"strings"

	"blockpad/internal/util"
)

func (m Model) View() string {
	if !m.ready {
		return "initializing…"
	}

	var content string
	switch {
	case m.showHelp:
		content = m.helpView()
	case m.showPreview:
		content = m.view.View()
	default:
		switch m.mode {
		case modeEdit:
			content = m.editor.View()
		case modeSelect:
			content = m.view.View()
		case modeBatch:
			content = m.batchView()
		case modeHistory:
			content = m.historyList.View()
		}
	}

	sections := []string{m.headerView(), content}
	if m.prompt != promptNone {
		sections = append(sections, m.promptView())
	}
	sections = append(sections, m.statusView())
	return strings.Join(sections, "\n")
}

func (m Model) headerView() string {
	left := m.theme.HeaderTitle.Render(" blockpad ") + m.fileLabel() + "  " + m.modeLabel()
	right := m.flagsLabel() + " "

	pad := m.width - util.VisibleWidth(left) - util.VisibleWidth(right)
	if pad < 1 {
		pad = 1
	}
	return m.theme.Header.Render(left + strings.Repeat(" ", pad) + right)
}

func (m Model) fileLabel() string {
	if m.cfg.FilePath == "" {
		return "[scratch]"
	}
	return util.Truncate(m.cfg.FilePath, 40)
}

func (m Model) modeLabel() string {
	switch m.mode {
	case modeEdit:
		return "EDIT"
	case modeSelect:
		return "SELECT"
	case modeBatch:
		return fmt.Sprintf("BATCH (%d rules)", len(m.rules))
	case modeHistory:
		return "HISTORY"
	}
	return ""
}

// flagsLabel renders the option toggles; an active flag uses the highlighted
// style so the live search setup is readable at a glance.
func (m Model) flagsLabel() string {
	flag := func(label string, on bool) string {
		if on {
			return m.theme.HeaderFlagOn.Render(label)
		}
		return m.theme.HeaderFlag.Render(label)
	}
	parts := []string{
		flag("Aa", m.opts.CaseSensitive),
		flag("W", m.opts.WholeWord),
		flag(".*", m.opts.Regex),
		flag("1st", m.opts.FirstOnly),
		flag("~c", m.opts.PreserveCase),
	}
	if m.opts.LineRange != nil {
		parts = append(parts, m.theme.HeaderFlagOn.Render(fmt.Sprintf("L%d:%d", m.opts.LineRange.Start, m.opts.LineRange.End)))
	}
	if m.opts.ContextFilter != "" {
		parts = append(parts, m.theme.HeaderFlagOn.Render("K:"+util.Truncate(m.opts.ContextFilter, 12)))
	}
	return strings.Join(parts, " ")
}

func (m Model) promptView() string {
	label := ""
	switch m.prompt {
	case promptFind, promptReplaceFind:
		label = "find"
	case promptReplaceWith:
		label = "replace with"
	case promptRange:
		label = "lines"
	case promptFilter:
		label = "filter"
	case promptSaveName:
		label = "save as"
	case promptLoadName:
		label = "load"
	case promptExport:
		label = "export"
	case promptBatchFind:
		label = "rule find"
	case promptBatchReplace:
		label = "rule replace"
	}
	return m.theme.PromptLabel.Render(" "+label+": ") + m.focusedInput().View()
}

func (m Model) statusView() string {
	style := m.theme.StatusInfo
	switch m.status.level {
	case statusWarn:
		style = m.theme.StatusWarn
	case statusError:
		style = m.theme.StatusError
	case statusSuccess:
		style = m.theme.StatusSuccess
	}
	left := style.Render(" " + m.status.text)

	right := ""
	if len(m.matches) > 0 {
		right = fmt.Sprintf("%d/%d", m.matchIdx+1, len(m.matches))
		if len(m.marked) > 0 {
			right += fmt.Sprintf(" (%d marked)", len(m.marked))
		}
		right = m.theme.StatusBar.Render(right + " ")
	}

	pad := m.width - util.VisibleWidth(left) - util.VisibleWidth(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func (m Model) batchView() string {
	var b strings.Builder
	b.WriteString(m.theme.ListTitle.Render(" Batch rules") + "\n")
	b.WriteString(m.theme.HelpBody.Render(" n add · space toggle · d delete · enter run · esc back") + "\n\n")

	if len(m.rules) == 0 {
		b.WriteString(m.theme.HelpBody.Render("  no rules yet — n adds one"))
	}
	for i, rule := range m.rules {
		cursor := "  "
		if i == m.batchCursor {
			cursor = m.theme.BatchCursor.Render("> ")
		}
		style := m.theme.BatchEnabled
		box := "[x]"
		if !rule.Enabled {
			style = m.theme.BatchDisabled
			box = "[ ]"
		}
		line := fmt.Sprintf("%s %s → %s",
			box,
			util.Condense(rule.Find, 30),
			util.Condense(rule.Replace, 30))
		b.WriteString(cursor + style.Render(line))
		if i < len(m.rules)-1 {
			b.WriteString("\n")
		}
	}
	return padHeight(b.String(), m.contentHeight())
}

// padHeight bottom-pads s to exactly h lines so the status bar stays put.
func padHeight(s string, h int) string {
	lines := strings.Count(s, "\n") + 1
	if lines >= h {
		return s
	}
	return s + strings.Repeat("\n", h-lines)
}
