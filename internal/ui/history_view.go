package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"blockpad/internal/history"
	"blockpad/internal/search"
	"blockpad/internal/util"
)

type historyItem struct {
	op history.Operation
}

func (i historyItem) Title() string {
	return fmt.Sprintf("%s  %s → %s",
		i.op.ExecutedAt.Format("Jan 02 15:04"),
		util.Condense(i.op.Find, 24),
		util.Condense(i.op.Replace, 24))
}

func (i historyItem) Description() string {
	return fmt.Sprintf("%d replaced · %s", i.op.Matches, optionsSummary(i.op.Options))
}

func (i historyItem) FilterValue() string {
	return i.op.Find + " " + i.op.Replace
}

func optionsSummary(opts search.Options) string {
	var parts []string
	if opts.CaseSensitive {
		parts = append(parts, "case")
	}
	if opts.WholeWord {
		parts = append(parts, "word")
	}
	if opts.Regex {
		parts = append(parts, "regex")
	}
	if opts.PreserveCase {
		parts = append(parts, "preserve")
	}
	if opts.LineRange != nil {
		parts = append(parts, fmt.Sprintf("lines %d:%d", opts.LineRange.Start, opts.LineRange.End))
	}
	if opts.ContextFilter != "" {
		parts = append(parts, "filter "+util.Condense(opts.ContextFilter, 16))
	}
	if len(parts) == 0 {
		return "default options"
	}
	return strings.Join(parts, " · ")
}

func historyOperation(find, replace string, opts search.Options, applied int) history.Operation {
	return history.Operation{
		Find:    find,
		Replace: replace,
		Options: opts,
		Matches: applied,
	}
}

func (m *Model) openHistory() {
	if m.cfg.History == nil {
		m.setStatus(statusWarn, "History unavailable")
		return
	}
	if !m.historyInit {
		delegate := list.NewDefaultDelegate()
		m.historyList = list.New(nil, delegate, m.width, m.contentHeight())
		m.historyList.Title = "Operation history — enter recalls, X clears"
		m.historyList.SetShowStatusBar(false)
		m.historyList.Styles.Title = m.theme.ListTitle
		m.historyInit = true
	}
	m.refreshHistoryItems()
	m.mode = modeHistory
}

func (m *Model) refreshHistoryItems() {
	entries := m.cfg.History.Entries()
	items := make([]list.Item, len(entries))
	for i, op := range entries {
		items[i] = historyItem{op: op}
	}
	m.historyList.SetItems(items)
}
