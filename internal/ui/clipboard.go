package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// copyToClipboard hands the payload to the platform clipboard. A missing or
// denied clipboard is reported as a status, never as a failure of the
// session; the block stays available for manual copying in the buffer.
func copyToClipboard(text, okText string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return statusMsg{text: "Nothing to copy", level: statusInfo}
		}
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{text: fmt.Sprintf("Clipboard unavailable: %v", err), level: statusWarn}
		}
		return statusMsg{text: okText, level: statusSuccess}
	}
}
