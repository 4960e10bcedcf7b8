package ui

import (
	"github.com/MakeNowJust/heredoc"
)

var helpText = heredoc.Doc(`
	Selection
	  drag           select a column block
	  shift+drag     keep the previous block and add another
	  y / c          copy selected block(s) to the clipboard
	  esc            clear selection, then clear matches
	  e / i          edit the buffer, esc returns

	Find & replace
	  /              find expression
	  r              find, then replacement text
	  n / N          next / previous match
	  m / M          mark current match / clear marks
	  a / f / s      replace all / first / marked
	  t              preview the replacement as a diff

	Options
	  C  case sensitive     W  whole word      R  regex
	  F  first only         S  preserve case
	  L  line range         K  context filter

	More
	  b              batch rules
	  h              operation history
	  p / o          save / load a named pattern
	  x              export buffer or selection to a file
	  ctrl+q         quit
`)

func (m Model) helpView() string {
	body := m.theme.HelpTitle.Render(" Keys") + "\n" + m.theme.HelpBody.Render(helpText)
	return padHeight(body, m.contentHeight())
}
