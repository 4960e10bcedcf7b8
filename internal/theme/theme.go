package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	AppFrame     lipgloss.Style
	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderFlag   lipgloss.Style
	HeaderFlagOn lipgloss.Style

	StatusBar     lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusWarn    lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style

	LineNumber      lipgloss.Style
	Selection       lipgloss.Style
	FrozenSelection lipgloss.Style
	MatchHighlight  lipgloss.Style
	CurrentMatch    lipgloss.Style
	MarkedMatch     lipgloss.Style

	PromptLabel lipgloss.Style
	PromptBox   lipgloss.Style

	HelpTitle lipgloss.Style
	HelpBody  lipgloss.Style

	ListTitle     lipgloss.Style
	BatchEnabled  lipgloss.Style
	BatchDisabled lipgloss.Style
	BatchCursor   lipgloss.Style

	DiffAdd    lipgloss.Style
	DiffRemove lipgloss.Style
	DiffHunk   lipgloss.Style
}

func DefaultDark() Theme {
	accent := lipgloss.Color("#7D56F4")
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("#dcd7ff"))

	return Theme{
		AppFrame:     lipgloss.NewStyle(),
		Header:       base.Background(lipgloss.Color("#1f1b2e")),
		HeaderTitle:  base.Bold(true).Foreground(accent),
		HeaderFlag:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6b6480")),
		HeaderFlagOn: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FB3B3")),

		StatusBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#bbb6d0")),
		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8fa3c0")),
		StatusWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379")),

		LineNumber:      lipgloss.NewStyle().Foreground(lipgloss.Color("#4a4560")),
		Selection:       lipgloss.NewStyle().Background(lipgloss.Color("#44415a")).Foreground(lipgloss.Color("#ffffff")),
		FrozenSelection: lipgloss.NewStyle().Background(lipgloss.Color("#312e45")),
		MatchHighlight:  lipgloss.NewStyle().Background(lipgloss.Color("#3a4a3a")).Foreground(lipgloss.Color("#d7ffd7")),
		CurrentMatch:    lipgloss.NewStyle().Background(lipgloss.Color("#5FB3B3")).Foreground(lipgloss.Color("#10141f")).Bold(true),
		MarkedMatch:     lipgloss.NewStyle().Background(lipgloss.Color("#E5C07B")).Foreground(lipgloss.Color("#10141f")),

		PromptLabel: lipgloss.NewStyle().Bold(true).Foreground(accent),
		PromptBox:   lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),

		HelpTitle: lipgloss.NewStyle().Bold(true).Foreground(accent),
		HelpBody:  lipgloss.NewStyle().Foreground(lipgloss.Color("#bbb6d0")),

		ListTitle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FB3B3")),
		BatchEnabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379")),
		BatchDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#6b6480")).Strikethrough(true),
		BatchCursor:   lipgloss.NewStyle().Bold(true).Foreground(accent),

		DiffAdd:    lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379")),
		DiffRemove: lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")),
		DiffHunk:   lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
	}
}

func DefaultLight() Theme {
	t := DefaultDark()
	accent := lipgloss.Color("#5a3db8")

	t.Header = lipgloss.NewStyle().Foreground(lipgloss.Color("#2c2838")).Background(lipgloss.Color("#e8e4f4"))
	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.HeaderFlag = lipgloss.NewStyle().Foreground(lipgloss.Color("#9a94ae"))
	t.StatusBar = lipgloss.NewStyle().Foreground(lipgloss.Color("#44405a"))
	t.LineNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("#b4aecb"))
	t.Selection = lipgloss.NewStyle().Background(lipgloss.Color("#cfc8ec")).Foreground(lipgloss.Color("#1f1b2e"))
	t.FrozenSelection = lipgloss.NewStyle().Background(lipgloss.Color("#e3def5"))
	t.MatchHighlight = lipgloss.NewStyle().Background(lipgloss.Color("#d4e8d4")).Foreground(lipgloss.Color("#1e3320"))
	t.HelpBody = lipgloss.NewStyle().Foreground(lipgloss.Color("#44405a"))
	return t
}

// ByName resolves a configured theme name, defaulting by the terminal's
// detected background when the name is unknown or empty.
func ByName(name string, darkBackground bool) Theme {
	switch name {
	case "dark":
		return DefaultDark()
	case "light":
		return DefaultLight()
	default:
		if darkBackground {
			return DefaultDark()
		}
		return DefaultLight()
	}
}
