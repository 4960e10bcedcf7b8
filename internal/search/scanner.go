// Package search implements the find side (pattern scanning with match
// offsets and context windows) and the replace side (offset-safe
// substitution, case preservation, batch rules) over a plain text buffer.
package search

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"

	"blockpad/internal/errdef"
)

// DefaultContextWindow is the number of grapheme clusters kept on each side
// of a match in its context snippet.
const DefaultContextWindow = 24

// LineRange restricts matches to 1-indexed inclusive line numbers.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Options are the independently combinable flags for one scan or replace
// pass. The zero value means: case-insensitive literal search over the whole
// buffer, replace everything, replacement used verbatim.
type Options struct {
	CaseSensitive bool       `json:"caseSensitive"`
	WholeWord     bool       `json:"wholeWord"`
	Regex         bool       `json:"regex"`
	FirstOnly     bool       `json:"firstOnly"`
	PreserveCase  bool       `json:"preserveCase"`
	LineRange     *LineRange `json:"lineRange,omitempty"`
	ContextFilter string     `json:"contextFilter,omitempty"`
	ContextWindow int        `json:"contextWindow,omitempty"`
}

func (o Options) window() int {
	if o.ContextWindow > 0 {
		return o.ContextWindow
	}
	return DefaultContextWindow
}

// Match is one occurrence of the find expression. Offsets are byte offsets
// into the full text with 0 <= Start < End <= len(text); Line is 1-indexed.
type Match struct {
	Start   int
	End     int
	Text    string
	Line    int
	Context string
}

// Scan returns every non-overlapping occurrence of find in text, sorted
// ascending by start offset. It is a pure function of its inputs: identical
// arguments always yield an identical list. An invalid pattern returns an
// empty list and a CodePattern error; it is never fatal.
func Scan(text, find string, opts Options) ([]Match, error) {
	if find == "" {
		return nil, nil
	}
	re, err := compilePattern(find, opts)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodePattern, err, "compile %q", find)
	}

	indices := re.FindAllStringIndex(text, -1)
	if len(indices) == 0 {
		return nil, nil
	}

	matches := make([]Match, 0, len(indices))
	line := 1
	counted := 0
	for _, idx := range indices {
		start, end := idx[0], idx[1]
		if end <= start {
			// Zero-width match. The regexp engine has already advanced its
			// cursor past it; recording it would violate Start < End.
			continue
		}
		line += strings.Count(text[counted:start], "\n")
		counted = start
		matches = append(matches, Match{
			Start:   start,
			End:     end,
			Text:    text[start:end],
			Line:    line,
			Context: contextWindow(text, start, end, opts.window()),
		})
	}

	matches = filterByLineRange(matches, opts.LineRange)
	return filterByContext(matches, opts.ContextFilter)
}

// compilePattern builds the effective expression. Literal input has its
// metacharacters escaped; whole-word wraps in \b assertions, except for regex
// input that already carries an explicit leading or trailing anchor.
func compilePattern(find string, opts Options) (*regexp.Regexp, error) {
	expr := find
	if opts.Regex {
		if opts.WholeWord && !hasExplicitAnchor(find) {
			expr = `\b(?:` + expr + `)\b`
		}
	} else {
		expr = regexp.QuoteMeta(find)
		if opts.WholeWord {
			expr = `\b` + expr + `\b`
		}
	}
	if !opts.CaseSensitive {
		expr = `(?i)` + expr
	}
	return regexp.Compile(expr)
}

func hasExplicitAnchor(expr string) bool {
	for _, p := range []string{`\b`, `\B`, `^`} {
		if strings.HasPrefix(expr, p) {
			return true
		}
	}
	for _, s := range []string{`\b`, `\B`, `$`} {
		if strings.HasSuffix(expr, s) {
			return true
		}
	}
	return false
}

// contextWindow cuts a snippet of window grapheme clusters on each side of
// [start,end), clipped at line boundaries and marked with an ellipsis where
// clipped. Counting clusters keeps the window width stable on non-ASCII text
// and never splits a cluster.
func contextWindow(text string, start, end, window int) string {
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}

	ctxStart := lineStart + backClusters(text[lineStart:start], window)
	ctxEnd := end + forwardClusters(text[end:lineEnd], window)

	var b strings.Builder
	if ctxStart > lineStart {
		b.WriteString("…")
	}
	b.WriteString(text[ctxStart:ctxEnd])
	if ctxEnd < lineEnd {
		b.WriteString("…")
	}
	return b.String()
}

// backClusters returns the byte offset within seg where its last window
// grapheme clusters begin, or 0 when seg holds no more than window clusters.
func backClusters(seg string, window int) int {
	starts := make([]int, 0, len(seg))
	pos := 0
	state := -1
	rest := seg
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		starts = append(starts, pos)
		pos += len(cluster)
	}
	if len(starts) <= window {
		return 0
	}
	return starts[len(starts)-window]
}

// forwardClusters returns the byte length of the first window grapheme
// clusters of seg.
func forwardClusters(seg string, window int) int {
	pos := 0
	state := -1
	rest := seg
	for i := 0; i < window && len(rest) > 0; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		pos += len(cluster)
	}
	return pos
}

func filterByLineRange(matches []Match, lr *LineRange) []Match {
	if lr == nil || len(matches) == 0 {
		return matches
	}
	kept := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Line >= lr.Start && m.Line <= lr.End {
			kept = append(kept, m)
		}
	}
	return kept
}

// filterByContext drops matches whose context window does not match the
// filter pattern. The filter is always case-insensitive.
func filterByContext(matches []Match, filter string) ([]Match, error) {
	if filter == "" || len(matches) == 0 {
		return matches, nil
	}
	re, err := regexp.Compile(`(?i)` + filter)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodePattern, err, "compile context filter %q", filter)
	}
	kept := make([]Match, 0, len(matches))
	for _, m := range matches {
		if re.MatchString(m.Context) {
			kept = append(kept, m)
		}
	}
	return kept, nil
}
