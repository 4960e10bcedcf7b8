package search

import (
	"sort"
	"strings"
	"unicode"
)

// Result is the outcome of one replace pass.
type Result struct {
	NewText string
	Applied int
}

// Replace substitutes replacement into text for the working subset of
// matches: all of them, only the first when opts.FirstOnly is set, or the
// matches named by subset (indices into matches) when subset is non-nil.
//
// Matches are applied in descending start-offset order so the offsets of
// not-yet-processed matches stay valid while substitutions shrink or grow
// the text. The caller owns persisting NewText.
func Replace(text string, matches []Match, replacement string, opts Options, subset []int) Result {
	working := matches
	switch {
	case opts.FirstOnly && len(matches) > 1:
		working = matches[:1]
	case !opts.FirstOnly && subset != nil:
		working = pick(matches, subset)
	}
	if len(working) == 0 {
		return Result{NewText: text}
	}

	out := text
	applied := 0
	for i := len(working) - 1; i >= 0; i-- {
		m := working[i]
		if m.Start < 0 || m.End > len(out) || m.Start >= m.End {
			continue
		}
		rep := replacement
		if opts.PreserveCase {
			rep = matchCase(m.Text, replacement)
		}
		out = out[:m.Start] + rep + out[m.End:]
		applied++
	}
	return Result{NewText: out, Applied: applied}
}

// pick resolves subset indices to matches, dropping out-of-range and
// duplicate indices and restoring ascending order.
func pick(matches []Match, subset []int) []Match {
	seen := make(map[int]struct{}, len(subset))
	idx := make([]int, 0, len(subset))
	for _, i := range subset {
		if i < 0 || i >= len(matches) {
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		idx = append(idx, i)
	}
	sort.Ints(idx)
	picked := make([]Match, len(idx))
	for j, i := range idx {
		picked[j] = matches[i]
	}
	return picked
}

// matchCase shapes replacement after the casing of the matched original:
// ALL-UPPER uppercases it, all-lower lowercases it, Capitalized capitalizes
// it, any other mix leaves it verbatim.
func matchCase(original, replacement string) string {
	if original == "" || replacement == "" {
		return replacement
	}
	switch {
	case allUpper(original):
		return strings.ToUpper(replacement)
	case allLower(original):
		return strings.ToLower(replacement)
	case capitalized(original):
		runes := []rune(strings.ToLower(replacement))
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	default:
		return replacement
	}
}

func allUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func allLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLower(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func capitalized(s string) bool {
	runes := []rune(s)
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
