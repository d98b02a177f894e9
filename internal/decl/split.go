package decl

import "strings"

// item is one top-level comma-delimited segment of an input string.
type item struct {
	text    string
	pos     int    // 1-based
	problem string // set when bracket nesting inside the item is broken
}

func (it item) trimmed() string {
	return strings.TrimSpace(it.text)
}

// splitItems splits text on commas that sit outside any parentheses or
// angle brackets. Whitespace-only text yields no items; otherwise every
// comma produces a boundary, so "a,,b" and "a," yield empty items.
func splitItems(text string) []item {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		items   []item
		current strings.Builder
		parens  int
		angles  int
		problem string
	)

	flush := func() {
		it := item{text: current.String(), pos: len(items) + 1, problem: problem}
		if it.problem == "" {
			switch {
			case parens > 0:
				it.problem = "unbalanced parentheses"
			case angles > 0:
				it.problem = "unbalanced angle brackets"
			}
		}
		items = append(items, it)
		current.Reset()
		parens, angles, problem = 0, 0, ""
	}

	for _, r := range text {
		switch r {
		case '(':
			parens++
		case ')':
			if parens == 0 {
				problem = "unbalanced parentheses"
			} else {
				parens--
			}
		case '<':
			angles++
		case '>':
			if angles == 0 {
				problem = "unbalanced angle brackets"
			} else {
				angles--
			}
		case ',':
			if parens == 0 && angles == 0 {
				flush()
				continue
			}
		}
		current.WriteRune(r)
	}
	flush()

	return items
}

// matchParen returns the index of the ')' matching the '(' at open, or -1.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
