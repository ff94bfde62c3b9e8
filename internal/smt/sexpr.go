package smt

import (
	"fmt"
	"strings"
)

// SExpr is an S-expression, the common currency of this package: the
// encoder produces them, the process driver sends and receives them,
// and the prelude loader parses the axiom file into them. The variant
// set is closed: an expression is either an Atom or a List.
type SExpr interface {
	String() string
	sexpr()
}

// Atom is a bare token: a symbol, keyword, numeral, or quoted string.
type Atom string

func (a Atom) sexpr()         {}
func (a Atom) String() string { return string(a) }

// List is a parenthesized sequence of expressions.
type List []SExpr

func (l List) sexpr() {}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// fun builds the application of a named solver function. With no
// arguments it yields a bare symbol, matching how SMT-LIB refers to
// nullary definitions.
func fun(name string, args ...SExpr) SExpr {
	if len(args) == 0 {
		return Atom(name)
	}
	l := make(List, 0, len(args)+1)
	l = append(l, Atom(name))
	return append(l, args...)
}

// parseSExpr parses one expression from the front of s, returning the
// expression and the unconsumed remainder. Leading whitespace is
// skipped. Quoted strings are kept as single atoms, quotes included.
func parseSExpr(s string) (SExpr, string, error) {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" {
		return nil, "", fmt.Errorf("unexpected end of input")
	}

	switch s[0] {
	case '(':
		rest := s[1:]
		var items List
		for {
			rest = strings.TrimLeft(rest, " \t\r\n")
			if rest == "" {
				return nil, "", fmt.Errorf("unterminated list")
			}
			if rest[0] == ')' {
				return items, rest[1:], nil
			}
			item, r, err := parseSExpr(rest)
			if err != nil {
				return nil, "", err
			}
			items = append(items, item)
			rest = r
		}
	case ')':
		return nil, "", fmt.Errorf("unexpected %q", ')')
	case '"':
		end := 1
		for end < len(s) {
			if s[end] == '"' {
				// SMT-LIB escapes a quote by doubling it
				if end+1 < len(s) && s[end+1] == '"' {
					end += 2
					continue
				}
				return Atom(s[:end+1]), s[end+1:], nil
			}
			end++
		}
		return nil, "", fmt.Errorf("unterminated string literal")
	default:
		end := strings.IndexAny(s, " \t\r\n()\"")
		if end == -1 {
			end = len(s)
		}
		return Atom(s[:end]), s[end:], nil
	}
}

// stripComments removes line comments: everything from a semicolon to
// the end of its line, on every line.
func stripComments(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if idx := strings.IndexByte(line, ';'); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}
