package smt

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/funtc/internal/config"
)

// builtinPrelude is the axiom file baked into the binary. An
// on-disk copy found in a search directory takes precedence, which is
// how downstream packagers ship patched axioms without rebuilding.
//
//go:embed FunTC.z3
var builtinPrelude string

// BadPrelude is panicked when the axiom text fails to parse. The
// prelude is a build-time artifact, not user input: a parse failure
// always means a packaging or versioning bug, so it is fatal.
type BadPrelude struct {
	Origin string
	Rest   string
}

func (b *BadPrelude) Error() string {
	rest := b.Rest
	if len(rest) > 120 {
		rest = rest[:120] + "..."
	}
	return fmt.Sprintf("malformed solver prelude %s, remaining text: %q", b.Origin, rest)
}

// PreludeText resolves the axiom text the session would load:
// directories are searched in order for the axiom file, the embedded
// copy is the fallback. The second result names the source.
func PreludeText(dirs []string) (string, string) {
	for _, dir := range dirs {
		path := filepath.Join(dir, config.PreludeFileName)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return string(data), path
	}
	return builtinPrelude, "(built-in)"
}

// LoadPrelude locates the numeric-domain axioms and submits them to
// the solver, command by command. Called exactly once per session,
// from New.
func LoadPrelude(s *Solver, dirs []string) error {
	text, origin := PreludeText(dirs)
	s.logger.Message("loading prelude from %s", origin)
	return loadPreludeText(s, text, origin)
}

// loadPreludeText strips comments, then repeatedly parses one
// expression and submits it until only whitespace remains. Any parse
// failure on non-whitespace residue is fatal.
func loadPreludeText(s *Solver, text, origin string) error {
	rest := stripComments(text)
	for {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return nil
		}
		e, r, err := parseSExpr(rest)
		if err != nil {
			panic(&BadPrelude{Origin: origin, Rest: rest})
		}
		if err := s.ack(e); err != nil {
			return fmt.Errorf("loading prelude %s: %w", origin, err)
		}
		rest = r
	}
}
