// Package smt is the bridge between type-level numeric constraints
// and an external SMT solver process. It owns the session lifecycle,
// loads the background axioms that give the numeric domain its
// meaning inside the solver, encodes type expressions into solver
// terms, and runs the three deciding operations the type checker
// needs: proving implication goals, detecting unsolvable constraint
// sets, and extracting models for defaulting.
package smt

import (
	"fmt"
	"os"

	"github.com/funvibe/funtc/internal/config"
	"github.com/funvibe/funtc/internal/trace"
	"github.com/google/uuid"
)

// Solver owns exactly one external solver process and one trace
// logger. Create with New, release with Close; a Solver is invalid
// after Close. All interaction is synchronous and sequential, so a
// Solver must not be shared between goroutines; parallel checking
// tasks each get their own instance.
type Solver struct {
	proc   driver
	logger *trace.Logger
	closed bool
}

// Result is the solver's answer to a satisfiability query.
type Result int

const (
	Sat Result = iota
	Unsat
	Unknown
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// New starts a solver session: builds the trace logger, launches the
// external process, scopes declarations to push/pop depth, and loads
// the numeric-domain prelude. The caller must arrange for Close to
// run on every exit path, normally with defer.
func New(cfg *config.Config) (*Solver, error) {
	logger := trace.Nop()
	if cfg.Verbosity > 0 {
		logger = trace.New(os.Stderr, cfg.Verbosity)
		logger.SetTag(uuid.NewString()[:8])
	}

	// The process only gets the logger at high verbosity; at level 1
	// the trace carries engine activity, not wire traffic.
	procLogger := trace.Nop()
	if cfg.Verbosity > 1 {
		procLogger = logger
	}

	proc, err := startProcess(cfg.Solver.Path, cfg.Solver.Args, procLogger)
	if err != nil {
		return nil, err
	}
	s := &Solver{proc: proc, logger: logger}

	// Acknowledge every command so the response stream stays in sync,
	// and keep declarations scoped to their push level: an unbalanced
	// or global declaration would corrupt every later query.
	if err := s.setOption(":print-success", "true"); err != nil {
		_ = proc.Stop()
		return nil, err
	}
	if err := s.setOption(":global-decls", "false"); err != nil {
		_ = proc.Stop()
		return nil, err
	}

	if err := LoadPrelude(s, cfg.PreludeSearchDirs()); err != nil {
		_ = proc.Stop()
		return nil, err
	}

	s.logger.Message("solver session ready (%s)", cfg.Solver.Path)
	return s, nil
}

// Close stops the external process exactly once. Stop failures are
// reported on the trace as warnings, never as errors: teardown must
// not discard a result that was already produced.
func (s *Solver) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if err := s.proc.Stop(); err != nil {
		s.logger.Message("warning: solver shutdown: %v", err)
	}
}

// Logger exposes the session's trace logger.
func (s *Solver) Logger() *trace.Logger { return s.logger }

// Push opens a solver scope. Every Push must be balanced by exactly
// one Pop on every exit path; prefer scope, which guarantees it.
func (s *Solver) Push() error { return s.ack(fun("push", Atom("1"))) }

// Pop reverts the most recently pushed scope.
func (s *Solver) Pop() error { return s.ack(fun("pop", Atom("1"))) }

// scope runs fn between Push and Pop. The Pop runs on every exit
// path, including errors and panics from fn; its own failure
// surfaces only when fn succeeded.
func (s *Solver) scope(fn func() error) (err error) {
	if err = s.Push(); err != nil {
		return err
	}
	defer func() {
		if perr := s.Pop(); perr != nil && err == nil {
			err = perr
		}
	}()
	return fn()
}

// CheckSat issues a satisfiability query over the current assertion
// set.
func (s *Solver) CheckSat() (Result, error) {
	resp, err := s.command(fun("check-sat"))
	if err != nil {
		return Unknown, err
	}
	switch resp {
	case Atom("sat"):
		return Sat, nil
	case Atom("unsat"):
		return Unsat, nil
	case Atom("unknown"):
		return Unknown, nil
	}
	return Unknown, fmt.Errorf("malformed check-sat response: %s", resp)
}

func (s *Solver) command(e SExpr) (SExpr, error) {
	if s.closed {
		return nil, fmt.Errorf("solver session already closed")
	}
	return s.proc.Command(e)
}

// ack runs a command that answers with a bare acknowledgement.
func (s *Solver) ack(e SExpr) error {
	resp, err := s.command(e)
	if err != nil {
		return err
	}
	if resp != Atom("success") {
		return fmt.Errorf("solver did not acknowledge %s: %s", e, resp)
	}
	return nil
}

func (s *Solver) setOption(name, value string) error {
	return s.ack(fun("set-option", Atom(name), Atom(value)))
}

func (s *Solver) assertExpr(e SExpr) error {
	return s.ack(fun("assert", e))
}
