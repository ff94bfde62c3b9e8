package smt

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/funvibe/funtc/internal/trace"
)

// driver is the solver transport: one command in, one response out,
// strictly sequential. It is an interface so the goal-engine tests
// can substitute an instrumented fake for the external process.
type driver interface {
	Command(e SExpr) (SExpr, error)
	Stop() error
}

// process runs the external solver with stdin/stdout pipes. Every
// command is answered (":print-success" is set right after start), so
// the response stream can never desynchronise from the commands.
type process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    *bufio.Reader
	logger *trace.Logger
}

// stopTimeout bounds how long Stop waits for the solver to exit after
// (exit) before killing it.
const stopTimeout = 2 * time.Second

func startProcess(path string, args []string, logger *trace.Logger) (*process, error) {
	cmd := exec.Command(path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("solver stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("solver stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting solver %s: %w", path, err)
	}
	return &process{
		cmd:    cmd,
		stdin:  stdin,
		out:    bufio.NewReader(stdout),
		logger: logger,
	}, nil
}

// Command sends one command and reads its response. A solver-side
// (error "...") response is turned into a Go error.
func (p *process) Command(e SExpr) (SExpr, error) {
	line := e.String()
	p.logger.Raw("->", line)
	if _, err := io.WriteString(p.stdin, line+"\n"); err != nil {
		return nil, fmt.Errorf("writing to solver: %w", err)
	}

	resp, err := p.readSExpr()
	if err != nil {
		return nil, fmt.Errorf("reading solver response to %s: %w", line, err)
	}
	p.logger.Raw("<-", resp.String())

	if l, ok := resp.(List); ok && len(l) == 2 {
		if a, ok := l[0].(Atom); ok && a == "error" {
			return nil, fmt.Errorf("solver error: %s", l[1])
		}
	}
	return resp, nil
}

// Stop asks the solver to exit and reclaims the process, killing it
// if it ignores the request.
func (p *process) Stop() error {
	_, werr := io.WriteString(p.stdin, "(exit)\n")
	cerr := p.stdin.Close()

	done := make(chan error, 1)
	go func() { done <- p.cmd.Wait() }()

	var err error
	select {
	case err = <-done:
	case <-time.After(stopTimeout):
		_ = p.cmd.Process.Kill()
		err = <-done
	}

	if werr != nil {
		return fmt.Errorf("asking solver to exit: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("closing solver stdin: %w", cerr)
	}
	if err != nil {
		return fmt.Errorf("waiting for solver exit: %w", err)
	}
	return nil
}

// readSExpr reads exactly one S-expression from the solver's stdout,
// tracking paren depth and string literals across lines.
func (p *process) readSExpr() (SExpr, error) {
	var buf strings.Builder
	depth := 0
	inString := false

	for {
		b, err := p.out.ReadByte()
		if err != nil {
			return nil, err
		}
		c := b

		if inString {
			buf.WriteByte(c)
			if c == '"' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			buf.WriteByte(c)
		case '(':
			depth++
			buf.WriteByte(c)
		case ')':
			depth--
			buf.WriteByte(c)
			if depth == 0 {
				e, _, perr := parseSExpr(buf.String())
				return e, perr
			}
		case ' ', '\t', '\r', '\n':
			if depth > 0 {
				buf.WriteByte(c)
			} else if buf.Len() > 0 {
				// complete bare atom (e.g. "sat", "success")
				e, _, perr := parseSExpr(buf.String())
				return e, perr
			}
		default:
			buf.WriteByte(c)
		}
	}
}
