package smt

import (
	"fmt"
	"strings"

	"github.com/funvibe/funtc/internal/trace"
)

// fakeDriver is an instrumented in-memory stand-in for the solver
// process. It acknowledges everything, answers check-sat from a
// script, serves get-value from a table, and can be told to fail on a
// given command so error paths can be exercised.
type fakeDriver struct {
	pushes   int
	pops     int
	checkSat []string          // successive check-sat answers; "unknown" when exhausted
	values   map[string]string // symbol -> value rendering for get-value
	failOn   string            // command head that returns an error
	log      []string
	stopped  bool
	stopErr  error
}

func (d *fakeDriver) Command(e SExpr) (SExpr, error) {
	d.log = append(d.log, e.String())

	head := ""
	switch e := e.(type) {
	case Atom:
		head = string(e)
	case List:
		if len(e) > 0 {
			if a, ok := e[0].(Atom); ok {
				head = string(a)
			}
		}
	}

	if d.failOn != "" && head == d.failOn {
		return nil, fmt.Errorf("injected failure on %s", head)
	}

	switch head {
	case "push":
		d.pushes++
	case "pop":
		d.pops++
	case "check-sat":
		answer := "unknown"
		if len(d.checkSat) > 0 {
			answer = d.checkSat[0]
			d.checkSat = d.checkSat[1:]
		}
		return Atom(answer), nil
	case "get-value":
		sym := e.(List)[1].(List)[0].String()
		val, ok := d.values[sym]
		if !ok {
			return nil, fmt.Errorf("no scripted value for %s", sym)
		}
		resp, _, err := parseSExpr(fmt.Sprintf("((%s %s))", sym, val))
		if err != nil {
			return nil, err
		}
		return resp, nil
	}
	return Atom("success"), nil
}

func (d *fakeDriver) Stop() error {
	d.stopped = true
	return d.stopErr
}

func (d *fakeDriver) commandCount(head string) int {
	n := 0
	for _, line := range d.log {
		if strings.HasPrefix(line, "("+head+" ") || line == head || strings.HasPrefix(line, "("+head+")") {
			n++
		}
	}
	return n
}

// newFakeSolver wires a Solver directly to a fake driver, skipping
// process startup and prelude loading.
func newFakeSolver(d *fakeDriver) *Solver {
	return &Solver{proc: d, logger: trace.Nop()}
}
