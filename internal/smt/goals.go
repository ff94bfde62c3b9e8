package smt

import (
	"fmt"

	"github.com/funvibe/funtc/internal/numtype"
	"github.com/funvibe/funtc/internal/trace"
)

// declareVars declares one solver symbol per distinct variable and
// constrains each to a well-formed value. Symbols are numbered
// sequentially from 0 with an fv/kv prefix by variable flavor; the
// numbering is only there to make trace output diagnosable, it
// carries no meaning.
func declareVars(s *Solver, vs []numtype.TVar) (scopeVars, error) {
	tbl := make(scopeVars, len(vs))
	for i, v := range vs {
		prefix := "kv"
		if v.Free {
			prefix = "fv"
		}
		name := fmt.Sprintf("%s%d", prefix, i)
		if err := s.ack(fun("declare-fun", Atom(name), List{}, Atom("InfNat"))); err != nil {
			return nil, err
		}
		if err := s.assertExpr(fun("cryVar", Atom(name))); err != nil {
			return nil, err
		}
		tbl[v] = Atom(name)
	}
	return tbl, nil
}

// assume asserts one proposition under the assumption wrapper.
func (s *Solver) assume(tbl scopeVars, p numtype.Prop) error {
	return s.assertExpr(fun("cryAssume", encode(tbl, p)))
}

// numericProps flattens conjunctions and keeps the propositions the
// numeric solver can decide.
func numericProps(ps []numtype.Prop) []numtype.Prop {
	var out []numtype.Prop
	for _, p := range ps {
		for _, q := range numtype.SplitAnd(p) {
			if numtype.IsNumeric(q) {
				out = append(out, q)
			}
		}
	}
	return out
}

// splitNumericGoals flattens conjunction goals and partitions the
// result into numeric goals and the rest. Non-numeric goals are never
// shown to the solver; they pass through untouched.
func splitNumericGoals(goals []numtype.Goal) (numeric, rest []numtype.Goal) {
	for _, g := range goals {
		for _, fg := range numtype.SplitGoal(g) {
			if numtype.IsNumeric(fg.Prop) {
				numeric = append(numeric, fg)
			} else {
				rest = append(rest, fg)
			}
		}
	}
	return numeric, rest
}

// ProveImplications tries to discharge each goal under the given
// assumptions. A goal is discharged when its negation is
// unsatisfiable together with the numeric assumptions; anything else
// (satisfiable or unknown) leaves the goal open. The returned list
// holds all goals still open: undischarged numeric goals first, then
// the non-numeric goals, each group in input order.
func ProveImplications(s *Solver, asmps []numtype.Prop, goals []numtype.Goal) ([]numtype.Goal, error) {
	numeric, rest := splitNumericGoals(goals)
	if len(numeric) == 0 {
		return rest, nil
	}
	numAsmps := numericProps(asmps)

	exprs := make([]numtype.Type, 0, len(numAsmps)+len(numeric))
	for _, p := range numAsmps {
		exprs = append(exprs, p)
	}
	for _, g := range numeric {
		exprs = append(exprs, g.Prop)
	}
	vs := numtype.FreeVars(exprs...)

	var open []numtype.Goal
	err := s.logger.Block("proving goals", func() error {
		s.logger.Message("assumptions:")
		s.logger.Log(trace.Props(numAsmps))
		return s.scope(func() error {
			tbl, err := declareVars(s, vs)
			if err != nil {
				return err
			}
			for _, p := range numAsmps {
				if err := s.assume(tbl, p); err != nil {
					return err
				}
			}
			for _, g := range numeric {
				proved, err := s.prove(tbl, g)
				if err != nil {
					return err
				}
				if !proved {
					open = append(open, g)
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return append(open, rest...), nil
}

// prove checks one goal in a nested scope: assert its negation and
// ask for satisfiability. Unsat means the goal follows from the
// assumptions.
func (s *Solver) prove(tbl scopeVars, g numtype.Goal) (bool, error) {
	var res Result
	err := s.logger.Block("goal: "+g.Prop.String(), func() error {
		return s.scope(func() error {
			if err := s.assertExpr(fun("cryProve", encode(tbl, g.Prop))); err != nil {
				return err
			}
			var err error
			res, err = s.CheckSat()
			if err != nil {
				return err
			}
			s.logger.Message("result: %s", res)
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return res == Unsat, nil
}

// Unsolvable reports whether the goals' numeric propositions are
// jointly unsatisfiable, which means the constraint set can never be
// met (e.g. a width required to be both finite and infinite). Goal
// provenance is ignored.
func Unsolvable(s *Solver, goals []numtype.Goal) (bool, error) {
	var props []numtype.Prop
	for _, g := range goals {
		props = append(props, g.Prop)
	}
	numeric := numericProps(props)
	if len(numeric) == 0 {
		return false, nil
	}
	vs := numtype.FreeVars(numeric...)

	var res Result
	err := s.logger.Block("checking solvability", func() error {
		s.logger.Log(trace.Props(numeric))
		return s.scope(func() error {
			tbl, err := declareVars(s, vs)
			if err != nil {
				return err
			}
			for _, p := range numeric {
				if err := s.assume(tbl, p); err != nil {
					return err
				}
			}
			var err2 error
			res, err2 = s.CheckSat()
			if err2 != nil {
				return err2
			}
			s.logger.Message("result: %s", res)
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return res == Unsat, nil
}

// TryGetModel asks for a concrete assignment of the given variables
// satisfying the assumptions, for defaulting ambiguous type-level
// numerals. It returns nil when no model exists or any requested
// variable fails to decode: a partial model is never surfaced as if
// complete. With no variables and a satisfiable assumption set it
// returns the empty (identity) substitution.
func TryGetModel(s *Solver, vars []numtype.TVar, asmps []numtype.Prop) (numtype.Subst, error) {
	numAsmps := numericProps(asmps)

	var su numtype.Subst
	err := s.logger.Block("getting a model", func() error {
		s.logger.Message("assumptions:")
		s.logger.Log(trace.Props(numAsmps))
		return s.scope(func() error {
			tbl, err := declareVars(s, vars)
			if err != nil {
				return err
			}
			for _, p := range numAsmps {
				if err := s.assume(tbl, p); err != nil {
					return err
				}
			}
			res, err := s.CheckSat()
			if err != nil {
				return err
			}
			if res != Sat {
				s.logger.Message("result: %s", res)
				return nil
			}
			su, err = s.readModel(tbl, vars)
			if err != nil {
				return err
			}
			s.logger.Log(trace.Maybe{V: trace.SubstExpr{S: su}, Ok: su != nil})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return su, nil
}
