package trace

import "github.com/funvibe/funtc/internal/numtype"

// Loggable is the closed set of things the trace knows how to render:
// raw text, type expressions, substitutions, goals, optional values,
// and sequences. The set is fixed on purpose; new shapes get a
// wrapper here rather than open extensibility.
type Loggable interface {
	traceLines() []string
}

// Text is a raw trace line.
type Text string

func (t Text) traceLines() []string { return []string{string(t)} }

// TypeExpr renders a numeric type expression.
type TypeExpr struct {
	T numtype.Type
}

func (t TypeExpr) traceLines() []string { return []string{t.T.String()} }

// GoalExpr renders a goal via its embedded proposition; provenance is
// opaque and stays out of the trace.
type GoalExpr struct {
	G numtype.Goal
}

func (g GoalExpr) traceLines() []string { return []string{g.G.Prop.String()} }

// SubstExpr renders a substitution.
type SubstExpr struct {
	S numtype.Subst
}

func (s SubstExpr) traceLines() []string { return []string{s.S.String()} }

// Maybe renders an optional value, with a placeholder for absence.
type Maybe struct {
	V  Loggable
	Ok bool
}

func (m Maybe) traceLines() []string {
	if !m.Ok {
		return []string{"(nothing)"}
	}
	return m.V.traceLines()
}

// Seq renders a sequence element by element, with a placeholder when
// empty.
type Seq []Loggable

func (s Seq) traceLines() []string {
	if len(s) == 0 {
		return []string{"(none)"}
	}
	var out []string
	for _, it := range s {
		out = append(out, it.traceLines()...)
	}
	return out
}

// Goals wraps a goal list for logging.
func Goals(gs []numtype.Goal) Seq {
	out := make(Seq, 0, len(gs))
	for _, g := range gs {
		out = append(out, GoalExpr{G: g})
	}
	return out
}

// Props wraps a proposition list for logging.
func Props(ps []numtype.Prop) Seq {
	out := make(Seq, 0, len(ps))
	for _, p := range ps {
		out = append(out, TypeExpr{T: p})
	}
	return out
}
