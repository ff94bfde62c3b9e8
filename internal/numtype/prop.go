package numtype

// Prop is a Type restricted semantically to boolean-valued numeric
// facts: finiteness, equality, comparison, conjunction, truth.
type Prop = Type

// Goal is a proposition the checker wants proved, plus opaque
// provenance used by the caller for error reporting. The solver layer
// never looks at Origin.
type Goal struct {
	Prop   Prop
	Origin any
}

// SplitAnd flattens a conjunction tree into its leaves. TTrue leaves
// are dropped. Non-conjunction propositions come back as a singleton,
// so the result is the same set regardless of the nesting shape of
// the input.
func SplitAnd(p Prop) []Prop {
	var out []Prop
	splitAnd(p, &out)
	return out
}

func splitAnd(p Prop, out *[]Prop) {
	switch p := p.(type) {
	case TAnd:
		splitAnd(p.P, out)
		splitAnd(p.Q, out)
	case TTrue:
		// contributes nothing
	default:
		*out = append(*out, p)
	}
}

// SplitGoal flattens a goal whose proposition is a conjunction into
// one goal per conjunct, all sharing the original provenance.
func SplitGoal(g Goal) []Goal {
	ps := SplitAnd(g.Prop)
	out := make([]Goal, 0, len(ps))
	for _, p := range ps {
		out = append(out, Goal{Prop: p, Origin: g.Origin})
	}
	return out
}

// IsNumeric reports whether a proposition is one the numeric solver
// is sound to decide directly: finiteness, equality, or comparison.
// Conjunctions must be flattened with SplitAnd before this check.
func IsNumeric(p Prop) bool {
	switch p.(type) {
	case TFin, TEq, TGeq:
		return true
	}
	return false
}
