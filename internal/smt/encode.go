package smt

import (
	"fmt"

	"github.com/funvibe/funtc/internal/numtype"
)

// scopeVars maps type variables to their declared solver symbols. A
// table is built fresh at the start of each goal-engine call and is
// only valid inside the push/pop scope it was built for.
type scopeVars map[numtype.TVar]SExpr

// UnencodableType is panicked when an expression reaches the encoder
// with a shape it has no solver encoding for, or mentioning a
// variable missing from the scope table. Either way the upstream code
// generated an ill-formed proposition, so this is an internal bug,
// not a user-facing error.
type UnencodableType struct {
	T      numtype.Type
	Reason string
}

func (e *UnencodableType) Error() string {
	return fmt.Sprintf("cannot encode type for the solver: %s (%#v): %s", e.T, e.T, e.Reason)
}

// encode translates a numeric type expression into a solver term. The
// switch is exhaustive over the closed variant set; the semantics of
// the emitted functions live entirely in the prelude axioms.
func encode(vars scopeVars, t numtype.Type) SExpr {
	switch t := t.(type) {
	case numtype.TVar:
		e, ok := vars[t]
		if !ok {
			panic(&UnencodableType{T: t, Reason: "variable not declared in this scope"})
		}
		return e
	case numtype.TInf:
		return fun("cryInf")
	case numtype.TNum:
		return fun("cryNat", Atom(t.Value.String()))
	case numtype.TTrue:
		return fun("cryTrue")
	case numtype.TFin:
		return fun("cryFin", encode(vars, t.X))
	case numtype.TWidth:
		return fun("cryWidth", encode(vars, t.X))
	case numtype.TEq:
		return fun("cryEq", encode(vars, t.X), encode(vars, t.Y))
	case numtype.TGeq:
		return fun("cryGeq", encode(vars, t.X), encode(vars, t.Y))
	case numtype.TAnd:
		return fun("cryAnd", encode(vars, t.P), encode(vars, t.Q))
	case numtype.TAdd:
		return fun("cryAdd", encode(vars, t.X), encode(vars, t.Y))
	case numtype.TSub:
		return fun("crySub", encode(vars, t.X), encode(vars, t.Y))
	case numtype.TMul:
		return fun("cryMul", encode(vars, t.X), encode(vars, t.Y))
	case numtype.TExp:
		return fun("cryExp", encode(vars, t.X), encode(vars, t.Y))
	case numtype.TDiv:
		return fun("cryDiv", encode(vars, t.X), encode(vars, t.Y))
	case numtype.TMod:
		return fun("cryMod", encode(vars, t.X), encode(vars, t.Y))
	case numtype.TMin:
		return fun("cryMin", encode(vars, t.X), encode(vars, t.Y))
	case numtype.TMax:
		return fun("cryMax", encode(vars, t.X), encode(vars, t.Y))
	case numtype.TLenFromThen:
		return fun("cryLenFromThen", encode(vars, t.X), encode(vars, t.Y), encode(vars, t.W))
	case numtype.TLenFromThenTo:
		return fun("cryLenFromThenTo", encode(vars, t.X), encode(vars, t.Y), encode(vars, t.Z))
	case numtype.TErr:
		// The message is diagnostic payload; the solver only needs the tag.
		return fun("cryErr")
	case numtype.TErrProp:
		return fun("cryErrProp")
	}
	panic(&UnencodableType{T: t, Reason: "no solver encoding for this shape"})
}
