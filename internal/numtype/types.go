package numtype

import (
	"fmt"
	"math/big"
	"strings"
)

// Type is the interface for type-level numeric expressions: naturals
// extended with infinity, arithmetic over them, and the boolean facts
// (propositions) the type checker wants decided.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TVar represents a type variable. Free variables are unification
// metavariables introduced during inference; the rest are rigid
// (kind-bound) variables from signatures. TVar is comparable and is
// used as a map key in Subst and in the per-scope declaration table.
type TVar struct {
	Name string
	Free bool
}

func (t TVar) String() string { return t.Name }

// TInf is the infinity constant.
type TInf struct{}

func (t TInf) String() string { return "inf" }

// TNum is a finite natural literal. Value must be non-negative;
// widths and lengths can exceed the machine word, so it is a big.Int.
type TNum struct {
	Value *big.Int
}

func (t TNum) String() string { return t.Value.String() }

// Nat builds a finite natural literal from a machine integer.
func Nat(n uint64) TNum {
	return TNum{Value: new(big.Int).SetUint64(n)}
}

// TFin asserts that its argument is a finite natural.
type TFin struct {
	X Type
}

func (t TFin) String() string { return fmt.Sprintf("fin %s", t.X) }

// TEq is equality between two numeric expressions.
type TEq struct {
	X, Y Type
}

func (t TEq) String() string { return fmt.Sprintf("(%s == %s)", t.X, t.Y) }

// TGeq is the "greater or equal" comparison.
type TGeq struct {
	X, Y Type
}

func (t TGeq) String() string { return fmt.Sprintf("(%s >= %s)", t.X, t.Y) }

// TAnd is logical conjunction of two propositions.
type TAnd struct {
	P, Q Type
}

func (t TAnd) String() string { return fmt.Sprintf("(%s, %s)", t.P, t.Q) }

// TTrue is the trivially true proposition.
type TTrue struct{}

func (t TTrue) String() string { return "True" }

// Arithmetic operators. Subtraction and division are partial on
// naturals; the prelude axioms map the undefined cases to the error
// element, so the Go side keeps them as plain binary nodes.

type TAdd struct{ X, Y Type }

func (t TAdd) String() string { return fmt.Sprintf("(%s + %s)", t.X, t.Y) }

type TSub struct{ X, Y Type }

func (t TSub) String() string { return fmt.Sprintf("(%s - %s)", t.X, t.Y) }

type TMul struct{ X, Y Type }

func (t TMul) String() string { return fmt.Sprintf("(%s * %s)", t.X, t.Y) }

type TExp struct{ X, Y Type }

func (t TExp) String() string { return fmt.Sprintf("(%s ^^ %s)", t.X, t.Y) }

type TDiv struct{ X, Y Type }

func (t TDiv) String() string { return fmt.Sprintf("(%s / %s)", t.X, t.Y) }

type TMod struct{ X, Y Type }

func (t TMod) String() string { return fmt.Sprintf("(%s %% %s)", t.X, t.Y) }

type TMin struct{ X, Y Type }

func (t TMin) String() string { return fmt.Sprintf("min(%s, %s)", t.X, t.Y) }

type TMax struct{ X, Y Type }

func (t TMax) String() string { return fmt.Sprintf("max(%s, %s)", t.X, t.Y) }

// TWidth is the bit-width operator: the number of bits needed to
// represent its argument.
type TWidth struct {
	X Type
}

func (t TWidth) String() string { return fmt.Sprintf("width %s", t.X) }

// TLenFromThen is the length of the enumeration [x, y ...] at width W.
type TLenFromThen struct {
	X, Y, W Type
}

func (t TLenFromThen) String() string {
	return fmt.Sprintf("lengthFromThen %s %s %s", t.X, t.Y, t.W)
}

// TLenFromThenTo is the length of the enumeration [x, y .. z].
type TLenFromThenTo struct {
	X, Y, Z Type
}

func (t TLenFromThenTo) String() string {
	return fmt.Sprintf("lengthFromThenTo %s %s %s", t.X, t.Y, t.Z)
}

// TErr is a numeric-kinded error marker produced upstream when a
// malformed type was recovered from. The message is for diagnostics
// only; the solver sees just the error tag.
type TErr struct {
	Msg string
}

func (t TErr) String() string { return fmt.Sprintf("[error: %s]", t.Msg) }

// TErrProp is the proposition-kinded error marker.
type TErrProp struct {
	Msg string
}

func (t TErrProp) String() string { return fmt.Sprintf("[error prop: %s]", t.Msg) }

// Subst is a mapping from type variables to types. Model extraction
// produces substitutions whose range is ground (TNum or TInf), so
// application needs no occurs or cycle handling.
type Subst map[TVar]Type

// Compose combines two substitutions: applying the result is
// equivalent to applying s1, then s2.
func (s1 Subst) Compose(s2 Subst) Subst {
	out := Subst{}
	for k, v := range s2 {
		out[k] = v
	}
	for k, v := range s1 {
		out[k] = v.Apply(s2)
	}
	return out
}

func (s Subst) String() string {
	if len(s) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(s))
	for _, v := range SortedVars(s) {
		parts = append(parts, fmt.Sprintf("%s := %s", v, s[v]))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
