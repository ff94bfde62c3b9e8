package numtype

import "sort"

// applyType rebuilds a type under a substitution. The switch is
// exhaustive over the closed variant set; a shape missing here would
// also be missing in the solver encoding, and the encoder treats that
// as an internal error.
func applyType(t Type, s Subst) Type {
	switch t := t.(type) {
	case TVar:
		if r, ok := s[t]; ok {
			return r
		}
		return t
	case TInf, TNum, TTrue, TErr, TErrProp:
		return t
	case TFin:
		return TFin{X: t.X.Apply(s)}
	case TWidth:
		return TWidth{X: t.X.Apply(s)}
	case TEq:
		return TEq{X: t.X.Apply(s), Y: t.Y.Apply(s)}
	case TGeq:
		return TGeq{X: t.X.Apply(s), Y: t.Y.Apply(s)}
	case TAnd:
		return TAnd{P: t.P.Apply(s), Q: t.Q.Apply(s)}
	case TAdd:
		return TAdd{X: t.X.Apply(s), Y: t.Y.Apply(s)}
	case TSub:
		return TSub{X: t.X.Apply(s), Y: t.Y.Apply(s)}
	case TMul:
		return TMul{X: t.X.Apply(s), Y: t.Y.Apply(s)}
	case TExp:
		return TExp{X: t.X.Apply(s), Y: t.Y.Apply(s)}
	case TDiv:
		return TDiv{X: t.X.Apply(s), Y: t.Y.Apply(s)}
	case TMod:
		return TMod{X: t.X.Apply(s), Y: t.Y.Apply(s)}
	case TMin:
		return TMin{X: t.X.Apply(s), Y: t.Y.Apply(s)}
	case TMax:
		return TMax{X: t.X.Apply(s), Y: t.Y.Apply(s)}
	case TLenFromThen:
		return TLenFromThen{X: t.X.Apply(s), Y: t.Y.Apply(s), W: t.W.Apply(s)}
	case TLenFromThenTo:
		return TLenFromThenTo{X: t.X.Apply(s), Y: t.Y.Apply(s), Z: t.Z.Apply(s)}
	}
	return t
}

// freeTypeVars collects the free type variables of a type in first
// occurrence order, without duplicates.
func freeTypeVars(t Type) []TVar {
	var out []TVar
	collectVars(t, &out)
	return uniqueTVars(out)
}

func collectVars(t Type, out *[]TVar) {
	switch t := t.(type) {
	case TVar:
		*out = append(*out, t)
	case TFin:
		collectVars(t.X, out)
	case TWidth:
		collectVars(t.X, out)
	case TEq:
		collectVars(t.X, out)
		collectVars(t.Y, out)
	case TGeq:
		collectVars(t.X, out)
		collectVars(t.Y, out)
	case TAnd:
		collectVars(t.P, out)
		collectVars(t.Q, out)
	case TAdd:
		collectVars(t.X, out)
		collectVars(t.Y, out)
	case TSub:
		collectVars(t.X, out)
		collectVars(t.Y, out)
	case TMul:
		collectVars(t.X, out)
		collectVars(t.Y, out)
	case TExp:
		collectVars(t.X, out)
		collectVars(t.Y, out)
	case TDiv:
		collectVars(t.X, out)
		collectVars(t.Y, out)
	case TMod:
		collectVars(t.X, out)
		collectVars(t.Y, out)
	case TMin:
		collectVars(t.X, out)
		collectVars(t.Y, out)
	case TMax:
		collectVars(t.X, out)
		collectVars(t.Y, out)
	case TLenFromThen:
		collectVars(t.X, out)
		collectVars(t.Y, out)
		collectVars(t.W, out)
	case TLenFromThenTo:
		collectVars(t.X, out)
		collectVars(t.Y, out)
		collectVars(t.Z, out)
	}
}

func uniqueTVars(vars []TVar) []TVar {
	unique := []TVar{}
	seen := map[TVar]bool{}
	for _, v := range vars {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}

// FreeVars collects the distinct free variables of a batch of types,
// in first occurrence order across the whole batch.
func FreeVars(ts ...Type) []TVar {
	var all []TVar
	for _, t := range ts {
		collectVars(t, &all)
	}
	return uniqueTVars(all)
}

// SortedVars returns the domain of a substitution in a stable order,
// free variables before rigid ones, alphabetical within each group.
func SortedVars(s Subst) []TVar {
	vars := make([]TVar, 0, len(s))
	for v := range s {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool {
		if vars[i].Free != vars[j].Free {
			return vars[i].Free
		}
		return vars[i].Name < vars[j].Name
	})
	return vars
}

func (t TVar) Apply(s Subst) Type { return applyType(t, s) }
func (t TInf) Apply(s Subst) Type { return applyType(t, s) }
func (t TNum) Apply(s Subst) Type { return applyType(t, s) }
func (t TFin) Apply(s Subst) Type { return applyType(t, s) }
func (t TEq) Apply(s Subst) Type { return applyType(t, s) }
func (t TGeq) Apply(s Subst) Type { return applyType(t, s) }
func (t TAnd) Apply(s Subst) Type { return applyType(t, s) }
func (t TTrue) Apply(s Subst) Type { return applyType(t, s) }
func (t TAdd) Apply(s Subst) Type { return applyType(t, s) }
func (t TSub) Apply(s Subst) Type { return applyType(t, s) }
func (t TMul) Apply(s Subst) Type { return applyType(t, s) }
func (t TExp) Apply(s Subst) Type { return applyType(t, s) }
func (t TDiv) Apply(s Subst) Type { return applyType(t, s) }
func (t TMod) Apply(s Subst) Type { return applyType(t, s) }
func (t TMin) Apply(s Subst) Type { return applyType(t, s) }
func (t TMax) Apply(s Subst) Type { return applyType(t, s) }
func (t TWidth) Apply(s Subst) Type { return applyType(t, s) }
func (t TLenFromThen) Apply(s Subst) Type { return applyType(t, s) }
func (t TLenFromThenTo) Apply(s Subst) Type { return applyType(t, s) }
func (t TErr) Apply(s Subst) Type { return applyType(t, s) }
func (t TErrProp) Apply(s Subst) Type { return applyType(t, s) }

func (t TVar) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TInf) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TNum) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TFin) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TEq) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TGeq) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TAnd) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TTrue) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TAdd) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TSub) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TMul) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TExp) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TDiv) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TMod) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TMin) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TMax) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TWidth) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TLenFromThen) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TLenFromThenTo) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TErr) FreeTypeVariables() []TVar { return freeTypeVars(t) }
func (t TErrProp) FreeTypeVariables() []TVar { return freeTypeVars(t) }
