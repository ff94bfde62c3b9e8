package smt

import (
	"math/big"

	"github.com/funvibe/funtc/internal/numtype"
)

// readModel retrieves a concrete value for every requested variable
// from the solver's model. All-or-nothing: the first variable whose
// value does not decode makes the whole model nil, because a partial
// substitution is useless to the caller and dangerous to surface as
// if complete. Transport failures are returned as errors.
func (s *Solver) readModel(tbl scopeVars, vars []numtype.TVar) (numtype.Subst, error) {
	su := make(numtype.Subst, len(vars))
	for _, v := range vars {
		sym := tbl[v]
		resp, err := s.command(fun("get-value", List{sym}))
		if err != nil {
			return nil, err
		}
		val, ok := decodeValue(resp, sym)
		if !ok {
			s.logger.Message("model value for %s did not decode: %s", v, resp)
			return nil, nil
		}
		su[v] = val
	}
	return su, nil
}

// decodeValue extracts the value bound to sym from a get-value
// response of the form ((sym (mk-infnat n isFin isErr))) and decodes
// it to a finite natural or infinity. Any other shape fails the
// decode: error flag set, unparseable or negative numeral, or an
// unexpected constructor.
func decodeValue(resp SExpr, sym SExpr) (numtype.Type, bool) {
	outer, ok := resp.(List)
	if !ok || len(outer) != 1 {
		return nil, false
	}
	pair, ok := outer[0].(List)
	if !ok || len(pair) != 2 || pair[0] != sym {
		return nil, false
	}

	val, ok := pair[1].(List)
	if !ok || len(val) != 4 || val[0] != Atom("mk-infnat") {
		return nil, false
	}
	isFin, ok := val[2].(Atom)
	if !ok {
		return nil, false
	}
	if isErr, ok := val[3].(Atom); !ok || isErr != "false" {
		return nil, false
	}

	switch isFin {
	case "false":
		return numtype.TInf{}, true
	case "true":
		num, ok := val[1].(Atom)
		if !ok {
			return nil, false
		}
		n, parsed := new(big.Int).SetString(string(num), 10)
		if !parsed || n.Sign() < 0 {
			return nil, false
		}
		return numtype.TNum{Value: n}, true
	}
	return nil, false
}
