package numtype

import "testing"

func TestSplitAnd(t *testing.T) {
	x := TVar{Name: "x", Free: true}
	a := TFin{X: x}
	b := TGeq{X: x, Y: Nat(1)}
	c := TEq{X: x, Y: Nat(2)}

	tests := []struct {
		name string
		in   Prop
		want []string
	}{
		{"plain prop", a, []string{"fin x"}},
		{"truth vanishes", TTrue{}, nil},
		{"flat pair", TAnd{P: a, Q: b}, []string{"fin x", "(x >= 1)"}},
		{"left nested", TAnd{P: TAnd{P: a, Q: b}, Q: c}, []string{"fin x", "(x >= 1)", "(x == 2)"}},
		{"right nested", TAnd{P: a, Q: TAnd{P: b, Q: c}}, []string{"fin x", "(x >= 1)", "(x == 2)"}},
		{"truth inside conjunction", TAnd{P: TTrue{}, Q: TAnd{P: b, Q: TTrue{}}}, []string{"(x >= 1)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAnd(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitAnd() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i].String() != tt.want[i] {
					t.Errorf("conjunct %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitGoalSharesOrigin(t *testing.T) {
	x := TVar{Name: "x", Free: true}
	g := Goal{
		Prop:   TAnd{P: TFin{X: x}, Q: TGeq{X: x, Y: Nat(1)}},
		Origin: "constraint at line 7",
	}
	out := SplitGoal(g)
	if len(out) != 2 {
		t.Fatalf("SplitGoal() produced %d goals, want 2", len(out))
	}
	for _, sub := range out {
		if sub.Origin != g.Origin {
			t.Errorf("conjunct lost provenance: %v", sub.Origin)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	x := TVar{Name: "x", Free: true}

	tests := []struct {
		name string
		in   Prop
		want bool
	}{
		{"finiteness", TFin{X: x}, true},
		{"equality", TEq{X: x, Y: TInf{}}, true},
		{"comparison", TGeq{X: x, Y: Nat(1)}, true},
		{"truth", TTrue{}, false},
		{"conjunction must be split first", TAnd{P: TFin{X: x}, Q: TFin{X: x}}, false},
		{"error prop", TErrProp{Msg: "m"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNumeric(tt.in); got != tt.want {
				t.Errorf("IsNumeric(%s) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
