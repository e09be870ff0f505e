package filter

import "testing"

// Compile-time checks that the contracts are usable through interfaces.
var _ Filter[int] = Bool[int](true)

var _ Optimizable = Text{}

var _ Child[unit, Bool[unit]] = Bool[unit](false)

var _ Child[unit, *And[unit, Bool[unit]]] = (*And[unit, Bool[unit]])(nil)

var _ Child[unit, *Or[unit, Bool[unit]]] = (*Or[unit, Bool[unit]])(nil)

var _ Child[unit, *Not[unit, Bool[unit]]] = (*Not[unit, Bool[unit]])(nil)

func TestBool(t *testing.T) {
	tests := []struct {
		name string
		b    Bool[string]
		want bool
	}{
		{"true", True[string](), true},
		{"false", False[string](), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, subject := range []string{"", "x", "abc"} {
				if got := tt.b.Matches(subject); got != tt.want {
					t.Errorf("Matches(%q) = %v, want %v", subject, got, tt.want)
				}
			}
			if v, ok := tt.b.AsBool(); !ok || v != tt.want {
				t.Errorf("AsBool() = (%v, %v), want (%v, true)", v, ok, tt.want)
			}
			tt.b.Optimize()
			if bool(tt.b) != tt.want {
				t.Errorf("Optimize() changed literal")
			}
		})
	}

	if !bool(Bool[int](false).TruthyDefault()) || bool(Bool[int](true).FalsyDefault()) {
		t.Errorf("Bool identities are wrong")
	}
}

func TestHeterogeneousTree(t *testing.T) {
	// Trees of mixed concrete child types are held through the Filter interface.
	filters := []Filter[int]{
		NewAnd[int](isEven, isPositive),
		NewOr[int](isEven, isPositive),
		NewNot[int](isEven),
		True[int](),
	}
	want := []bool{true, true, false, true}

	for i, f := range filters {
		if got := f.Matches(4); got != want[i] {
			t.Errorf("filters[%d].Matches(4) = %v, want %v", i, got, want[i])
		}
	}
}

func TestString(t *testing.T) {
	f := NewAnd[int](isEven, intTrue)
	if got, want := f.String(), "(and even true)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	g := NewNot[int](NewOr[int](isEven))
	if got, want := g.String(), "(not (or even))"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
