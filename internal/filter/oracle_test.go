package filter

import "testing"

// unit is the subject type for tests of the raw algebra.
type unit = struct{}

// testFilter is an oracle child type. testPanic is never constant and panics
// when matched or optimized, so any test that reaches a pruned testPanic child
// fails loudly.
type testFilter int

const (
	testAny testFilter = iota
	testNone
	testPanic
)

func (f testFilter) Matches(unit) bool {
	switch f {
	case testAny:
		return true
	case testNone:
		return false
	default:
		panic("testPanic filter was evaluated")
	}
}

func (f testFilter) AsBool() (bool, bool) {
	switch f {
	case testAny:
		return true, true
	case testNone:
		return false, true
	default:
		return false, false
	}
}

func (f testFilter) Optimize() {
	if f == testPanic {
		panic("testPanic filter was optimized")
	}
}

func (testFilter) TruthyDefault() testFilter { return testAny }

func (testFilter) FalsyDefault() testFilter { return testNone }

func andOf(fs ...testFilter) *And[unit, testFilter] {
	return NewAnd[unit](fs...)
}

func orOf(fs ...testFilter) *Or[unit, testFilter] {
	return NewOr[unit](fs...)
}

// mustNotPanic fails the test instead of crashing the binary when fn panics.
func mustNotPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("%s panicked: %v", name, r)
		}
	}()
	fn()
}

func TestOracle_Truthy(t *testing.T) {
	f := testFilter(0).TruthyDefault()
	if f != testAny {
		t.Fatalf("TruthyDefault() = %v, want testAny", f)
	}
	if v, ok := f.AsBool(); !ok || !v {
		t.Errorf("AsBool() = (%v, %v), want (true, true)", v, ok)
	}
	f.Optimize()
	if f != testAny {
		t.Errorf("after Optimize() = %v, want testAny", f)
	}
}

func TestOracle_Falsy(t *testing.T) {
	f := testFilter(0).FalsyDefault()
	if f != testNone {
		t.Fatalf("FalsyDefault() = %v, want testNone", f)
	}
	if v, ok := f.AsBool(); !ok || v {
		t.Errorf("AsBool() = (%v, %v), want (false, true)", v, ok)
	}
}

func TestOracle_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Matches() on testPanic did not panic")
		}
	}()
	testPanic.Matches(unit{})
}

// intPred is a child type over int subjects. A nil fn makes it the constant val.
type intPred struct {
	name string
	fn   func(int) bool
	val  bool
}

var (
	intTrue    = intPred{name: "true", val: true}
	intFalse   = intPred{name: "false"}
	isEven     = intPred{name: "even", fn: func(n int) bool { return n%2 == 0 }}
	isPositive = intPred{name: "positive", fn: func(n int) bool { return n > 0 }}
)

func (p intPred) Matches(n int) bool {
	if p.fn == nil {
		return p.val
	}
	return p.fn(n)
}

func (p intPred) AsBool() (bool, bool) {
	if p.fn == nil {
		return p.val, true
	}
	return false, false
}

func (intPred) Optimize() {}

func (intPred) TruthyDefault() intPred { return intTrue }

func (intPred) FalsyDefault() intPred { return intFalse }

func (p intPred) String() string { return p.name }
