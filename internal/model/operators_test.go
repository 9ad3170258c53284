package model

import "testing"

func TestIntIncrementAndDecrement(t *testing.T) {
	iface := GetInterface(TagInt)
	v := NewInt(10)

	inc, err := iface.Increment(v)
	if err != nil || inc.Int != 11 {
		t.Fatalf("expected increment to yield 11, got %+v err=%v", inc, err)
	}

	// NOTE: reproduces the original source's IntDecrement bug (adds 1
	// instead of subtracting), preserved per spec.md §9's guidance.
	dec, err := iface.Decrement(v)
	if err != nil || dec.Int != 11 {
		t.Fatalf("expected decrement to reproduce the +1 bug yielding 11, got %+v err=%v", dec, err)
	}
}

func TestIntDivisionByZero(t *testing.T) {
	iface := GetInterface(TagInt)
	_, err := iface.Divide(NewInt(1), NewInt(0))
	if err == nil {
		t.Fatalf("expected division by zero to error")
	}
}

func TestBoolOperators(t *testing.T) {
	iface := GetInterface(TagBool)
	or, _ := iface.Or(NewBool(false), NewBool(true))
	if !or.Bool {
		t.Fatalf("expected false || true == true")
	}
	and, _ := iface.And(NewBool(true), NewBool(false))
	if and.Bool {
		t.Fatalf("expected true && false == false")
	}
	not, _ := iface.Not(NewBool(true))
	if not.Bool {
		t.Fatalf("expected !true == false")
	}
}

func TestStringEquality(t *testing.T) {
	iface := GetInterface(TagString)
	eq, _ := iface.Equals(NewString("a"), NewString("a"))
	if !eq.Bool {
		t.Fatalf("expected equal strings to compare equal")
	}
}

func TestVoidSupportsNoOperators(t *testing.T) {
	iface := GetInterface(TagVoid)
	if iface.Supports(OpAdd) {
		t.Fatalf("Void must not support any operator")
	}
}
