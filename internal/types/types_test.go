package types

import "testing"

func TestEqualPointerDepthAndElement(t *testing.T) {
	a := NewPointer(2, Int)
	b := NewPointer(2, Int)
	c := NewPointer(1, Int)
	d := NewPointer(2, Char)

	if !Equal(a, b) {
		t.Errorf("expected %s == %s", a, b)
	}

	if Equal(a, c) {
		t.Errorf("expected %s != %s (depth differs)", a, c)
	}

	if Equal(a, d) {
		t.Errorf("expected %s != %s (element differs)", a, d)
	}
}

func TestEqualFunctionComparesReturnAndParams(t *testing.T) {
	f1 := NewFunction([]*Type{IntType, FloatType}, IntType)
	f2 := NewFunction([]*Type{IntType, FloatType}, IntType)
	f3 := NewFunction([]*Type{IntType}, IntType)
	f4 := NewFunction([]*Type{IntType, FloatType}, FloatType)

	if !Equal(f1, f2) {
		t.Errorf("expected %s == %s", f1, f2)
	}

	if Equal(f1, f3) {
		t.Errorf("expected %s != %s (arity differs)", f1, f3)
	}

	if Equal(f1, f4) {
		t.Errorf("expected %s != %s (return differs)", f1, f4)
	}
}

func TestVariadicFlagSetFromTrailingEllipsis(t *testing.T) {
	f := NewFunction([]*Type{IntType, NewSimple(Ellipsis)}, IntType)
	if !f.Variadic {
		t.Error("expected Variadic to be true when the last parameter is the ellipsis sentinel")
	}

	if len(f.Params) != 2 {
		t.Errorf("ellipsis sentinel should remain in Params as a marker, got %d params", len(f.Params))
	}
}

func TestMergeIsCommutativeAndIdempotent(t *testing.T) {
	cases := []*Type{IntType, FloatType, BoolType, VoidType}

	for _, ty := range cases {
		if m, ok := Merge(ty, ty); !ok || !Equal(m, ty) {
			t.Errorf("Merge(%s, %s) should be idempotent, got %v, %v", ty, ty, m, ok)
		}
	}

	for i, a := range cases {
		for j, b := range cases {
			if i == j {
				continue
			}

			m1, ok1 := Merge(a, b)
			m2, ok2 := Merge(b, a)

			if ok1 != ok2 {
				t.Errorf("Merge(%s, %s) commutativity mismatch in ok: %v vs %v", a, b, ok1, ok2)
			}

			if ok1 && !Equal(m1, m2) {
				t.Errorf("Merge(%s, %s) commutativity mismatch in result: %s vs %s", a, b, m1, m2)
			}
		}
	}
}

func TestMergeVoidWithNonVoidYieldsNonVoid(t *testing.T) {
	m, ok := Merge(VoidType, IntType)
	if !ok || !Equal(m, IntType) {
		t.Errorf("merge(void, int) = %v, %v; want int, true", m, ok)
	}

	m, ok = Merge(IntType, VoidType)
	if !ok || !Equal(m, IntType) {
		t.Errorf("merge(int, void) = %v, %v; want int, true", m, ok)
	}
}

func TestMergeIncompatibleTypesFails(t *testing.T) {
	if _, ok := Merge(IntType, FloatType); ok {
		t.Error("merge(int, float) should fail")
	}

	if _, ok := Merge(NewPointer(1, Int), IntType); ok {
		t.Error("merge(int*, int) should fail")
	}
}
