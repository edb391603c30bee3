package symtab

import "testing"

func TestPushInsertLookupPop(t *testing.T) {
	tbl := New[int]()
	tbl.Push()

	if !tbl.Insert("x", 1) {
		t.Fatal("expected first insert of x to succeed")
	}

	if tbl.Insert("x", 2) {
		t.Fatal("expected duplicate insert in innermost frame to fail")
	}

	v, ok := tbl.Lookup("x")
	if !ok || v != 1 {
		t.Fatalf("Lookup(x) = %d, %v; want 1, true", v, ok)
	}

	tbl.Pop()

	if _, ok := tbl.Lookup("x"); ok {
		t.Fatal("expected x to be gone after popping its frame")
	}
}

func TestShadowingAcrossFrames(t *testing.T) {
	tbl := New[string]()
	tbl.Push()
	tbl.Insert("x", "outer")
	tbl.Push()

	if !tbl.Insert("x", "inner") {
		t.Fatal("shadowing in a nested frame must be allowed")
	}

	v, _ := tbl.Lookup("x")
	if v != "inner" {
		t.Fatalf("Lookup(x) = %q; want inner frame to win", v)
	}

	tbl.Pop()

	v, _ = tbl.Lookup("x")
	if v != "outer" {
		t.Fatalf("Lookup(x) after pop = %q; want outer", v)
	}
}

func TestLookupInnermostIgnoresOuterFrames(t *testing.T) {
	tbl := New[int]()
	tbl.Push()
	tbl.Insert("x", 1)
	tbl.Push()

	if _, ok := tbl.LookupInnermost("x"); ok {
		t.Fatal("LookupInnermost should not see outer frames")
	}
}

func TestLookupMissingIdentifier(t *testing.T) {
	tbl := New[int]()
	tbl.Push()

	if _, ok := tbl.Lookup("missing"); ok {
		t.Fatal("expected lookup of an undeclared identifier to fail")
	}
}
