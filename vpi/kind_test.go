package vpi

import "testing"

func TestKind_StringRoundTrip(t *testing.T) {
	for k, name := range kindNames {
		if k.String() != name {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), name)
		}
		got, ok := ParseKind(name)
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %d, %v", name, got, ok)
		}
	}
}

func TestKind_Unnamed(t *testing.T) {
	k := Kind(4242)
	if k.String() != "4242" {
		t.Fatalf("String() = %q", k.String())
	}
	got, ok := ParseKind("4242")
	if !ok || got != k {
		t.Fatalf("ParseKind(4242) = %d, %v", got, ok)
	}
}

func TestParseKind_Invalid(t *testing.T) {
	for _, s := range []string{"", "wire", "-3", "0", "module "} {
		if _, ok := ParseKind(s); ok {
			t.Errorf("ParseKind(%q) should fail", s)
		}
	}
}

func TestKind_IsInstance(t *testing.T) {
	for _, k := range []Kind{KindModule, KindInterface, KindProgram} {
		if !k.IsInstance() {
			t.Errorf("%v should be an instance kind", k)
		}
	}
	for _, k := range []Kind{KindNet, KindGenScope, KindTask, KindModuleArray} {
		if k.IsInstance() {
			t.Errorf("%v should not be an instance kind", k)
		}
	}
}
