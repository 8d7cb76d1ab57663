package asm

import "testing"

func TestNewLabelIsMonotonicAndUnique(t *testing.T) {
	e := New()
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		l := e.NewLabel()
		if seen[l] {
			t.Fatalf("label %s repeated", l)
		}
		seen[l] = true
	}
}

func TestInternStringSharesLabelForIdenticalContent(t *testing.T) {
	e := New()
	a := e.InternString("hello")
	b := e.InternString("hello")
	c := e.InternString("world")

	if a != b {
		t.Errorf("identical literals should share a label: %s != %s", a, b)
	}
	if a == c {
		t.Error("distinct literals should not share a label")
	}
}

func TestStringsInternedDuringTextLandInData(t *testing.T) {
	e := New()
	e.Data()
	e.GlobalData("x")
	e.Text()
	e.Label("_main")
	label := e.InternString("hi")
	e.Line("la $t0, %s", label)

	out := e.String()
	dataIdx := indexOf(out, ".data")
	textIdx := indexOf(out, ".text")
	strIdx := indexOf(out, label+":")

	if dataIdx < 0 || textIdx < 0 || strIdx < 0 {
		t.Fatalf("missing expected sections in output:\n%s", out)
	}
	if !(dataIdx < strIdx && strIdx < textIdx) {
		t.Errorf("string literal discovered during .text generation should still land before .text in output:\n%s", out)
	}
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
