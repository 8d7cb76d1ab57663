package symtab

import (
	"testing"

	"github.com/hassan/gibberishc/internal/types"
)

func TestLookupLocalVsGlobal(t *testing.T) {
	tab := NewTable()
	outer := NewGlobalSymbol("x", types.Int)
	if err := tab.AddDecl(outer); err != nil {
		t.Fatalf("AddDecl(x) = %v", err)
	}

	tab.AddScope()
	if got := tab.LookupLocal("x"); got != nil {
		t.Error("LookupLocal should not see outer scope's x")
	}
	if got := tab.LookupGlobal("x"); got != outer {
		t.Error("LookupGlobal should find x in the outer scope")
	}

	inner := NewLocalSymbol("x", types.Bool, -4)
	if err := tab.AddDecl(inner); err != nil {
		t.Fatalf("AddDecl(inner x) = %v", err)
	}
	if got := tab.LookupLocal("x"); got != inner {
		t.Error("LookupLocal should now find the shadowing inner x")
	}
	if got := tab.LookupGlobal("x"); got != inner {
		t.Error("LookupGlobal should prefer the innermost x")
	}
}

func TestRemoveScopeOnEmptyIsInternalError(t *testing.T) {
	tab := &Table{}
	err := tab.RemoveScope()
	if err == nil {
		t.Fatal("expected an error popping an empty scope stack")
	}
	ie, ok := err.(*InternalError)
	if !ok || ie.Kind != EmptyScope {
		t.Errorf("expected InternalError{Kind: EmptyScope}, got %v", err)
	}
}

func TestDuplicateDeclIsCallerChecked(t *testing.T) {
	tab := NewTable()
	if err := tab.AddDecl(NewGlobalSymbol("x", types.Int)); err != nil {
		t.Fatalf("first AddDecl: %v", err)
	}
	err := tab.AddDecl(NewGlobalSymbol("x", types.Int))
	if err == nil {
		t.Fatal("expected an error on duplicate insertion")
	}
	ie, ok := err.(*InternalError)
	if !ok || ie.Kind != Duplicate {
		t.Errorf("expected InternalError{Kind: Duplicate}, got %v", err)
	}
}

func TestStructFieldScopeCapturedBeforePop(t *testing.T) {
	tab := NewTable()
	tab.AddScope()
	field := NewLocalSymbol("x", types.Int, 0)
	if err := tab.AddDecl(field); err != nil {
		t.Fatalf("AddDecl(field): %v", err)
	}
	fields := tab.Top()
	if err := tab.RemoveScope(); err != nil {
		t.Fatalf("RemoveScope: %v", err)
	}

	if got := fields.LookupField("x"); got != field {
		t.Error("captured field scope should still resolve x after pop")
	}
}
