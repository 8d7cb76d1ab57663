package semantic

import "testing"

func checkFull(t *testing.T, src string) []string {
	t.Helper()
	prog, r := parseAndAnalyze(t, src)
	CheckTypes(prog, r)
	return messages(r)
}

func containsMsg(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}

func TestScenario3AssignTypeMismatch(t *testing.T) {
	msgs := checkFull(t, "void foo(){ int x; x = true; } void main(){}")
	if !containsMsg(msgs, "Type mismatch") {
		t.Errorf("expected 'Type mismatch', got %v", msgs)
	}
}

func TestScenario4MissingReturnValue(t *testing.T) {
	msgs := checkFull(t, "int f(){ return; } void main(){}")
	if !containsMsg(msgs, "Missing return value") {
		t.Errorf("expected 'Missing return value', got %v", msgs)
	}
}

func TestScenario5WriteFunction(t *testing.T) {
	msgs := checkFull(t, "void g(){ cout << g; } void main(){}")
	if !containsMsg(msgs, "Attempt to write a function") {
		t.Errorf("expected 'Attempt to write a function', got %v", msgs)
	}
}

func TestScenario6NonBoolCondition(t *testing.T) {
	msgs := checkFull(t, "int main(){ if (1) { } }")
	if !containsMsg(msgs, "Non-bool expression used as an if condition") {
		t.Errorf("expected if-condition diagnostic, got %v", msgs)
	}
	if containsMsg(msgs, "No main function") {
		t.Errorf("main exists with a wrong return type, which this subset does not flag; got %v", msgs)
	}
}

func TestReturnWithValueInVoidFunction(t *testing.T) {
	msgs := checkFull(t, "void f(){ return 1; } void main(){}")
	if !containsMsg(msgs, "Return with a value in a void function") {
		t.Errorf("expected void-return diagnostic, got %v", msgs)
	}
}

func TestBadReturnValue(t *testing.T) {
	msgs := checkFull(t, "int f(){ return true; } void main(){}")
	if !containsMsg(msgs, "Bad return value") {
		t.Errorf("expected 'Bad return value', got %v", msgs)
	}
}

func TestArithmeticOnNonNumericOperand(t *testing.T) {
	msgs := checkFull(t, "void main(){ bool b; int x; x = 1 + b; }")
	if !containsMsg(msgs, "Arithmetic operator applied to non-numeric operand") {
		t.Errorf("expected arithmetic diagnostic, got %v", msgs)
	}
}

func TestLogicalOnNonBoolOperand(t *testing.T) {
	msgs := checkFull(t, "void main(){ int x; bool b; b = x && true; }")
	if !containsMsg(msgs, "Logical operator applied to non-bool operand") {
		t.Errorf("expected logical diagnostic, got %v", msgs)
	}
}

func TestRelationalOnNonNumericOperand(t *testing.T) {
	msgs := checkFull(t, "void main(){ bool a; bool b; b = a < true; }")
	if !containsMsg(msgs, "Relational operator applied to non-numeric operand") {
		t.Errorf("expected relational diagnostic, got %v", msgs)
	}
}

func TestRepeatRequiresInt(t *testing.T) {
	msgs := checkFull(t, "void main(){ repeat (true) { } }")
	if !containsMsg(msgs, "Non-int expression used as a repeat condition") {
		t.Errorf("expected repeat diagnostic, got %v", msgs)
	}
}

func TestCallArityMismatch(t *testing.T) {
	msgs := checkFull(t, "int add(int a, int b){ return a+b; } void main(){ add(1); }")
	found := false
	for _, m := range msgs {
		if m == "Wrong number of arguments in call to add" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected arity diagnostic, got %v", msgs)
	}
}

func TestCallArgumentTypeMismatch(t *testing.T) {
	msgs := checkFull(t, "int add(int a, int b){ return a+b; } void main(){ add(1, true); }")
	if !containsMsg(msgs, "Type mismatch") {
		t.Errorf("expected 'Type mismatch' on bad argument, got %v", msgs)
	}
}

func TestWellTypedProgramHasNoDiagnostics(t *testing.T) {
	msgs := checkFull(t, `
		int add(int a, int b) { return a + b; }
		void main() {
			int x;
			x = add(1, 2);
			cout << x;
			if (x > 0) { x++; } else { x--; }
			while (x < 10) { x = x + 1; }
		}
	`)
	if len(msgs) != 0 {
		t.Errorf("expected no diagnostics, got %v", msgs)
	}
}
