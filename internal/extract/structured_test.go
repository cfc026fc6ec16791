package extract

import (
	"errors"
	"testing"

	"semdiff/internal/unit"
)

func extractPython(t *testing.T, text string) []unit.Unit {
	t.Helper()
	units, err := NewStructured().Extract("test.py", text)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	return units
}

func TestStructured_Function(t *testing.T) {
	units := extractPython(t, "def greet(name):\n    return \"hello \" + name\n")
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	u := units[0]
	if u.Name != "greet" || u.Kind != unit.KindFunction {
		t.Errorf("unit = %s/%s, want function greet", u.Kind, u.Name)
	}
	if u.Signature != "greet/1" {
		t.Errorf("signature = %q, want greet/1", u.Signature)
	}
	if u.Span.Start != 1 || u.Span.End != 2 {
		t.Errorf("span = %+v, want 1-2", u.Span)
	}
	if u.Order != 0 {
		t.Errorf("order = %d, want 0", u.Order)
	}
	if u.Metrics[unit.MetricSize] != 1 {
		t.Errorf("size metric = %v, want 1", u.Metrics[unit.MetricSize])
	}
	if u.Metrics[unit.MetricDoc] != 0 {
		t.Errorf("doc metric = %v, want 0", u.Metrics[unit.MetricDoc])
	}
}

func TestStructured_AsyncFunction(t *testing.T) {
	units := extractPython(t, "async def fetch(url, timeout):\n    pass\n")
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	if units[0].Kind != unit.KindAsyncFunction {
		t.Errorf("kind = %s, want async_function", units[0].Kind)
	}
	if units[0].Signature != "fetch/2" {
		t.Errorf("signature = %q, want fetch/2", units[0].Signature)
	}
}

func TestStructured_ClassAndMethod(t *testing.T) {
	units := extractPython(t, "class Greeter:\n    def hello(self):\n        pass\n")
	if len(units) != 2 {
		t.Fatalf("got %d units, want class and method", len(units))
	}
	if units[0].Name != "Greeter" || units[0].Kind != unit.KindClass {
		t.Errorf("first unit = %s/%s, want class Greeter", units[0].Kind, units[0].Name)
	}
	if units[1].Name != "hello" || units[1].Kind != unit.KindFunction {
		t.Errorf("second unit = %s/%s, want function hello", units[1].Kind, units[1].Name)
	}
	if units[0].Order != 0 || units[1].Order != 1 {
		t.Errorf("orders = %d,%d, want 0,1", units[0].Order, units[1].Order)
	}
}

func TestStructured_ModuleAssignment(t *testing.T) {
	text := "LIMIT = 10\n\ndef use():\n    local = LIMIT\n    return local\n"
	units := extractPython(t, text)
	if len(units) != 2 {
		t.Fatalf("got %d units, want assignment and function", len(units))
	}

	var assign *unit.Unit
	for i := range units {
		if units[i].Kind == unit.KindAssignment {
			assign = &units[i]
		}
	}
	if assign == nil {
		t.Fatal("no assignment unit extracted")
	}
	if assign.Name != "LIMIT" || assign.Signature != "LIMIT" {
		t.Errorf("assignment = %s (%s), want LIMIT", assign.Name, assign.Signature)
	}
	// The nested "local = LIMIT" must not become a unit.
	for _, u := range units {
		if u.Name == "local" {
			t.Error("function-local assignment extracted as a unit")
		}
	}
}

func TestStructured_Docstring(t *testing.T) {
	units := extractPython(t, "def documented():\n    \"\"\"Says hello.\"\"\"\n    pass\n")
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	if units[0].Doc != "Says hello." {
		t.Errorf("doc = %q, want %q", units[0].Doc, "Says hello.")
	}
	if units[0].Metrics[unit.MetricDoc] != 1.0 {
		t.Errorf("doc metric = %v, want 1.0", units[0].Metrics[unit.MetricDoc])
	}
}

func TestStructured_FingerprintIgnoresFormatting(t *testing.T) {
	a := extractPython(t, "def f(x):\n    return x + 1\n")
	b := extractPython(t, "def f(x):\n    return x  +  1\n")
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("got %d and %d units, want 1 each", len(a), len(b))
	}
	if a[0].Fingerprint != b[0].Fingerprint {
		t.Error("whitespace-only edit changed the fingerprint")
	}
}

func TestStructured_FingerprintIgnoresComments(t *testing.T) {
	a := extractPython(t, "def f(x):\n    # a note\n    return x + 1\n")
	b := extractPython(t, "def f(x):\n    return x + 1\n")
	if a[0].Fingerprint != b[0].Fingerprint {
		t.Error("comment-only edit changed the fingerprint")
	}
}

func TestStructured_FingerprintSeesContentChange(t *testing.T) {
	a := extractPython(t, "def f(x):\n    return x + 1\n")
	b := extractPython(t, "def f(x):\n    return x - 1\n")
	if a[0].Fingerprint == b[0].Fingerprint {
		t.Error("operator change did not change the fingerprint")
	}
}

func TestStructured_BranchMetric(t *testing.T) {
	text := "def decide(x):\n    if x:\n        return 1\n    for _ in x:\n        pass\n    return 0\n"
	units := extractPython(t, text)
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	// "if" and "for" each appear once in the verbatim text.
	if got := units[0].Metrics[unit.MetricBranches]; got != 2 {
		t.Errorf("branches metric = %v, want 2", got)
	}
}

func TestStructured_ParseError(t *testing.T) {
	_, err := NewStructured().Extract("broken.py", "def broken(:\n    pass\n")
	if err == nil {
		t.Fatal("expected ParseError for malformed input")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if parseErr.Path != "broken.py" {
		t.Errorf("ParseError path = %q, want broken.py", parseErr.Path)
	}
}

func TestStructured_EmptySource(t *testing.T) {
	units := extractPython(t, "")
	if len(units) != 0 {
		t.Errorf("got %d units from empty source, want 0", len(units))
	}
}
