package extract

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"semdiff/internal/fingerprint"
	"semdiff/internal/unit"
)

// Structured extracts units by walking a Tree-sitter parse tree. Only the
// Python grammar is wired; adding a language means adding a grammar and a
// node-type mapping, never touching the diff engine.
type Structured struct {
	parser *sitter.Parser
}

// NewStructured creates a structured extractor with the Python grammar.
func NewStructured() *Structured {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Structured{parser: p}
}

// Extract walks the parse tree and emits one unit per function, async
// function, class, or module-level name-bound assignment, in traversal
// order. Malformed input yields a ParseError scoped to this source.
func (s *Structured) Extract(path, text string) ([]unit.Unit, error) {
	content := []byte(text)

	tree, err := s.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: err.Error()}
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseError{Path: path, Msg: "syntax error"}
	}

	var units []unit.Unit
	order := 0

	iter := sitter.NewIterator(root, sitter.DFSMode)
	for {
		n, err := iter.Next()
		if err != nil || n == nil {
			break
		}

		switch n.Type() {
		case "function_definition":
			if u, ok := functionUnit(path, n, content, order); ok {
				units = append(units, u)
				order++
			}
		case "class_definition":
			if u, ok := classUnit(path, n, content, order); ok {
				units = append(units, u)
				order++
			}
		case "assignment":
			if !isModuleLevel(n) {
				continue
			}
			if u, ok := assignmentUnit(path, n, content, order); ok {
				units = append(units, u)
				order++
			}
		}
	}

	return units, nil
}

func functionUnit(path string, n *sitter.Node, content []byte, order int) (unit.Unit, bool) {
	name := childOfType(n, "identifier", content)
	if name == "" {
		return unit.Unit{}, false
	}

	kind := unit.KindFunction
	if first := n.Child(0); first != nil && first.Type() == "async" {
		kind = unit.KindAsyncFunction
	}

	params := 0
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == "parameters" {
			params = int(c.NamedChildCount())
			break
		}
	}

	span := nodeSpan(n)
	source := n.Content(content)
	doc := docstring(n, content)
	docFlag := 0.0
	if doc != "" {
		docFlag = 1.0
	}

	return unit.Unit{
		Path:        path,
		Name:        name,
		Kind:        kind,
		Signature:   fmt.Sprintf("%s/%d", name, params),
		Fingerprint: fingerprint.HashString(canonical(n, content)),
		Span:        span,
		Order:       order,
		Metrics: map[string]float64{
			unit.MetricSize:     float64(unit.SizeMetric(span)),
			unit.MetricBranches: float64(unit.CountBranches(source)),
			unit.MetricDoc:      docFlag,
		},
		Source: source,
		Doc:    doc,
	}, true
}

func classUnit(path string, n *sitter.Node, content []byte, order int) (unit.Unit, bool) {
	name := childOfType(n, "identifier", content)
	if name == "" {
		return unit.Unit{}, false
	}

	span := nodeSpan(n)
	source := n.Content(content)
	doc := docstring(n, content)
	docFlag := 0.0
	if doc != "" {
		docFlag = 1.0
	}

	return unit.Unit{
		Path:        path,
		Name:        name,
		Kind:        unit.KindClass,
		Signature:   fmt.Sprintf("%s/0", name),
		Fingerprint: fingerprint.HashString(canonical(n, content)),
		Span:        span,
		Order:       order,
		Metrics: map[string]float64{
			unit.MetricSize:     float64(unit.SizeMetric(span)),
			unit.MetricBranches: float64(unit.CountBranches(source)),
			unit.MetricDoc:      docFlag,
		},
		Source: source,
		Doc:    doc,
	}, true
}

func assignmentUnit(path string, n *sitter.Node, content []byte, order int) (unit.Unit, bool) {
	// Only plain name targets count; tuple unpacking and attribute
	// targets are not name-bound units.
	left := n.NamedChild(0)
	if left == nil || left.Type() != "identifier" {
		return unit.Unit{}, false
	}
	name := left.Content(content)

	span := nodeSpan(n)
	source := n.Content(content)

	return unit.Unit{
		Path:        path,
		Name:        name,
		Kind:        unit.KindAssignment,
		Signature:   name,
		Fingerprint: fingerprint.HashString(canonical(n, content)),
		Span:        span,
		Order:       order,
		Metrics: map[string]float64{
			unit.MetricSize:     float64(unit.SizeMetric(span)),
			unit.MetricBranches: float64(unit.CountBranches(source)),
			unit.MetricDoc:      0.0,
		},
		Source: source,
	}, true
}

// isModuleLevel reports whether an assignment sits directly in the module
// body (wrapped in an expression_statement).
func isModuleLevel(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil || parent.Type() != "expression_statement" {
		return false
	}
	grand := parent.Parent()
	return grand != nil && grand.Type() == "module"
}

// childOfType returns the text of the first direct child with the given
// node type.
func childOfType(n *sitter.Node, nodeType string, content []byte) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == nodeType {
			return c.Content(content)
		}
	}
	return ""
}

// docstring returns the leading string literal of a definition body, with
// surrounding quotes stripped.
func docstring(n *sitter.Node, content []byte) string {
	var body *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == "block" {
			body = c
			break
		}
	}
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	str := first.NamedChild(0)
	if str.Type() != "string" {
		return ""
	}
	return trimQuotes(str.Content(content))
}

func trimQuotes(s string) string {
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return strings.TrimSpace(s[len(q) : len(s)-len(q)])
		}
	}
	return strings.TrimSpace(s)
}

// canonical serializes a node as a position-free S-expression: node types
// plus leaf token text, comments excluded. Formatting-only edits produce
// identical serializations, so fingerprints collapse.
func canonical(n *sitter.Node, content []byte) string {
	var sb strings.Builder
	writeCanonical(&sb, n, content)
	return sb.String()
}

func writeCanonical(sb *strings.Builder, n *sitter.Node, content []byte) {
	if n.Type() == "comment" {
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Type())
	count := int(n.ChildCount())
	if count == 0 {
		// Leaf token: keep its text so identifiers, literals, and
		// operators distinguish fingerprints while whitespace does not.
		sb.WriteByte(' ')
		sb.WriteString(n.Content(content))
	} else {
		for i := 0; i < count; i++ {
			c := n.Child(i)
			if c.Type() == "comment" {
				continue
			}
			sb.WriteByte(' ')
			writeCanonical(sb, c, content)
		}
	}
	sb.WriteByte(')')
}

// nodeSpan converts a node's 0-based row range to a 1-based line span.
func nodeSpan(n *sitter.Node) unit.Span {
	return unit.Span{
		Start: int(n.StartPoint().Row) + 1,
		End:   int(n.EndPoint().Row) + 1,
	}
}
