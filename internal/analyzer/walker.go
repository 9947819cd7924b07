// # internal/analyzer/walker.go
package analyzer

import (
	"log/slog"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/Rosuav/Choc/internal/jsparse"
)

// role describes what is known about where a sub-expression's value ends up.
type role int

const (
	// roleProbe: just looking for sinks, no content attribution.
	roleProbe role = iota
	// roleReturn: the value will be returned to a caller that wants content.
	roleReturn
	// roleContent: the value is directly destined for rendered output.
	roleContent
)

// visitKey identifies a node under a particular role. Node identity is its
// byte span plus kind; tree-sitter nodes are never mutated.
type visitKey struct {
	start, end uint
	kind       string
	r          role
}

// visit dispatches a node to its kind-specific handling. Each node is
// processed at most once per role, which guarantees termination even when
// scope bindings alias or revisit the same sub-tree.
func (fr *fileRun) visit(node *sitter.Node, scopes scopeStack, r role, xmlns string) {
	if node == nil {
		return
	}
	key := visitKey{node.StartByte(), node.EndByte(), node.Kind(), r}
	if fr.visited[key] {
		return
	}
	fr.visited[key] = true

	switch node.Kind() {
	case "function_expression", "generator_function":
		fr.visitFunction(node, scopes, r, xmlns)

	case "function_declaration", "generator_function_declaration":
		// A declaration being invoked anonymously (role Return) need not
		// re-register itself.
		if r != roleReturn {
			if name := node.ChildByFieldName("name"); name != nil {
				scopes.declare(fr.text(name), node)
			}
		}
		fr.visitFunction(node, scopes, r, xmlns)

	case "arrow_function":
		body := node.ChildByFieldName("body")
		if r == roleReturn && body != nil && body.Kind() != "statement_block" {
			// Braceless arrows implicitly return their expression.
			fr.visit(body, scopes.push(), roleContent, xmlns)
			return
		}
		fr.visitFunction(node, scopes, r, xmlns)

	case "statement_block", "expression_statement", "parenthesized_expression",
		"sequence_expression", "arguments", "else_clause", "switch_body",
		"class_body", "computed_property_name", "array", "object":
		fr.visitChildren(node, scopes, r, xmlns)

	case "while_statement", "do_statement", "for_statement", "for_in_statement",
		"labeled_statement", "catch_clause", "finally_clause":
		fr.visit(node.ChildByFieldName("body"), scopes, r, xmlns)

	case "if_statement", "ternary_expression":
		// Every branch is explored; no path sensitivity.
		fr.visit(node.ChildByFieldName("consequence"), scopes, r, xmlns)
		fr.visit(node.ChildByFieldName("alternative"), scopes, r, xmlns)

	case "switch_statement":
		fr.visit(node.ChildByFieldName("body"), scopes, r, xmlns)

	case "switch_case", "switch_default":
		value := node.ChildByFieldName("value")
		for _, child := range jsparse.NamedChildren(node) {
			if value != nil && child.StartByte() == value.StartByte() && child.EndByte() == value.EndByte() {
				continue
			}
			fr.visit(child, scopes, r, xmlns)
		}

	case "try_statement":
		fr.visit(node.ChildByFieldName("body"), scopes, r, xmlns)
		fr.visit(node.ChildByFieldName("handler"), scopes, r, xmlns)
		fr.visit(node.ChildByFieldName("finalizer"), scopes, r, xmlns)

	case "member_expression", "subscript_expression":
		// A chained factory call is hiding in the receiver.
		fr.visit(node.ChildByFieldName("object"), scopes, r, xmlns)

	case "export_statement":
		fr.visit(node.ChildByFieldName("declaration"), scopes, r, xmlns)
		fr.visit(node.ChildByFieldName("value"), scopes, r, xmlns)

	case "import_statement":
		fr.registerImportBindings(node, scopes)

	case "identifier", "shorthand_property_identifier":
		if r == roleProbe {
			return
		}
		if candidates, remaining, ok := scopes.lookup(fr.text(node)); ok {
			fr.visitAll(candidates, remaining, r, xmlns)
		}

	case "call_expression", "new_expression":
		fr.visitCall(node, scopes, r, xmlns)

	case "return_statement":
		// What gets returned becomes content once the caller wants content.
		if r == roleReturn {
			r = roleContent
		}
		fr.visit(jsparse.FirstNamedChild(node), scopes, r, xmlns)

	case "pair":
		// Keys descended too, to probe inside computed keys.
		fr.visit(node.ChildByFieldName("key"), scopes, r, xmlns)
		fr.visit(node.ChildByFieldName("value"), scopes, r, xmlns)

	case "spread_element", "await_expression", "yield_expression", "unary_expression":
		arg := node.ChildByFieldName("argument")
		if arg == nil {
			arg = jsparse.FirstNamedChild(node)
		}
		fr.visit(arg, scopes, r, xmlns)

	case "binary_expression":
		fr.visit(node.ChildByFieldName("left"), scopes, r, xmlns)
		fr.visit(node.ChildByFieldName("right"), scopes, r, xmlns)

	case "assignment_expression", "augmented_assignment_expression":
		fr.visitAssignment(node, scopes, r, xmlns)

	case "lexical_declaration", "variable_declaration":
		fr.visitDeclaration(node, scopes, r, xmlns)

	case "class_declaration", "class":
		fr.visit(node.ChildByFieldName("name"), scopes, r, xmlns)
		fr.visit(node.ChildByFieldName("body"), scopes, r, xmlns)

	case "method_definition":
		fr.visit(node.ChildByFieldName("name"), scopes, r, xmlns)
		fr.visitFunction(node, scopes, r, xmlns)

	case "field_definition":
		fr.visit(node.ChildByFieldName("property"), scopes, r, xmlns)
		fr.visit(node.ChildByFieldName("value"), scopes, r, xmlns)

	case "string", "template_string", "number", "regex", "true", "false",
		"null", "undefined", "this", "super", "comment", "empty_statement",
		"debugger_statement", "throw_statement", "break_statement",
		"continue_statement", "update_expression", "object_pattern",
		"array_pattern", "property_identifier", "private_property_identifier",
		"hash_bang_line", "statement_identifier", "import":
		// Inert: literals, patterns, control transfers. Template strings are
		// assumed to hold text, not DOM elements.

	default:
		fr.unknownKind(node)
	}
}

func (fr *fileRun) visitAll(nodes []*sitter.Node, scopes scopeStack, r role, xmlns string) {
	for _, node := range nodes {
		fr.visit(node, scopes, r, xmlns)
	}
}

func (fr *fileRun) visitChildren(node *sitter.Node, scopes scopeStack, r role, xmlns string) {
	fr.visitAll(jsparse.NamedChildren(node), scopes, r, xmlns)
}

// visitFunction descends a function body in a fresh scope. Merely referencing
// a function does not execute it, so outside of role Return the body is only
// probed for sinks.
func (fr *fileRun) visitFunction(node *sitter.Node, scopes scopeStack, r role, xmlns string) {
	if r != roleReturn {
		r = roleProbe
	}
	fr.visit(node.ChildByFieldName("body"), scopes.push(), r, xmlns)
}

func (fr *fileRun) visitAssignment(node *sitter.Node, scopes scopeStack, r role, xmlns string) {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	fr.visit(left, scopes, r, xmlns)
	fr.visit(right, scopes, r, xmlns)
	if left == nil || right == nil || left.Kind() != "identifier" || r == roleContent {
		return
	}
	// Assigning to a simple name stashes the expression in the appropriate
	// scope. Augmented assignment is treated the same, collecting all
	// relevant expressions together. This is lexical analysis, not
	// control-flow analysis: an assignment below the corresponding
	// set_content call may be missed.
	scopes.assign(fr.text(left), right)
}

func (fr *fileRun) visitDeclaration(node *sitter.Node, scopes scopeStack, r role, xmlns string) {
	if !fr.anchorFound && fr.autoimportLine > 0 &&
		jsparse.Line(node) <= fr.autoimportLine && int(node.EndPosition().Row)+1 >= fr.autoimportLine {
		fr.anchorStart = node.StartByte()
		fr.anchorEnd = node.EndByte()
		fr.anchorFound = true
	}

	for _, decl := range jsparse.NamedChildren(node) {
		if decl.Kind() != "variable_declarator" {
			continue
		}
		init := decl.ChildByFieldName("value")
		if init == nil {
			continue
		}
		name := decl.ChildByFieldName("name")
		if init.Kind() == "identifier" {
			if src := fr.text(init); src == "choc" || src == "lindt" {
				// The import destructuring line. Or maybe not destructuring;
				// whatever, you do you.
				if name != nil && name.Kind() == "object_pattern" {
					fr.recordImportPattern(name, src)
				}
				continue
			}
		}
		// Descend looking for sinks, and save the initializer in case the
		// name is read later in a tracked role.
		fr.visit(init, scopes, r, xmlns)
		if name != nil && name.Kind() == "identifier" {
			scopes.declare(fr.text(name), init)
		}
	}
}

// registerImportBindings marks every locally bound import name as a known
// variable with no attached code.
func (fr *fileRun) registerImportBindings(node *sitter.Node, scopes scopeStack) {
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch n.Kind() {
		case "import_specifier":
			local := n.ChildByFieldName("alias")
			if local == nil {
				local = n.ChildByFieldName("name")
			}
			if local != nil {
				scopes.known(fr.text(local))
			}
			return
		case "namespace_import":
			if id := jsparse.FirstNamedChild(n); id != nil {
				scopes.known(fr.text(id))
			}
			return
		case "identifier":
			scopes.known(fr.text(n))
			return
		}
		for _, child := range jsparse.NamedChildren(n) {
			walk(child)
		}
	}
	for _, child := range jsparse.NamedChildren(node) {
		if child.Kind() == "import_clause" {
			walk(child)
		}
	}
}

// unknownKind warns once per distinct node kind per run, then accepts that
// kind silently.
func (fr *fileRun) unknownKind(node *sitter.Node) {
	kind := node.Kind()
	if fr.an.silenced[kind] {
		return
	}
	fr.an.silenced[kind] = true
	slog.Warn("unknown node kind",
		"path", fr.path, "line", jsparse.Line(node), "column", jsparse.Column(node), "kind", kind)
}

func (fr *fileRun) text(node *sitter.Node) string {
	return jsparse.Text(fr.source, node)
}

func (fr *fileRun) sourceLine(line int) string {
	if line < 1 || line > len(fr.lines) {
		return ""
	}
	return fr.lines[line-1]
}

// isAllCaps reports whether a name is written entirely in capitals: at least
// one uppercase letter and no lowercase ones.
func isAllCaps(name string) bool {
	caps := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			caps = true
		}
	}
	return caps
}
