// # internal/analyzer/call.go
package analyzer

import (
	"log/slog"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/Rosuav/Choc/internal/jsparse"
)

// Member calls whose arguments always become rendered content.
var domAdditionMethods = map[string]bool{
	"appendChild":  true,
	"before":       true,
	"after":        true,
	"append":       true,
	"prepend":      true,
	"insertBefore": true,
	"replaceWith":  true,
}

// Element families namespaced even without an explicit import key.
var defaultNamespaces = map[string]string{
	"SVG": "svg",
}

// Per-namespace transform applied when rendering a desired source key.
var namespaceTransforms = map[string]func(string) string{
	"svg": strings.ToLower,
}

// resolveNamespace picks the namespace for an element name: an explicit
// per-name entry learned from the import wins, then the built-in defaults,
// then whatever namespace an enclosing call handed down.
func (fr *fileRun) resolveNamespace(name, inherited string) string {
	if ns, ok := fr.namespaces[name]; ok {
		return ns
	}
	if ns, ok := defaultNamespaces[name]; ok {
		return ns
	}
	return inherited
}

func (fr *fileRun) visitCall(node *sitter.Node, scopes scopeStack, r role, xmlns string) {
	callee := node.ChildByFieldName("function")
	if callee == nil {
		callee = node.ChildByFieldName("constructor")
	}
	callee = unwrapParens(callee)
	args := node.ChildByFieldName("arguments")
	if callee == nil {
		fr.visit(args, scopes, r, xmlns)
		return
	}

	if callee.Kind() == "identifier" {
		name := fr.text(callee)
		// The inherited namespace is consumed here; the resolved one flows on
		// into the arguments.
		resolved := fr.resolveNamespace(name, xmlns)
		fr.visit(args, scopes, r, resolved)

		if name == "set_content" || name == "replace_content" {
			// Setting content: first arg is the target, second the content.
			// Mismatches of choc/replace_content or lindt/set_content are
			// not validated.
			list := callArgs(args)
			if len(list) < 2 {
				return // Huh. Need two args. Whatever.
			}
			fr.visit(list[1], scopes, roleContent, "")
			if len(list) > 2 {
				line := jsparse.Line(node)
				slog.Warn("extra arguments to set_content - did you intend to pass an array?",
					"path", fr.path, "line", line, "source", strings.TrimSpace(fr.sourceLine(line)))
			}
		}

		if r == roleContent {
			if candidates, _, ok := scopes.lookup(name); ok {
				// A local function shadows an element of the same name.
				// Descend into it for return values; if it was already
				// scanned under this role, this quickly returns.
				fr.visitAll(candidates, scopes[:1], roleReturn, "")
				return
			}
			// A construction call is never a factory element.
			if isAllCaps(name) && node.Kind() == "call_expression" {
				if resolved != "" {
					rendered := name
					if xfrm := namespaceTransforms[resolved]; xfrm != nil {
						rendered = xfrm(name)
					}
					fr.wantImports[name] = `"` + resolved + ":" + rendered + `"`
					if _, ok := fr.namespaces[name]; !ok {
						fr.namespaces[name] = resolved
					}
				} else {
					fr.wantImports[name] = name
				}
			}
		}
		return
	}

	// A function's arguments can be incorporated into its return value.
	fr.visit(args, scopes, r, xmlns)

	receiverRole := r
	if r == roleContent {
		receiverRole = roleReturn
	}

	switch callee.Kind() {
	case "member_expression":
		object := callee.ChildByFieldName("object")
		property := callee.ChildByFieldName("property")
		// "foo(...).spam()" starts out by calling "foo(...)".
		fr.visit(object, scopes, receiverRole, xmlns)
		method := fr.text(property)
		switch {
		case domAdditionMethods[method]:
			fr.visit(args, scopes, roleContent, xmlns)
		case method == "map":
			// stuff.map(e => ...) is effectively a call to that function;
			// its results feed whatever sink the collection feeds.
			mapRole := r
			if r == roleContent {
				mapRole = roleReturn
			}
			if list := callArgs(args); len(list) > 0 {
				fr.visit(list[0], scopes, mapRole, xmlns)
			}
		case method == "push" || method == "unshift":
			// Adding to an array is adding code to the definition of the
			// array; the values get attributed when the name is read.
			if object != nil && object.Kind() == "identifier" {
				scopes.appendTo(fr.text(object), args)
			}
		}

	case "subscript_expression":
		// "foo[x]()" starts out by evaluating foo and x.
		fr.visit(callee.ChildByFieldName("object"), scopes, receiverRole, xmlns)
		fr.visit(callee.ChildByFieldName("index"), scopes, r, xmlns)

	case "arrow_function", "function_expression":
		// Function expression, immediately called.
		fr.visit(callee, scopes, receiverRole, xmlns)
	}
	// Anything else (x()(), unrecognized shapes) gets no further attribution.
}

// callArgs returns the individual argument expressions of a call, or nil for
// tagged templates and other argument-less shapes.
func callArgs(args *sitter.Node) []*sitter.Node {
	if args == nil || args.Kind() != "arguments" {
		return nil
	}
	return jsparse.NamedChildren(args)
}

func unwrapParens(node *sitter.Node) *sitter.Node {
	for node != nil && node.Kind() == "parenthesized_expression" {
		node = jsparse.FirstNamedChild(node)
	}
	return node
}
