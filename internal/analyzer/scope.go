// # internal/analyzer/scope.go
package analyzer

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// scope maps a bound name to every expression that may produce its value.
// Candidate lists are append-only within one walk; multiple entries model
// branchy or repeatedly-assigned variables, all of which get explored.
type scope map[string][]*sitter.Node

// scopeStack is an ordered sequence of scopes, innermost last. Lookups walk
// from innermost outward and stop at the first scope holding the name.
type scopeStack []scope

// push returns a new stack with an empty innermost scope. The existing scopes
// are shared, so bindings made inside the callee remain visible to siblings
// that share the outer scopes.
func (ss scopeStack) push() scopeStack {
	out := make(scopeStack, len(ss)+1)
	copy(out, ss)
	out[len(ss)] = scope{}
	return out
}

// declare appends a candidate expression for name in the innermost scope.
func (ss scopeStack) declare(name string, node *sitter.Node) {
	inner := ss[len(ss)-1]
	inner[name] = append(inner[name], node)
}

// known marks name as a known binding with no attached code (import specifiers).
func (ss scopeStack) known(name string) {
	inner := ss[len(ss)-1]
	if _, ok := inner[name]; !ok {
		inner[name] = nil
	}
}

// assign appends the right-hand expression to whichever enclosing scope
// already binds name, or creates a fresh top-level binding if none does.
func (ss scopeStack) assign(name string, node *sitter.Node) {
	for i := len(ss) - 1; i >= 0; i-- {
		if _, ok := ss[i][name]; ok {
			ss[i][name] = append(ss[i][name], node)
			return
		}
	}
	ss[0][name] = []*sitter.Node{node}
}

// appendTo adds a candidate to an existing binding (array push/unshift
// semantics). Unlike assign, it does nothing when the name is unbound.
func (ss scopeStack) appendTo(name string, node *sitter.Node) bool {
	for i := len(ss) - 1; i >= 0; i-- {
		if _, ok := ss[i][name]; ok {
			ss[i][name] = append(ss[i][name], node)
			return true
		}
	}
	return false
}

// lookup finds the innermost scope binding name. It returns the candidate
// expressions and the stack truncated at (and including) the owning scope:
// bindings lexically inside scopes deeper than the owner must not be visible
// when the candidates are re-explored.
func (ss scopeStack) lookup(name string) ([]*sitter.Node, scopeStack, bool) {
	for i := len(ss) - 1; i >= 0; i-- {
		if candidates, ok := ss[i][name]; ok {
			return candidates, ss[:i+1], true
		}
	}
	return nil, nil, false
}
