// # internal/analyzer/scope_test.go
package analyzer

import (
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/Rosuav/Choc/internal/jsparse"
)

// testNodes parses a throwaway module and returns its top-level statements,
// giving the scope tests distinct real nodes to bind.
func testNodes(t *testing.T) []*sitter.Node {
	t.Helper()
	tree, err := jsparse.Parse([]byte("a();\nb();\nc();\nd();\n"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(tree.Close)
	return jsparse.NamedChildren(tree.RootNode())
}

func TestScopeLookupShadowing(t *testing.T) {
	nodes := testNodes(t)
	outer := scope{"x": {nodes[0]}}
	inner := scope{"x": {nodes[1]}}
	ss := scopeStack{outer, inner}

	candidates, remaining, ok := ss.lookup("x")
	if !ok {
		t.Fatal("Expected to find x")
	}
	if len(candidates) != 1 || candidates[0] != nodes[1] {
		t.Error("Inner binding should shadow the outer one")
	}
	if len(remaining) != 2 {
		t.Errorf("Expected full stack back for innermost match, got %d scopes", len(remaining))
	}
}

func TestScopeLookupTruncates(t *testing.T) {
	nodes := testNodes(t)
	outer := scope{"x": {nodes[0]}}
	inner := scope{"y": {nodes[1]}}
	ss := scopeStack{outer, inner}

	_, remaining, ok := ss.lookup("x")
	if !ok {
		t.Fatal("Expected to find x in the outer scope")
	}
	// The inner scope must not be visible while exploring x's candidates.
	if len(remaining) != 1 {
		t.Fatalf("Expected stack truncated to 1 scope, got %d", len(remaining))
	}
	if _, _, ok := remaining.lookup("y"); ok {
		t.Error("y should not be reachable through the truncated stack")
	}
}

func TestScopeAssignAppendsToOwner(t *testing.T) {
	nodes := testNodes(t)
	outer := scope{"x": {nodes[0]}}
	ss := scopeStack{outer}.push()

	ss.assign("x", nodes[1])
	if len(outer["x"]) != 2 {
		t.Errorf("Expected candidates appended to owning scope, got %v", outer["x"])
	}

	// Unbound names land at top level.
	ss.assign("fresh", nodes[2])
	if len(outer["fresh"]) != 1 {
		t.Errorf("Expected fresh top-level binding, got %v", outer["fresh"])
	}
}

func TestScopeAppendToRequiresBinding(t *testing.T) {
	nodes := testNodes(t)
	outer := scope{"arr": nil}
	ss := scopeStack{outer}.push()

	if !ss.appendTo("arr", nodes[0]) {
		t.Error("Expected append to existing binding to succeed")
	}
	if ss.appendTo("ghost", nodes[1]) {
		t.Error("Append to an unbound name must do nothing")
	}
	if len(outer["arr"]) != 1 {
		t.Errorf("Expected 1 candidate, got %d", len(outer["arr"]))
	}
}

func TestScopePushDoesNotAliasStack(t *testing.T) {
	nodes := testNodes(t)
	base := scopeStack{scope{}}
	left := base.push()
	right := base.push()

	left.declare("only_left", nodes[0])
	if _, _, ok := right.lookup("only_left"); ok {
		t.Error("Sibling stacks must not share their innermost scope")
	}
	if _, _, ok := base.lookup("only_left"); ok {
		t.Error("Pushed scope leaked into the base stack")
	}
}

func TestScopeKnown(t *testing.T) {
	ss := scopeStack{scope{}}
	ss.known("DOM")

	candidates, _, ok := ss.lookup("DOM")
	if !ok {
		t.Fatal("Known name should be found")
	}
	if len(candidates) != 0 {
		t.Errorf("Known name should carry no code, got %d candidates", len(candidates))
	}
}
