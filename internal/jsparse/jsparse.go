// # internal/jsparse/jsparse.go
package jsparse

import (
	"errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

var language = sitter.NewLanguage(tree_sitter_javascript.Language())

// Parse turns JavaScript source into a tree-sitter syntax tree.
// The caller owns the tree and must Close it.
func Parse(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}
	return tree, nil
}

// Text returns the source text covered by a node.
func Text(source []byte, node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// NamedChildren returns a node's named children, skipping comments.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	children := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		children = append(children, child)
	}
	return children
}

// FirstNamedChild returns the first named non-comment child, or nil.
func FirstNamedChild(node *sitter.Node) *sitter.Node {
	for _, child := range NamedChildren(node) {
		return child
	}
	return nil
}

// Line returns the 1-based line number of a node's start.
func Line(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// Column returns the 1-based column number of a node's start.
func Column(node *sitter.Node) int {
	return int(node.StartPosition().Column) + 1
}
