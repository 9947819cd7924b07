// # internal/analyzer/analyzer.go
//
// Static analysis of Chocolate Factory usage: finds every element factory
// call whose result can reach rendered content and reconciles the discovered
// set against the file's destructuring import. This is deliberately lexical
// and best-effort: every syntactic position is scanned, not only code
// reachable at runtime.
package analyzer

import (
	"fmt"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/Rosuav/Choc/internal/jsparse"
)

// Marker token: the first line whose trimmed text ends with this designates
// the declaration to rewrite.
const autoimportMarker = "autoimport"

// Analyzer holds per-run settings. All per-file state lives in a fileRun and
// is discarded when the file's result is emitted.
type Analyzer struct {
	// ExtCalls names top-level functions treated as externally invoked, so
	// their return values are scanned even without a local call site.
	ExtCalls []string

	// Node kinds already warned about this run.
	silenced map[string]bool
}

func New(extCalls ...string) *Analyzer {
	return &Analyzer{
		ExtCalls: extCalls,
		silenced: make(map[string]bool),
	}
}

// fileRun is the per-file walk state.
type fileRun struct {
	an     *Analyzer
	path   string
	source []byte
	lines  []string

	visited map[visitKey]bool

	gotImports  map[string]string // local name -> source key as written
	wantImports map[string]string // local name -> computed source key
	namespaces  map[string]string // local name -> namespace tag ("" = none)

	importSource string // "choc", or "lindt" if the file uses lindt

	autoimportLine int // 1-based; 0 when no marker line exists
	anchorFound    bool
	anchorStart    uint
	anchorEnd      uint
}

// AnalyzeFile reads and analyzes one file.
func (a *Analyzer) AnalyzeFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return a.Analyze(path, source)
}

// Analyze runs the full walk over one file's source and returns the import
// reconciliation result.
func (a *Analyzer) Analyze(path string, source []byte) (*Result, error) {
	tree, err := jsparse.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	fr := &fileRun{
		an:           a,
		path:         path,
		source:       source,
		lines:        strings.Split(string(source), "\n"),
		visited:      make(map[visitKey]bool),
		gotImports:   make(map[string]string),
		wantImports:  make(map[string]string),
		namespaces:   make(map[string]string),
		importSource: "choc",
	}
	for i, line := range fr.lines {
		if strings.HasSuffix(strings.TrimSpace(line), autoimportMarker) {
			fr.autoimportLine = i + 1
			break
		}
	}

	root := tree.RootNode()
	statements := jsparse.NamedChildren(root)

	// First pass: collect top-level function declarations (the ones that get
	// hoisted), and note exported all-caps ones for the external scan.
	top := scope{}
	scopes := scopeStack{top}
	var exported []*sitter.Node
	for _, stmt := range statements {
		decl := stmt
		isExport := stmt.Kind() == "export_statement"
		if isExport {
			decl = stmt.ChildByFieldName("declaration")
			if decl == nil {
				continue // a re-export or similar
			}
		}
		switch decl.Kind() {
		case "function_declaration", "generator_function_declaration":
		default:
			continue
		}
		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := fr.text(nameNode)
		top[name] = []*sitter.Node{decl}
		if isExport && isAllCaps(name) {
			exported = append(exported, decl)
		}
	}

	// Second pass: recursively look for all content-setting calls.
	for _, stmt := range statements {
		fr.visit(stmt, scopes, roleProbe, "")
	}

	// Functions consumed elsewhere can return DOM elements. They may have
	// been scanned already; the per-role memo makes a re-scan cheap.
	for _, name := range a.ExtCalls {
		if candidates, ok := top[name]; ok {
			fr.visitAll(candidates, scopes, roleReturn, "")
		}
	}
	fr.visitAll(exported, scopes, roleReturn, "")

	return fr.reconcile(), nil
}
