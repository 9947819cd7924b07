// # internal/analyzer/imports.go
package analyzer

import (
	"log/slog"
	"slices"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/Rosuav/Choc/internal/jsparse"
	"github.com/Rosuav/Choc/internal/shared/util"
)

// Result describes the discrepancy between the current and desired import
// set for one file.
type Result struct {
	Path string

	// Changed is true when the sorted desired names differ from the names
	// currently imported.
	Changed bool

	Lose []string // currently imported, never used
	Gain []string // used, missing from the import
	Want []string // full sorted desired set

	// Clause is the rendered destructuring list, preserving existing source
	// key spellings, e.g. `DIV, "svg:path": PATH`.
	Clause string
	// Statement is the full replacement statement.
	Statement string
	// Rewritten is the complete source with the Statement spliced in at the
	// anchor range; nil when no anchor line was found.
	Rewritten []byte
}

// recordImportPattern reads the destructuring import pattern and fills the
// currently-imported and namespace tables. Only properties bound to an
// all-uppercase local name are treated as elements.
func (fr *fileRun) recordImportPattern(pattern *sitter.Node, source string) {
	for _, prop := range jsparse.NamedChildren(pattern) {
		switch prop.Kind() {
		case "shorthand_property_identifier_pattern":
			name := fr.text(prop)
			if !isAllCaps(name) {
				continue
			}
			fr.gotImports[name] = name
			fr.namespaces[name] = ""

		case "pair_pattern":
			value := prop.ChildByFieldName("value")
			if value == nil || value.Kind() != "identifier" {
				continue
			}
			name := fr.text(value)
			if !isAllCaps(name) {
				continue
			}
			key := prop.ChildByFieldName("key")
			switch {
			case key == nil:
				continue
			case key.Kind() == "property_identifier":
				fr.gotImports[name] = fr.text(key)
				fr.namespaces[name] = ""
			case key.Kind() == "string":
				raw := fr.text(key) // keeps the quotes
				fr.gotImports[name] = raw
				inner := strings.Trim(raw, "\"'`")
				ns := ""
				if i := strings.LastIndex(inner, ":"); i >= 0 {
					ns = inner[:i]
				}
				fr.namespaces[name] = ns
			default:
				slog.Warn("unrecognized import destructuring key",
					"path", fr.path, "line", jsparse.Line(key), "kind", key.Kind())
			}
		}
	}
	fr.importSource = source
}

// reconcile diffs the desired import set against the current one and, when an
// anchor statement exists, renders the corrected source.
func (fr *fileRun) reconcile() *Result {
	res := &Result{Path: fr.path}

	have := util.SortedStringKeys(fr.gotImports)
	want := util.SortedStringKeys(fr.wantImports)
	if slices.Equal(have, want) {
		return res
	}
	res.Changed = true
	res.Want = want

	for _, name := range have {
		if _, ok := fr.wantImports[name]; !ok {
			res.Lose = append(res.Lose, name)
		}
	}
	for _, name := range want {
		if _, ok := fr.gotImports[name]; !ok {
			res.Gain = append(res.Gain, name)
		}
	}

	rendered := make([]string, 0, len(want))
	for _, name := range want {
		// Prefer the spelling already in the import, so renames and
		// namespace keys survive the rewrite.
		source, ok := fr.gotImports[name]
		if !ok {
			source = fr.wantImports[name]
		}
		if source == name {
			rendered = append(rendered, name)
		} else {
			rendered = append(rendered, source+": "+name)
		}
	}
	res.Clause = strings.Join(rendered, ", ")
	res.Statement = "const {" + res.Clause + "} = " + fr.importSource + ";"

	if fr.anchorFound {
		updated := make([]byte, 0, len(fr.source)+len(res.Statement))
		updated = append(updated, fr.source[:fr.anchorStart]...)
		updated = append(updated, res.Statement...)
		updated = append(updated, fr.source[fr.anchorEnd:]...)
		res.Rewritten = updated
	}
	return res
}
