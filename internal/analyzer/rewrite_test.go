// # internal/analyzer/rewrite_test.go
package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const rewriteSource = `import choc, {set_content} from "choc";
// Page layout.
const {DIV, SPAN} = choc; //autoimport
function page() {
	return DIV(items.map(i => LI(i.label)));
}
set_content("main", page());
`

func TestRewriteAnchorsToMarkedStatement(t *testing.T) {
	res, err := New().Analyze("page.js", []byte(rewriteSource))
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Equal(t, []string{"SPAN"}, res.Lose)
	require.Equal(t, []string{"LI"}, res.Gain)
	require.NotNil(t, res.Rewritten)

	before := strings.Split(rewriteSource, "\n")
	after := strings.Split(string(res.Rewritten), "\n")
	require.Len(t, after, len(before))
	for i := range before {
		if i == 2 {
			require.Equal(t, "const {DIV, LI} = choc; //autoimport", after[i])
			continue
		}
		// Every other line survives byte for byte.
		require.Equal(t, before[i], after[i], "line %d changed", i+1)
	}
}

func TestRewriteIsIdempotent(t *testing.T) {
	a := New()
	res, err := a.Analyze("page.js", []byte(rewriteSource))
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.NotNil(t, res.Rewritten)

	again, err := a.Analyze("page.js", res.Rewritten)
	require.NoError(t, err)
	require.False(t, again.Changed, "re-analysis found LOSE %v GAIN %v", again.Lose, again.Gain)
	require.Nil(t, again.Rewritten)
}

func TestRewritePreservesNamespaceKeys(t *testing.T) {
	source := `const {"svg:path": PATH} = choc; //autoimport
set_content("main", SVG([PATH(), LINE()]));
`
	a := New()
	res, err := a.Analyze("drawing.js", []byte(source))
	require.NoError(t, err)
	require.Equal(t,
		`const {"svg:line": LINE, "svg:path": PATH, "svg:svg": SVG} = choc;`,
		res.Statement)

	again, err := a.Analyze("drawing.js", res.Rewritten)
	require.NoError(t, err)
	require.False(t, again.Changed, "re-analysis found LOSE %v GAIN %v", again.Lose, again.Gain)
}
