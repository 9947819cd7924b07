// # cmd/chocimport/app_test.go
package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Rosuav/Choc/internal/analyzer"
	"github.com/Rosuav/Choc/internal/config"
)

func TestSelfTestFixture(t *testing.T) {
	res, err := analyzer.New().Analyze("-", []byte(selfTest))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed {
		t.Fatal("The fixture is supposed to have discrepancies")
	}
	if !reflect.DeepEqual(res.Lose, []string{"DIV"}) {
		t.Errorf("Expected LOSE [DIV], got %v", res.Lose)
	}
	if !reflect.DeepEqual(res.Gain, []string{"B", "FIGURE", "PRE", "SPAN"}) {
		t.Errorf("Expected GAIN [B FIGURE PRE SPAN], got %v", res.Gain)
	}
	if res.Statement != "const {B, FIGURE, FORM, INPUT, LABEL, PRE, SPAN} = choc;" {
		t.Errorf("Unexpected statement: %s", res.Statement)
	}
	if res.Rewritten == nil {
		t.Error("The fixture carries an autoimport marker, so a rewrite should be offered")
	}
}

func TestResolveTargets(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(path, content string) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite(filepath.Join(dir, "page.js"), "const x = 1;")
	mustWrite(filepath.Join(dir, "notes.txt"), "not js")
	mustWrite(filepath.Join(dir, "bundle.min.js"), "var a;")
	mustWrite(filepath.Join(dir, "node_modules", "dep.js"), "const y = 2;")
	mustWrite(filepath.Join(dir, "sub", "widget.js"), "const z = 3;")

	cfg := config.Default()
	cfg.Exclude.Files = []string{"*.min.js"}
	app := NewApp(cfg)

	files, err := app.ResolveTargets([]string{"-", dir})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{}
	want["-"] = true
	want[filepath.Join(dir, "page.js")] = true
	want[filepath.Join(dir, "sub", "widget.js")] = true
	if len(files) != len(want) {
		t.Fatalf("Expected %d targets, got %v", len(want), files)
	}
	for _, f := range files {
		if !want[f] {
			t.Errorf("Unexpected target %s", f)
		}
	}
}

func TestProcessFileFix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.js")
	source := "const {SPAN} = choc; //autoimport\nset_content(\"main\", DIV(\"x\"));\n"
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Fix = true
	app := NewApp(cfg)
	if err := app.ProcessFile(path); err != nil {
		t.Fatal(err)
	}

	fixed, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "const {DIV} = choc; //autoimport\nset_content(\"main\", DIV(\"x\"));\n"
	if string(fixed) != want {
		t.Errorf("Unexpected fixed source:\n%s", fixed)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	// A malformed config file is an error, never silently replaced with
	// defaults.
	bad := filepath.Join(dir, "chocimport.toml")
	if err := os.WriteFile(bad, []byte("bad = toml = format"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(bad); err == nil {
		t.Error("Expected an error for a malformed config file")
	}

	// An explicitly named config file must exist.
	if _, err := loadConfig(filepath.Join(dir, "nonexistent.toml")); err == nil {
		t.Error("Expected an error for a missing explicit config file")
	}

	// The default path is allowed to be absent.
	t.Chdir(t.TempDir())
	cfg, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("Missing default config should fall back to defaults: %v", err)
	}
	if len(cfg.Exclude.Dirs) == 0 {
		t.Error("Expected default excludes")
	}
}

func TestStringListFlag(t *testing.T) {
	var list stringList
	list.Set("make_content")
	list.Set("render_page")
	if !reflect.DeepEqual([]string(list), []string{"make_content", "render_page"}) {
		t.Errorf("Unexpected list: %v", list)
	}
}
