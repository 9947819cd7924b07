// # cmd/chocimport/app.go
package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"github.com/Rosuav/Choc/internal/analyzer"
	"github.com/Rosuav/Choc/internal/config"
	"github.com/Rosuav/Choc/internal/watcher"
)

type App struct {
	Config   *config.Config
	Analyzer *analyzer.Analyzer

	fsWatcher *watcher.Watcher
}

func NewApp(cfg *config.Config) *App {
	return &App{
		Config:   cfg,
		Analyzer: analyzer.New(cfg.ExtCalls...),
	}
}

// ResolveTargets expands the command-line arguments into the list of files to
// analyze: "-" passes through, files pass through, directories are scanned
// for .js files honoring the configured excludes.
func (a *App) ResolveTargets(args []string) ([]string, error) {
	dirGlobs, err := compileGlobs(a.Config.Exclude.Dirs)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude dir pattern: %w", err)
	}
	fileGlobs, err := compileGlobs(a.Config.Exclude.Files)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude file pattern: %w", err)
	}

	var files []string
	for _, arg := range args {
		if arg == "-" {
			files = append(files, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			if d.IsDir() {
				if matchAny(dirGlobs, base) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(base, ".js") || matchAny(fileGlobs, base) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// ProcessFile analyzes one file, prints any discrepancy, and applies the
// rewrite when fixing is enabled. "-" analyzes the built-in self-test module
// and prints its corrected source instead of writing anything.
func (a *App) ProcessFile(path string) error {
	if path == "-" {
		res, err := a.Analyzer.Analyze("-", []byte(selfTest))
		if err != nil {
			return err
		}
		printResult(res)
		if res.Rewritten != nil {
			fmt.Print(string(res.Rewritten))
		}
		return nil
	}

	res, err := a.Analyzer.AnalyzeFile(path)
	if err != nil {
		return err
	}
	printResult(res)

	if a.Config.Fix && res.Rewritten != nil {
		if err := os.WriteFile(path, res.Rewritten, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.Debug("import updated", "path", path, "statement", res.Statement)
	}
	return nil
}

// StartWatcher re-checks files as they change under the argument paths.
func (a *App) StartWatcher(args []string) error {
	var roots []string
	for _, arg := range args {
		if arg != "-" {
			roots = append(roots, arg)
		}
	}
	if len(roots) == 0 {
		return fmt.Errorf("nothing to watch")
	}

	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.onFilesChanged,
	)
	if err != nil {
		return err
	}
	a.fsWatcher = w
	return w.Watch(roots)
}

func (a *App) onFilesChanged(paths []string) {
	run := uuid.NewString()
	slog.Info("re-checking changed files", "run", run, "count", len(paths))
	for _, path := range paths {
		if err := a.ProcessFile(path); err != nil {
			// Keep watching; a broken intermediate save is normal.
			slog.Warn("analysis failed", "run", run, "path", path, "error", err)
		}
	}
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, value string) bool {
	for _, g := range globs {
		if g.Match(value) {
			return true
		}
	}
	return false
}
