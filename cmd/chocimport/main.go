// # cmd/chocimport/main.go
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Rosuav/Choc/internal/config"
)

const defaultConfigPath = "./chocimport.toml"

var (
	configPath = flag.String("config", defaultConfigPath, "Path to config file")
	fix        = flag.Bool("fix", false, "Fix any discrepancies automatically")
	watch      = flag.Bool("watch", false, "Keep running and re-check files as they change")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

// stringList is a repeatable flag value.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint(*s) }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// loadConfig reads the config file. The default path is allowed to be absent,
// falling back to defaults; a file that exists but fails to decode is always
// an error, so a broken config never gets silently ignored.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if os.IsNotExist(err) && path == defaultConfigPath {
		return config.Default(), nil
	}
	return nil, err
}

func main() {
	var extCalls stringList
	flag.Var(&extCalls, "extcall", "Identify an externally-called DOM generation function (repeatable)")
	flag.Parse()

	if *version {
		fmt.Printf("chocimport v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	cfg.ExtCalls = append(cfg.ExtCalls, extCalls...)
	if *fix {
		cfg.Fix = true
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: chocimport [flags] file.js [file.js | dir ...]  (- for the self-test fixture)")
		os.Exit(1)
	}

	app := NewApp(cfg)

	files, err := app.ResolveTargets(flag.Args())
	if err != nil {
		slog.Error("failed to resolve targets", "error", err)
		os.Exit(1)
	}

	for _, path := range files {
		if err := app.ProcessFile(path); err != nil {
			slog.Error("analysis failed", "path", path, "error", err)
			os.Exit(1)
		}
	}

	if !*watch {
		return
	}

	if err := app.StartWatcher(flag.Args()); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	// Block forever
	select {}
}
