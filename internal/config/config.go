// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// ExtCalls are top-level function names treated as externally invoked
	// DOM generators, merged with any --extcall flags.
	ExtCalls []string `toml:"extcall"`
	Fix      bool     `toml:"fix"`
	Exclude  Exclude  `toml:"exclude"`
	Watch    Watch    `toml:"watch"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

func Default() *Config {
	return &Config{
		Exclude: Exclude{
			Dirs: []string{".git", "node_modules"},
		},
		Watch: Watch{
			Debounce: 500 * time.Millisecond,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}

	return cfg, nil
}
