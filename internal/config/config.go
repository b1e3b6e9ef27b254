// Package config builds the tool configuration once at startup. The result
// is a plain value passed explicitly to every consumer; nothing reads
// settings through a global.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config controls which functions are dumped and how reports are rendered.
type Config struct {
	// DumpMirProc, when non-empty, restricts dumping to the one function
	// with this name; all others are skipped.
	DumpMirProc string `toml:"dump_mir_proc"`

	ShowTempVariables    bool `toml:"show_temp_variables"`
	ShowStatementIndices bool `toml:"show_statement_indices"`
	DebugInfo            bool `toml:"debug_info"`

	// LogDir is where the host compiler leaves rendered IR dumps.
	LogDir string `toml:"log_dir"`

	// OutputDir mirrors the facts tree for graph output; empty writes the
	// graph next to its fact files.
	OutputDir string `toml:"output_dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ShowTempVariables:    true,
		ShowStatementIndices: true,
		LogDir:               "./log/",
	}
}

// Load resolves the configuration. Later sources win: defaults, then
// mirdump.toml in the working directory, then the file named by the
// MIRDUMP_CONFIG environment variable, then MIRDUMP_* variables, then the
// file named by flagPath (the --config flag; empty when not given). Other
// flag overrides are applied by the command afterwards.
func Load(flagPath string) (Config, error) {
	cfg := Default()

	if err := mergeFile(&cfg, "mirdump.toml", false); err != nil {
		return Config{}, err
	}
	if path := os.Getenv("MIRDUMP_CONFIG"); path != "" {
		if err := mergeFile(&cfg, path, true); err != nil {
			return Config{}, err
		}
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if flagPath != "" {
		if err := mergeFile(&cfg, flagPath, true); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// mergeFile overlays settings from a TOML file. Only keys present in the
// file override; a missing optional file is not an error.
func mergeFile(cfg *Config, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to stat config %q: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return nil
}

func mergeEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("MIRDUMP_DUMP_MIR_PROC"); ok {
		cfg.DumpMirProc = v
	}
	if v, ok := os.LookupEnv("MIRDUMP_LOG_DIR"); ok {
		cfg.LogDir = v
	}
	if v, ok := os.LookupEnv("MIRDUMP_OUTPUT_DIR"); ok {
		cfg.OutputDir = v
	}
	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{"MIRDUMP_SHOW_TEMP_VARIABLES", &cfg.ShowTempVariables},
		{"MIRDUMP_SHOW_STATEMENT_INDICES", &cfg.ShowStatementIndices},
		{"MIRDUMP_DEBUG_INFO", &cfg.DebugInfo},
	} {
		v, ok := os.LookupEnv(b.name)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", b.name, v)
		}
		*b.dst = parsed
	}
	return nil
}
