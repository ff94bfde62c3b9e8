// Package config holds the solver configuration surface: which
// external SMT solver to run, how chatty the trace should be, and
// where to look for the axiom prelude before falling back to the
// embedded copy.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PreludeFileName is the axiom file searched for in PreludeDirs.
const PreludeFileName = "FunTC.z3"

// ConfigFileNames are the recognized configuration file names, in
// preference order.
var ConfigFileNames = []string{"funtc.yaml", "funtc.yml"}

// EnvPreludeDir, when set, is searched for the axiom file before the
// configured directories.
const EnvPreludeDir = "FUNTC_PRELUDE_DIR"

// Config is the top-level funtc.yaml configuration.
type Config struct {
	// Solver describes the external SMT process to run.
	Solver SolverConfig `yaml:"solver"`

	// Verbosity controls the debug trace: 0 silent, 1 logs goal-engine
	// activity, 2 and above also logs raw solver traffic.
	Verbosity int `yaml:"verbosity,omitempty"`

	// PreludeDirs are searched in order for the axiom file. The
	// embedded copy is used when no directory yields one.
	PreludeDirs []string `yaml:"prelude_dirs,omitempty"`
}

// SolverConfig identifies the solver executable.
type SolverConfig struct {
	// Path is the executable name or path (resolved via PATH when bare).
	Path string `yaml:"path"`

	// Args are passed verbatim. The solver must read SMT-LIB 2 from
	// stdin and answer on stdout.
	Args []string `yaml:"args,omitempty"`
}

// Default returns the configuration used when no funtc.yaml is found:
// z3 in incremental stdin mode, silent trace, no extra prelude dirs.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Path: "z3",
			Args: []string{"-smt2", "-in"},
		},
	}
}

// LoadConfig reads and parses a funtc.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses funtc.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig searches for funtc.yaml starting from dir and walking up
// to parent directories. Returns the path and nil error if found, or
// empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// PreludeSearchDirs returns the effective prelude search path: the
// environment override first, then the configured directories.
func (c *Config) PreludeSearchDirs() []string {
	var dirs []string
	if env := os.Getenv(EnvPreludeDir); env != "" {
		dirs = append(dirs, env)
	}
	dirs = append(dirs, c.PreludeDirs...)
	return dirs
}

func (c *Config) validate(path string) error {
	if c.Solver.Path == "" {
		return fmt.Errorf("%s: solver.path is required", path)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("%s: verbosity must be non-negative, got %d", path, c.Verbosity)
	}
	for i, dir := range c.PreludeDirs {
		if dir == "" {
			return fmt.Errorf("%s: prelude_dirs[%d] is empty", path, i)
		}
	}
	return nil
}
