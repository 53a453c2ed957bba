// Package config loads rational.toml, the per-directory defaults for the
// rational CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"rational/internal/calc"
	"rational/internal/trace"
)

// FileName is the configuration file searched for by Find.
const FileName = "rational.toml"

// ErrNotFound is returned by Find when no rational.toml exists in the
// start directory or any of its parents.
var ErrNotFound = errors.New("no " + FileName + " found")

// MaxPrecision bounds output.precision.
const MaxPrecision = 100_000

// Config is the decoded rational.toml.
type Config struct {
	Output Output `toml:"output"`
	Eval   Eval   `toml:"eval"`
	Trace  Trace  `toml:"trace"`
}

type Output struct {
	Precision uint   `toml:"precision"`
	Format    string `toml:"format"` // fraction|decimal|both
}

type Eval struct {
	Mode  string `toml:"mode"` // rational|integer
	Jobs  int    `toml:"jobs"` // 0 means GOMAXPROCS
	Cache bool   `toml:"cache"`
}

type Trace struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

// Output formats.
const (
	FormatFraction = "fraction"
	FormatDecimal  = "decimal"
	FormatBoth     = "both"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Output: Output{Precision: 10, Format: FormatFraction},
		Eval:   Eval{Mode: calc.ModeRational.String(), Cache: true},
		Trace:  Trace{Level: trace.LevelOff.String(), Mode: trace.ModeRing.String(), Output: "-"},
	}
}

// Find walks up from startDir looking for rational.toml.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load decodes path over Default and validates the result. Keys missing
// from the file keep their defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("output", "format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest rational.toml. When there is none it
// returns Default and an empty path.
func Discover(startDir string) (Config, string, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), "", nil
	}
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// Validate checks every enumerated field.
func (c Config) Validate() error {
	switch c.Output.Format {
	case FormatFraction, FormatDecimal, FormatBoth:
	default:
		return fmt.Errorf("[output].format: invalid value %q (expected: fraction|decimal|both)", c.Output.Format)
	}
	if c.Output.Precision > MaxPrecision {
		return fmt.Errorf("[output].precision: %d exceeds %d", c.Output.Precision, MaxPrecision)
	}
	if _, err := calc.ParseMode(c.Eval.Mode); err != nil {
		return fmt.Errorf("[eval].mode: %w", err)
	}
	if c.Eval.Jobs < 0 {
		return fmt.Errorf("[eval].jobs: must not be negative, got %d", c.Eval.Jobs)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("[trace].mode: %w", err)
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
