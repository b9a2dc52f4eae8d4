// Package config — .pokit.yaml configuration file support.
//
// When a .pokit.yaml file exists in the working directory, pokit uses it
// for named catalog pairs and for the defaults of the fill and lint
// commands. Nothing is auto-detected — every pair must be explicitly
// declared, and the loaded configuration is plain data passed into the
// commands that need it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// PokitFile is the top-level .pokit.yaml structure.
type PokitFile struct {
	// AllowSingleWord is the default for fill's --allow-single-word flag.
	AllowSingleWord bool `yaml:"allow_single_word,omitempty"`
	// Checks is the default check selection for lint ("format", "punctuation").
	Checks []string `yaml:"checks,omitempty"`
	// Pairs is the list of named source/target catalog couples.
	Pairs []Pair `yaml:"pairs,omitempty"`

	// Dir is the directory the file was loaded from; pair paths are
	// resolved relative to it. Not part of the YAML schema.
	Dir string `yaml:"-"`
}

// Pair names a (source, target) catalog couple for compare and fill.
type Pair struct {
	// Name is the label given to --pair.
	Name string `yaml:"name"`
	// Source is the catalog translations are taken from, relative to Dir.
	Source string `yaml:"source"`
	// Target is the catalog being filled or compared, relative to Dir.
	Target string `yaml:"target"`
}

// CheckFormat and CheckPunctuation are the valid entries of Checks.
const (
	CheckFormat      = "format"
	CheckPunctuation = "punctuation"
)

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// PokitFileName is the default config file name.
const PokitFileName = ".pokit.yaml"

// LoadPokitFile loads and validates .pokit.yaml from the given directory.
// Returns nil if no .pokit.yaml exists.
func LoadPokitFile(rootDir string) (*PokitFile, error) {
	path := filepath.Join(rootDir, PokitFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var pf PokitFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	pf.Dir = rootDir

	// Defaults
	if len(pf.Checks) == 0 {
		pf.Checks = []string{CheckFormat, CheckPunctuation}
	}

	// Validate
	for _, c := range pf.Checks {
		if c != CheckFormat && c != CheckPunctuation {
			return nil, fmt.Errorf("%s: unknown check %q (valid: %s, %s)", path, c, CheckFormat, CheckPunctuation)
		}
	}

	seen := make(map[string]bool, len(pf.Pairs))
	for i, p := range pf.Pairs {
		if p.Name == "" {
			return nil, fmt.Errorf("%s: pair #%d has no name", path, i+1)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%s: duplicate pair name %q", path, p.Name)
		}
		seen[p.Name] = true
		if p.Source == "" || p.Target == "" {
			return nil, fmt.Errorf("%s: pair %q needs both source and target", path, p.Name)
		}
	}

	return &pf, nil
}

// ---------------------------------------------------------------------------
// Resolving pairs
// ---------------------------------------------------------------------------

// Pair looks up a pair by name and resolves its paths relative to the
// config file's directory. Both catalog files must exist; a missing one
// is reported here, before any document is read.
func (pf *PokitFile) Pair(name string) (source, target string, err error) {
	for _, p := range pf.Pairs {
		if p.Name != name {
			continue
		}
		source = filepath.Join(pf.Dir, p.Source)
		target = filepath.Join(pf.Dir, p.Target)
		for _, path := range []string{source, target} {
			if _, err := os.Stat(path); err != nil {
				return "", "", fmt.Errorf("pair %q: %w", name, err)
			}
		}
		return source, target, nil
	}

	var names []string
	for _, p := range pf.Pairs {
		names = append(names, p.Name)
	}
	return "", "", fmt.Errorf("unknown pair %q (defined: %v)", name, names)
}
