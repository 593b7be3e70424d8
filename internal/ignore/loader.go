// Package ignore loads a .pgschemaignore TOML file and applies its
// glob patterns to filter tables, views, functions, types, and
// sequences out of an ir.Schema before it takes part in a diff, so an
// object a team doesn't manage through schemadrift (a third-party
// extension's tables, a legacy view) never shows up as drift.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/schemadrift/schemadrift/internal/ir"
)

// IgnoreFileName is the default name of the ignore file.
const IgnoreFileName = ".pgschemaignore"

// Config is the parsed .pgschemaignore file: one glob-pattern list per
// object kind. A pattern prefixed with "!" excludes a name from an
// otherwise-matching ignore pattern rather than adding one.
type Config struct {
	Tables    []string `toml:"tables,omitempty"`
	Views     []string `toml:"views,omitempty"`
	Functions []string `toml:"functions,omitempty"`
	Types     []string `toml:"types,omitempty"`
	Sequences []string `toml:"sequences,omitempty"`
}

type tomlConfig struct {
	Tables    patternList `toml:"tables,omitempty"`
	Views     patternList `toml:"views,omitempty"`
	Functions patternList `toml:"functions,omitempty"`
	Types     patternList `toml:"types,omitempty"`
	Sequences patternList `toml:"sequences,omitempty"`
}

type patternList struct {
	Patterns []string `toml:"patterns,omitempty"`
}

// Load loads the .pgschemaignore file from the current directory.
// Returns a nil Config, with no error, if the file doesn't exist:
// ignore filtering is opt-in.
func Load() (*Config, error) {
	return LoadFromPath(IgnoreFileName)
}

// LoadFromPath loads an ignore file from the given path. Returns a nil
// Config, with no error, if the file doesn't exist.
func LoadFromPath(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var raw tomlConfig
	if _, err := toml.DecodeFile(filePath, &raw); err != nil {
		return nil, err
	}

	return &Config{
		Tables:    raw.Tables.Patterns,
		Views:     raw.Views.Patterns,
		Functions: raw.Functions.Patterns,
		Types:     raw.Types.Patterns,
		Sequences: raw.Sequences.Patterns,
	}, nil
}

func (c *Config) shouldIgnore(name string, patterns []string) bool {
	if c == nil || len(patterns) == 0 {
		return false
	}

	matched := false
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "!") {
			continue
		}
		if matchPattern(pattern, name) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	for _, pattern := range patterns {
		if !strings.HasPrefix(pattern, "!") {
			continue
		}
		if matchPattern(pattern[1:], name) {
			return false
		}
	}
	return true
}

func matchPattern(pattern, name string) bool {
	matched, err := filepath.Match(pattern, name)
	if err != nil {
		return pattern == name
	}
	return matched
}

// Filter removes every object from schema whose unqualified name
// matches one of cfg's patterns, leaving a nil cfg (or a cfg with no
// patterns) a no-op. Namespaces, extensions, triggers, and partitions
// are never filtered: they're not independently addressable the way
// spec §4.4's drift comparison treats tables/views/functions/types/
// sequences.
func Filter(schema *ir.Schema, cfg *Config) {
	if cfg == nil {
		return
	}

	for key, t := range schema.Tables {
		if cfg.shouldIgnore(t.Name, cfg.Tables) {
			delete(schema.Tables, key)
		}
	}
	for key, v := range schema.Views {
		if cfg.shouldIgnore(v.Name, cfg.Views) {
			delete(schema.Views, key)
		}
	}
	for key, f := range schema.Functions {
		if cfg.shouldIgnore(f.Name, cfg.Functions) {
			delete(schema.Functions, key)
		}
	}
	for key, e := range schema.Enums {
		if cfg.shouldIgnore(e.Name, cfg.Types) {
			delete(schema.Enums, key)
		}
	}
	for key, d := range schema.Domains {
		if cfg.shouldIgnore(d.Name, cfg.Types) {
			delete(schema.Domains, key)
		}
	}
	for key, s := range schema.Sequences {
		if cfg.shouldIgnore(s.Name, cfg.Sequences) {
			delete(schema.Sequences, key)
		}
	}
}
