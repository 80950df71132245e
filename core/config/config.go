// Package config loads engine-level tunables from a TOML file, mirroring
// the teacher's engine.Config struct (engine.go) plus an actual file
// format, since BurntSushi/toml is part of the teacher's dependency graph.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"
)

// Config holds engine tunables as decoded from TOML. This package only
// loads them; no other package reads a Config. Zero values mean "let the
// component pick its own default" (pool size from host CPU count, etc.).
type Config struct {
	// Executors is the worker pool's executor count, as passed to
	// pool.New; 0 = auto (gopsutil CPU count).
	Executors int `toml:"executors"`
	// MinChunk is the configured chunk length. pool.MinChunk is a
	// constant, so this value does not change it.
	MinChunk int `toml:"min_chunk"`
	// ScopeLimit is a value for index.ScopeLimit, the maximum value range
	// for the SHIFT (perfect-hash) grouping scheme (§4.3); nothing here
	// assigns it to that variable.
	ScopeLimit int64 `toml:"scope_limit"`
}

// Default returns a Config with every knob at its zero/auto value.
func Default() Config {
	return Config{}
}

// Load reads and parses a TOML config file at path.
func Load(path string) (Config, error) {
	var c Config
	_, err := toml.DecodeFile(path, &c)
	return c, err
}

// Parse decodes TOML config text directly, useful for tests and embedded
// defaults.
func Parse(text string) (Config, error) {
	var c Config
	_, err := toml.Decode(text, &c)
	return c, err
}

// Override layers loosely-typed values (e.g. parsed command-line flags or
// environment variables, which arrive as strings/interfaces rather than
// the TOML-decoded concrete types) on top of c, coercing each with
// spf13/cast the way a CLI front-end would before handing tunables to the
// engine.
func (c Config) Override(values map[string]interface{}) Config {
	if v, ok := values["executors"]; ok {
		c.Executors = cast.ToInt(v)
	}
	if v, ok := values["min_chunk"]; ok {
		c.MinChunk = cast.ToInt(v)
	}
	if v, ok := values["scope_limit"]; ok {
		c.ScopeLimit = cast.ToInt64(v)
	}
	return c
}
