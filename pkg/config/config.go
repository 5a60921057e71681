// Package config loads j2go's own runtime settings. These control tool
// behavior (extension loading, logging, output trimming) and never leak
// into the template context.
package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	ktoml "github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	toml "github.com/pelletier/go-toml/v2"

	j2errors "github.com/arthur-debert/j2go/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// ExtensionSettings controls the optional filter/test plugin module.
type ExtensionSettings struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Module  string `koanf:"module" toml:"module"`
}

// RenderSettings controls output shaping around the render itself.
type RenderSettings struct {
	ImportEnv   string `koanf:"import_env" toml:"import_env"`
	TrimNewline bool   `koanf:"trim_newline" toml:"trim_newline"`
}

// LoggingSettings controls the default log verbosity.
type LoggingSettings struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// Settings is the effective tool configuration.
type Settings struct {
	Extensions ExtensionSettings `koanf:"extensions" toml:"extensions"`
	Render     RenderSettings    `koanf:"render" toml:"render"`
	Logging    LoggingSettings   `koanf:"logging" toml:"logging"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load builds the effective settings by layering, in override order:
// embedded defaults, the user config file, a per-directory .j2go.toml,
// J2_* environment variables, and finally explicit overrides (flags).
func Load(cwd string, overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		return nil, j2errors.Wrap(err, j2errors.ErrConfigLoad, "failed to load default config")
	}

	// 2. User config, then working-directory config
	candidates := []string{
		filepath.Join(xdg.ConfigHome, "j2go", "config.toml"),
		filepath.Join(cwd, ".j2go.toml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), ktoml.Parser()); err != nil {
			return nil, j2errors.Wrapf(err, j2errors.ErrConfigLoad, "failed to load config from %s", path)
		}
	}

	// 3. Environment: J2_EXTENSIONS_MODULE -> extensions.module
	if err := k.Load(env.Provider("J2_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "J2_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, j2errors.Wrap(err, j2errors.ErrConfigLoad, "failed to load config from environment")
	}

	// 4. Explicit overrides (command-line flags)
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, j2errors.Wrap(err, j2errors.ErrConfigLoad, "failed to apply config overrides")
		}
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, j2errors.Wrap(err, j2errors.ErrConfigLoad, "failed to unmarshal config")
	}
	return &settings, nil
}

// TOML serializes the settings for the gen-config command.
func (s *Settings) TOML() ([]byte, error) {
	return toml.Marshal(s)
}

// DefaultConfigContent returns the embedded defaults file verbatim,
// comments included.
func DefaultConfigContent() string {
	return string(defaultConfig)
}
