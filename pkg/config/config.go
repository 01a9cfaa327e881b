// Package config loads the tool's own configuration: embedded defaults,
// overridden by a .retrogen.toml in the project root, overridden by
// RETROGEN_* environment variables.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/retrokit/retrogen/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config carries the resolved settings for one run.
type Config struct {
	// SourceRoot is the Java source directory relative to the project root
	SourceRoot string
	// ResourcesRoot is the resources directory relative to the project root
	ResourcesRoot string
	// MarkerDir is the directory name that marks the base package
	MarkerDir string
	// YamlFile is the base name of the structured config document
	YamlFile string
	// PomFile is the base name of the Maven build file
	PomFile string
	// TemplateRoot overrides the embedded template tree when non-empty
	TemplateRoot string
	// StrictPlaceholders warns on unexpanded tokens instead of passing
	// them through
	StrictPlaceholders bool
	// PatchPom enables the pom.xml dependency patcher
	PatchPom bool
}

// Load resolves configuration for a project root.
func Load(projectRoot string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Project-level config file, if present
	for _, filename := range []string{".retrogen.toml", "retrogen.toml"} {
		path := filepath.Join(projectRoot, filename)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
			}
			break
		}
	}

	// 3. Environment overrides: RETROGEN_MARKER_DIR -> marker-dir
	if err := k.Load(env.Provider("RETROGEN_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "RETROGEN_")), "_", "-")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	return &Config{
		SourceRoot:         k.String("source-root"),
		ResourcesRoot:      k.String("resources-root"),
		MarkerDir:          k.String("marker-dir"),
		YamlFile:           k.String("yaml-file"),
		PomFile:            k.String("pom-file"),
		TemplateRoot:       k.String("template-root"),
		StrictPlaceholders: k.Bool("strict-placeholders"),
		PatchPom:           k.Bool("patch-pom"),
	}, nil
}

// Default returns the embedded defaults without project or environment
// layers; used by tests and by callers that have no project root yet.
func Default() *Config {
	cfg, err := Load(string(os.PathSeparator) + "nonexistent-retrogen-root")
	if err != nil {
		// The embedded defaults always parse
		panic(err)
	}
	return cfg
}

// rawBytesProvider implements a koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}
