package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vvka-141/stguard/pkg/stguard"
)

// Source describes where the effective configuration came from.
type Source struct {
	Path     string // empty when built-in defaults are used
	Explicit bool   // set by flag or environment variable
}

// Resolver locates the config file. The function fields exist for tests.
type Resolver struct {
	Getenv        func(string) string
	UserConfigDir func() (string, error)
	WorkDir       string
}

// DefaultResolver resolves against the process environment and the current
// working directory.
func DefaultResolver() Resolver {
	return Resolver{Getenv: os.Getenv, UserConfigDir: os.UserConfigDir, WorkDir: "."}
}

// Candidates returns the paths consulted in order: the flag value, then
// $STGUARD_CONFIG, then ./stguard.yaml, then <user config dir>/stguard/stguard.yaml.
// An explicit candidate (flag or environment) ends the list.
func (r Resolver) Candidates(flagPath string) []Source {
	if flagPath != "" {
		return []Source{{Path: flagPath, Explicit: true}}
	}
	if env := r.Getenv(stguard.ConfigEnvVar); env != "" {
		return []Source{{Path: env, Explicit: true}}
	}

	candidates := []Source{{Path: filepath.Join(r.WorkDir, ConfigFileName)}}
	if dir, err := r.UserConfigDir(); err == nil && dir != "" {
		candidates = append(candidates, Source{Path: filepath.Join(dir, "stguard", ConfigFileName)})
	}
	return candidates
}

// Resolve loads the first existing candidate. A missing explicit file is a
// configuration error; missing default files yield Default().
func (r Resolver) Resolve(flagPath string) (*Config, Source, error) {
	for _, src := range r.Candidates(flagPath) {
		cfg, err := Load(src.Path)
		if errors.Is(err, ErrConfigNotFound) {
			if src.Explicit {
				return nil, src, fmt.Errorf("%w: %s: %w", stguard.ErrInvalidConfig, src.Path, err)
			}
			continue
		}
		if err != nil {
			return nil, src, err
		}
		return cfg, src, nil
	}
	return Default(), Source{}, nil
}
