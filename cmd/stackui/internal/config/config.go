// Package config loads the optional stackui.yaml project file and resolves
// the defaults the CLI commands work with.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/stackui/pkg/errors"
	"github.com/go-drift/stackui/pkg/stack"
)

// FileName is the name of the project file looked up in the project root.
const FileName = "stackui.yaml"

// DefaultSnapshotDir is where snapshots go when stackui.yaml names no
// directory. It is relative to the project root.
const DefaultSnapshotDir = "testdata/snapshots"

// Config represents the optional stackui.yaml configuration.
type Config struct {
	Project   ProjectConfig  `yaml:"project"`
	Defaults  stack.Config   `yaml:"defaults"`
	Snapshots SnapshotConfig `yaml:"snapshots"`
	Verbose   bool           `yaml:"verbose"`
}

// ProjectConfig contains project metadata.
type ProjectConfig struct {
	Name string `yaml:"name,omitempty"`
}

// SnapshotConfig contains snapshot settings.
type SnapshotConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	ProjectName string
	SnapshotDir string
	Defaults    stack.Config
	Verbose     bool
	// File is the path of the stackui.yaml that was read, or empty.
	File string
}

// LoadOptional reads stackui.yaml from dir if present. A missing file yields
// the zero Config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, errors.New("config.Load", errors.KindConfig, path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New("config.Load", errors.KindConfig, path, err)
	}
	return &cfg, nil
}

// Resolve loads stackui.yaml (if present) from the module rooted at dir and
// fills in defaults.
func Resolve(dir string) (*Resolved, error) {
	modPath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}
	return resolve(dir, modPath)
}

// ResolveDir is like Resolve but accepts a directory outside any Go module.
// The project name then defaults to the directory name.
func ResolveDir(dir string) (*Resolved, error) {
	return resolve(dir, "")
}

func resolve(dir, modPath string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	if cfg.Defaults.Spacing < 0 {
		return nil, errors.New("config.Resolve", errors.KindConfig, "defaults.spacing",
			fmt.Errorf("spacing must not be negative (got %g)", cfg.Defaults.Spacing))
	}

	name := strings.TrimSpace(cfg.Project.Name)
	if name == "" {
		name = defaultProjectName(modPath, dir)
	}

	snapshotDir := strings.TrimSpace(cfg.Snapshots.Dir)
	if snapshotDir == "" {
		snapshotDir = DefaultSnapshotDir
	}
	if !filepath.IsAbs(snapshotDir) {
		snapshotDir = filepath.Join(dir, snapshotDir)
	}

	r := &Resolved{
		Root:        dir,
		ModulePath:  modPath,
		ProjectName: name,
		SnapshotDir: snapshotDir,
		Defaults:    cfg.Defaults,
		Verbose:     cfg.Verbose,
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
		r.File = filepath.Join(dir, FileName)
	}
	return r, nil
}

// Discover resolves the configuration for the current directory: the
// enclosing Go module when there is one, otherwise the directory itself.
func Discover() (*Resolved, error) {
	root, err := FindProjectRoot()
	if err == nil {
		return Resolve(root)
	}
	wd, wdErr := os.Getwd()
	if wdErr != nil {
		return nil, wdErr
	}
	return ResolveDir(wd)
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindProjectRootFrom(dir)
}

// FindProjectRootFrom walks up from dir to find go.mod.
func FindProjectRootFrom(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", errors.New("config.Resolve", errors.KindConfig, "go.mod", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", errors.New("config.Resolve", errors.KindConfig, "go.mod",
			fmt.Errorf("could not determine module path"))
	}
	return path, nil
}

// defaultProjectName uses the last element of the module path without its
// major version suffix, falling back to the directory name.
func defaultProjectName(modPath, dir string) string {
	base := filepath.Base(dir)
	if modPath != "" {
		if prefix, _, ok := module.SplitPathVersion(modPath); ok {
			if i := strings.LastIndex(prefix, "/"); i >= 0 {
				prefix = prefix[i+1:]
			}
			if prefix != "" {
				base = prefix
			}
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "stackui_project"
	}
	return base
}
