// Package config provides the catalog loader for labgen.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/labgen/internal/core/domain"
	"go.trai.ch/labgen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the catalog file discovered when no path is given.
	DefaultFilename = "labgen.yaml"
	// CurrentVersion is the catalog schema version understood by the loader.
	CurrentVersion = "1"
)

// Loader implements ports.CatalogLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads the catalog at path. An empty path searches the working directory
// and its parents for labgen.yaml and falls back to the built-in catalog.
func (l *Loader) Load(path string) (*domain.Catalog, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		found, ok := findCatalogFile(cwd)
		if !ok {
			l.Logger.Info("no " + DefaultFilename + " found, using built-in catalog")
			return domain.DefaultCatalog(), nil
		}
		path = found
	}

	l.Logger.Info("loading catalog from " + path)
	return Load(path)
}

// findCatalogFile walks up from dir looking for DefaultFilename.
func findCatalogFile(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, DefaultFilename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads a catalog file from the given path.
func Load(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(err, "catalog file not found"), "path", path)
		}
		return nil, zerr.Wrap(err, "failed to read catalog file")
	}

	catalog, err := Parse(data)
	if err != nil {
		return nil, zerr.Wrap(err, "invalid catalog file "+path)
	}
	return catalog, nil
}

// Parse decodes catalog file contents and applies them over the built-in catalog.
func Parse(data []byte) (*domain.Catalog, error) {
	var file Catalogfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, "failed to parse catalog file")
	}

	if file.Version != "" && file.Version != CurrentVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, "catalog version "+file.Version), "supported", CurrentVersion)
	}

	catalog := domain.DefaultCatalog()
	if file.Distributions != nil {
		catalog.Distributions = domain.ParseDistributions(*file.Distributions)
	}
	if file.Variants != nil {
		catalog.Variants = domain.ParseVariants(*file.Variants)
	}
	if file.Profile != nil {
		file.Profile.apply(&catalog.Profile)
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (dto *ProfileDTO) apply(p *domain.Profile) {
	setSlice(&p.Header, dto.Header)
	setSlice(&p.Groups, dto.Groups)
	set(&p.ServerOptions, dto.ServerOptions)
	set(&p.PostCreate, dto.PostCreate)
	if dto.Build != nil {
		set(&p.Build.SELinuxMode, dto.Build.SELinuxMode)
		set(&p.Build.Server.GitRepo, dto.Build.GitRepo)
		set(&p.Build.Client.GitRepo, dto.Build.GitRepo)
		dto.Build.Server.apply(&p.Build.Server)
		dto.Build.Client.apply(&p.Build.Client)
	}
}

func (dto *TargetDTO) apply(t *domain.BuildTarget) {
	if dto == nil {
		return
	}
	set(&t.InstallMethod, dto.InstallMethod)
	set(&t.Force, dto.Force)
	set(&t.BuildDir, dto.BuildDir)
	set(&t.DestDir, dto.DestDir)
	set(&t.FetchMethod, dto.FetchMethod)
	set(&t.GitRepo, dto.GitRepo)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setSlice(dst *[]string, src *[]string) {
	if src != nil {
		*dst = append([]string(nil), (*src)...)
	}
}
