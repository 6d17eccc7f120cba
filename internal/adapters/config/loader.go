// Package config resolves the build variables for a docs tree.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.trai.ch/docmk/internal/core/domain"
	"go.trai.ch/docmk/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// envVariables are the variables read from .env and the process environment.
var envVariables = []string{
	domain.VarSphinxBuild,
	domain.VarSphinxOpts,
	domain.VarPaper,
	domain.VarBuildDir,
}

// Loader implements ports.ConfigLoader.
//
// Settings are layered from lowest to highest precedence: built-in defaults,
// docmk.yaml, the .env file in the docs root, and the process environment.
type Loader struct {
	Logger ports.Logger
	// LookupEnv reads the process environment.
	LookupEnv func(key string) (string, bool)
}

// NewLoader creates a new Loader reading the real process environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, LookupEnv: os.LookupEnv}
}

// Load resolves the settings for the docs tree containing cwd.
// Without a docmk.yaml the docs root is cwd itself.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	s := domain.DefaultSettings()
	s.Root = absCwd

	configPath, found := findConfiguration(absCwd)
	if found {
		var doc Docfile
		if err := readAndUnmarshalYAML(configPath, &doc); err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		if err := applyDocfile(&s, configPath, &doc); err != nil {
			return nil, err
		}
		if info, err := os.Stat(s.Root); err != nil || !info.IsDir() {
			l.Logger.Warn(fmt.Sprintf("root '%s' defined in %s is not a directory", doc.Root, configPath))
		}
	}

	envFile, err := readEnvFile(filepath.Join(s.Root, domain.EnvFileName))
	if err != nil {
		return nil, err
	}
	if err := l.applyVariables(&s, envFile); err != nil {
		return nil, err
	}

	return &s, nil
}

// findConfiguration walks up from cwd to the filesystem root looking for docmk.yaml.
func findConfiguration(cwd string) (string, bool) {
	dir := cwd
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
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

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is located by findConfiguration
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func applyDocfile(s *domain.Settings, configPath string, doc *Docfile) error {
	if doc.Version != "" && doc.Version != SupportedVersion {
		err := zerr.With(domain.ErrUnsupportedConfigVersion, "version", doc.Version)
		return zerr.With(err, "path", configPath)
	}

	s.Root = resolveRoot(configPath, doc.Root)

	setIfNotEmpty(&s.SphinxBuild, doc.SphinxBuild)
	setIfNotEmpty(&s.SphinxOpts, doc.SphinxOpts)
	setIfNotEmpty(&s.Paper, doc.Paper)
	setIfNotEmpty(&s.BuildDir, doc.BuildDir)

	if doc.API != nil {
		if len(doc.API.Generator) > 0 {
			s.APIGenerator = doc.API.Generator
		}
		setIfNotEmpty(&s.APIOutputDir, doc.API.Output)
	}
	if doc.PDF != nil && len(doc.PDF.Command) > 0 {
		s.PDFCommand = doc.PDF.Command
	}
	if doc.Deploy != nil {
		setIfNotEmpty(&s.DeployDestination, doc.Deploy.Destination)
	}
	return nil
}

// resolveRoot returns the docs root: the config file's directory, or the
// configured root relative to it.
func resolveRoot(configPath, configuredRoot string) string {
	dir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return dir
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Join(dir, configuredRoot)
}

// readEnvFile parses path with godotenv. A missing file yields no variables.
func readEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err == nil {
		return vars, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvFileReadFailed.Error()), "path", path)
}

// applyVariables layers the .env file and then the process environment.
// A variable set to the empty string in the environment still overrides.
func (l *Loader) applyVariables(s *domain.Settings, envFile map[string]string) error {
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, name := range envVariables {
		value, ok := envFile[name]
		if v, set := lookup(name); set {
			value, ok = v, true
		}
		if !ok {
			continue
		}
		if err := s.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
