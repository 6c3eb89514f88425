// Package config reads the optional .gha-cli.yaml configuration file.
package config

import (
	"errors"
	"fmt"
	"path"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Files         []*File         `yaml:"files"`
	IgnoreActions []*IgnoreAction `yaml:"ignore_actions"`
}

type File struct {
	Pattern string `yaml:"pattern"`
}

func (f *File) Init() error {
	if f.Pattern == "" {
		return errors.New("pattern is required")
	}
	if _, err := path.Match(f.Pattern, "a"); err != nil {
		return fmt.Errorf("parse pattern as a glob: %w", err)
	}
	return nil
}

// IgnoreAction excludes matching usages from updates. Name and Ref are
// regular expressions matched against the whole value; an empty Ref
// matches any ref.
type IgnoreAction struct {
	Name       string `yaml:"name"`
	Ref        string `yaml:"ref"`
	nameRegexp *regexp.Regexp
	refRegexp  *regexp.Regexp
}

func (ia *IgnoreAction) Init() error {
	if ia.Name == "" {
		return errors.New("name is required")
	}
	r, err := regexp.Compile("^" + ia.Name + "$")
	if err != nil {
		return fmt.Errorf("compile name as a regular expression: %w", err)
	}
	ia.nameRegexp = r
	if ia.Ref == "" {
		return nil
	}
	r, err = regexp.Compile("^" + ia.Ref + "$")
	if err != nil {
		return fmt.Errorf("compile ref as a regular expression: %w", err)
	}
	ia.refRegexp = r
	return nil
}

func (ia *IgnoreAction) Match(name, ref string) bool {
	if !ia.nameRegexp.MatchString(name) {
		return false
	}
	if ia.refRegexp == nil {
		return true
	}
	return ia.refRegexp.MatchString(ref)
}

// Ignored reports whether any ignore_actions entry matches the usage.
func (c *Config) Ignored(name, ref string) bool {
	for _, ia := range c.IgnoreActions {
		if ia.Match(name, ref) {
			return true
		}
	}
	return false
}

func getConfigPath(fs afero.Fs) (string, error) {
	for _, p := range []string{".gha-cli.yaml", ".github/gha-cli.yaml", ".gha-cli.yml", ".github/gha-cli.yml"} {
		f, err := afero.Exists(fs, p)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", p, err)
		}
		if f {
			return p, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	return getConfigPath(f.fs)
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath == "" {
		return nil
	}
	f, err := r.fs.Open(configFilePath)
	if err != nil {
		return fmt.Errorf("open a configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode a configuration file as YAML: %w", err)
	}
	for _, file := range cfg.Files {
		if err := file.Init(); err != nil {
			return fmt.Errorf("initialize files: %w", err)
		}
	}
	for _, ia := range cfg.IgnoreActions {
		if err := ia.Init(); err != nil {
			return fmt.Errorf("initialize ignore_actions: %w", err)
		}
	}
	return nil
}
