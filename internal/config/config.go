package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrNoRepositories means nothing resolved to analyze: no flag, no
// configured entries, and the working directory is not a repository.
var ErrNoRepositories = errors.New("no repositories to analyze")

// Repository is one configured repository entry.
type Repository struct {
	Name   string `toml:"name" json:"name"`
	Path   string `toml:"path" json:"path"`
	Branch string `toml:"branch,omitempty" json:"branch,omitempty"`
}

// Defaults are applied when the matching flags are not given.
type Defaults struct {
	Days     int    `toml:"days"`
	Period   string `toml:"period"`
	Timezone string `toml:"timezone"`
}

type Config struct {
	Repositories []Repository `toml:"repositories"`
	Defaults     Defaults     `toml:"defaults"`
}

func DefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Days:     7,
			Period:   "daily",
			Timezone: "local",
		},
	}
}

func TempoDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".tempo"), nil
}

func ConfigPath() (string, error) {
	dir, err := TempoDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func DatabasePath() (string, error) {
	dir, err := TempoDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db", "tempo.sqlite"), nil
}

func EnsureDirectories() error {
	dir, err := TempoDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(dir, "db"), 0755)
}

// Load reads the config at path, or the default location when path is
// empty. A missing file at the default location is created with defaults;
// a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg, path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	for i, repo := range cfg.Repositories {
		cfg.Repositories[i].Path = ExpandPath(repo.Path)
	}

	return cfg, nil
}

func Save(cfg *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// AddRepository appends an entry, rejecting duplicate paths.
func (c *Config) AddRepository(repo Repository) error {
	for _, existing := range c.Repositories {
		if ExpandPath(existing.Path) == ExpandPath(repo.Path) {
			return fmt.Errorf("repository already configured: %s", existing.Name)
		}
	}
	c.Repositories = append(c.Repositories, repo)
	return nil
}

// RemoveRepository drops the entry matching the identifier by name or path.
func (c *Config) RemoveRepository(identifier string) error {
	expanded := ExpandPath(identifier)
	for i, repo := range c.Repositories {
		if repo.Name == identifier || ExpandPath(repo.Path) == expanded {
			c.Repositories = append(c.Repositories[:i], c.Repositories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("repository not found in config: %s", identifier)
}

// FilterByName keeps entries whose name is in names; empty names keeps all.
func (c *Config) FilterByName(names []string) []Repository {
	if len(names) == 0 {
		return c.Repositories
	}
	var filtered []Repository
	for _, repo := range c.Repositories {
		for _, name := range names {
			if repo.Name == name {
				filtered = append(filtered, repo)
				break
			}
		}
	}
	return filtered
}

func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
