package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 7, cfg.Defaults.Days)
	assert.Equal(t, "daily", cfg.Defaults.Period)
	assert.Equal(t, "local", cfg.Defaults.Timezone)
	assert.Empty(t, cfg.Repositories)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "config file not found")
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Defaults.Days = 30
	cfg.Defaults.Period = "weekly"
	require.NoError(t, cfg.AddRepository(Repository{Name: "api", Path: "/srv/api", Branch: "main"}))
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, loaded.Defaults.Days)
	assert.Equal(t, "weekly", loaded.Defaults.Period)
	require.Len(t, loaded.Repositories, 1)
	assert.Equal(t, "api", loaded.Repositories[0].Name)
	assert.Equal(t, "main", loaded.Repositories[0].Branch)
}

func TestLoadInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is [not toml"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestAddRepositoryRejectsDuplicatePath(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.AddRepository(Repository{Name: "api", Path: "/srv/api"}))

	err := cfg.AddRepository(Repository{Name: "other-name", Path: "/srv/api"})
	assert.ErrorContains(t, err, "already configured")
	assert.Len(t, cfg.Repositories, 1)
}

func TestRemoveRepository(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.AddRepository(Repository{Name: "api", Path: "/srv/api"}))
	require.NoError(t, cfg.AddRepository(Repository{Name: "web", Path: "/srv/web"}))

	require.NoError(t, cfg.RemoveRepository("api"))
	require.Len(t, cfg.Repositories, 1)
	assert.Equal(t, "web", cfg.Repositories[0].Name)

	require.NoError(t, cfg.RemoveRepository("/srv/web"))
	assert.Empty(t, cfg.Repositories)

	assert.ErrorContains(t, cfg.RemoveRepository("ghost"), "not found")
}

func TestFilterByName(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.AddRepository(Repository{Name: "api", Path: "/srv/api"}))
	require.NoError(t, cfg.AddRepository(Repository{Name: "web", Path: "/srv/web"}))

	assert.Len(t, cfg.FilterByName(nil), 2)

	filtered := cfg.FilterByName([]string{"web"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "web", filtered[0].Name)

	assert.Empty(t, cfg.FilterByName([]string{"ghost"}))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "src"), ExpandPath("~/src"))
	assert.Equal(t, "/srv/api", ExpandPath("/srv/api"))
	assert.Equal(t, "", ExpandPath(""))
}
