package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envir/pkg/config"
)

type CustomEnvConfig struct {
	_ struct{} `envir:"prefix=TEST_CUSTOM_"`

	String     string
	Int        int
	Bool       bool
	Array      []string
	WithQuotes string `envir:"name=WITH_QUOTES"`
	Empty      string
	Priority   string `envir:"name=TEST_PRIORITY, noprefix"`
}

type OverrideConfig struct {
	Unique   string `envir:"name=TEST_OVERRIDE_UNIQUE"`
	MultiEnv string `envir:"name=TEST_MULTIENV_FEATURE"`
	Required string `envir:"name=OVERRIDDEN_REQUIRED"`
}

var envFileKeys = []string{
	"TEST_CUSTOM_STRING",
	"TEST_CUSTOM_INT",
	"TEST_CUSTOM_BOOL",
	"TEST_CUSTOM_ARRAY",
	"TEST_CUSTOM_WITH_QUOTES",
	"TEST_CUSTOM_EMPTY",
	"TEST_PRIORITY",
	"TEST_OVERRIDE_UNIQUE",
	"TEST_MULTIENV_FEATURE",
	"OVERRIDDEN_REQUIRED",
}

func TestLoadEnv_CustomPath(t *testing.T) {
	unset(t, envFileKeys...)
	config.ResetCache()

	err := config.LoadEnv("testdata/.env.custom")
	require.NoError(t, err)

	var cfg CustomEnvConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "custom_value", cfg.String)
	assert.Equal(t, 1234, cfg.Int)
	assert.True(t, cfg.Bool)
	assert.Equal(t, []string{"item1", "item2", "item3"}, cfg.Array)
	assert.Equal(t, "quoted value", cfg.WithQuotes)
	assert.Equal(t, "", cfg.Empty)
	assert.Equal(t, "custom_file_value", cfg.Priority)
}

func TestLoadEnv_MultiplePaths(t *testing.T) {
	unset(t, envFileKeys...)
	config.ResetCache()

	err := config.LoadEnv("testdata/.env.custom", "testdata/.env.override")
	require.NoError(t, err)

	var customCfg CustomEnvConfig
	require.NoError(t, config.Load(&customCfg))

	// Later files take precedence.
	assert.Equal(t, "override_value", customCfg.String)
	assert.Equal(t, 9999, customCfg.Int)
	assert.Equal(t, "override_value", customCfg.Priority)
	assert.Equal(t, "quoted value", customCfg.WithQuotes)

	var overrideCfg OverrideConfig
	require.NoError(t, config.Load(&overrideCfg))

	assert.Equal(t, "unique_to_override", overrideCfg.Unique)
	assert.Equal(t, "enabled", overrideCfg.MultiEnv)
	assert.Equal(t, "override_value", overrideCfg.Required)
}

func TestLoadEnv_ProcessWins(t *testing.T) {
	unset(t, envFileKeys...)
	t.Setenv("TEST_PRIORITY", "from_process")

	require.NoError(t, config.LoadEnv("testdata/.env.custom"))

	assert.Equal(t, "from_process", os.Getenv("TEST_PRIORITY"))
	assert.Equal(t, "custom_value", os.Getenv("TEST_CUSTOM_STRING"))
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv("testdata/non_existent_file.env")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestMustLoadEnv(t *testing.T) {
	unset(t, envFileKeys...)

	assert.NotPanics(t, func() {
		config.MustLoadEnv("testdata/.env.custom")
	})

	assert.Panics(t, func() {
		config.MustLoadEnv("testdata/non_existent_file.env")
	})
}

func TestLoadEnv_DefaultFile(t *testing.T) {
	unset(t, "DEFAULT_ENV_VAR")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DEFAULT_ENV_VAR=default_from_temp\n"), 0o600))
	t.Chdir(dir)

	require.NoError(t, config.LoadEnv())
	assert.Equal(t, "default_from_temp", os.Getenv("DEFAULT_ENV_VAR"))
}
