package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterGlobalFlags(fs)
	RegisterFlags(fs)
	fs.StringP(KeyType, "t", DefaultType, "")
	fs.StringP(KeyOutput, "o", DefaultOutput, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultRowCount, cfg.RowCount)
	assert.Equal(t, "tsql", cfg.Type)
	assert.Equal(t, ".", cfg.Output)
	assert.Equal(t, "./sources", cfg.WordLists)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "create", cfg.Mode)
	assert.False(t, cfg.HasSeed)
	assert.False(t, cfg.LenientTypes)
	require.NoError(t, cfg.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	d := t.TempDir()
	chdir(t, d)

	file := filepath.Join(d, "mocker.yaml")
	require.NoError(t, os.WriteFile(file, []byte("row-count: 5\ntype: csv\nword-lists: /file/lists\noutput: /file/out\n"), 0o644))
	t.Setenv("MOCKER_TYPE", "json")
	t.Setenv("MOCKER_WORD_LISTS", "/env/lists")

	cfg, err := Load(newFlags(t, "--config-file", file, "--word-lists", "/flag/lists", "--seed", "42"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RowCount)
	assert.Equal(t, "json", cfg.Type)
	assert.Equal(t, "/flag/lists", cfg.WordLists)
	assert.Equal(t, "/file/out", cfg.Output)
	assert.True(t, cfg.HasSeed)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadReadsDotEnv(t *testing.T) {
	d := t.TempDir()
	chdir(t, d)
	require.NoError(t, os.WriteFile(filepath.Join(d, ".env"), []byte("MOCKER_DSN=postgres://u:p@localhost:5432/mocker?sslmode=disable\nMOCKER_LOG_LEVEL=debug\n"), 0o644))

	for _, key := range []string{"MOCKER_DSN", "MOCKER_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/mocker?sslmode=disable", cfg.DSN)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(newFlags(t, "--config-file", "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{RowCount: 0, Type: "tsql"}
	assert.Error(t, cfg.Validate())

	cfg.RowCount = -1
	assert.Error(t, cfg.Validate())

	cfg.RowCount = 1
	assert.NoError(t, cfg.Validate())

	cfg.Type = ""
	assert.Error(t, cfg.Validate())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir on Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
