package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "schemas"), 0755))
	writeConfig(t, dir, `schemas:
  dir: schemas
connect:
  attempts: 3
  timeout: 2s
target: "=0.1.*"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "schemas"), cfg.Schemas.Dir)
	assert.Empty(t, cfg.Schemas.DatabaseURL)
	assert.Equal(t, 3, cfg.Connect.Attempts)
	assert.Equal(t, 2*time.Second, cfg.Connect.Timeout)
	assert.Equal(t, "=0.1.*", cfg.Target)
}

func TestLoad_FilePath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "schemas:\n  database_url: postgres://user@localhost:5432/meta\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://user@localhost:5432/meta", cfg.Schemas.DatabaseURL)
}

func TestLoad_DefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, t.TempDir(), "target: \">=0.1.0\"\n"))
	require.NoError(t, err)

	assert.Equal(t, Default().Connect, cfg.Connect)
	assert.Equal(t, ">=0.1.0", cfg.Target)
}

func TestLoad_NotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoadOrDefault_NotFound(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"malformed yaml", "schemas: [", ""},
		{"bad target", "target: latest\n", "target"},
		{"bad url", "schemas:\n  database_url: \"not a url\"\n", "schemas.database_url"},
		{"missing dir", "schemas:\n  dir: does-not-exist\n", "schemas.dir"},
		{"negative attempts", "connect:\n  attempts: -5\n", "connect.attempts"},
		{"long table", "schemas:\n  table: " + strings.Repeat("t", 64) + "\n", "schemas.table"},
		{"both sources", "schemas:\n  dir: .\n  database_url: postgres://localhost/meta\n", "cannot be combined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, dlmeta.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDatabaseURL: "postgres://env/meta",
		EnvTarget:      "=0.1.0",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := Default()
	cfg.Schemas.Dir = "/from/file"
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "postgres://env/meta", cfg.Schemas.DatabaseURL)
	assert.Empty(t, cfg.Schemas.Dir, "database source replaces the directory source")
	assert.Equal(t, "=0.1.0", cfg.Target)
}

func TestApplyEnv_EmptyValuesIgnored(t *testing.T) {
	cfg := Default()
	cfg.Target = ">=0.0.1"
	cfg.ApplyEnv(func(string) (string, bool) { return "", true })

	assert.Equal(t, ">=0.0.1", cfg.Target)
}

func TestUseSchemaDir_ReplacesDatabase(t *testing.T) {
	cfg := Default()
	cfg.UseDatabase("postgres://localhost/meta")
	cfg.UseSchemaDir(t.TempDir())

	assert.Empty(t, cfg.Schemas.DatabaseURL)
	assert.NoError(t, cfg.Validate())
}
