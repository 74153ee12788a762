package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"expenses-app-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "")
	t.Setenv("STORAGE", "")
	t.Setenv("DB_DSN", "")

	cfg, err := Load(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, time.Minute, cfg.CategoriesCacheTTL)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
	assert.Contains(t, cfg.DB.GetDSN(), "dbname=expenses")
}

func TestLoadReadsDotEnvWithoutOverridingEnv(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "cmd", "expenses-app")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	contents := "HTTP_PORT=9090\nSTORAGE=memory\n# comment\nDB_NAME=\"from_file\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0o600))

	chdir(t, nested)
	t.Setenv("DB_NAME", "from_env")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("STORAGE", "")
	os.Unsetenv("HTTP_PORT")
	os.Unsetenv("STORAGE")

	cfg, err := Load(logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "from_env", cfg.DB.Name)
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE", "sqlite")

	_, err := Load(logger.Nop())
	assert.Error(t, err)
}

func TestGetDSNPrefersExplicitDSN(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://u:p@db:5432/x", Host: "ignored"}
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.GetDSN())
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvList("CORS_ALLOWED_ORIGINS", nil))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
