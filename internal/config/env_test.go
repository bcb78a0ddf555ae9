package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"ENV", "HTTP_HOST", "PORT", "LOG_LEVEL",
	"STORE_TYPE", "DATABASE_URL", "DATABASE_NAME", "DATABASE_CONNECT_TIMEOUT",
	"STORAGE_BASE_DIR", "S3_BUCKET", "S3_PREFIX", "S3_REGION",
}

// cleanEnv unsets every variable LoadEnv reads and runs from an empty
// directory so no .env file is picked up. Values are restored after the test.
func cleanEnv(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range envKeys {
		for _, key := range []string{k, namespace + "_" + k} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	cleanEnv(t)

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "8000", env.HTTPPort)
	assert.Equal(t, StoreTypeMongo, env.StoreType)
	assert.Equal(t, "portfolio", env.Name)
	assert.Equal(t, 5*time.Second, env.ConnectTimeout)
	assert.False(t, env.DatabaseURLSet())
	assert.False(t, env.DatabaseNameSet)
	assert.Equal(t, slog.LevelInfo, env.SlogLevel())
}

func TestLoadEnv_UnprefixedNames(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "site")
	t.Setenv("LOG_LEVEL", "debug")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", env.HTTPPort)
	assert.Equal(t, "mongodb://localhost:27017", env.URL)
	assert.Equal(t, "site", env.Name)
	assert.True(t, env.DatabaseURLSet())
	assert.True(t, env.DatabaseNameSet)
	assert.Equal(t, slog.LevelDebug, env.SlogLevel())
}

func TestLoadEnv_PrefixedNameWins(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("PORTFOLIO_PORT", "7070")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "7070", env.HTTPPort)
}

func TestLoadEnv_InvalidStoreType(t *testing.T) {
	cleanEnv(t)
	t.Setenv("STORE_TYPE", "postgres")

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestLoadEnv_S3RequiresBucket(t *testing.T) {
	cleanEnv(t)
	t.Setenv("STORE_TYPE", StoreTypeS3)

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestSlogLevel_Invalid(t *testing.T) {
	env := &BaseEnv{LogLevel: "loud"}
	assert.Equal(t, slog.LevelInfo, env.SlogLevel())

	var nilEnv *BaseEnv
	assert.Equal(t, slog.LevelInfo, nilEnv.SlogLevel())
}

func TestLoadEnv_DotEnvFile(t *testing.T) {
	cleanEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("DATABASE_NAME=fromfile\nPORT=8123\n"), 0o644))

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "fromfile", env.Name)
	assert.Equal(t, "8123", env.HTTPPort)
	assert.True(t, env.DatabaseNameSet)
}
