package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jha-shubham/PRDs/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PRD_CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, ModeDemo, cfg.Transport.Mode)
	require.Equal(t, BackendMemory, cfg.Store.Backend)
	require.Zero(t, cfg.Store.Capacity)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prd.yaml")
	content := `
store:
  backend: sqlite
  capacity: 100
ids:
  strategy: uuid
transport:
  mode: http
server:
  port: 9090
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, BackendSQLite, cfg.Store.Backend)
	require.Equal(t, 100, cfg.Store.Capacity)
	require.Equal(t, IDStrategyUUID, cfg.IDs.Strategy)
	require.Equal(t, ModeHTTP, cfg.Transport.Mode)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  capacity: 7\n"), 0o644))
	t.Setenv("PRD_CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Store.Capacity)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: sqlite\n"), 0o644))

	t.Setenv("PRD_STORE_BACKEND", "memory")
	t.Setenv("PRD_STORE_CAPACITY", "3")
	t.Setenv("PRD_ID_STRATEGY", "uuid")
	t.Setenv("PRD_TRANSPORT", "stdio")
	t.Setenv("PRD_SERVER_HOST", "0.0.0.0")
	t.Setenv("PRD_SERVER_PORT", "7000")
	t.Setenv("PRD_LOG_LEVEL", "warn")
	t.Setenv("PRD_LOG_PATH", "/tmp/prd.log")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, BackendMemory, cfg.Store.Backend)
	require.Equal(t, 3, cfg.Store.Capacity)
	require.Equal(t, IDStrategyUUID, cfg.IDs.Strategy)
	require.Equal(t, ModeStdio, cfg.Transport.Mode)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 7000, cfg.Server.Port)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "/tmp/prd.log", cfg.Log.Path)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorContains(t, err, "read config file")
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("store: [unterminated"), 0o644))
		_, err := Load(path)
		require.ErrorContains(t, err, "parse config file")
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("PRD_SERVER_PORT", "eighty")
		_, err := Load("")
		require.ErrorContains(t, err, "PRD_SERVER_PORT")
	})

	t.Run("bad capacity", func(t *testing.T) {
		t.Setenv("PRD_STORE_CAPACITY", "lots")
		_, err := Load("")
		require.ErrorContains(t, err, "PRD_STORE_CAPACITY")
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "postgres"
	cfg.Store.Capacity = -1
	cfg.IDs.Strategy = "random"
	cfg.Transport.Mode = "grpc"
	cfg.Log.Level = "verbose"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"postgres", "capacity", "random", "grpc", "verbose"} {
		require.ErrorContains(t, err, want)
	}

	cfg = Default()
	cfg.Transport.Mode = ModeHTTP
	cfg.Server.Port = 0
	require.ErrorContains(t, cfg.Validate(), "port")
}

func TestValidateAcceptsEveryLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "WARNING", " Error "} {
		cfg := Default()
		cfg.Log.Level = level
		require.NoError(t, cfg.Validate(), "level %q", level)
		require.True(t, logging.ValidLevel(level), "level %q", level)
	}
}

func TestLoadWarningLevelFromEnv(t *testing.T) {
	t.Setenv("PRD_CONFIG_PATH", "")
	t.Setenv("PRD_LOG_LEVEL", "warning")
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, slog.LevelWarn, logging.ParseLevel(cfg.Log.Level))
}
