package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ssargent/sealink/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(tmpDir, "data")
	cfg.Storage.SyncWrites = false

	return &app{
		cfg:        cfg,
		configPath: filepath.Join(tmpDir, "sealink.yaml"),
		logger:     log.NewNopLogger(),
		registry:   prometheus.NewRegistry(),
	}
}

func TestInitialize(t *testing.T) {
	a := newTestApp(t)

	t.Run("Creates config and record files", func(t *testing.T) {
		var out bytes.Buffer
		err := initialize(&out, a, false)
		require.NoError(t, err)

		assert.FileExists(t, a.configPath)
		for _, entity := range []string{config.Vehicles, config.Vessels, config.Sailings, config.Reservations} {
			assert.FileExists(t, a.cfg.Path(entity))
		}
		assert.Contains(t, out.String(), "Wrote config")

		loaded, err := config.LoadConfig(a.configPath)
		require.NoError(t, err)
		assert.Equal(t, a.cfg.DataDir, loaded.DataDir)
	})

	t.Run("Keeps existing config without force", func(t *testing.T) {
		require.NoError(t, os.WriteFile(a.configPath, []byte("data_dir: "+a.cfg.DataDir+"\n"), 0600))

		var out bytes.Buffer
		err := initialize(&out, a, false)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "already exists")

		data, err := os.ReadFile(a.configPath)
		require.NoError(t, err)
		assert.Equal(t, "data_dir: "+a.cfg.DataDir+"\n", string(data))
	})

	t.Run("Force overwrites config", func(t *testing.T) {
		var out bytes.Buffer
		err := initialize(&out, a, true)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Wrote config")

		data, err := os.ReadFile(a.configPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "sync_writes")
	})

	t.Run("Existing records are kept", func(t *testing.T) {
		path := a.cfg.Path(config.Vehicles)
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'x'}, 64), 0600))

		var out bytes.Buffer
		require.NoError(t, initialize(&out, a, false))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, int64(64), info.Size())
		assert.Contains(t, out.String(), "(2 records)")
	})
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("Missing file uses defaults", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(tmpDir, "missing.yaml"), "", "")
		require.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("Flags override the file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "sealink.yaml")
		require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/ferry\nlogging:\n  level: warn\n"), 0600))

		cfg, err := loadConfig(path, "", "")
		require.NoError(t, err)
		assert.Equal(t, "/srv/ferry", cfg.DataDir)
		assert.Equal(t, "warn", cfg.Logging.Level)

		cfg, err = loadConfig(path, "/tmp/other", "debug")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/other", cfg.DataDir)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("Invalid level", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(tmpDir, "missing.yaml"), "", "verbose")
		assert.Error(t, err)
	})
}
