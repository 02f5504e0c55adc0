package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-games/gridstash/pkg/inventory"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("server:\n  host: 127.0.0.1\n"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Inventory.GridWidth)
	assert.Equal(t, 4, cfg.Inventory.GridHeight)
	assert.Equal(t, float64(1), cfg.Inventory.Metric.CellSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "gridstash:save:", cfg.Redis.SavePrefix)
	assert.Equal(t, 24, cfg.JWT.PublicKeyRefreshHrs)
}

func TestParseInventorySection(t *testing.T) {
	cfg, err := Parse([]byte(`
inventory:
  grid_width: 10
  grid_height: 6
  metric: { origin_x: 8, origin_y: 300, cell_size: 32 }
  equipment: [head, ring, main-hand]
  slots:
    ring: { x: 10, y: 20, w: 30, h: 30 }
`))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Inventory.GridHeight)
	assert.Equal(t, inventory.Metric{OriginX: 8, OriginY: 300, CellSize: 32}, cfg.Inventory.Metric)

	cats, err := cfg.Inventory.Categories()
	require.NoError(t, err)
	assert.Equal(t, []inventory.Category{inventory.CategoryHead, inventory.CategoryRing, inventory.CategoryMainHand}, cats)

	layout, err := cfg.Inventory.Layout()
	require.NoError(t, err)
	assert.Equal(t, inventory.Rect{X: 10, Y: 20, W: 30, H: 30}, layout[inventory.CategoryRing])
}

func TestParseRejectsUnknownSlots(t *testing.T) {
	_, err := Parse([]byte("inventory:\n  equipment: [tail]\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("inventory:\n  equipment: [none]\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("inventory:\n  slots:\n    wings: {x: 1}\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("server: [\n"))
	assert.Error(t, err)
}

func TestLoadSampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "server.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 32.0, cfg.Inventory.Metric.CellSize)
	layout, err := cfg.Inventory.Layout()
	require.NoError(t, err)
	assert.Len(t, layout, 9)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "ok.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
