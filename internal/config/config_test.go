package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoPath(t *testing.T) {
	t.Setenv("VOXEL_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, 32, cfg.World.ChunkWidth)
	require.Equal(t, 60, cfg.Physics.TickRate)
	require.Len(t, cfg.World.Resources, 3)
}

func TestLoadOverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	yml := `
world:
  seed: 1337
  chunk_width: 16
  chunk_height: 64
  draw_distance: 3
  terrain:
    scale: 50
    magnitude: 0.25
    offset: 0.4
physics:
  tick_rate: 30
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, int64(1337), cfg.World.Seed)
	require.Equal(t, 16, cfg.World.ChunkWidth)
	require.Equal(t, 64, cfg.World.ChunkHeight)
	require.Equal(t, 3, cfg.World.DrawDistance)
	require.Equal(t, 0.25, cfg.World.Terrain.Magnitude)
	require.Equal(t, 30, cfg.Physics.TickRate)

	// Незатронутые поля сохраняют дефолты
	require.Equal(t, 25.0, cfg.Physics.Gravity)

	params := cfg.WorldParams()
	require.Equal(t, int64(1337), params.Seed)
	require.Equal(t, 16, params.ChunkWidth)
	require.Equal(t, 50.0, params.Terrain.Scale)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	yml := `
world:
  chunk_width: -1
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestBlockRegistryFromConfig(t *testing.T) {
	cfg := Default()
	cfg.World.Resources = []ResourceConfig{
		{ID: uint16(block.StoneBlockID), Name: "stone", VeinScale: Vec3{X: 10, Y: 10, Z: 10}, Scarcity: 0.5},
		{ID: uint16(block.IronOreBlockID), Name: "iron_ore", VeinScale: Vec3{X: 4, Y: 4, Z: 4}, Scarcity: 0.9},
	}

	registry := cfg.BlockRegistry()
	require.True(t, registry.IsValidBlockID(block.AirBlockID))
	require.True(t, registry.IsValidBlockID(block.GrassBlockID))

	resources := registry.Resources()
	require.Len(t, resources, 2)
	// Порядок объявления в конфигурации сохраняется
	require.Equal(t, block.StoneBlockID, resources[0].ID)
	require.Equal(t, block.IronOreBlockID, resources[1].ID)
}

func TestMetricsPortFallback(t *testing.T) {
	var s ServerConfig
	t.Setenv("VOXEL_METRICS_PORT", "")
	require.Equal(t, 2112, s.GetMetricsPort())

	t.Setenv("VOXEL_METRICS_PORT", "9999")
	require.Equal(t, 9999, s.GetMetricsPort())

	s.MetricsPort = 3000
	require.Equal(t, 3000, s.GetMetricsPort())
}
