package world

import (
	"testing"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/stretchr/testify/require"
)

func testParams(seed int64) Params {
	return Params{
		Seed:         seed,
		ChunkWidth:   8,
		ChunkHeight:  16,
		DrawDistance: 1,
		Terrain: TerrainParams{
			Scale:     30,
			Magnitude: 0.1,
			Offset:    0.5,
		},
	}
}

// aggressiveRegistry — каталог с почти вездесущим ресурсом: маленький масштаб
// жилы декоррелирует соседние воксели, низкий порог даёт ~половину попаданий
func aggressiveRegistry() *block.Registry {
	r := block.NewRegistry()
	r.Register(block.Type{ID: block.AirBlockID, Name: "air"})
	r.Register(block.Type{ID: block.DirtBlockID, Name: "dirt"})
	r.Register(block.Type{ID: block.GrassBlockID, Name: "grass"})
	r.Register(block.Type{
		ID:        block.StoneBlockID,
		Name:      "stone",
		VeinScale: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5},
		Scarcity:  0.01,
	})
	return r
}

func TestGenerateDeterministic(t *testing.T) {
	params := testParams(42)
	registry := block.DefaultRegistry()
	coords := vec.Vec2{X: -2, Y: 3}

	c1 := NewChunk(coords, params.ChunkWidth, params.ChunkHeight)
	NewWorldGenerator(params, registry).Generate(c1)

	c2 := NewChunk(coords, params.ChunkWidth, params.ChunkHeight)
	NewWorldGenerator(params, registry).Generate(c2)

	// Независимые генераторы с одинаковым сидом дают побитово одинаковый чанк
	require.Equal(t, c1.blocks, c2.blocks)
}

func TestGenerateSeedsDiffer(t *testing.T) {
	registry := block.DefaultRegistry()
	coords := vec.Vec2{X: 0, Y: 0}

	p1 := testParams(1)
	c1 := NewChunk(coords, p1.ChunkWidth, p1.ChunkHeight)
	NewWorldGenerator(p1, registry).Generate(c1)

	p2 := testParams(2)
	c2 := NewChunk(coords, p2.ChunkWidth, p2.ChunkHeight)
	NewWorldGenerator(p2, registry).Generate(c2)

	require.NotEqual(t, c1.blocks, c2.blocks)
}

func TestGenerateRunsOnce(t *testing.T) {
	params := testParams(7)
	gen := NewWorldGenerator(params, block.DefaultRegistry())

	c := NewChunk(vec.Vec2{X: 0, Y: 0}, params.ChunkWidth, params.ChunkHeight)
	gen.Generate(c)

	// Помечаем воксель вручную: повторный Generate не должен его затереть
	c.SetBlockID(3, 3, 3, block.IronOreBlockID)
	gen.Generate(c)

	id, _ := c.GetBlock(3, 3, 3)
	require.Equal(t, block.IronOreBlockID, id)
}

func TestTerrainFlatWhenMagnitudeZero(t *testing.T) {
	params := testParams(99)
	params.Terrain.Magnitude = 0
	params.Terrain.Offset = 0.5
	// height = floor(16 * 0.5) = 8 для всех столбцов
	const surface = 8

	c := NewChunk(vec.Vec2{X: 0, Y: 0}, params.ChunkWidth, params.ChunkHeight)
	NewWorldGenerator(params, block.DefaultRegistry()).Generate(c)

	for x := 0; x < c.Width; x++ {
		for z := 0; z < c.Width; z++ {
			for y := 0; y < c.Height; y++ {
				id, ok := c.GetBlock(x, y, z)
				require.True(t, ok)
				switch {
				case y < surface:
					require.NotEqual(t, block.AirBlockID, id,
						"под поверхностью не должно быть воздуха (%d,%d,%d)", x, y, z)
				case y == surface:
					require.Equal(t, block.GrassBlockID, id,
						"на поверхности всегда трава (%d,%d,%d)", x, y, z)
				default:
					require.Equal(t, block.AirBlockID, id,
						"над поверхностью всегда воздух (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}

func TestTerrainOverridesResources(t *testing.T) {
	params := testParams(5)
	params.Terrain.Magnitude = 0
	params.Terrain.Offset = 0.5
	const surface = 8

	c := NewChunk(vec.Vec2{X: 0, Y: 0}, params.ChunkWidth, params.ChunkHeight)
	NewWorldGenerator(params, aggressiveRegistry()).Generate(c)

	stoneBelow := 0
	for x := 0; x < c.Width; x++ {
		for z := 0; z < c.Width; z++ {
			// На поверхности трава побеждает любой ресурс
			id, _ := c.GetBlock(x, surface, z)
			require.Equal(t, block.GrassBlockID, id)

			// Над поверхностью ресурсы зачищены
			for y := surface + 1; y < c.Height; y++ {
				id, _ := c.GetBlock(x, y, z)
				require.Equal(t, block.AirBlockID, id)
			}

			// Под поверхностью ресурсы сохраняются, земля заполняет только воздух
			for y := 0; y < surface; y++ {
				id, _ := c.GetBlock(x, y, z)
				require.NotEqual(t, block.AirBlockID, id)
				if id == block.StoneBlockID {
					stoneBelow++
				}
			}
		}
	}

	// С порогом 0.01 и декоррелированной жилой камень обязан встретиться
	require.Greater(t, stoneBelow, 0, "ресурсы под поверхностью должны сохраняться")
}

func TestResourceRegistrationOrderWins(t *testing.T) {
	params := testParams(11)
	params.Terrain.Offset = 1.0 // поверхность на потолке: рельеф почти не мешает
	params.Terrain.Magnitude = 0

	coords := vec.Vec2{X: 0, Y: 0}

	// Каталог А: только камень
	rA := block.NewRegistry()
	rA.Register(block.Type{ID: block.AirBlockID, Name: "air"})
	rA.Register(block.Type{ID: block.DirtBlockID, Name: "dirt"})
	rA.Register(block.Type{ID: block.GrassBlockID, Name: "grass"})
	rA.Register(block.Type{
		ID:        block.StoneBlockID,
		Name:      "stone",
		VeinScale: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5},
		Scarcity:  0.01,
	})

	// Каталог Б: камень + уголь с теми же параметрами жилы, зарегистрирован позже
	rB := block.NewRegistry()
	rB.Register(block.Type{ID: block.AirBlockID, Name: "air"})
	rB.Register(block.Type{ID: block.DirtBlockID, Name: "dirt"})
	rB.Register(block.Type{ID: block.GrassBlockID, Name: "grass"})
	rB.Register(block.Type{
		ID:        block.StoneBlockID,
		Name:      "stone",
		VeinScale: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5},
		Scarcity:  0.01,
	})
	rB.Register(block.Type{
		ID:        block.CoalOreBlockID,
		Name:      "coal_ore",
		VeinScale: vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5},
		Scarcity:  0.01,
	})

	cA := NewChunk(coords, params.ChunkWidth, params.ChunkHeight)
	NewWorldGenerator(params, rA).Generate(cA)

	cB := NewChunk(coords, params.ChunkWidth, params.ChunkHeight)
	NewWorldGenerator(params, rB).Generate(cB)

	// Везде, где каталог А положил камень, каталог Б должен был
	// перезаписать его углём — более поздняя регистрация побеждает
	for x := 0; x < cA.Width; x++ {
		for y := 0; y < cA.Height-1; y++ {
			for z := 0; z < cA.Width; z++ {
				idA, _ := cA.GetBlock(x, y, z)
				if idA != block.StoneBlockID {
					continue
				}
				idB, _ := cB.GetBlock(x, y, z)
				require.Equal(t, block.CoalOreBlockID, idB,
					"позже зарегистрированный ресурс перезаписывает ранний (%d,%d,%d)", x, y, z)
			}
		}
	}
}
