package world

import (
	"math"

	"github.com/annel0/voxel-engine/internal/noise"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// WorldGenerator генерирует ландшафт и ресурсы мира.
// Генерация — чистое локальное вычисление: она не читает соседние чанки и не
// выполняет I/O, поэтому разные чанки можно генерировать параллельно.
type WorldGenerator struct {
	params   Params
	registry *block.Registry
	noise    *noise.Field
}

// NewWorldGenerator создаёт генератор мира с указанными параметрами
func NewWorldGenerator(params Params, registry *block.Registry) *WorldGenerator {
	return &WorldGenerator{
		params:   params,
		registry: registry,
		noise:    noise.NewField(params.Seed),
	}
}

// Params возвращает параметры, с которыми создан генератор
func (wg *WorldGenerator) Params() Params {
	return wg.params
}

// Generate заполняет воксели чанка. Вызывается ровно один раз на экземпляр
// чанка; повторный вызов — no-op. Результат детерминирован по
// (seed, координаты чанка, размеры, каталог блоков).
func (wg *WorldGenerator) Generate(c *Chunk) {
	if !c.generated.CompareAndSwap(false, true) {
		return
	}

	// Воксели нового чанка уже инициализированы нулём — AirBlockID
	wg.generateResources(c)
	wg.generateTerrain(c)
}

// generateResources размещает ресурсы по 3D-шуму.
// Ресурсы обходятся в порядке регистрации в каталоге: более поздний ресурс
// перезаписывает более ранний в той же позиции. Этот порядок — часть контракта
// генерации, а не случайность.
func (wg *WorldGenerator) generateResources(c *Chunk) {
	originX, originZ := c.Origin()

	for _, res := range wg.registry.Resources() {
		for x := 0; x < c.Width; x++ {
			for y := 0; y < c.Height; y++ {
				for z := 0; z < c.Width; z++ {
					v := wg.noise.Sample3D(
						float64(originX+x)/res.VeinScale.X,
						float64(y)/res.VeinScale.Y,
						float64(originZ+z)/res.VeinScale.Z,
					)
					if v > res.Scarcity {
						c.SetBlockID(x, y, z, res.ID)
					}
				}
			}
		}
	}
}

// generateTerrain строит карту высот поверх прохода ресурсов.
// Ниже поверхности ресурсы сохраняются (земля заполняет только воздух),
// ровно на поверхности всегда побеждает трава, выше поверхности всё
// очищается — ресурсы над рельефом никогда не рендерятся.
func (wg *WorldGenerator) generateTerrain(c *Chunk) {
	originX, originZ := c.Origin()
	terrain := wg.params.Terrain

	for x := 0; x < c.Width; x++ {
		for z := 0; z < c.Width; z++ {
			n := wg.noise.Sample2D(
				float64(originX+x)/terrain.Scale,
				float64(originZ+z)/terrain.Scale,
			)

			height := int(math.Floor(float64(c.Height) * (terrain.Offset + terrain.Magnitude*n)))
			if height < 0 {
				height = 0
			}
			if height > c.Height-1 {
				height = c.Height - 1
			}

			for y := 0; y < c.Height; y++ {
				switch {
				case y < height:
					if id, _ := c.GetBlock(x, y, z); id == block.AirBlockID {
						c.SetBlockID(x, y, z, block.DirtBlockID)
					}
				case y == height:
					c.SetBlockID(x, y, z, block.GrassBlockID)
				default:
					c.SetBlockID(x, y, z, block.AirBlockID)
				}
			}
		}
	}
}
