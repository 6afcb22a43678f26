package world

import (
	"sync/atomic"
	"time"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// NoInstance — значение идентификатора инстанса для вокселей без инстанса рендера
// (пустых или полностью заслонённых соседями).
const NoInstance int32 = -1

// Chunk представляет участок мира размером Width x Height x Width вокселей.
//
// Воксели хранятся в плоском массиве с арифметикой индексов вместо вложенных
// срезов: так данные лежат непрерывно, и генерация разных чанков в параллельных
// горутинах не разделяет память. Идентификаторы инстансов рендера хранятся
// отдельным массивом той же формы и действительны только пока чанк загружен;
// при выгрузке чанка они освобождаются вместе с его буферами.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в сетке (X, Z)
	Width  int      // Размер по X и Z
	Height int      // Размер по Y

	blocks    []block.BlockID
	instances []int32

	// loaded — единственная точка синхронизации публикации чанка:
	// до установки флага содержимое чанка никому не видно.
	loaded    atomic.Bool
	generated atomic.Bool

	// Поля планировщика генерации
	started     atomic.Bool // Генерация начата (воркером либо синхронным fallback)
	cancelled   atomic.Bool // Чанк выгружен до завершения генерации
	scheduledAt time.Time
}

// NewChunk создаёт пустой чанк с указанными координатами и размерами
func NewChunk(coords vec.Vec2, width, height int) *Chunk {
	volume := width * height * width
	c := &Chunk{
		Coords: coords,
		Width:  width,
		Height: height,
		blocks: make([]block.BlockID, volume), // нулевое значение = AirBlockID
	}

	c.instances = make([]int32, volume)
	for i := range c.instances {
		c.instances[i] = NoInstance
	}
	return c
}

// Origin возвращает мировые координаты угла чанка
func (c *Chunk) Origin() (wx, wz int) {
	return ChunkOrigin(c.Coords, c.Width)
}

// Loaded сообщает, завершена ли генерация чанка.
// До этого момента содержимому чанка доверять нельзя.
func (c *Chunk) Loaded() bool {
	return c.loaded.Load()
}

// markLoaded публикует чанк: после этого GetBlock мира начинает его видеть
func (c *Chunk) markLoaded() {
	c.loaded.Store(true)
}

// InBounds проверяет, лежат ли локальные координаты внутри чанка
func (c *Chunk) InBounds(x, y, z int) bool {
	return x >= 0 && x < c.Width &&
		y >= 0 && y < c.Height &&
		z >= 0 && z < c.Width
}

// index вычисляет индекс вокселя в плоском массиве
func (c *Chunk) index(x, y, z int) int {
	return (x*c.Height+y)*c.Width + z
}

// GetBlock возвращает ID блока по локальным координатам.
// Для координат вне чанка возвращает (AirBlockID, false) — это сознательная
// политика «тихого» выхода за границы: при вычислении видимости граней
// соседи за краем чанка запрашиваются постоянно.
func (c *Chunk) GetBlock(x, y, z int) (block.BlockID, bool) {
	if !c.InBounds(x, y, z) {
		return block.AirBlockID, false
	}
	return c.blocks[c.index(x, y, z)], true
}

// SetBlockID устанавливает ID блока; вне границ — no-op
func (c *Chunk) SetBlockID(x, y, z int, id block.BlockID) {
	if !c.InBounds(x, y, z) {
		return
	}
	c.blocks[c.index(x, y, z)] = id
}

// InstanceID возвращает идентификатор инстанса рендера для вокселя
func (c *Chunk) InstanceID(x, y, z int) (int32, bool) {
	if !c.InBounds(x, y, z) {
		return NoInstance, false
	}
	return c.instances[c.index(x, y, z)], true
}

// SetInstanceID устанавливает идентификатор инстанса; вне границ — no-op
func (c *Chunk) SetInstanceID(x, y, z int, id int32) {
	if !c.InBounds(x, y, z) {
		return
	}
	c.instances[c.index(x, y, z)] = id
}

// IsObscured возвращает true, если воксель заслонён со всех шести сторон.
// Соседи за границей чанка считаются пустыми, поэтому грани на краю чанка
// всегда считаются открытыми — чанки не заглядывают друг в друга при
// вычислении видимости. Это сознательное консервативное приближение.
func (c *Chunk) IsObscured(x, y, z int) bool {
	neighbors := [6][3]int{
		{x, y + 1, z}, {x, y - 1, z},
		{x + 1, y, z}, {x - 1, y, z},
		{x, y, z + 1}, {x, y, z - 1},
	}
	for _, n := range neighbors {
		id, ok := c.GetBlock(n[0], n[1], n[2])
		if !ok || id == block.AirBlockID {
			return false
		}
	}
	return true
}

// buildInstances назначает идентификаторы инстансов рендера видимым вокселям
// и заполняет буферы рендерера. Инстанс получает только непустой и не полностью
// заслонённый воксель; идентификаторы назначаются в порядке обхода x → y → z,
// отдельный счётчик на каждый тип блока. Рендерер может быть nil (headless).
func (c *Chunk) buildInstances(r Renderer) {
	// Первый проход: подсчёт видимых вокселей каждого типа для ёмкости буферов
	counts := make(map[block.BlockID]int)
	for x := 0; x < c.Width; x++ {
		for y := 0; y < c.Height; y++ {
			for z := 0; z < c.Width; z++ {
				id := c.blocks[c.index(x, y, z)]
				if id == block.AirBlockID || c.IsObscured(x, y, z) {
					continue
				}
				counts[id]++
			}
		}
	}

	if r != nil {
		for id, n := range counts {
			r.AllocateInstanceBuffer(c.Coords, id, n)
		}
	}

	// Второй проход: назначение идентификаторов и запись трансформаций
	originX, originZ := c.Origin()
	next := make(map[block.BlockID]int32)
	for x := 0; x < c.Width; x++ {
		for y := 0; y < c.Height; y++ {
			for z := 0; z < c.Width; z++ {
				idx := c.index(x, y, z)
				id := c.blocks[idx]
				if id == block.AirBlockID || c.IsObscured(x, y, z) {
					c.instances[idx] = NoInstance
					continue
				}

				instanceID := next[id]
				next[id] = instanceID + 1
				c.instances[idx] = instanceID

				if r != nil {
					// Трансформация — центр вокселя в мировых координатах
					r.SetInstance(c.Coords, id, instanceID, vec.Vec3Float{
						X: float64(originX+x) + 0.5,
						Y: float64(y) + 0.5,
						Z: float64(originZ+z) + 0.5,
					})
				}
			}
		}
	}
}
