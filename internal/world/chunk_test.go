package world

import (
	"testing"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/stretchr/testify/require"
)

func TestChunkOutOfBoundsAccess(t *testing.T) {
	c := NewChunk(vec.Vec2{X: 0, Y: 0}, 4, 8)

	// Чтение вне границ — (Air, false)
	id, ok := c.GetBlock(-1, 0, 0)
	require.False(t, ok)
	require.Equal(t, block.AirBlockID, id)

	_, ok = c.GetBlock(0, 8, 0)
	require.False(t, ok)

	_, ok = c.GetBlock(0, 0, 4)
	require.False(t, ok)

	// Запись вне границ — no-op, не паникует
	c.SetBlockID(-1, 0, 0, block.DirtBlockID)
	c.SetBlockID(4, 0, 0, block.DirtBlockID)
	c.SetInstanceID(0, -1, 0, 7)

	for x := 0; x < 4; x++ {
		for y := 0; y < 8; y++ {
			for z := 0; z < 4; z++ {
				id, ok := c.GetBlock(x, y, z)
				require.True(t, ok)
				require.Equal(t, block.AirBlockID, id)
			}
		}
	}
}

func TestChunkNewIsAir(t *testing.T) {
	c := NewChunk(vec.Vec2{X: 1, Y: -1}, 2, 2)

	id, ok := c.GetBlock(1, 1, 1)
	require.True(t, ok)
	require.Equal(t, block.AirBlockID, id)

	inst, ok := c.InstanceID(0, 0, 0)
	require.True(t, ok)
	require.Equal(t, NoInstance, inst)
}

func TestIsObscured(t *testing.T) {
	c := NewChunk(vec.Vec2{X: 0, Y: 0}, 3, 3)

	// Полностью заполняем чанк
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				c.SetBlockID(x, y, z, block.DirtBlockID)
			}
		}
	}

	// Центр окружён со всех шести сторон
	require.True(t, c.IsObscured(1, 1, 1))

	// Воксели на границе чанка всегда открыты: сосед за краем считается пустым
	require.False(t, c.IsObscured(0, 1, 1))
	require.False(t, c.IsObscured(1, 2, 1))
	require.False(t, c.IsObscured(1, 1, 2))

	// Воздушный сосед открывает воксель
	c.SetBlockID(1, 2, 1, block.AirBlockID)
	require.False(t, c.IsObscured(1, 1, 1))
}

func TestBuildInstancesScanOrder(t *testing.T) {
	c := NewChunk(vec.Vec2{X: 0, Y: 0}, 2, 2)

	// Все воксели на границе — заслонённых нет
	c.SetBlockID(0, 0, 0, block.DirtBlockID)
	c.SetBlockID(0, 1, 0, block.GrassBlockID)
	c.SetBlockID(1, 0, 1, block.DirtBlockID)

	c.buildInstances(nil)

	// Идентификаторы назначаются в порядке обхода x → y → z,
	// отдельный счётчик на каждый тип блока
	inst, _ := c.InstanceID(0, 0, 0)
	require.Equal(t, int32(0), inst)

	inst, _ = c.InstanceID(0, 1, 0)
	require.Equal(t, int32(0), inst) // первый grass

	inst, _ = c.InstanceID(1, 0, 1)
	require.Equal(t, int32(1), inst) // второй dirt

	// Пустые воксели остаются без инстанса
	inst, _ = c.InstanceID(1, 1, 1)
	require.Equal(t, NoInstance, inst)
}

func TestBuildInstancesSkipsObscured(t *testing.T) {
	c := NewChunk(vec.Vec2{X: 0, Y: 0}, 3, 3)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				c.SetBlockID(x, y, z, block.DirtBlockID)
			}
		}
	}

	c.buildInstances(nil)

	// Центральный воксель заслонён и не получает инстанс
	inst, _ := c.InstanceID(1, 1, 1)
	require.Equal(t, NoInstance, inst)

	// Остальные 26 видимы и получают уникальные идентификаторы
	seen := make(map[int32]bool)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				if x == 1 && y == 1 && z == 1 {
					continue
				}
				inst, ok := c.InstanceID(x, y, z)
				require.True(t, ok)
				require.NotEqual(t, NoInstance, inst)
				require.False(t, seen[inst], "идентификатор инстанса не должен повторяться")
				seen[inst] = true
			}
		}
	}
	require.Len(t, seen, 26)
}
