package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// ChunkHandle идентифицирует ресурсы рендера, принадлежащие одному чанку.
// Совпадает с координатами чанка в сетке.
type ChunkHandle = vec.Vec2

// Renderer представляет рендерер для инстансированной отрисовки вокселей.
// Ядро никогда не выполняет draw-вызовы само: оно только выделяет буферы
// инстансов, записывает в них трансформации видимых вокселей и освобождает
// ресурсы при выгрузке чанка.
type Renderer interface {
	// AllocateInstanceBuffer выделяет буфер инстансов для типа блока внутри чанка
	AllocateInstanceBuffer(handle ChunkHandle, id block.BlockID, capacity int)

	// SetInstance записывает мировую позицию инстанса (центр вокселя)
	SetInstance(handle ChunkHandle, id block.BlockID, instanceID int32, position vec.Vec3Float)

	// ReleaseChunkResources освобождает все ресурсы рендера, связанные с чанком
	ReleaseChunkResources(handle ChunkHandle)
}
