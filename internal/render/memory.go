package render

import (
	"sync"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// bufferKey идентифицирует буфер инстансов: чанк + тип блока
type bufferKey struct {
	handle vec.Vec2
	id     block.BlockID
}

// MemoryRenderer — рендерер, хранящий буферы инстансов в памяти.
// Используется в headless-симуляции и в тестах: фиксирует все вызовы ядра
// (выделения, записи инстансов, освобождения), чтобы их можно было проверить.
type MemoryRenderer struct {
	mu         sync.Mutex
	capacities map[bufferKey]int
	instances  map[bufferKey][]vec.Vec3Float
	releases   map[vec.Vec2]int
}

// NewMemoryRenderer создаёт пустой рендерер в памяти
func NewMemoryRenderer() *MemoryRenderer {
	return &MemoryRenderer{
		capacities: make(map[bufferKey]int),
		instances:  make(map[bufferKey][]vec.Vec3Float),
		releases:   make(map[vec.Vec2]int),
	}
}

// AllocateInstanceBuffer выделяет буфер инстансов для типа блока внутри чанка
func (r *MemoryRenderer) AllocateInstanceBuffer(handle world.ChunkHandle, id block.BlockID, capacity int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := bufferKey{handle: handle, id: id}
	r.capacities[key] = capacity
	r.instances[key] = make([]vec.Vec3Float, capacity)
}

// SetInstance записывает позицию инстанса в буфер чанка
func (r *MemoryRenderer) SetInstance(handle world.ChunkHandle, id block.BlockID, instanceID int32, position vec.Vec3Float) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := bufferKey{handle: handle, id: id}
	buf := r.instances[key]
	if int(instanceID) < 0 || int(instanceID) >= len(buf) {
		return
	}
	buf[instanceID] = position
}

// ReleaseChunkResources освобождает все буферы, связанные с чанком
func (r *MemoryRenderer) ReleaseChunkResources(handle world.ChunkHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.capacities {
		if key.handle == handle {
			delete(r.capacities, key)
			delete(r.instances, key)
		}
	}
	r.releases[handle]++
}

// BufferCapacity возвращает ёмкость буфера чанка для типа блока
func (r *MemoryRenderer) BufferCapacity(handle world.ChunkHandle, id block.BlockID) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	capacity, ok := r.capacities[bufferKey{handle: handle, id: id}]
	return capacity, ok
}

// Instances возвращает копию буфера инстансов чанка для типа блока
func (r *MemoryRenderer) Instances(handle world.ChunkHandle, id block.BlockID) []vec.Vec3Float {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := r.instances[bufferKey{handle: handle, id: id}]
	out := make([]vec.Vec3Float, len(buf))
	copy(out, buf)
	return out
}

// ReleaseCount возвращает число вызовов ReleaseChunkResources для чанка
func (r *MemoryRenderer) ReleaseCount(handle world.ChunkHandle) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.releases[handle]
}

// ActiveChunks возвращает число чанков, у которых остались живые буферы
func (r *MemoryRenderer) ActiveChunks() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[vec.Vec2]struct{})
	for key := range r.capacities {
		seen[key.handle] = struct{}{}
	}
	return len(seen)
}

// TotalInstances возвращает суммарное число инстансов во всех живых буферах
func (r *MemoryRenderer) TotalInstances() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, capacity := range r.capacities {
		total += capacity
	}
	return total
}
