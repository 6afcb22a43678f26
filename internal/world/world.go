package world

import (
	"context"
	"sync"
	"time"

	"github.com/annel0/voxel-engine/internal/eventbus"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// genQueueSize — ёмкость очереди фоновой генерации.
// При переполнении Update генерирует чанк синхронно.
const genQueueSize = 256

// defaultGenTimeout — предельное время ожидания фонового слота генерации.
// Чанк, не подхваченный воркером за это время, генерируется синхронно
// при следующем Update.
const defaultGenTimeout = 100 * time.Millisecond

// WorldManager управляет множеством загруженных чанков: стримит чанки вокруг
// наблюдателя, маршрутизирует глобальные запросы блоков к владеющему чанку
// и владеет жизненным циклом каждого чанка (absent → generating → loaded → absent).
//
// Дисциплина конкурентности: множество загруженных чанков мутирует только под
// mu; чанк становится видимым для GetBlock только после того, как воркер
// опубликовал его (флаг loaded) — публикация и выгрузка сериализованы тем же
// мьютексом, поэтому частично заполненный чанк прочитать нельзя.
type WorldManager struct {
	mu        sync.RWMutex
	chunks    map[vec.Vec2]*Chunk
	params    Params
	registry  *block.Registry
	generator *WorldGenerator

	renderer Renderer
	bus      eventbus.EventBus

	pool       *genPool // nil — генерация синхронно в Update
	genTimeout time.Duration

	lastObserver vec.Vec3Float
	tracer       trace.Tracer
}

// NewWorldManager создаёт менеджер мира с фоновым пулом генерации
// (по воркеру на ядро CPU).
func NewWorldManager(params Params, registry *block.Registry) *WorldManager {
	return newWorldManager(params, registry, -1)
}

// NewWorldManagerSync создаёт менеджер, генерирующий чанки синхронно внутри
// Update. Используется в тестах и для маленьких миров, где фоновый пул не
// окупается.
func NewWorldManagerSync(params Params, registry *block.Registry) *WorldManager {
	return newWorldManager(params, registry, 0)
}

func newWorldManager(params Params, registry *block.Registry, workers int) *WorldManager {
	wm := &WorldManager{
		chunks:     make(map[vec.Vec2]*Chunk),
		params:     params,
		registry:   registry,
		generator:  NewWorldGenerator(params, registry),
		genTimeout: defaultGenTimeout,
		tracer:     otel.Tracer("voxel-engine/world"),
	}

	if workers != 0 {
		wm.pool = newGenPool(workers, genQueueSize, wm.runGeneration)
	}

	return wm
}

// SetRenderer подключает рендерер. Должен вызываться до первого Update.
func (wm *WorldManager) SetRenderer(r Renderer) {
	wm.mu.Lock()
	wm.renderer = r
	wm.mu.Unlock()
}

// SetEventBus подключает шину событий жизненного цикла чанков
func (wm *WorldManager) SetEventBus(bus eventbus.EventBus) {
	wm.bus = bus
}

// Params возвращает текущие параметры мира
func (wm *WorldManager) Params() Params {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.params
}

// Update пересчитывает видимое множество чанков вокруг наблюдателя.
//
// Чанки в радиусе DrawDistance (метрика Чебышёва, включительно) от чанка
// наблюдателя догружаются; остальные выгружаются немедленно — без LRU и
// отсрочек. Повторно вошедший чанк генерируется заново с нуля: генерация
// детерминирована и дешевле, чем держать память под чанки, в которые
// наблюдатель может никогда не вернуться.
//
// Множество на выгрузку вычисляется по состоянию ДО этого вызова, поэтому
// чанк, запрошенный в этом же проходе, выгружен быть не может.
func (wm *WorldManager) Update(observer vec.Vec3Float) {
	_, span := wm.tracer.Start(context.Background(), "world.update")
	defer span.End()

	obs := observer.ToVec3()
	center, _ := WorldToChunkCoords(obs.X, obs.Y, obs.Z, wm.params.ChunkWidth)

	dd := wm.params.DrawDistance
	desired := make(map[vec.Vec2]struct{}, (2*dd+1)*(2*dd+1))
	for dx := -dd; dx <= dd; dx++ {
		for dz := -dd; dz <= dd; dz++ {
			desired[vec.Vec2{X: center.X + dx, Y: center.Y + dz}] = struct{}{}
		}
	}

	var toGenerate []*Chunk
	var stale []*Chunk
	var evicted []vec.Vec2

	now := time.Now()

	wm.mu.Lock()
	wm.lastObserver = observer

	for coords, c := range wm.chunks {
		if _, keep := desired[coords]; keep {
			continue
		}
		wm.evictLocked(coords, c)
		evicted = append(evicted, coords)
	}

	for coords := range desired {
		if _, exists := wm.chunks[coords]; exists {
			continue
		}
		c := NewChunk(coords, wm.params.ChunkWidth, wm.params.ChunkHeight)
		c.scheduledAt = now
		wm.chunks[coords] = c
		toGenerate = append(toGenerate, c)
	}

	// Fallback: чанки, которые воркеры не подхватили за genTimeout,
	// генерируются синхронно, прежде чем стриминг продолжится.
	for _, c := range wm.chunks {
		if !c.Loaded() && !c.started.Load() && now.Sub(c.scheduledAt) >= wm.genTimeout {
			stale = append(stale, c)
		}
	}
	wm.mu.Unlock()

	span.SetAttributes(
		attribute.Int("world.chunks_requested", len(toGenerate)),
		attribute.Int("world.chunks_evicted", len(evicted)),
	)

	for _, coords := range evicted {
		logging.LogChunkEvicted(coords.X, coords.Y)
		wm.publishChunkEvent(EventChunkEvicted, coords)
	}

	for _, c := range toGenerate {
		if wm.pool == nil || !wm.pool.submit(c) {
			// Свободного слота нет — генерируем в лоб
			wm.runGeneration(c)
		}
	}

	for _, c := range stale {
		wm.runGeneration(c)
	}
}

// evictLocked выгружает чанк. Вызывается только под wm.mu.
// Отмена выставляется до удаления из карты: генерация, не успевшая
// опубликоваться, увидит флаг и не тронет рендерер.
func (wm *WorldManager) evictLocked(coords vec.Vec2, c *Chunk) {
	c.cancelled.Store(true)
	if c.Loaded() {
		if wm.renderer != nil {
			wm.renderer.ReleaseChunkResources(coords)
		}
		metricChunksLoaded.Dec()
	}
	delete(wm.chunks, coords)
	metricChunksEvicted.Inc()
}

// runGeneration выполняет генерацию чанка (из воркера пула либо синхронно).
// Флаг started гарантирует, что чанк генерируется ровно один раз, даже если
// он одновременно попал и в очередь пула, и в синхронный fallback.
func (wm *WorldManager) runGeneration(c *Chunk) {
	if !c.started.CompareAndSwap(false, true) {
		return
	}
	if c.cancelled.Load() {
		metricGenCancelled.Inc()
		return
	}

	_, span := wm.tracer.Start(context.Background(), "world.generate_chunk",
		trace.WithAttributes(
			attribute.Int("chunk.x", c.Coords.X),
			attribute.Int("chunk.z", c.Coords.Y),
		))
	defer span.End()

	wm.mu.RLock()
	gen := wm.generator
	wm.mu.RUnlock()

	start := time.Now()
	gen.Generate(c)

	// Публикация: чанк становится видимым для GetBlock только здесь,
	// и только если его не выгрузили, пока он генерировался.
	wm.mu.Lock()
	if c.cancelled.Load() || wm.chunks[c.Coords] != c {
		wm.mu.Unlock()
		metricGenCancelled.Inc()
		return
	}
	c.buildInstances(wm.renderer)
	c.markLoaded()
	wm.mu.Unlock()

	elapsed := time.Since(start)
	metricChunksGenerated.Inc()
	metricChunksLoaded.Inc()
	metricGenDuration.Observe(elapsed.Seconds())

	logging.LogChunkGenerated(c.Coords.X, c.Coords.Y, elapsed)
	wm.publishChunkEvent(EventChunkLoaded, c.Coords)
}

// GetBlock возвращает ID блока по мировым координатам.
// Второе значение false означает «неизвестно»: владеющий чанк отсутствует или
// ещё не загружен. Это отличается от «известно, что пусто» — физика и мешинг
// обязаны различать эти случаи.
func (wm *WorldManager) GetBlock(wx, wy, wz int) (block.BlockID, bool) {
	coords, local := WorldToChunkCoords(wx, wy, wz, wm.params.ChunkWidth)

	wm.mu.RLock()
	c := wm.chunks[coords]
	wm.mu.RUnlock()

	if c == nil || !c.Loaded() {
		return block.AirBlockID, false
	}
	return c.GetBlock(local.X, local.Y, local.Z)
}

// IsChunkLoaded сообщает, загружен ли чанк с указанными координатами
func (wm *WorldManager) IsChunkLoaded(coords vec.Vec2) bool {
	wm.mu.RLock()
	c := wm.chunks[coords]
	wm.mu.RUnlock()
	return c != nil && c.Loaded()
}

// LoadedChunkCount возвращает количество полностью загруженных чанков
func (wm *WorldManager) LoadedChunkCount() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()

	n := 0
	for _, c := range wm.chunks {
		if c.Loaded() {
			n++
		}
	}
	return n
}

// Regenerate выгружает все чанки и заново стримит мир вокруг последнего
// наблюдателя. Используется при смене глобальных параметров генерации.
// Безопасен в любой момент: устаревших хендлов рендера после вызова не остаётся.
func (wm *WorldManager) Regenerate() {
	wm.mu.Lock()
	for coords, c := range wm.chunks {
		wm.evictLocked(coords, c)
	}
	observer := wm.lastObserver
	wm.mu.Unlock()

	logging.Info("🌍 Полная регенерация мира (seed=%d)", wm.params.Seed)
	wm.publishWorldEvent(EventWorldRegenerated)

	wm.Update(observer)
}

// UpdateParams заменяет параметры генерации и перегенерирует мир.
// Для одинаковых (seed, params) результат детерминирован и идемпотентен.
func (wm *WorldManager) UpdateParams(params Params) {
	wm.mu.Lock()
	wm.params = params
	wm.generator = NewWorldGenerator(params, wm.registry)
	wm.mu.Unlock()

	wm.Regenerate()
}

// Stop останавливает фоновый пул генерации
func (wm *WorldManager) Stop() {
	if wm.pool != nil {
		wm.pool.stop()
	}
}
