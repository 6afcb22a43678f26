package world

import (
	"context"
	"strconv"

	"github.com/annel0/voxel-engine/internal/eventbus"
	"github.com/annel0/voxel-engine/internal/vec"
)

// Типы событий жизненного цикла мира
const (
	EventChunkLoaded      = "world.chunk_loaded"
	EventChunkEvicted     = "world.chunk_evicted"
	EventWorldRegenerated = "world.regenerated"
)

// eventSource — имя источника в конвертах событий мира
const eventSource = "world"

// publishChunkEvent отправляет событие чанка в шину (если она подключена)
func (wm *WorldManager) publishChunkEvent(eventType string, coords vec.Vec2) {
	if wm.bus == nil {
		return
	}
	ev := eventbus.NewEnvelope(eventSource, eventType, map[string]string{
		"chunk_x": strconv.Itoa(coords.X),
		"chunk_z": strconv.Itoa(coords.Y),
	})
	_ = wm.bus.Publish(context.Background(), ev)
}

// publishWorldEvent отправляет событие уровня мира в шину (если она подключена)
func (wm *WorldManager) publishWorldEvent(eventType string) {
	if wm.bus == nil {
		return
	}
	ev := eventbus.NewEnvelope(eventSource, eventType, map[string]string{
		"seed": strconv.FormatInt(wm.params.Seed, 10),
	})
	_ = wm.bus.Publish(context.Background(), ev)
}
