package world

import (
	"runtime"
	"sync"
)

// genPool — пул воркеров для фоновой генерации чанков.
//
// Генерация чанка — чистое CPU-вычисление без I/O, и чанки независимы друг от
// друга, поэтому параллельная генерация разных чанков безопасна. Очередь
// ограничена: если свободного слота нет, вызывающая сторона обязана выполнить
// генерацию синхронно (fallback «ждать не дольше таймаута, затем — в лоб»).
type genPool struct {
	tasks chan *Chunk
	quit  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// newGenPool создаёт пул с указанным числом воркеров.
// При workers <= 0 используется GOMAXPROCS.
func newGenPool(workers, queueSize int, run func(*Chunk)) *genPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &genPool{
		tasks: make(chan *Chunk, queueSize),
		quit:  make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-p.quit:
					return
				case c := <-p.tasks:
					run(c)
				}
			}
		}()
	}

	return p
}

// submit ставит чанк в очередь генерации.
// Возвращает false, если очередь заполнена — тогда генерацию выполняет
// вызывающая сторона.
func (p *genPool) submit(c *Chunk) bool {
	select {
	case p.tasks <- c:
		return true
	default:
		return false
	}
}

// stop останавливает воркеры и дожидается их завершения.
// Задачи, оставшиеся в очереди, не выполняются.
func (p *genPool) stop() {
	p.once.Do(func() {
		close(p.quit)
	})
	p.wg.Wait()
}
