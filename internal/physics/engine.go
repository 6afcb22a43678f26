package physics

import (
	"math"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// Физические константы по умолчанию
const (
	DefaultGravity   = 25.0 // Ускорение свободного падения, блоков/с²
	DefaultJumpSpeed = 8.0  // Вертикальная скорость прыжка, блоков/с
)

// BlockQuerier — доступ физики к воксельной сетке.
// Второе значение false означает «чанк не загружен»: такие воксели
// считаются несуществующими, и тело проходит сквозь них.
type BlockQuerier interface {
	GetBlock(wx, wy, wz int) (block.BlockID, bool)
}

// Engine продвигает физические тела по тикам и разрешает их столкновения
// с воксельной сеткой. Движок не хранит состояния тел и не знает о чанках —
// только интерфейс запроса блоков.
type Engine struct {
	world     BlockQuerier
	Gravity   float64
	JumpSpeed float64
}

// NewEngine создаёт физический движок поверх воксельного мира
func NewEngine(world BlockQuerier) *Engine {
	return &Engine{
		world:     world,
		Gravity:   DefaultGravity,
		JumpSpeed: DefaultJumpSpeed,
	}
}

// Step продвигает тело на один тик.
//
// Горизонтальный ввод задаёт скорость мгновенно, без разгона. Интегрирование —
// полунеявный Эйлер (сначала скорость, потом позиция): тело, стоящее на земле,
// каждый тик чуть проседает под гравитацией и выталкивается обратно, поэтому
// OnGround стабилен, пока есть опора. Ограничителя dt нет: большой скачок dt
// может протащить тело сквозь геометрию — известная граница поведения.
func (e *Engine) Step(b *Body, input InputState, dt float64) {
	from := b.Position

	b.Velocity.X = input.Move.X
	b.Velocity.Z = input.Move.Y
	if input.Jump && b.OnGround {
		b.Velocity.Y = e.JumpSpeed
	}

	b.Velocity.Y -= e.Gravity * dt
	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	e.resolveCollisions(b)

	metricSteps.Inc()
	logging.LogBodyMovement(
		from.X, from.Y, from.Z,
		b.Position.X, b.Position.Y, b.Position.Z,
		b.OnGround,
	)
}

// resolveCollisions выталкивает тело из пересечённых вокселей.
//
// Для каждого вокселя в ограничивающем объёме капсулы вычисляется
// minimal-translation-vector: выталкивание по оси наименьшего проникновения,
// с обнулением соответствующей компоненты скорости. Выталкивание снизу вверх
// означает опору — OnGround ставится на этот тик. Флаг пересчитывается каждый
// тик заново, он не «липкий».
//
// Незагруженный чанк (ok == false) — не столкновение: тело свободно падает
// сквозь несгенерированный мир. Это осознанная деградация на границах
// стриминга, а не ошибка.
func (e *Engine) resolveCollisions(b *Body) {
	b.OnGround = false

	// Объём поиска фиксируется по позиции на входе: одно выталкивание
	// на воксель за тик
	minX := b.Position.X - b.Radius
	maxX := b.Position.X + b.Radius
	minY := b.Position.Y - b.Height
	maxY := b.Position.Y
	minZ := b.Position.Z - b.Radius
	maxZ := b.Position.Z + b.Radius

	for vx := int(math.Floor(minX)); vx <= int(math.Floor(maxX)); vx++ {
		for vy := int(math.Floor(minY)); vy <= int(math.Floor(maxY)); vy++ {
			for vz := int(math.Floor(minZ)); vz <= int(math.Floor(maxZ)); vz++ {
				id, ok := e.world.GetBlock(vx, vy, vz)
				if !ok || id == block.AirBlockID {
					continue
				}
				e.pushOut(b, vx, vy, vz)
			}
		}
	}
}

// pushOut выталкивает тело из одного вокселя по оси наименьшего проникновения
func (e *Engine) pushOut(b *Body, vx, vy, vz int) {
	// Границы тела пересчитываются: предыдущее выталкивание могло сдвинуть его
	bodyMinX := b.Position.X - b.Radius
	bodyMaxX := b.Position.X + b.Radius
	bodyMinY := b.Position.Y - b.Height
	bodyMaxY := b.Position.Y
	bodyMinZ := b.Position.Z - b.Radius
	bodyMaxZ := b.Position.Z + b.Radius

	overlapX := math.Min(bodyMaxX, float64(vx)+1) - math.Max(bodyMinX, float64(vx))
	overlapY := math.Min(bodyMaxY, float64(vy)+1) - math.Max(bodyMinY, float64(vy))
	overlapZ := math.Min(bodyMaxZ, float64(vz)+1) - math.Max(bodyMinZ, float64(vz))
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return
	}

	metricCollisions.Inc()

	switch {
	case overlapX <= overlapY && overlapX <= overlapZ:
		if (bodyMinX+bodyMaxX)/2 > float64(vx)+0.5 {
			b.Position.X += overlapX
		} else {
			b.Position.X -= overlapX
		}
		b.Velocity.X = 0

	case overlapZ <= overlapX && overlapZ <= overlapY:
		if (bodyMinZ+bodyMaxZ)/2 > float64(vz)+0.5 {
			b.Position.Z += overlapZ
		} else {
			b.Position.Z -= overlapZ
		}
		b.Velocity.Z = 0

	default:
		if (bodyMinY+bodyMaxY)/2 > float64(vy)+0.5 {
			// Опора снизу
			b.Position.Y += overlapY
			b.OnGround = true
		} else {
			// Удар головой о потолок
			b.Position.Y -= overlapY
		}
		b.Velocity.Y = 0
	}
}
