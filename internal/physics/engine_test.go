package physics

import (
	"testing"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
	"github.com/stretchr/testify/require"
)

// querierFunc адаптирует функцию к интерфейсу BlockQuerier
type querierFunc func(wx, wy, wz int) (block.BlockID, bool)

func (f querierFunc) GetBlock(wx, wy, wz int) (block.BlockID, bool) {
	return f(wx, wy, wz)
}

// unloadedWorld — мир, в котором не загружен ни один чанк
func unloadedWorld() BlockQuerier {
	return querierFunc(func(wx, wy, wz int) (block.BlockID, bool) {
		return block.AirBlockID, false
	})
}

// flatWorld — загруженный мир с твёрдым полом: воксели ниже surfaceY непустые
func flatWorld(surfaceY int) BlockQuerier {
	return querierFunc(func(wx, wy, wz int) (block.BlockID, bool) {
		if wy < surfaceY {
			return block.DirtBlockID, true
		}
		return block.AirBlockID, true
	})
}

func newTestBody() *Body {
	return NewBody(vec.Vec3Float{X: 0.5, Y: 10, Z: 0.5}, 0.3, 1.8)
}

func TestBodyFallsThroughUnloadedWorld(t *testing.T) {
	e := NewEngine(unloadedWorld())
	b := newTestBody()

	prev := b.Position.Y
	for i := 0; i < 100; i++ {
		e.Step(b, InputState{}, 0.02)
		require.Less(t, b.Position.Y, prev, "без загруженных чанков тело падает свободно")
		require.False(t, b.OnGround)
		prev = b.Position.Y
	}
}

func TestBodyLandsAndRests(t *testing.T) {
	e := NewEngine(flatWorld(5))
	b := newTestBody()

	for i := 0; i < 300; i++ {
		e.Step(b, InputState{}, 0.02)
	}

	// Низ капсулы покоится ровно на поверхности пола
	require.True(t, b.OnGround)
	require.InDelta(t, 5.0+b.Height, b.Position.Y, 1e-6)
	require.Equal(t, 0.0, b.Velocity.Y)

	// Опора стабильна: флаг не мерцает от тика к тику
	for i := 0; i < 20; i++ {
		e.Step(b, InputState{}, 0.02)
		require.True(t, b.OnGround)
		require.InDelta(t, 5.0+b.Height, b.Position.Y, 1e-6)
	}
}

func TestJumpOnlyFromGround(t *testing.T) {
	e := NewEngine(flatWorld(5))
	b := newTestBody()

	for i := 0; i < 300; i++ {
		e.Step(b, InputState{}, 0.02)
	}
	require.True(t, b.OnGround)

	// Прыжок с земли: тело отрывается, флаг сбрасывается в тот же тик
	e.Step(b, InputState{Jump: true}, 0.02)
	require.False(t, b.OnGround)
	require.Greater(t, b.Velocity.Y, 0.0)

	// Повторный прыжок в воздухе игнорируется — скорость только убывает
	before := b.Velocity.Y
	e.Step(b, InputState{Jump: true}, 0.02)
	require.Less(t, b.Velocity.Y, before)

	// Тело приземляется обратно
	for i := 0; i < 300; i++ {
		e.Step(b, InputState{}, 0.02)
	}
	require.True(t, b.OnGround)
	require.InDelta(t, 5.0+b.Height, b.Position.Y, 1e-6)
}

func TestInputSetsHorizontalVelocityInstantly(t *testing.T) {
	e := NewEngine(unloadedWorld())
	b := newTestBody()

	e.Step(b, InputState{Move: vec.Vec2Float{X: 3, Y: -2}}, 0.1)
	require.Equal(t, 3.0, b.Velocity.X)
	require.Equal(t, -2.0, b.Velocity.Z)
	require.InDelta(t, 0.5+0.3, b.Position.X, 1e-9)
	require.InDelta(t, 0.5-0.2, b.Position.Z, 1e-9)

	// Сброс ввода мгновенно останавливает горизонтальное движение
	e.Step(b, InputState{}, 0.1)
	require.Equal(t, 0.0, b.Velocity.X)
	require.Equal(t, 0.0, b.Velocity.Z)
}

func TestWallPushOut(t *testing.T) {
	// Сплошная стена при x >= 3
	wall := querierFunc(func(wx, wy, wz int) (block.BlockID, bool) {
		if wx >= 3 {
			return block.StoneBlockID, true
		}
		return block.AirBlockID, true
	})

	e := NewEngine(wall)
	e.Gravity = 0 // изолируем горизонтальную ось
	b := NewBody(vec.Vec3Float{X: 2.7, Y: 10, Z: 0.5}, 0.3, 1.8)

	e.Step(b, InputState{Move: vec.Vec2Float{X: 2, Y: 0}}, 0.05)

	// Тело вытолкнуто к грани стены, горизонтальная скорость погашена
	require.InDelta(t, 2.7, b.Position.X, 1e-9)
	require.Equal(t, 0.0, b.Velocity.X)
}

func TestFallsThroughGapToLoadedFloor(t *testing.T) {
	// Чанки выше y = -8 не загружены, ниже — загружены с полом на y = -10
	patchy := querierFunc(func(wx, wy, wz int) (block.BlockID, bool) {
		if wy >= -8 {
			return block.AirBlockID, false
		}
		if wy < -10 {
			return block.DirtBlockID, true
		}
		return block.AirBlockID, true
	})

	e := NewEngine(patchy)
	b := newTestBody()

	// Мелкий шаг: на длинном падении тело набирает большую скорость,
	// и крупный dt протащил бы его глубже, чем на полвокселя за тик
	for i := 0; i < 400; i++ {
		e.Step(b, InputState{}, 0.01)
	}

	// Тело свободно прошло незагруженную зону и легло на загруженный пол
	require.True(t, b.OnGround)
	require.InDelta(t, -10.0+b.Height, b.Position.Y, 1e-6)
}
