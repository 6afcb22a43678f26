package physics

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// InputState — ввод, управляющий телом на одном тике симуляции
type InputState struct {
	Move vec.Vec2Float // Желаемая горизонтальная скорость (X, Z) в блоках/с
	Jump bool          // Запрошен прыжок (срабатывает только на земле)
}

// Body — динамическое физическое тело в виде вертикальной капсулы.
// Position — верхняя точка капсулы (конвенция «камера в голове»):
// тело занимает по вертикали отрезок [Position.Y - Height, Position.Y].
// Телом монопольно владеет драйвер симуляции; движок мутирует его на месте.
type Body struct {
	Position vec.Vec3Float
	Velocity vec.Vec3Float
	Radius   float64
	Height   float64
	OnGround bool
}

// NewBody создаёт тело с нулевой скоростью в указанной позиции
func NewBody(position vec.Vec3Float, radius, height float64) *Body {
	return &Body{
		Position: position,
		Radius:   radius,
		Height:   height,
	}
}
