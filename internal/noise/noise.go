package noise

import (
	"github.com/aquilax/go-perlin"
)

// Параметры генератора Перлина: сглаживание, частота и количество октав.
// Значения фиксированы — они входят в контракт детерминированности генерации.
const (
	alpha   = 2.0
	beta    = 2.0
	octaves = int32(3)
)

// Field представляет детерминированное поле градиентного шума, привязанное к сиду.
// Каждый Field независим: два поля с одинаковым сидом дают побитово одинаковые
// значения, с разными — разные миры. После создания Field только читается,
// поэтому его можно безопасно использовать из нескольких горутин одновременно.
type Field struct {
	seed int64
	gen  *perlin.Perlin
}

// NewField создаёт поле шума с указанным сидом
func NewField(seed int64) *Field {
	return &Field{
		seed: seed,
		gen:  perlin.NewPerlin(alpha, beta, octaves, seed),
	}
}

// Seed возвращает сид, с которым создано поле
func (f *Field) Seed() int64 {
	return f.seed
}

// Sample2D возвращает значение шума в точке (x, y), диапазон [-1, 1]
func (f *Field) Sample2D(x, y float64) float64 {
	return clamp(f.gen.Noise2D(x, y))
}

// Sample3D возвращает значение шума в точке (x, y, z), диапазон [-1, 1]
func (f *Field) Sample3D(x, y, z float64) float64 {
	return clamp(f.gen.Noise3D(x, y, z))
}

// clamp ограничивает значение диапазоном [-1, 1].
// Перлин с несколькими октавами может слегка выходить за границы.
func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
