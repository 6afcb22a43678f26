package world

// TerrainParams задаёт форму карты высот.
// height = clamp(floor(chunkHeight * (Offset + Magnitude * noise)), 0, chunkHeight-1)
type TerrainParams struct {
	Scale     float64 // Масштаб 2D-шума (чем больше, тем более плавный рельеф)
	Magnitude float64 // Амплитуда рельефа в долях высоты чанка
	Offset    float64 // Базовый уровень поверхности в долях высоты чанка
}

// Params — параметры генерации мира.
// Неизменяемы в течение одного прохода генерации: при одинаковом сиде и
// параметрах повторная генерация даёт побитово одинаковый мир.
type Params struct {
	Seed         int64
	ChunkWidth   int // Ширина чанка по X и Z
	ChunkHeight  int // Высота чанка по Y (мир не делится на чанки по вертикали)
	DrawDistance int // Радиус видимости в чанках (метрика Чебышёва, включительно)
	Terrain      TerrainParams
}

// DefaultParams возвращает параметры мира по умолчанию
func DefaultParams() Params {
	return Params{
		Seed:         0,
		ChunkWidth:   32,
		ChunkHeight:  32,
		DrawDistance: 1,
		Terrain: TerrainParams{
			Scale:     30,
			Magnitude: 0.1,
			Offset:    0.2,
		},
	}
}
