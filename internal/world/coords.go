package world

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// WorldToChunkCoords отображает мировые координаты блока в координаты чанка
// и локальные координаты внутри него. Чистая функция без побочных эффектов.
//
// Деление — floor, а не усечение: мировой x = -1 при ширине чанка 32 попадает
// в чанк -1 с локальным x = 31, а не в чанк 0.
func WorldToChunkCoords(wx, wy, wz, chunkWidth int) (chunk vec.Vec2, local vec.Vec3) {
	cx := floorDiv(wx, chunkWidth)
	cz := floorDiv(wz, chunkWidth)
	return vec.Vec2{X: cx, Y: cz}, vec.Vec3{
		X: wx - cx*chunkWidth,
		Y: wy,
		Z: wz - cz*chunkWidth,
	}
}

// ChunkOrigin возвращает мировые координаты угла чанка (минимальные X/Z)
func ChunkOrigin(coords vec.Vec2, chunkWidth int) (wx, wz int) {
	return coords.X * chunkWidth, coords.Y * chunkWidth
}

// floorDiv — целочисленное деление с округлением вниз (для отрицательных тоже)
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
