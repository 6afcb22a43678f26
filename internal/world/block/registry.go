package block

import (
	"github.com/annel0/voxel-engine/internal/vec"
)

// BlockID представляет идентификатор блока
type BlockID uint16

// Константы ID блоков
const (
	// Базовые типы блоков
	AirBlockID   BlockID = iota // 0 — пустой блок (sentinel)
	DirtBlockID                 // 1
	GrassBlockID                // 2

	// Ресурсы (генерируются жилами по 3D-шуму)
	StoneBlockID   // 3
	CoalOreBlockID // 4
	IronOreBlockID // 5
)

// Type описывает неизменяемый тип блока.
// Блоки с параметрами жилы (VeinScale + Scarcity) считаются ресурсами:
// генерация размещает их по 3D-шуму до прохода карты высот.
type Type struct {
	ID        BlockID
	Name      string
	VeinScale vec.Vec3Float // Масштаб жилы по осям (только для ресурсов)
	Scarcity  float64       // Порог редкости в [0, 1] (только для ресурсов)
}

// IsResource возвращает true, если тип участвует в проходе генерации ресурсов
func (t Type) IsResource() bool {
	return t.Scarcity > 0
}

// Registry — статический каталог типов блоков.
// ID блоков — маленькие плотные целые, поэтому вместо карты используется
// ограниченный массив с индексацией по ID. Порядок регистрации ресурсов
// сохраняется: генерация обходит их именно в этом порядке, и более поздний
// ресурс перезаписывает более ранний в той же позиции.
type Registry struct {
	types     []Type
	known     []bool
	resources []Type
}

// NewRegistry создаёт пустой каталог блоков
func NewRegistry() *Registry {
	return &Registry{}
}

// Register добавляет тип блока в каталог.
// Повторная регистрация ID перезаписывает тип, но не меняет порядок ресурсов.
func (r *Registry) Register(t Type) {
	idx := int(t.ID)
	for len(r.types) <= idx {
		r.types = append(r.types, Type{})
		r.known = append(r.known, false)
	}

	if t.IsResource() {
		found := false
		for i := range r.resources {
			if r.resources[i].ID == t.ID {
				r.resources[i] = t
				found = true
				break
			}
		}
		if !found {
			r.resources = append(r.resources, t)
		}
	}

	r.types[idx] = t
	r.known[idx] = true
}

// Get возвращает тип блока для указанного ID
func (r *Registry) Get(id BlockID) (Type, bool) {
	idx := int(id)
	if idx >= len(r.types) || !r.known[idx] {
		return Type{}, false
	}
	return r.types[idx], true
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func (r *Registry) IsValidBlockID(id BlockID) bool {
	_, exists := r.Get(id)
	return exists
}

// Resources возвращает типы-ресурсы в порядке их регистрации
func (r *Registry) Resources() []Type {
	return r.resources
}

// DefaultRegistry создаёт каталог со стандартным набором блоков
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(Type{ID: AirBlockID, Name: "air"})
	r.Register(Type{ID: DirtBlockID, Name: "dirt"})
	r.Register(Type{ID: GrassBlockID, Name: "grass"})

	// Камень — самый частый ресурс, регистрируется первым:
	// руды, зарегистрированные позже, перезаписывают его в той же позиции
	r.Register(Type{
		ID:        StoneBlockID,
		Name:      "stone",
		VeinScale: vec.Vec3Float{X: 30, Y: 30, Z: 30},
		Scarcity:  0.5,
	})
	r.Register(Type{
		ID:        CoalOreBlockID,
		Name:      "coal_ore",
		VeinScale: vec.Vec3Float{X: 20, Y: 5, Z: 20},
		Scarcity:  0.8,
	})
	r.Register(Type{
		ID:        IronOreBlockID,
		Name:      "iron_ore",
		VeinScale: vec.Vec3Float{X: 16, Y: 8, Z: 16},
		Scarcity:  0.9,
	})

	return r
}
