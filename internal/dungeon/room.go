package dungeon

import "github.com/annel0/dungeon-editor/internal/vec"

// Direction определяет боковое направление на этаже
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Lateral содержит все боковые направления в порядке обхода соседей
var Lateral = [4]Direction{North, South, East, West}

// String возвращает имя направления (ключ для RoomLinks)
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Offset возвращает смещение координат для направления.
// Север уменьшает Y, юг увеличивает (строки растут вниз).
func (d Direction) Offset() vec.Vec2 {
	switch d {
	case North:
		return vec.Vec2{X: 0, Y: -1}
	case South:
		return vec.Vec2{X: 0, Y: 1}
	case East:
		return vec.Vec2{X: 1, Y: 0}
	default:
		return vec.Vec2{X: -1, Y: 0}
	}
}

// ExitBit возвращает бит маски выходов для направления
func (d Direction) ExitBit() ExitMask {
	switch d {
	case North:
		return ExitNorth
	case South:
		return ExitSouth
	case East:
		return ExitEast
	default:
		return ExitWest
	}
}

// ExitMask битовая маска разрешённых выходов комнаты.
// Диагонали не имеют собственных битов: они собираются
// из пары кардинальных направлений через OR.
type ExitMask uint16

const (
	ExitNorth ExitMask = 1 << iota
	ExitSouth
	ExitEast
	ExitWest
	ExitUp
	ExitDown
)

// Композитные диагональные значения
const (
	ExitNortheast = ExitNorth | ExitEast
	ExitNorthwest = ExitNorth | ExitWest
	ExitSoutheast = ExitSouth | ExitEast
	ExitSouthwest = ExitSouth | ExitWest
)

// DefaultExits маска по умолчанию, когда у комнаты выходы не заданы
const DefaultExits = ExitNorth | ExitSouth | ExitEast | ExitWest

// Has проверяет, установлены ли все биты other
func (m ExitMask) Has(other ExitMask) bool {
	return m&other == other
}

// RoomTemplate описывает шаблон комнаты. На шаблон ссылаются
// клетки сетки по 1-базному индексу (индекс в Rooms + 1).
type RoomTemplate struct {
	Display      string            `yaml:"display" json:"display"`
	Description  string            `yaml:"description,omitempty" json:"description,omitempty"`
	MapText      string            `yaml:"map_text,omitempty" json:"map_text,omitempty"`
	MapColor     string            `yaml:"map_color,omitempty" json:"map_color,omitempty"`
	Dense        bool              `yaml:"dense,omitempty" json:"dense,omitempty"`
	AllowedExits ExitMask          `yaml:"allowed_exits,omitempty" json:"allowed_exits,omitempty"`
	RoomLinks    map[string]string `yaml:"room_links,omitempty" json:"room_links,omitempty"`
}

// Exits возвращает действующую маску выходов (с учётом значения по умолчанию)
func (rt *RoomTemplate) Exits() ExitMask {
	if rt.AllowedExits == 0 {
		return DefaultExits
	}
	return rt.AllowedExits
}

// LinkAt возвращает внешнюю ссылку комнаты для направления, если она задана
func (rt *RoomTemplate) LinkAt(dir Direction) (string, bool) {
	if rt.RoomLinks == nil {
		return "", false
	}
	ref, ok := rt.RoomLinks[dir.String()]
	return ref, ok
}

// clone возвращает глубокую копию шаблона комнаты
func (rt RoomTemplate) clone() RoomTemplate {
	if rt.RoomLinks != nil {
		links := make(map[string]string, len(rt.RoomLinks))
		for k, v := range rt.RoomLinks {
			links[k] = v
		}
		rt.RoomLinks = links
	}
	return rt
}
