// Package exits реализует анализатор связности клеток: по состоянию
// сетки классифицирует каждое боковое направление клетки для отрисовки
// и проверки легальности размещения. Функция чистая: результат выводится
// только из текущего состояния подземелья.
package exits

import (
	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/vec"
)

// Kind классификация связности в одном направлении
type Kind int

const (
	// None — с этой стороны ничего нет (обе клетки пустые)
	None Kind = iota
	// TwoWay — двусторонний проход
	TwoWay
	// OneWayExit — можно выйти, но сосед не пускает обратно
	OneWayExit
	// OneWayBlocked — сосед может войти к нам, но мы не можем выйти
	OneWayBlocked
	// Blocked — прохода нет
	Blocked
	// Link — у комнаты задана явная внешняя ссылка (roomLinks)
	Link
)

// String возвращает строковое представление классификации
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case TwoWay:
		return "two-way"
	case OneWayExit:
		return "one-way-exit"
	case OneWayBlocked:
		return "one-way-blocked"
	case Blocked:
		return "blocked"
	case Link:
		return "link"
	default:
		return "unknown"
	}
}

// Classification результат анализа клетки: по записи на каждое
// боковое направление (индекс — dungeon.Direction).
type Classification [4]Kind

// At возвращает классификацию для направления
func (c Classification) At(dir dungeon.Direction) Kind {
	return c[dir]
}

// Classify классифицирует четыре боковых направления клетки.
//
// Порядок правил фиксирован:
//  1. пустая клетка: сосед с комнатой отмечается как Blocked, иначе None;
//  2. плотная (dense) комната блокирует все стороны безусловно;
//  3. пустой или плотный сосед — Blocked;
//  4. явная ссылка roomLinks — Link, независимо от масок выходов;
//  5. иначе сравниваются бит выхода текущей комнаты и встречный бит соседа.
func Classify(d *dungeon.Dungeon, pos vec.Vec3) Classification {
	var result Classification

	room, occupied := d.RoomAt(pos)
	if !occupied {
		for _, dir := range dungeon.Lateral {
			if _, ok := d.RoomAt(neighborPos(pos, dir)); ok {
				result[dir] = Blocked
			} else {
				result[dir] = None
			}
		}
		return result
	}

	if room.Dense {
		for _, dir := range dungeon.Lateral {
			result[dir] = Blocked
		}
		return result
	}

	for _, dir := range dungeon.Lateral {
		neighbor, ok := d.RoomAt(neighborPos(pos, dir))
		if !ok || neighbor.Dense {
			result[dir] = Blocked
			continue
		}

		if _, linked := room.LinkAt(dir); linked {
			result[dir] = Link
			continue
		}

		canExit := room.Exits().Has(dir.ExitBit())
		canReturn := neighbor.Exits().Has(dir.Opposite().ExitBit())
		switch {
		case canExit && canReturn:
			result[dir] = TwoWay
		case canExit:
			result[dir] = OneWayExit
		case canReturn:
			result[dir] = OneWayBlocked
		default:
			result[dir] = Blocked
		}
	}

	return result
}

// neighborPos возвращает координату соседа в направлении dir
func neighborPos(pos vec.Vec3, dir dungeon.Direction) vec.Vec3 {
	off := dir.Offset()
	return vec.Vec3{X: pos.X + off.X, Y: pos.Y + off.Y, Z: pos.Z}
}
