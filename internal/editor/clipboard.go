package editor

import (
	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/vec"
)

// clipboardCell клетка буфера обмена: смещение относительно минимума
// выделения и значение клетки. Нулевое значение — маркер пустоты:
// при вставке такая клетка активно очищает цель.
type clipboardCell struct {
	offset vec.Vec3
	value  int
}

// clipboardReset ресет буфера обмена со смещением его клетки
type clipboardReset struct {
	offset vec.Vec3
	reset  dungeon.Reset
}

// Clipboard хранит скопированный фрагмент сетки вместе с ресетами
// включённых клеток. Все координаты относительны минимума выделения.
type Clipboard struct {
	cells  []clipboardCell
	resets []clipboardReset
}

// Empty сообщает, пуст ли буфер обмена
func (c *Clipboard) Empty() bool {
	return c == nil || len(c.cells) == 0
}

// copySelection снимает фрагмент документа по множеству выделенных клеток
func copySelection(d *dungeon.Dungeon, selection map[vec.Vec3]struct{}) *Clipboard {
	origin := selectionMin(selection)
	clip := &Clipboard{}

	for pos := range selection {
		clip.cells = append(clip.cells, clipboardCell{
			offset: pos.Sub(origin),
			value:  d.Get(pos),
		})
		for _, i := range d.ResetsAt(pos) {
			clip.resets = append(clip.resets, clipboardReset{
				offset: pos.Sub(origin),
				reset:  d.Resets[i].Clone(),
			})
		}
	}
	return clip
}

// selectionMin возвращает покомпонентный минимум координат выделения
func selectionMin(selection map[vec.Vec3]struct{}) vec.Vec3 {
	first := true
	var min vec.Vec3
	for pos := range selection {
		if first {
			min = pos
			first = false
			continue
		}
		if pos.X < min.X {
			min.X = pos.X
		}
		if pos.Y < min.Y {
			min.Y = pos.Y
		}
		if pos.Z < min.Z {
			min.Z = pos.Z
		}
	}
	return min
}
