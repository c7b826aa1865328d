package editor

import (
	"github.com/annel0/dungeon-editor/internal/dungeon"
)

// DefaultHistoryDepth глубина истории undo по умолчанию
const DefaultHistoryDepth = 50

// History хранит ограниченную последовательность полных снимков
// документа. Инвариант: entries[index] всегда равен текущему
// состоянию документа; всё левее — прошлое (undo), правее — будущее
// (redo). Снимки никогда не ссылаются на живое состояние.
type History struct {
	entries  []*dungeon.Dungeon
	index    int
	maxDepth int
}

// NewHistory создает историю с начальным снимком загруженного документа
func NewHistory(initial *dungeon.Dungeon, maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultHistoryDepth
	}
	return &History{
		entries:  []*dungeon.Dungeon{initial.Clone()},
		index:    0,
		maxDepth: maxDepth,
	}
}

// Record фиксирует состояние документа после очередной мутации.
// Если до этого были undo, хвост redo усекается. При превышении
// глубины самый старый снимок отбрасывается с сохранением
// относительной позиции индекса.
func (h *History) Record(current *dungeon.Dungeon) {
	if h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	h.entries = append(h.entries, current.Clone())
	h.index = len(h.entries) - 1

	if len(h.entries) > h.maxDepth {
		drop := len(h.entries) - h.maxDepth
		h.entries = h.entries[drop:]
		h.index -= drop
		if h.index < 0 {
			h.index = 0
		}
	}
}

// Undo возвращает предыдущий снимок. Если истории нет (index == 0),
// возвращает nil, false — это уведомление, а не ошибка.
func (h *History) Undo() (*dungeon.Dungeon, bool) {
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return h.entries[h.index].Clone(), true
}

// Redo возвращает следующий снимок, если ранее был undo
func (h *History) Redo() (*dungeon.Dungeon, bool) {
	if h.index >= len(h.entries)-1 {
		return nil, false
	}
	h.index++
	return h.entries[h.index].Clone(), true
}

// CanUndo сообщает, есть ли более ранние снимки
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo сообщает, есть ли более поздние снимки
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Len возвращает количество хранимых снимков
func (h *History) Len() int { return len(h.entries) }
