package editor

import (
	"testing"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyDoc() *dungeon.Dungeon {
	d := dungeon.New("test", dungeon.Dimensions{Width: 3, Height: 3, Layers: 1})
	d.Rooms = []dungeon.RoomTemplate{{Display: "Зал"}}
	return d
}

func TestHistoryUndoRedo(t *testing.T) {
	doc := historyDoc()
	h := NewHistory(doc, 10)
	assert.False(t, h.CanUndo(), "Начальный снимок не отменяется")
	assert.False(t, h.CanRedo())

	pos := vec.Vec3{X: 1, Y: 1, Z: 0}
	doc.Set(pos, 1)
	h.Record(doc)
	require.True(t, h.CanUndo())

	prev, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, 0, prev.Get(pos), "Undo возвращает состояние до мутации")

	next, ok := h.Redo()
	require.True(t, ok)
	assert.Equal(t, 1, next.Get(pos), "Redo возвращает состояние после мутации")

	_, ok = h.Redo()
	assert.False(t, ok, "В конце истории redo невозможен")
}

func TestHistoryRedoTailTruncated(t *testing.T) {
	doc := historyDoc()
	h := NewHistory(doc, 10)
	pos := vec.Vec3{X: 0, Y: 0, Z: 0}

	doc.Set(pos, 1)
	h.Record(doc)
	_, ok := h.Undo()
	require.True(t, ok)

	// Новая мутация после undo отсекает ветку redo
	doc.Set(pos, 0)
	doc.Set(vec.Vec3{X: 2, Y: 2, Z: 0}, 1)
	h.Record(doc)
	assert.False(t, h.CanRedo(), "После новой мутации redo-хвост исчезает")
	assert.Equal(t, 2, h.Len())
}

func TestHistoryDepthDropsOldest(t *testing.T) {
	doc := historyDoc()
	h := NewHistory(doc, 3)

	for i := 1; i <= 5; i++ {
		doc.Set(vec.Vec3{X: 0, Y: 0, Z: 0}, i%2)
		h.Record(doc)
	}
	assert.Equal(t, 3, h.Len(), "Глубина ограничена")

	// Откатиться можно не дальше самого старого хранимого снимка
	undos := 0
	for h.CanUndo() {
		_, ok := h.Undo()
		require.True(t, ok)
		undos++
	}
	assert.Equal(t, 2, undos)
}

func TestHistorySnapshotsIndependent(t *testing.T) {
	doc := historyDoc()
	h := NewHistory(doc, 10)
	pos := vec.Vec3{X: 1, Y: 0, Z: 0}

	doc.Set(pos, 1)
	h.Record(doc)

	// Мутация живого документа без Record не должна менять снимки
	doc.Set(pos, 0)
	snap, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, 0, snap.Get(pos))
	snap, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, 1, snap.Get(pos), "Снимок не разделяет сетку с живым документом")
}
