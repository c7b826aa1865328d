package dungeon

import (
	"testing"

	"github.com/annel0/dungeon-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridSetGetInversion(t *testing.T) {
	d := New("test", Dimensions{Width: 4, Height: 3, Layers: 2})

	// Внешний Z=0 — нижний этаж, внутренний слой — последний
	pos := vec.Vec3{X: 1, Y: 2, Z: 0}
	d.Set(pos, 7)
	assert.Equal(t, 7, d.Get(pos), "Значение должно читаться по той же координате")
	assert.Equal(t, 7, d.Grid[1][2][1], "Нижний этаж должен лежать в последнем внутреннем слое")
	assert.Equal(t, 0, d.Grid[0][2][1], "Верхний слой должен остаться пустым")

	top := vec.Vec3{X: 1, Y: 2, Z: 1}
	d.Set(top, 3)
	assert.Equal(t, 3, d.Grid[0][2][1], "Верхний этаж должен лежать в первом внутреннем слое")
}

func TestGridOutOfBounds(t *testing.T) {
	d := New("test", Dimensions{Width: 2, Height: 2, Layers: 1})

	assert.Equal(t, 0, d.Get(vec.Vec3{X: -1, Y: 0, Z: 0}), "Чтение вне границ должно давать 0")
	assert.Equal(t, 0, d.Get(vec.Vec3{X: 0, Y: 0, Z: 5}), "Чтение несуществующего этажа должно давать 0")

	// Запись вне границ молча игнорируется
	d.Set(vec.Vec3{X: 10, Y: 10, Z: 0}, 1)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, 0, d.Get(vec.Vec3{X: x, Y: y, Z: 0}))
		}
	}
}

func TestEnsureRowPadsTruncatedGrid(t *testing.T) {
	// Загруженный документ может содержать усечённые строки
	d := New("test", Dimensions{Width: 4, Height: 3, Layers: 1})
	d.Grid = [][][]int{{{5}}} // одна строка из одной клетки

	assert.Equal(t, 5, d.Get(vec.Vec3{X: 0, Y: 0, Z: 0}))
	assert.Equal(t, 0, d.Get(vec.Vec3{X: 3, Y: 2, Z: 0}), "Недостающие клетки читаются как пустые")

	d.Set(vec.Vec3{X: 3, Y: 2, Z: 0}, 2)
	assert.Equal(t, 2, d.Get(vec.Vec3{X: 3, Y: 2, Z: 0}), "Запись должна достроить строку")
	assert.Equal(t, 5, d.Get(vec.Vec3{X: 0, Y: 0, Z: 0}), "Существующие значения сохраняются")
}

func TestRoomAt(t *testing.T) {
	d := New("test", Dimensions{Width: 3, Height: 3, Layers: 1})
	d.Rooms = []RoomTemplate{{Display: "Зал"}, {Display: "Коридор"}}

	pos := vec.Vec3{X: 1, Y: 1, Z: 0}
	_, ok := d.RoomAt(pos)
	assert.False(t, ok, "Пустая клетка не содержит комнаты")

	d.Set(pos, 2)
	room, ok := d.RoomAt(pos)
	require.True(t, ok)
	assert.Equal(t, "Коридор", room.Display, "Индекс клетки 1-базный")

	// Устаревший индекс после удаления шаблона
	d.Set(pos, 9)
	_, ok = d.RoomAt(pos)
	assert.False(t, ok, "Индекс за пределами списка шаблонов не разрешается")
}

func TestResizePreservesExternalCoords(t *testing.T) {
	d := New("test", Dimensions{Width: 3, Height: 3, Layers: 2})
	d.Rooms = []RoomTemplate{{Display: "Зал"}}

	bottom := vec.Vec3{X: 1, Y: 1, Z: 0}
	top := vec.Vec3{X: 2, Y: 2, Z: 1}
	d.Set(bottom, 1)
	d.Set(top, 1)

	// Добавляем этаж сверху: нижние этажи остаются нижними
	d.Resize(Dimensions{Width: 3, Height: 3, Layers: 3})
	assert.Equal(t, 1, d.Get(bottom), "Нижний этаж должен сохраниться после роста")
	assert.Equal(t, 1, d.Get(top), "Средний этаж должен сохраниться после роста")
	assert.Equal(t, 0, d.Get(vec.Vec3{X: 1, Y: 1, Z: 2}), "Новый верхний этаж пуст")

	// Сжатие отрезает верхние этажи и дальние клетки
	d.Resize(Dimensions{Width: 2, Height: 2, Layers: 1})
	assert.Equal(t, 1, d.Get(bottom), "Клетка внутри новых границ сохраняется")
	assert.Equal(t, 0, d.Get(top), "Клетка за новыми границами исчезает")
}

func TestResizeDropsOutOfBoundsResets(t *testing.T) {
	d := New("test", Dimensions{Width: 4, Height: 4, Layers: 1})
	d.Rooms = []RoomTemplate{{Display: "Зал"}}
	d.Set(vec.Vec3{X: 0, Y: 0, Z: 0}, 1)
	d.Set(vec.Vec3{X: 3, Y: 3, Z: 0}, 1)
	d.Resets = []Reset{
		{TemplateID: "goblin", RoomRef: d.RoomRefAt(vec.Vec3{X: 0, Y: 0, Z: 0}), MinCount: 1, MaxCount: 1},
		{TemplateID: "goblin", RoomRef: d.RoomRefAt(vec.Vec3{X: 3, Y: 3, Z: 0}), MinCount: 1, MaxCount: 1},
	}

	d.Resize(Dimensions{Width: 2, Height: 2, Layers: 1})
	require.Len(t, d.Resets, 1, "Ресет за новыми границами должен удалиться")
	assert.Equal(t, d.RoomRefAt(vec.Vec3{X: 0, Y: 0, Z: 0}), d.Resets[0].RoomRef)
}

func TestRemoveResetsAt(t *testing.T) {
	d := New("test", Dimensions{Width: 2, Height: 2, Layers: 1})
	pos := vec.Vec3{X: 1, Y: 0, Z: 0}
	other := vec.Vec3{X: 0, Y: 0, Z: 0}
	d.Resets = []Reset{
		{TemplateID: "goblin", RoomRef: d.RoomRefAt(pos)},
		{TemplateID: "sword", RoomRef: d.RoomRefAt(pos)},
		{TemplateID: "goblin", RoomRef: d.RoomRefAt(other)},
	}

	removed := d.RemoveResetsAt(pos)
	assert.Equal(t, 2, removed, "Должны удалиться оба ресета клетки")
	require.Len(t, d.Resets, 1)
	assert.Equal(t, d.RoomRefAt(other), d.Resets[0].RoomRef, "Ресеты других клеток не затрагиваются")
}

func TestCloneIndependence(t *testing.T) {
	d := New("test", Dimensions{Width: 2, Height: 2, Layers: 1})
	d.Rooms = []RoomTemplate{{Display: "Зал", RoomLinks: map[string]string{"north": "@other{0,0,0}"}}}
	d.Templates = []Template{{ID: "goblin", Type: TemplateMob, Attributes: map[string]interface{}{"hp": 10}}}
	d.Resets = []Reset{{TemplateID: "goblin", RoomRef: d.RoomRefAt(vec.Vec3{}), Equipped: []string{"sword"}}}
	d.Set(vec.Vec3{X: 0, Y: 0, Z: 0}, 1)

	c := d.Clone()
	c.Set(vec.Vec3{X: 0, Y: 0, Z: 0}, 0)
	c.Rooms[0].RoomLinks["north"] = "@changed{0,0,0}"
	c.Templates[0].Attributes["hp"] = 99
	c.Resets[0].Equipped[0] = "axe"

	assert.Equal(t, 1, d.Get(vec.Vec3{X: 0, Y: 0, Z: 0}), "Сетка оригинала не должна меняться")
	assert.Equal(t, "@other{0,0,0}", d.Rooms[0].RoomLinks["north"], "Ссылки комнат не разделяются")
	assert.Equal(t, 10, d.Templates[0].Attributes["hp"], "Атрибуты шаблонов не разделяются")
	assert.Equal(t, "sword", d.Resets[0].Equipped[0], "Снаряжение ресетов не разделяется")
}

func TestExitMaskDefaults(t *testing.T) {
	rt := RoomTemplate{}
	assert.Equal(t, DefaultExits, rt.Exits(), "Нулевая маска означает четыре стороны по умолчанию")

	rt.AllowedExits = ExitNorth
	assert.True(t, rt.Exits().Has(ExitNorth))
	assert.False(t, rt.Exits().Has(ExitSouth))

	// Диагональ — композит из двух кардинальных битов
	assert.True(t, ExitNortheast.Has(ExitNorth))
	assert.True(t, ExitNortheast.Has(ExitEast))
	assert.False(t, ExitNortheast.Has(ExitWest))
}
