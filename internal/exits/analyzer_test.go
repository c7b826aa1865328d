package exits

import (
	"testing"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/vec"
	"github.com/stretchr/testify/assert"
)

// Индексы шаблонов тестового подземелья (1-базные значения клеток)
const (
	roomOpen      = 1 // выходы по умолчанию во все стороны
	roomDense     = 2 // плотная порода
	roomNorthOnly = 3 // единственный выход на север
	roomLinked    = 4 // выход только на север, но явная ссылка на восток
)

func testDungeon() *dungeon.Dungeon {
	d := dungeon.New("test", dungeon.Dimensions{Width: 5, Height: 5, Layers: 1})
	d.Rooms = []dungeon.RoomTemplate{
		{Display: "Зал"},
		{Display: "Порода", Dense: true},
		{Display: "Тупик", AllowedExits: dungeon.ExitNorth},
		{Display: "Портал", AllowedExits: dungeon.ExitNorth, RoomLinks: map[string]string{"east": "@other{0,0,0}"}},
	}
	return d
}

func at(x, y int) vec.Vec3 { return vec.Vec3{X: x, Y: y, Z: 0} }

func TestEmptyCellClassification(t *testing.T) {
	d := testDungeon()
	d.Set(at(2, 1), roomOpen) // сосед с севера

	cls := Classify(d, at(2, 2))
	assert.Equal(t, Blocked, cls.At(dungeon.North), "Занятый сосед пустой клетки отмечается как blocked")
	assert.Equal(t, None, cls.At(dungeon.South), "Пустой сосед пустой клетки — none")
	assert.Equal(t, None, cls.At(dungeon.East))
	assert.Equal(t, None, cls.At(dungeon.West))
}

func TestDenseRoomBlocksAllSides(t *testing.T) {
	d := testDungeon()
	d.Set(at(2, 2), roomDense)
	d.Set(at(2, 1), roomOpen)
	d.Set(at(3, 2), roomOpen)

	cls := Classify(d, at(2, 2))
	for _, dir := range dungeon.Lateral {
		assert.Equal(t, Blocked, cls.At(dir), "Плотная комната блокирует направление %s", dir)
	}
}

func TestTwoWayPassage(t *testing.T) {
	d := testDungeon()
	d.Set(at(2, 2), roomOpen)
	d.Set(at(3, 2), roomOpen)

	assert.Equal(t, TwoWay, Classify(d, at(2, 2)).At(dungeon.East))
	assert.Equal(t, TwoWay, Classify(d, at(3, 2)).At(dungeon.West))
}

func TestOneWayPassage(t *testing.T) {
	d := testDungeon()
	// Открытый зал с тупиком на востоке: зал выпускает на восток,
	// но тупик не выпускает на запад.
	d.Set(at(2, 2), roomOpen)
	d.Set(at(3, 2), roomNorthOnly)

	assert.Equal(t, OneWayExit, Classify(d, at(2, 2)).At(dungeon.East),
		"Выход есть, возврата нет")
	assert.Equal(t, OneWayBlocked, Classify(d, at(3, 2)).At(dungeon.West),
		"Сосед может войти, выйти нельзя")
}

func TestBothMasksClosed(t *testing.T) {
	d := testDungeon()
	d.Set(at(2, 2), roomNorthOnly)
	d.Set(at(3, 2), roomNorthOnly)

	assert.Equal(t, Blocked, Classify(d, at(2, 2)).At(dungeon.East))
}

func TestDenseNeighborBlocks(t *testing.T) {
	d := testDungeon()
	d.Set(at(2, 2), roomOpen)
	d.Set(at(3, 2), roomDense)

	assert.Equal(t, Blocked, Classify(d, at(2, 2)).At(dungeon.East),
		"Плотный сосед блокирует проход независимо от масок")
}

func TestLinkOverridesMasks(t *testing.T) {
	d := testDungeon()
	// Маска запрещает восток, но явная ссылка важнее масок
	d.Set(at(2, 2), roomLinked)
	d.Set(at(3, 2), roomNorthOnly)

	assert.Equal(t, Link, Classify(d, at(2, 2)).At(dungeon.East))
	// Встречная сторона ссылку не видит и считает по маскам:
	// обе маски закрыты, прохода нет
	assert.Equal(t, Blocked, Classify(d, at(3, 2)).At(dungeon.West))
}

func TestGridEdgeIsBlocked(t *testing.T) {
	d := testDungeon()
	d.Set(at(0, 0), roomOpen)

	cls := Classify(d, at(0, 0))
	assert.Equal(t, Blocked, cls.At(dungeon.North), "Край сетки непроходим")
	assert.Equal(t, Blocked, cls.At(dungeon.West))
}
