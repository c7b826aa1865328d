package geometry

import (
	"testing"

	"github.com/annel0/dungeon-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contains(cells []vec.Vec3, x, y int) bool {
	for _, c := range cells {
		if c.X == x && c.Y == y {
			return true
		}
	}
	return false
}

func TestParseShape(t *testing.T) {
	for _, name := range []string{"rect", "rect-edge", "circle", "circle-edge", "squircle", "squircle-edge"} {
		s, err := ParseShape(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	_, err := ParseShape("triangle")
	assert.Error(t, err, "Неизвестная фигура должна отвергаться")
}

func TestRectFill(t *testing.T) {
	cells := SelectCells(RectFill, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}, 2)
	assert.Len(t, cells, 25)
	for _, c := range cells {
		assert.Equal(t, 2, c.Z, "Все клетки на запрошенном этаже")
	}
}

func TestRectFillSwappedCorners(t *testing.T) {
	// Порядок углов не важен
	a := SelectCells(RectFill, vec.Vec2{X: 4, Y: 4}, vec.Vec2{X: 0, Y: 0}, 0)
	b := SelectCells(RectFill, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}, 0)
	assert.Equal(t, b, a)
}

func TestRectEdge(t *testing.T) {
	cells := SelectCells(RectEdge, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}, 0)
	assert.Len(t, cells, 16, "Рамка 5x5 содержит 16 клеток")
	assert.False(t, contains(cells, 2, 2), "Центр не входит в рамку")
	assert.True(t, contains(cells, 0, 2))
	assert.True(t, contains(cells, 4, 4))
}

func TestCircleFillFiveByFive(t *testing.T) {
	cells := SelectCells(CircleFill, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}, 0)
	assert.Len(t, cells, 13)
	assert.True(t, contains(cells, 2, 2), "Центр внутри")
	assert.True(t, contains(cells, 2, 0), "Вершины осей на границе включаются")
	assert.True(t, contains(cells, 1, 1))
	assert.False(t, contains(cells, 0, 0), "Углы за пределами окружности")
	assert.False(t, contains(cells, 1, 0))
}

func TestCircleEdgeFiveByFive(t *testing.T) {
	fill := SelectCells(CircleFill, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}, 0)
	edge := SelectCells(CircleEdge, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 4}, 0)

	assert.Len(t, edge, len(fill)-1, "Только центр имеет все 8 соседей внутри")
	assert.False(t, contains(edge, 2, 2), "Центр не входит в границу")
	for _, c := range edge {
		assert.True(t, contains(fill, c.X, c.Y), "Граница — подмножество заполнения")
	}
}

func TestCircleBoundaryInclusive(t *testing.T) {
	// Прямоугольник 21x21: полуоси 10. Клетка (16,18) лежит ровно на
	// окружности (смещения 0.6 и 0.8) и должна включаться.
	cells := SelectCells(CircleFill, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 20, Y: 20}, 0)
	assert.True(t, contains(cells, 16, 18))
}

func TestSquircleWiderThanCircle(t *testing.T) {
	circle := SelectCells(CircleFill, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 20, Y: 20}, 0)
	squircle := SelectCells(SquircleFill, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 20, Y: 20}, 0)

	// Сквиркл лежит между окружностью и прямоугольником
	assert.Greater(t, len(squircle), len(circle))
	assert.Less(t, len(squircle), 21*21)

	// Клетка со смещениями 0.8 и 0.7: вне окружности, внутри сквиркла
	assert.False(t, contains(circle, 18, 17))
	assert.True(t, contains(squircle, 18, 17))

	// Каждая клетка окружности входит и в сквиркл
	for _, c := range circle {
		assert.True(t, contains(squircle, c.X, c.Y))
	}

	// Углы прямоугольника не входят даже в сквиркл
	assert.False(t, contains(squircle, 0, 0))
	assert.False(t, contains(squircle, 20, 20))
}

func TestDegenerateShapesFallBackToRect(t *testing.T) {
	// Одна строка: эллиптическая граница вырождается в рамку
	row := SelectCells(CircleEdge, vec.Vec2{X: 0, Y: 3}, vec.Vec2{X: 4, Y: 3}, 0)
	assert.Len(t, row, 5)

	col := SelectCells(SquircleEdge, vec.Vec2{X: 2, Y: 0}, vec.Vec2{X: 2, Y: 4}, 0)
	assert.Len(t, col, 5)

	// Одна клетка
	single := SelectCells(CircleFill, vec.Vec2{X: 3, Y: 3}, vec.Vec2{X: 3, Y: 3}, 0)
	require.Len(t, single, 1)
	assert.Equal(t, vec.Vec3{X: 3, Y: 3, Z: 0}, single[0])
}
