// Package geometry реализует геометрию выделения: по двум угловым
// точкам и виду фигуры строит множество клеток внутри фигуры или на
// её границе. Выделение всегда вычисляется для одного этажа.
package geometry

import (
	"fmt"
	"math"

	"github.com/annel0/dungeon-editor/internal/vec"
)

// Shape вид фигуры выделения
type Shape int

const (
	RectFill Shape = iota
	RectEdge
	CircleFill
	CircleEdge
	SquircleFill
	SquircleEdge
)

// squircleExponent показатель суперэллипса ("сквиркла")
const squircleExponent = 3.0

// String возвращает строковый идентификатор фигуры
func (s Shape) String() string {
	switch s {
	case RectFill:
		return "rect"
	case RectEdge:
		return "rect-edge"
	case CircleFill:
		return "circle"
	case CircleEdge:
		return "circle-edge"
	case SquircleFill:
		return "squircle"
	case SquircleEdge:
		return "squircle-edge"
	default:
		return "unknown"
	}
}

// ParseShape разбирает строковый идентификатор фигуры
func ParseShape(s string) (Shape, error) {
	switch s {
	case "rect":
		return RectFill, nil
	case "rect-edge":
		return RectEdge, nil
	case "circle":
		return CircleFill, nil
	case "circle-edge":
		return CircleEdge, nil
	case "squircle":
		return SquircleFill, nil
	case "squircle-edge":
		return SquircleEdge, nil
	default:
		return 0, fmt.Errorf("неизвестная фигура выделения: %q", s)
	}
}

// box нормализованный ограничивающий прямоугольник выделения
type box struct {
	minX, maxX, minY, maxY int
}

func newBox(start, end vec.Vec2) box {
	b := box{minX: start.X, maxX: end.X, minY: start.Y, maxY: end.Y}
	if b.minX > b.maxX {
		b.minX, b.maxX = b.maxX, b.minX
	}
	if b.minY > b.maxY {
		b.minY, b.maxY = b.maxY, b.minY
	}
	return b
}

func (b box) contains(p vec.Vec2) bool {
	return p.X >= b.minX && p.X <= b.maxX && p.Y >= b.minY && p.Y <= b.maxY
}

// center возвращает центр и полуразмеры прямоугольника
func (b box) center() (cx, cy, rx, ry float64) {
	cx = float64(b.minX+b.maxX) / 2
	cy = float64(b.minY+b.maxY) / 2
	rx = float64(b.maxX-b.minX) / 2
	ry = float64(b.maxY-b.minY) / 2
	return cx, cy, rx, ry
}

// SelectCells строит множество клеток фигуры на этаже z.
// Клетки перечисляются построчно; граница фигуры (== 1.0) включается.
func SelectCells(shape Shape, start, end vec.Vec2, z int) []vec.Vec3 {
	b := newBox(start, end)

	switch shape {
	case RectFill:
		return rectFill(b, z)
	case RectEdge:
		return rectEdge(b, z)
	case CircleFill, SquircleFill:
		return collect(b, z, insideFunc(shape, b))
	case CircleEdge, SquircleEdge:
		return edgeOf(b, z, insideFunc(shape, b))
	default:
		return nil
	}
}

// insideFunc возвращает предикат принадлежности клетки заполненной фигуре
func insideFunc(shape Shape, b box) func(vec.Vec2) bool {
	cx, cy, rx, ry := b.center()
	switch shape {
	case CircleFill, CircleEdge:
		return func(p vec.Vec2) bool {
			dx := normalized(float64(p.X), cx, rx)
			dy := normalized(float64(p.Y), cy, ry)
			return math.Sqrt(dx*dx+dy*dy) <= 1.0
		}
	default: // squircle
		return func(p vec.Vec2) bool {
			dx := normalized(float64(p.X), cx, rx)
			dy := normalized(float64(p.Y), cy, ry)
			return math.Pow(math.Abs(dx), squircleExponent)+
				math.Pow(math.Abs(dy), squircleExponent) <= 1.0
		}
	}
}

// normalized возвращает (v-c)/r; при нулевом полуразмере ось
// вырождена: точка на оси дает 0, любая другая — за границей.
func normalized(v, c, r float64) float64 {
	if r == 0 {
		if v == c {
			return 0
		}
		return math.Inf(1)
	}
	return (v - c) / r
}

func rectFill(b box, z int) []vec.Vec3 {
	var cells []vec.Vec3
	for y := b.minY; y <= b.maxY; y++ {
		for x := b.minX; x <= b.maxX; x++ {
			cells = append(cells, vec.Vec3{X: x, Y: y, Z: z})
		}
	}
	return cells
}

func rectEdge(b box, z int) []vec.Vec3 {
	var cells []vec.Vec3
	for y := b.minY; y <= b.maxY; y++ {
		for x := b.minX; x <= b.maxX; x++ {
			if x == b.minX || x == b.maxX || y == b.minY || y == b.maxY {
				cells = append(cells, vec.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	return cells
}

// collect перечисляет клетки прямоугольника, удовлетворяющие предикату
func collect(b box, z int, inside func(vec.Vec2) bool) []vec.Vec3 {
	var cells []vec.Vec3
	for y := b.minY; y <= b.maxY; y++ {
		for x := b.minX; x <= b.maxX; x++ {
			if inside(vec.Vec2{X: x, Y: y}) {
				cells = append(cells, vec.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	return cells
}

// edgeOf строит одноклеточную 8-связную границу заполненной фигуры:
// остаются клетки, у которых хотя бы один из 8 соседей лежит вне
// прямоугольника или вне внутренности фигуры. Вырожденный прямоугольник
// (нулевой полуразмер) сводится к границе прямоугольника.
func edgeOf(b box, z int, inside func(vec.Vec2) bool) []vec.Vec3 {
	_, _, rx, ry := b.center()
	if rx == 0 || ry == 0 {
		return rectEdge(b, z)
	}

	interior := make(map[vec.Vec2]struct{})
	for _, c := range collect(b, z, inside) {
		interior[c.ToVec2()] = struct{}{}
	}

	var cells []vec.Vec3
	for y := b.minY; y <= b.maxY; y++ {
		for x := b.minX; x <= b.maxX; x++ {
			p := vec.Vec2{X: x, Y: y}
			if _, ok := interior[p]; !ok {
				continue
			}
			for _, n := range p.Neighbors8() {
				_, in := interior[n]
				if !b.contains(n) || !in {
					cells = append(cells, vec.Vec3{X: x, Y: y, Z: z})
					break
				}
			}
		}
	}
	return cells
}
