package vec

import "math"

// Vec2 представляет 2D координаты
type Vec2 struct {
	X, Y int
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub вычитает другой вектор
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Equals проверяет равенство векторов
func (v Vec2) Equals(other Vec2) bool {
	return v.X == other.X && v.Y == other.Y
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Neighbors4 возвращает 4 ортогональных соседа (север, юг, запад, восток).
// Используется заливкой (flood fill) и анализатором выходов.
func (v Vec2) Neighbors4() [4]Vec2 {
	return [4]Vec2{
		{X: v.X, Y: v.Y - 1},
		{X: v.X, Y: v.Y + 1},
		{X: v.X - 1, Y: v.Y},
		{X: v.X + 1, Y: v.Y},
	}
}

// Neighbors8 возвращает 8 соседей (ортогональные + диагональные).
// Используется при вычислении границы фигуры выделения.
func (v Vec2) Neighbors8() [8]Vec2 {
	return [8]Vec2{
		{X: v.X - 1, Y: v.Y - 1},
		{X: v.X, Y: v.Y - 1},
		{X: v.X + 1, Y: v.Y - 1},
		{X: v.X - 1, Y: v.Y},
		{X: v.X + 1, Y: v.Y},
		{X: v.X - 1, Y: v.Y + 1},
		{X: v.X, Y: v.Y + 1},
		{X: v.X + 1, Y: v.Y + 1},
	}
}
