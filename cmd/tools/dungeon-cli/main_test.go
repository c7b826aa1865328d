package main

import (
	"testing"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFloor(t *testing.T) {
	d := dungeon.New("crypt", dungeon.Dimensions{Width: 3, Height: 2, Layers: 1})
	d.Rooms = []dungeon.RoomTemplate{
		{Display: "Зал", MapText: "Z"},
		{Display: "Тупик", MapText: "T", AllowedExits: dungeon.ExitNorth},
		{Display: "Безликая"}, // без MapText рисуется как #
	}
	d.Set(vec.Vec3{X: 0, Y: 0, Z: 0}, 1)
	d.Set(vec.Vec3{X: 1, Y: 0, Z: 0}, 2)
	d.Set(vec.Vec3{X: 2, Y: 1, Z: 0}, 3)

	lines := renderFloor(d, 0)
	require.Len(t, lines, 2)

	// Зал выпускает на восток, тупик не пускает обратно: односторонний выход
	assert.Equal(t, "Z>T . ", lines[0])
	assert.Equal(t, ". . # ", lines[1])
}

func TestRenderFloorEmpty(t *testing.T) {
	d := dungeon.New("crypt", dungeon.Dimensions{Width: 2, Height: 1, Layers: 1})
	lines := renderFloor(d, 0)
	require.Len(t, lines, 1)
	assert.Equal(t, ". . ", lines[0])
}
