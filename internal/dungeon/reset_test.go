package dungeon

import (
	"testing"

	"github.com/annel0/dungeon-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRefRoundTrip(t *testing.T) {
	pos := vec.Vec3{X: 3, Y: 7, Z: 1}
	ref := FormatRoomRef("crypt", pos)
	assert.Equal(t, "@crypt{3,7,1}", ref)

	id, parsed, err := ParseRoomRef(ref)
	require.NoError(t, err)
	assert.Equal(t, "crypt", id)
	assert.Equal(t, pos, parsed)
}

func TestRoomRefNegativeCoords(t *testing.T) {
	// Отрицательные координаты возможны в буфере обмена до проверки границ
	ref := FormatRoomRef("crypt", vec.Vec3{X: -1, Y: 0, Z: 0})
	_, pos, err := ParseRoomRef(ref)
	require.NoError(t, err)
	assert.Equal(t, -1, pos.X)
}

func TestParseRoomRefErrors(t *testing.T) {
	cases := []string{
		"crypt{1,2,3}", // нет префикса @
		"@crypt{1,2,3", // нет закрывающей скобки
		"@crypt",       // нет координат
		"@crypt{a,b,c}",
	}
	for _, ref := range cases {
		_, _, err := ParseRoomRef(ref)
		assert.Error(t, err, "Ссылка %q должна отвергаться", ref)
	}
}

func TestTemplateRefRoundTrip(t *testing.T) {
	ref := FormatTemplateRef("crypt", "goblin")
	assert.Equal(t, "@crypt:goblin", ref)

	dID, tID, err := ParseTemplateRef(ref)
	require.NoError(t, err)
	assert.Equal(t, "crypt", dID)
	assert.Equal(t, "goblin", tID)

	_, _, err = ParseTemplateRef("crypt:goblin")
	assert.Error(t, err)
	_, _, err = ParseTemplateRef("@cryptgoblin")
	assert.Error(t, err)
}

func TestResetCloneIndependence(t *testing.T) {
	r := Reset{
		TemplateID: "goblin",
		RoomRef:    "@crypt{0,0,0}",
		Equipped:   []string{"sword"},
		Inventory:  []string{"potion"},
	}
	c := r.Clone()
	c.Equipped[0] = "axe"
	c.Inventory[0] = "bread"

	assert.Equal(t, "sword", r.Equipped[0], "Снаряжение не должно разделяться")
	assert.Equal(t, "potion", r.Inventory[0], "Инвентарь не должен разделяться")
}
