package storage

import (
	"path/filepath"
	"testing"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) *DocumentStorage {
	t.Helper()
	store, err := NewDocumentStorage(t.TempDir())
	require.NoError(t, err, "Не удалось открыть хранилище")
	t.Cleanup(func() { store.Close() })
	return store
}

func testDungeon(id string) *dungeon.Dungeon {
	d := dungeon.New(id, dungeon.Dimensions{Width: 4, Height: 4, Layers: 2})
	d.Display = "Тестовая крипта"
	d.Rooms = []dungeon.RoomTemplate{
		{Display: "Зал", MapText: "#"},
		{Display: "Порода", Dense: true},
	}
	d.Templates = []dungeon.Template{
		{ID: "goblin", Type: dungeon.TemplateMob, Attributes: map[string]interface{}{"hp": 10}},
	}
	d.Set(vec.Vec3{X: 1, Y: 2, Z: 0}, 1)
	d.Set(vec.Vec3{X: 1, Y: 2, Z: 1}, 2)
	d.Resets = []dungeon.Reset{{
		TemplateID: "goblin",
		RoomRef:    d.RoomRefAt(vec.Vec3{X: 1, Y: 2, Z: 0}),
		MinCount:   1,
		MaxCount:   2,
	}}
	d.ResetMessage = "Подземелье оживает..."
	return d
}

func TestSaveAndLoadDungeon(t *testing.T) {
	store := setupTestStorage(t)
	d := testDungeon("crypt")

	require.NoError(t, store.SaveDungeon(d))

	loaded, err := store.LoadDungeon("crypt")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, d.ID, loaded.ID)
	assert.Equal(t, d.Dimensions, loaded.Dimensions)
	assert.Equal(t, 1, loaded.Get(vec.Vec3{X: 1, Y: 2, Z: 0}), "Сетка должна пережить сериализацию")
	assert.Equal(t, 2, loaded.Get(vec.Vec3{X: 1, Y: 2, Z: 1}))
	require.Len(t, loaded.Rooms, 2)
	assert.True(t, loaded.Rooms[1].Dense)
	require.Len(t, loaded.Resets, 1)
	assert.Equal(t, d.Resets[0].RoomRef, loaded.Resets[0].RoomRef)
	assert.Equal(t, d.ResetMessage, loaded.ResetMessage)
}

func TestLoadMissingDungeon(t *testing.T) {
	store := setupTestStorage(t)

	loaded, err := store.LoadDungeon("nothing")
	require.NoError(t, err, "Отсутствующий документ — не ошибка")
	assert.Nil(t, loaded)
}

func TestListDungeons(t *testing.T) {
	store := setupTestStorage(t)
	require.NoError(t, store.SaveDungeon(testDungeon("alpha")))
	require.NoError(t, store.SaveDungeon(testDungeon("beta")))
	// Автосохранение не должно попадать в список
	require.NoError(t, store.SaveAutosave(testDungeon("gamma")))

	ids, err := store.ListDungeons()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, ids)
}

func TestDeleteDungeonRemovesAutosave(t *testing.T) {
	store := setupTestStorage(t)
	d := testDungeon("crypt")
	require.NoError(t, store.SaveDungeon(d))
	require.NoError(t, store.SaveAutosave(d))

	require.NoError(t, store.DeleteDungeon("crypt"))

	loaded, err := store.LoadDungeon("crypt")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	auto, err := store.LoadAutosave("crypt")
	require.NoError(t, err)
	assert.Nil(t, auto, "Автосохранение удаляется вместе с документом")
}

func TestAutosaveRoundTrip(t *testing.T) {
	store := setupTestStorage(t)
	d := testDungeon("crypt")
	require.NoError(t, store.SaveAutosave(d))

	auto, err := store.LoadAutosave("crypt")
	require.NoError(t, err)
	require.NotNil(t, auto)
	assert.Equal(t, 1, auto.Get(vec.Vec3{X: 1, Y: 2, Z: 0}))
}

func TestClosedStorageRejectsOperations(t *testing.T) {
	store, err := NewDocumentStorage(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.Error(t, store.SaveDungeon(testDungeon("crypt")))
	_, err = store.ListDungeons()
	assert.Error(t, err)
}

func TestYAMLFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	d := testDungeon("crypt")

	path := filepath.Join(dir, "crypt.yaml")
	require.NoError(t, WriteDungeonFile(path, d))

	loaded, err := ReadDungeonFile(path)
	require.NoError(t, err)
	assert.Equal(t, d.ID, loaded.ID)
	assert.Equal(t, 1, loaded.Get(vec.Vec3{X: 1, Y: 2, Z: 0}))
	require.Len(t, loaded.Templates, 1)
	assert.Equal(t, "goblin", loaded.Templates[0].ID)
}

func TestGzipFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	d := testDungeon("crypt")

	path := filepath.Join(dir, "crypt.yaml.gz")
	require.NoError(t, WriteDungeonFile(path, d))

	loaded, err := ReadDungeonFile(path)
	require.NoError(t, err)
	assert.Equal(t, d.Dimensions, loaded.Dimensions)
	assert.Equal(t, 2, loaded.Get(vec.Vec3{X: 1, Y: 2, Z: 1}), "Сжатый файл читается прозрачно")
}

func TestFileStorageExportImport(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir(), true)
	require.NoError(t, err)

	d := testDungeon("crypt")
	path, err := fs.Export(d)
	require.NoError(t, err)
	assert.Equal(t, fs.ExportPath("crypt"), path)
	assert.True(t, filepath.Ext(path) == ".gz", "При включённом сжатии экспорт пишется как .gz")

	loaded, err := fs.Import("crypt.yaml.gz")
	require.NoError(t, err)
	assert.Equal(t, "crypt", loaded.ID)
}
