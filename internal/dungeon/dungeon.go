package dungeon

import (
	"github.com/annel0/dungeon-editor/internal/vec"
)

// Dimensions задаёт границы координат подземелья:
// x ∈ [0,Width), y ∈ [0,Height), z ∈ [0,Layers).
type Dimensions struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
	Layers int `yaml:"layers" json:"layers"`
}

// Dungeon — полный редактируемый документ: сетка, шаблоны комнат,
// шаблоны мобов/предметов и ресеты.
//
// Сетка хранится как Grid[внутренний_слой][строка][колонка], где
// внутренний слой 0 — верхний этаж, а внешняя координата Z нумерует
// этажи снизу вверх. Инверсия internalLayer = Layers-1-z применяется
// при каждом обращении; все координаты подсистем выделения, заливки
// и буфера обмена выражены во внешней Z.
type Dungeon struct {
	ID           string         `yaml:"id" json:"id"`
	Display      string         `yaml:"display,omitempty" json:"display,omitempty"`
	Dimensions   Dimensions     `yaml:"dimensions" json:"dimensions"`
	Grid         [][][]int      `yaml:"grid" json:"grid"`
	Rooms        []RoomTemplate `yaml:"rooms" json:"rooms"`
	Templates    []Template     `yaml:"templates" json:"templates"`
	Resets       []Reset        `yaml:"resets" json:"resets"`
	ResetMessage string         `yaml:"reset_message,omitempty" json:"reset_message,omitempty"`
}

// New создает новое подземелье с пустой сеткой указанных размеров
func New(id string, dims Dimensions) *Dungeon {
	d := &Dungeon{
		ID:         id,
		Dimensions: dims,
		Rooms:      []RoomTemplate{},
		Templates:  []Template{},
		Resets:     []Reset{},
	}
	d.Grid = newGrid(dims)
	return d
}

// newGrid создает плотную пустую сетку указанных размеров
func newGrid(dims Dimensions) [][][]int {
	grid := make([][][]int, dims.Layers)
	for l := range grid {
		grid[l] = make([][]int, dims.Height)
		for y := range grid[l] {
			grid[l][y] = make([]int, dims.Width)
		}
	}
	return grid
}

// internalLayer переводит внешнюю координату Z во внутренний индекс слоя
func (d *Dungeon) internalLayer(z int) int {
	return d.Dimensions.Layers - 1 - z
}

// InBounds проверяет, лежит ли координата внутри границ подземелья
func (d *Dungeon) InBounds(pos vec.Vec3) bool {
	return pos.X >= 0 && pos.X < d.Dimensions.Width &&
		pos.Y >= 0 && pos.Y < d.Dimensions.Height &&
		pos.Z >= 0 && pos.Z < d.Dimensions.Layers
}

// Get возвращает значение клетки: 0 — пусто, иначе 1-базный индекс
// шаблона комнаты. Для координат вне границ возвращает 0.
func (d *Dungeon) Get(pos vec.Vec3) int {
	if !d.InBounds(pos) {
		return 0
	}
	layer := d.internalLayer(pos.Z)
	if layer >= len(d.Grid) {
		return 0
	}
	rows := d.Grid[layer]
	if pos.Y >= len(rows) {
		return 0
	}
	row := rows[pos.Y]
	if pos.X >= len(row) {
		return 0
	}
	return row[pos.X]
}

// Set записывает значение клетки. Координаты вне границ молча игнорируются.
func (d *Dungeon) Set(pos vec.Vec3, value int) {
	if !d.InBounds(pos) {
		return
	}
	d.EnsureRow(pos.Z, pos.Y)
	d.Grid[d.internalLayer(pos.Z)][pos.Y][pos.X] = value
}

// EnsureRow лениво достраивает разреженные слои/строки до полной ширины.
// Загруженные документы могут содержать усечённые строки.
func (d *Dungeon) EnsureRow(z, y int) {
	if z < 0 || z >= d.Dimensions.Layers || y < 0 || y >= d.Dimensions.Height {
		return
	}
	layer := d.internalLayer(z)
	for len(d.Grid) <= layer {
		d.Grid = append(d.Grid, make([][]int, 0, d.Dimensions.Height))
	}
	rows := d.Grid[layer]
	for len(rows) <= y {
		rows = append(rows, nil)
	}
	if len(rows[y]) < d.Dimensions.Width {
		row := make([]int, d.Dimensions.Width)
		copy(row, rows[y])
		rows[y] = row
	}
	d.Grid[layer] = rows
}

// RoomAt возвращает шаблон комнаты в клетке, если она занята
func (d *Dungeon) RoomAt(pos vec.Vec3) (*RoomTemplate, bool) {
	idx := d.Get(pos)
	if idx <= 0 || idx > len(d.Rooms) {
		return nil, false
	}
	return &d.Rooms[idx-1], true
}

// RoomRefAt возвращает строковую ссылку на клетку этого подземелья
func (d *Dungeon) RoomRefAt(pos vec.Vec3) string {
	return FormatRoomRef(d.ID, pos)
}

// ResetsAt возвращает индексы ресетов, привязанных к клетке
func (d *Dungeon) ResetsAt(pos vec.Vec3) []int {
	ref := d.RoomRefAt(pos)
	var out []int
	for i := range d.Resets {
		if d.Resets[i].RoomRef == ref {
			out = append(out, i)
		}
	}
	return out
}

// RemoveResetsAt удаляет все ресеты, привязанные к клетке.
// Возвращает количество удалённых записей.
func (d *Dungeon) RemoveResetsAt(pos vec.Vec3) int {
	ref := d.RoomRefAt(pos)
	kept := d.Resets[:0]
	removed := 0
	for _, r := range d.Resets {
		if r.RoomRef == ref {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	d.Resets = kept
	return removed
}

// Resize изменяет размеры подземелья. Содержимое клеток сохраняется
// по внешним координатам (нижние этажи остаются нижними); ресеты,
// чьи координаты выходят за новые границы, удаляются.
func (d *Dungeon) Resize(dims Dimensions) {
	if dims.Width <= 0 || dims.Height <= 0 || dims.Layers <= 0 {
		return
	}

	old := *d
	grid := newGrid(dims)
	copyLayers := min(dims.Layers, old.Dimensions.Layers)
	copyHeight := min(dims.Height, old.Dimensions.Height)
	copyWidth := min(dims.Width, old.Dimensions.Width)

	for z := 0; z < copyLayers; z++ {
		for y := 0; y < copyHeight; y++ {
			for x := 0; x < copyWidth; x++ {
				pos := vec.Vec3{X: x, Y: y, Z: z}
				grid[dims.Layers-1-z][y][x] = old.Get(pos)
			}
		}
	}

	d.Dimensions = dims
	d.Grid = grid

	// Удаляем ресеты за новыми границами
	kept := d.Resets[:0]
	for _, r := range d.Resets {
		_, pos, err := ParseRoomRef(r.RoomRef)
		if err == nil && d.InBounds(pos) {
			kept = append(kept, r)
		}
	}
	d.Resets = kept
}

// Clone возвращает полностью независимую глубокую копию документа.
// Снимки истории не должны разделять состояние с живым документом.
func (d *Dungeon) Clone() *Dungeon {
	c := &Dungeon{
		ID:           d.ID,
		Display:      d.Display,
		Dimensions:   d.Dimensions,
		ResetMessage: d.ResetMessage,
	}

	c.Grid = make([][][]int, len(d.Grid))
	for l, rows := range d.Grid {
		c.Grid[l] = make([][]int, len(rows))
		for y, row := range rows {
			c.Grid[l][y] = append([]int(nil), row...)
		}
	}

	c.Rooms = make([]RoomTemplate, len(d.Rooms))
	for i, rt := range d.Rooms {
		c.Rooms[i] = rt.clone()
	}

	c.Templates = make([]Template, len(d.Templates))
	for i, t := range d.Templates {
		c.Templates[i] = t.clone()
	}

	c.Resets = make([]Reset, len(d.Resets))
	for i, r := range d.Resets {
		c.Resets[i] = r.Clone()
	}

	return c
}
