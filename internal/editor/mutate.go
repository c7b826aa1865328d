package editor

import (
	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/vec"
)

// OpResult итог операции редактирования. Невыполненные предусловия
// (нет документа, нет шаблона, координата вне границ) — штатные
// no-op состояния, а не ошибки: редактор должен оставаться отзывчивым
// к быстрому, в том числе некорректному, пользовательскому вводу.
type OpResult struct {
	Changed       bool   `json:"changed"`
	Applied       int    `json:"applied,omitempty"`
	Skipped       int    `json:"skipped,omitempty"`
	RemovedResets int    `json:"removed_resets,omitempty"`
	Message       string `json:"message,omitempty"`
}

// noDocument общий результат для операций без загруженного документа
func noDocument() OpResult {
	return OpResult{Message: "документ не загружен"}
}

// PlaceRoom ставит комнату с 0-базным индексом шаблона roomIdx в клетку.
// Замена существующей комнаты не трогает её ресеты: ресеты привязаны
// к координате, а не к прежнему шаблону.
func (s *Session) PlaceRoom(pos vec.Vec3, roomIdx int) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if roomIdx < 0 || roomIdx >= len(s.doc.Rooms) {
		return OpResult{Message: "шаблон комнаты не выбран"}
	}
	if !s.doc.InBounds(pos) {
		return OpResult{Message: "координата вне границ"}
	}

	s.doc.Set(pos, roomIdx+1)
	s.commit("place")
	return OpResult{Changed: true, Applied: 1}
}

// DeleteRoom очищает клетку и каскадно удаляет все её ресеты
func (s *Session) DeleteRoom(pos vec.Vec3) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if !s.doc.InBounds(pos) {
		return OpResult{Message: "координата вне границ"}
	}
	// Пустая клетка без ресетов: нечего удалять, историю не трогаем
	if s.doc.Get(pos) == 0 && len(s.doc.ResetsAt(pos)) == 0 {
		return OpResult{Message: "клетка пуста"}
	}

	removed := s.doc.RemoveResetsAt(pos)
	s.doc.Set(pos, 0)
	s.commit("delete")
	return OpResult{Changed: true, Applied: 1, RemovedResets: removed}
}

// Paint выполняет заливку: BFS от исходной клетки по 4-связным
// соседям, заполняя каждую достижимую клетку с исходным значением
// (включая пустоту) новым шаблоном. Ресеты заливка не трогает.
func (s *Session) Paint(origin vec.Vec3, roomIdx int) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if roomIdx < 0 || roomIdx >= len(s.doc.Rooms) {
		return OpResult{Message: "шаблон комнаты не выбран"}
	}
	if !s.doc.InBounds(origin) {
		return OpResult{Message: "координата вне границ"}
	}

	filled := s.floodFill(origin, func(pos vec.Vec3) {
		s.doc.Set(pos, roomIdx+1)
	})
	s.commit("paint")
	return OpResult{Changed: true, Applied: filled}
}

// PaintDelete выполняет заливку-удаление: исходная клетка обязана
// быть занятой; каждая посещённая клетка очищается вместе с ресетами.
func (s *Session) PaintDelete(origin vec.Vec3) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if !s.doc.InBounds(origin) {
		return OpResult{Message: "координата вне границ"}
	}
	if s.doc.Get(origin) == 0 {
		return OpResult{Message: "клетка пуста"}
	}

	removed := 0
	cleared := s.floodFill(origin, func(pos vec.Vec3) {
		removed += s.doc.RemoveResetsAt(pos)
		s.doc.Set(pos, 0)
	})
	s.commit("paint-delete")
	return OpResult{Changed: true, Applied: cleared, RemovedResets: removed}
}

// floodFill обходит в ширину 4-связную область клеток со значением
// исходной клетки и применяет visit к каждой. Набор visited
// гарантирует завершение и однократную обработку каждой клетки.
// Худший случай ограничен размером этажа: O(width*height).
func (s *Session) floodFill(origin vec.Vec3, visit func(pos vec.Vec3)) int {
	target := s.doc.Get(origin)
	queue := []vec.Vec3{origin}
	visited := map[vec.Vec3]struct{}{origin: {}}
	count := 0

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		visit(pos)
		count++

		for _, n := range pos.Lateral4() {
			if !s.doc.InBounds(n) {
				continue
			}
			if _, seen := visited[n]; seen {
				continue
			}
			if s.doc.Get(n) != target {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return count
}

// DeleteSelection очищает каждую выделенную занятую клетку и каскадно
// удаляет её ресеты. Пустые клетки и клетки вне границ пропускаются.
func (s *Session) DeleteSelection() OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if len(s.selection) == 0 {
		return OpResult{Message: "нет выделения"}
	}

	cleared, removed := 0, 0
	for pos := range s.selection {
		if !s.doc.InBounds(pos) || s.doc.Get(pos) == 0 {
			continue
		}
		removed += s.doc.RemoveResetsAt(pos)
		s.doc.Set(pos, 0)
		cleared++
	}

	if cleared == 0 {
		return OpResult{Message: "в выделении нет комнат"}
	}
	s.commit("delete-selection")
	return OpResult{Changed: true, Applied: cleared, RemovedResets: removed}
}

// DeleteRoomTemplate удаляет шаблон комнаты из списка: очищает все
// клетки с его 1-базным индексом (с каскадом ресетов) и уменьшает на
// единицу все большие индексы в сетке — 1-базные ссылки обязаны
// остаться согласованными после удаления.
func (s *Session) DeleteRoomTemplate(roomIdx int) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if roomIdx < 0 || roomIdx >= len(s.doc.Rooms) {
		return OpResult{Message: "шаблон комнаты не найден"}
	}

	deletedValue := roomIdx + 1
	cleared, removed := 0, 0
	dims := s.doc.Dimensions
	for z := 0; z < dims.Layers; z++ {
		for y := 0; y < dims.Height; y++ {
			for x := 0; x < dims.Width; x++ {
				pos := vec.Vec3{X: x, Y: y, Z: z}
				v := s.doc.Get(pos)
				switch {
				case v == deletedValue:
					removed += s.doc.RemoveResetsAt(pos)
					s.doc.Set(pos, 0)
					cleared++
				case v > deletedValue:
					s.doc.Set(pos, v-1)
				}
			}
		}
	}

	s.doc.Rooms = append(s.doc.Rooms[:roomIdx], s.doc.Rooms[roomIdx+1:]...)
	s.commit("delete-room-template")
	return OpResult{Changed: true, Applied: cleared, RemovedResets: removed}
}

// AddReset добавляет ресет шаблона templateID в клетку. Если ресет для
// пары (клетка, шаблон) уже есть, увеличивается его MaxCount; дубликат
// не создаётся. Клетка без комнаты — отказ (no-op).
func (s *Session) AddReset(pos vec.Vec3, templateID string) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if !s.doc.InBounds(pos) {
		return OpResult{Message: "координата вне границ"}
	}
	if s.doc.Get(pos) == 0 {
		return OpResult{Message: "в клетке нет комнаты"}
	}
	if s.templateByID(templateID) == nil {
		return OpResult{Message: "шаблон не найден"}
	}

	ref := s.doc.RoomRefAt(pos)
	for i := range s.doc.Resets {
		r := &s.doc.Resets[i]
		if r.RoomRef == ref && r.TemplateID == templateID {
			r.MaxCount++
			s.commit("add-reset")
			return OpResult{Changed: true, Applied: 1, Message: "количество увеличено"}
		}
	}

	s.doc.Resets = append(s.doc.Resets, dungeon.Reset{
		TemplateID: templateID,
		RoomRef:    ref,
		MinCount:   1,
		MaxCount:   1,
	})
	s.commit("add-reset")
	return OpResult{Changed: true, Applied: 1}
}

// templateByID возвращает шаблон моба/предмета по идентификатору
func (s *Session) templateByID(id string) *dungeon.Template {
	for i := range s.doc.Templates {
		if s.doc.Templates[i].ID == id {
			return &s.doc.Templates[i]
		}
	}
	return nil
}

// Copy снимает выделенный фрагмент в буфер обмена: значения клеток
// (включая маркер пустоты) и ресеты включённых клеток со смещениями
// относительно минимума выделения. Выделение после копирования
// сбрасывается. Документ не изменяется, история не растёт.
func (s *Session) Copy() OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if len(s.selection) == 0 {
		return OpResult{Message: "нет выделения"}
	}

	s.clipboard = copySelection(s.doc, s.selection)
	copied := len(s.clipboard.cells)
	s.selection = make(map[vec.Vec3]struct{})
	return OpResult{Applied: copied, Message: "скопировано"}
}

// Paste вставляет буфер обмена относительно якоря: единственной
// выделенной клетки либо (0,0) текущего этажа. См. PasteAt.
func (s *Session) Paste() OpResult {
	s.mu.Lock()
	anchor := vec.Vec3{X: 0, Y: 0, Z: s.currentLayer}
	if len(s.selection) == 1 {
		for pos := range s.selection {
			anchor = pos
		}
	}
	s.mu.Unlock()
	return s.PasteAt(anchor)
}

// PasteAt применяет записанные клетки и ресеты со сдвигом к якорю.
// Цели за границами пропускаются и подсчитываются; маркер пустоты
// активно очищает комнату в целевой клетке. Ресеты целевых клеток
// заменяются записанными: вставка воспроизводит скопированный
// фрагмент, включая его набор ресетов.
func (s *Session) PasteAt(anchor vec.Vec3) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if s.clipboard.Empty() {
		return OpResult{Message: "буфер обмена пуст"}
	}

	applied, skipped, removed := 0, 0, 0
	for _, cell := range s.clipboard.cells {
		target := anchor.Add(cell.offset)
		// Индекс мог устареть после удаления шаблона комнаты
		if !s.doc.InBounds(target) || cell.value > len(s.doc.Rooms) {
			skipped++
			continue
		}
		removed += s.doc.RemoveResetsAt(target)
		s.doc.Set(target, cell.value)
		applied++
	}

	pastedResets := 0
	for _, cr := range s.clipboard.resets {
		target := anchor.Add(cr.offset)
		if !s.doc.InBounds(target) || s.doc.Get(target) == 0 {
			continue
		}
		r := cr.reset.Clone()
		r.RoomRef = s.doc.RoomRefAt(target)
		s.doc.Resets = append(s.doc.Resets, r)
		pastedResets++
	}

	if applied == 0 {
		return OpResult{Skipped: skipped, Message: "все клетки вне границ"}
	}
	s.logger.Debug("Вставка: клеток=%d, пропущено=%d, ресетов=%d", applied, skipped, pastedResets)
	s.commit("paste")
	return OpResult{Changed: true, Applied: applied, Skipped: skipped, RemovedResets: removed}
}

// ResizeDungeon изменяет размеры документа. Ресеты за новыми
// границами удаляются внутри Resize.
func (s *Session) ResizeDungeon(dims dungeon.Dimensions) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if dims.Width <= 0 || dims.Height <= 0 || dims.Layers <= 0 {
		return OpResult{Message: "некорректные размеры"}
	}
	if dims == s.doc.Dimensions {
		return OpResult{Message: "размеры не изменились"}
	}

	before := len(s.doc.Resets)
	s.doc.Resize(dims)
	s.commit("resize")
	return OpResult{Changed: true, Applied: 1, RemovedResets: before - len(s.doc.Resets)}
}

// AddRoomTemplate добавляет шаблон комнаты и возвращает его 0-базный индекс
func (s *Session) AddRoomTemplate(rt dungeon.RoomTemplate) (int, OpResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return -1, noDocument()
	}

	s.doc.Rooms = append(s.doc.Rooms, rt)
	s.commit("add-room-template")
	return len(s.doc.Rooms) - 1, OpResult{Changed: true, Applied: 1}
}

// UpdateRoomTemplate заменяет шаблон комнаты по индексу
func (s *Session) UpdateRoomTemplate(roomIdx int, rt dungeon.RoomTemplate) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if roomIdx < 0 || roomIdx >= len(s.doc.Rooms) {
		return OpResult{Message: "шаблон комнаты не найден"}
	}

	s.doc.Rooms[roomIdx] = rt
	s.commit("update-room-template")
	return OpResult{Changed: true, Applied: 1}
}

// AddTemplate добавляет шаблон моба/предмета. Идентификатор обязан
// быть уникальным в документе.
func (s *Session) AddTemplate(t dungeon.Template) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if t.ID == "" || s.templateByID(t.ID) != nil {
		return OpResult{Message: "идентификатор шаблона пуст или занят"}
	}

	s.doc.Templates = append(s.doc.Templates, t)
	s.commit("add-template")
	return OpResult{Changed: true, Applied: 1}
}

// UpdateTemplate заменяет шаблон моба/предмета по идентификатору
func (s *Session) UpdateTemplate(id string, t dungeon.Template) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}

	for i := range s.doc.Templates {
		if s.doc.Templates[i].ID == id {
			t.ID = id
			s.doc.Templates[i] = t
			s.commit("update-template")
			return OpResult{Changed: true, Applied: 1}
		}
	}
	return OpResult{Message: "шаблон не найден"}
}

// DeleteTemplate удаляет шаблон моба/предмета вместе со всеми его
// ресетами: ресеты не должны ссылаться на исчезнувший шаблон.
func (s *Session) DeleteTemplate(id string) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if s.templateByID(id) == nil {
		return OpResult{Message: "шаблон не найден"}
	}

	kept := s.doc.Templates[:0]
	for _, t := range s.doc.Templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.doc.Templates = kept

	removed := 0
	keptResets := s.doc.Resets[:0]
	for _, r := range s.doc.Resets {
		if r.TemplateID == id {
			removed++
			continue
		}
		keptResets = append(keptResets, r)
	}
	s.doc.Resets = keptResets

	s.commit("delete-template")
	return OpResult{Changed: true, Applied: 1, RemovedResets: removed}
}

// SetResetMessage задаёт сообщение ресета подземелья
func (s *Session) SetResetMessage(msg string) OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return noDocument()
	}
	if s.doc.ResetMessage == msg {
		return OpResult{Message: "сообщение не изменилось"}
	}

	s.doc.ResetMessage = msg
	s.commit("set-reset-message")
	return OpResult{Changed: true, Applied: 1}
}
