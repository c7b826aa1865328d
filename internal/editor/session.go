// Package editor реализует ядро редактирования подземелья: движок
// мутаций сетки, менеджер истории undo/redo и буфер обмена. Все
// операции работают с явным дескриптором сессии — глобального
// состояния нет.
package editor

import (
	"sync"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/eventbus"
	"github.com/annel0/dungeon-editor/internal/exits"
	"github.com/annel0/dungeon-editor/internal/geometry"
	"github.com/annel0/dungeon-editor/internal/logging"
	"github.com/annel0/dungeon-editor/internal/vec"
)

// Session владеет одним живым документом и всем состоянием
// редактирования: историей, выделением, буфером обмена, текущим
// этажом. Операции сериализуются мьютексом: каждая мутация
// выполняется до конца, не уступая управление.
type Session struct {
	mu           sync.Mutex
	doc          *dungeon.Dungeon
	history      *History
	historyDepth int
	selection    map[vec.Vec3]struct{}
	clipboard    *Clipboard
	currentLayer int
	logger       *logging.Logger
}

// NewSession создает пустую сессию без загруженного документа
func NewSession(historyDepth int) *Session {
	return &Session{
		historyDepth: historyDepth,
		selection:    make(map[vec.Vec3]struct{}),
		logger:       logging.GetEditorLogger(),
	}
}

// Open делает документ единственным живым состоянием сессии.
// История, выделение и буфер обмена предыдущего документа сбрасываются.
func (s *Session) Open(doc *dungeon.Dungeon) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc
	s.history = NewHistory(doc, s.historyDepth)
	s.selection = make(map[vec.Vec3]struct{})
	s.clipboard = nil
	s.currentLayer = 0

	s.logger.Info("Документ %q загружен: %dx%dx%d, комнат=%d, ресетов=%d",
		doc.ID, doc.Dimensions.Width, doc.Dimensions.Height, doc.Dimensions.Layers,
		len(doc.Rooms), len(doc.Resets))
	eventbus.PublishEditorEvent(eventbus.EventDungeonLoaded, map[string]interface{}{
		"dungeon_id": doc.ID,
	})
}

// Loaded сообщает, загружен ли документ
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc != nil
}

// Document возвращает глубокую копию текущего документа (для сохранения).
// Возвращает nil, если документ не загружен.
func (s *Session) Document() *dungeon.Dungeon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil
	}
	return s.doc.Clone()
}

// DocumentID возвращает идентификатор загруженного документа
func (s *Session) DocumentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ""
	}
	return s.doc.ID
}

// SetCurrentLayer задаёт текущий этаж (используется как якорь вставки)
func (s *Session) SetCurrentLayer(z int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc != nil && (z < 0 || z >= s.doc.Dimensions.Layers) {
		return
	}
	s.currentLayer = z
}

// CurrentLayer возвращает текущий этаж
func (s *Session) CurrentLayer() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLayer
}

// SelectShape строит выделение по фигуре на одном этаже.
// Клетки за границами подземелья остаются в выделении: групповые
// операции молча пропускают их.
func (s *Session) SelectShape(shape geometry.Shape, start, end vec.Vec2, z int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return 0
	}

	s.selection = make(map[vec.Vec3]struct{})
	for _, pos := range geometry.SelectCells(shape, start, end, z) {
		s.selection[pos] = struct{}{}
	}
	return len(s.selection)
}

// SelectCell выделяет единственную клетку (якорь вставки)
func (s *Session) SelectCell(pos vec.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil || !s.doc.InBounds(pos) {
		return
	}
	s.selection = map[vec.Vec3]struct{}{pos: {}}
}

// ClearSelection сбрасывает выделение
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = make(map[vec.Vec3]struct{})
}

// Selection возвращает копию множества выделенных клеток
func (s *Session) Selection() []vec.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]vec.Vec3, 0, len(s.selection))
	for pos := range s.selection {
		out = append(out, pos)
	}
	return out
}

// ExitsAt возвращает классификацию связности клетки для отрисовки
func (s *Session) ExitsAt(pos vec.Vec3) (exits.Classification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return exits.Classification{}, false
	}
	return exits.Classify(s.doc, pos), true
}

// CanUndo сообщает, возможен ли undo
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history != nil && s.history.CanUndo()
}

// CanRedo сообщает, возможен ли redo
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history != nil && s.history.CanRedo()
}

// Undo откатывает последнюю мутацию. В начале истории — no-op.
func (s *Session) Undo() OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return OpResult{Message: "документ не загружен"}
	}

	snapshot, ok := s.history.Undo()
	if !ok {
		return OpResult{Message: "история исчерпана"}
	}
	s.restore(snapshot)
	return OpResult{Changed: true, Message: "отменено"}
}

// Redo повторяет отменённую мутацию. В конце истории — no-op.
func (s *Session) Redo() OpResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return OpResult{Message: "документ не загружен"}
	}

	snapshot, ok := s.history.Redo()
	if !ok {
		return OpResult{Message: "история исчерпана"}
	}
	s.restore(snapshot)
	return OpResult{Changed: true, Message: "повторено"}
}

// restore заменяет живой документ снимком истории целиком.
// Выделение сбрасывается: оно могло ссылаться на исчезнувшие клетки.
func (s *Session) restore(snapshot *dungeon.Dungeon) {
	s.doc = snapshot
	s.selection = make(map[vec.Vec3]struct{})
	if s.currentLayer >= s.doc.Dimensions.Layers {
		s.currentLayer = s.doc.Dimensions.Layers - 1
	}
	eventbus.PublishEditorEvent(eventbus.EventHistoryRestored, map[string]interface{}{
		"dungeon_id": s.doc.ID,
	})
}

// commit фиксирует завершённую мутацию: снимок в историю и событие
func (s *Session) commit(op string) {
	s.history.Record(s.doc)
	eventbus.PublishEditorEvent(eventbus.EventMutationApplied, map[string]interface{}{
		"dungeon_id": s.doc.ID,
		"op":         op,
	})
}
