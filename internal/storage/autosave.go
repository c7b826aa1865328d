package storage

import (
	"time"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/logging"
)

// DocumentSource отдаёт снимок живого документа для автосохранения.
// Реализуется сессией редактора; nil означает, что документ не загружен.
type DocumentSource interface {
	Document() *dungeon.Dungeon
}

// Autosaver периодически снимает копию живого документа и кладёт её
// в хранилище как автосохранение. Работает асинхронно и никогда не
// блокирует и не переупорядочивает мутации редактора.
type Autosaver struct {
	store    *DocumentStorage
	source   DocumentSource
	interval time.Duration
	logger   *logging.Logger
	quit     chan struct{}
	done     chan struct{}
}

// NewAutosaver создаёт автосохранение с указанным интервалом
func NewAutosaver(store *DocumentStorage, source DocumentSource, interval time.Duration) *Autosaver {
	return &Autosaver{
		store:    store,
		source:   source,
		interval: interval,
		logger:   logging.GetStorageLogger(),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновый цикл автосохранения
func (a *Autosaver) Start() {
	go a.loop()
}

// Stop останавливает цикл и дожидается его завершения
func (a *Autosaver) Stop() {
	close(a.quit)
	<-a.done
}

func (a *Autosaver) loop() {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	defer close(a.done)

	for {
		select {
		case <-ticker.C:
			doc := a.source.Document()
			if doc == nil {
				continue
			}
			if err := a.store.SaveAutosave(doc); err != nil {
				a.logger.Error("Ошибка автосохранения %s: %v", doc.ID, err)
				continue
			}
			a.logger.Debug("Автосохранение документа %s выполнено", doc.ID)
		case <-a.quit:
			return
		}
	}
}
