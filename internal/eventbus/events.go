package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Типы событий редактора
const (
	EventDungeonLoaded   = "dungeon_loaded"
	EventMutationApplied = "mutation_applied"
	EventHistoryRestored = "history_restored"
	EventDocumentSaved   = "document_saved"
)

// PublishEditorEvent сериализует полезную нагрузку в JSON и публикует
// событие в глобальную шину от имени редактора. Ошибки публикации
// глотаются: шина — побочный канал, мутации от неё не зависят.
func PublishEditorEvent(eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = Publish(context.Background(), &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    "editor",
		EventType: eventType,
		Version:   1,
		Payload:   data,
	})
}
