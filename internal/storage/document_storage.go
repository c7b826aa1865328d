// Package storage реализует персистентность документов редактора:
// локальное хранилище BadgerDB для рабочих копий и автосохранений,
// YAML-файлы для экспорта/импорта и фоновое автосохранение.
package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/dgraph-io/badger/v3"
)

// Префиксы ключей в BadgerDB
const (
	keyPrefixDungeon  = "dungeon:"
	keyPrefixAutosave = "autosave:"
)

// DocumentStorage представляет собой локальное хранилище документов подземелий
type DocumentStorage struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool
}

// NewDocumentStorage создает новое хранилище документов
func NewDocumentStorage(dataPath string) (*DocumentStorage, error) {
	dbPath := filepath.Join(dataPath, "dungeons")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &DocumentStorage{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
	}, nil
}

// Close закрывает хранилище данных
func (ds *DocumentStorage) Close() error {
	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	if !ds.isReady {
		return nil
	}

	ds.isReady = false
	return ds.db.Close()
}

// SaveDungeon сохраняет полный документ подземелья
func (ds *DocumentStorage) SaveDungeon(d *dungeon.Dungeon) error {
	return ds.save(keyPrefixDungeon+d.ID, d)
}

// LoadDungeon загружает документ подземелья.
// Если документа нет, возвращает nil, nil.
func (ds *DocumentStorage) LoadDungeon(id string) (*dungeon.Dungeon, error) {
	return ds.load(keyPrefixDungeon + id)
}

// DeleteDungeon удаляет документ подземелья вместе с автосохранением
func (ds *DocumentStorage) DeleteDungeon(id string) error {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()

	if !ds.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	return ds.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(keyPrefixDungeon + id)); err != nil {
			return err
		}
		err := txn.Delete([]byte(keyPrefixAutosave + id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// ListDungeons возвращает идентификаторы всех сохранённых подземелий
func (ds *DocumentStorage) ListDungeons() ([]string, error) {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()

	if !ds.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var ids []string
	err := ds.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefixDungeon)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, key[len(keyPrefixDungeon):])
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка перечисления подземелий: %w", err)
	}
	return ids, nil
}

// SaveAutosave сохраняет снимок автосохранения документа
func (ds *DocumentStorage) SaveAutosave(d *dungeon.Dungeon) error {
	return ds.save(keyPrefixAutosave+d.ID, d)
}

// LoadAutosave загружает снимок автосохранения.
// Если снимка нет, возвращает nil, nil.
func (ds *DocumentStorage) LoadAutosave(id string) (*dungeon.Dungeon, error) {
	return ds.load(keyPrefixAutosave + id)
}

// save сериализует документ в JSON и записывает по ключу
func (ds *DocumentStorage) save(key string, d *dungeon.Dungeon) error {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()

	if !ds.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("ошибка сериализации документа %s: %w", d.ID, err)
	}

	err = ds.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("ошибка записи документа %s: %w", d.ID, err)
	}
	return nil
}

// load читает документ по ключу
func (ds *DocumentStorage) load(key string) (*dungeon.Dungeon, error) {
	ds.mutex.RLock()
	defer ds.mutex.RUnlock()

	if !ds.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var data []byte
	err := ds.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ключа %s: %w", key, err)
	}

	var d dungeon.Dungeon
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("ошибка десериализации документа: %w", err)
	}
	return &d, nil
}
