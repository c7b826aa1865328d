package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

// FileStorage экспортирует и импортирует документы подземелий как
// YAML-файлы. Файлы с расширением .gz прозрачно сжимаются gzip.
type FileStorage struct {
	basePath string
	compress bool // Сжимать экспортируемые файлы по умолчанию
}

// NewFileStorage создаёт файловый адаптер хранилища
func NewFileStorage(basePath string, compress bool) (*FileStorage, error) {
	// Создаём директорию если её нет
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию %s: %w", basePath, err)
	}

	return &FileStorage{
		basePath: basePath,
		compress: compress,
	}, nil
}

// ExportPath возвращает путь файла экспорта для подземелья
func (fs *FileStorage) ExportPath(dungeonID string) string {
	name := dungeonID + ".yaml"
	if fs.compress {
		name += ".gz"
	}
	return filepath.Join(fs.basePath, name)
}

// Export сериализует документ в YAML и пишет его в файл.
// Возвращает путь записанного файла.
func (fs *FileStorage) Export(d *dungeon.Dungeon) (string, error) {
	path := fs.ExportPath(d.ID)
	if err := WriteDungeonFile(path, d); err != nil {
		return "", err
	}
	return path, nil
}

// Import читает документ из YAML-файла в каталоге экспорта
func (fs *FileStorage) Import(name string) (*dungeon.Dungeon, error) {
	return ReadDungeonFile(filepath.Join(fs.basePath, name))
}

// WriteDungeonFile пишет документ в YAML-файл по произвольному пути
func WriteDungeonFile(path string, d *dungeon.Dungeon) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("ошибка сериализации YAML для %s: %w", d.ID, err)
	}

	if strings.HasSuffix(path, ".gz") {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("не удалось создать файл %s: %w", path, err)
		}
		defer file.Close()

		gz := gzip.NewWriter(file)
		if _, err := gz.Write(data); err != nil {
			return fmt.Errorf("ошибка сжатия %s: %w", path, err)
		}
		return gz.Close()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("не удалось записать файл %s: %w", path, err)
	}
	return nil
}

// ReadDungeonFile читает документ из YAML-файла (при .gz — распаковывает)
func ReadDungeonFile(path string) (*dungeon.Dungeon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл %s: %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("ошибка распаковки %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}

	var d dungeon.Dungeon
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("ошибка разбора YAML %s: %w", path, err)
	}
	return &d, nil
}
