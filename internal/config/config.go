package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации редактора.

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Editor  EditorConfig  `yaml:"editor"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

type StorageConfig struct {
	DataDir         string `yaml:"data_dir"`         // Каталог BadgerDB и экспорта
	AutosaveSeconds int    `yaml:"autosave_seconds"` // Интервал автосохранения (0 — выключено)
	CompressExports bool   `yaml:"compress_exports"` // gzip для YAML-экспорта
}

type EditorConfig struct {
	HistoryDepth  int `yaml:"history_depth"`  // Максимальная глубина undo
	DefaultWidth  int `yaml:"default_width"`  // Размеры нового подземелья
	DefaultHeight int `yaml:"default_height"`
	DefaultLayers int `yaml:"default_layers"`
}

// GetRESTPort возвращает REST порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "EDITOR_REST_PORT", 8088)
}

// GetDataDir возвращает каталог данных (config -> env -> default)
func (s *StorageConfig) GetDataDir() string {
	if s.DataDir != "" {
		return s.DataDir
	}
	if dir := os.Getenv("EDITOR_DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}

// GetAutosaveSeconds возвращает интервал автосохранения в секундах
func (s *StorageConfig) GetAutosaveSeconds() int {
	if s.AutosaveSeconds > 0 {
		return s.AutosaveSeconds
	}
	if envVal := os.Getenv("EDITOR_AUTOSAVE_SECONDS"); envVal != "" {
		if sec, err := strconv.Atoi(envVal); err == nil && sec >= 0 {
			return sec
		}
	}
	return 30
}

// GetHistoryDepth возвращает глубину истории undo
func (e *EditorConfig) GetHistoryDepth() int {
	if e.HistoryDepth > 0 {
		return e.HistoryDepth
	}
	return 50
}

// GetDefaultDimensions возвращает размеры нового подземелья
func (e *EditorConfig) GetDefaultDimensions() (width, height, layers int) {
	width, height, layers = e.DefaultWidth, e.DefaultHeight, e.DefaultLayers
	if width <= 0 {
		width = 20
	}
	if height <= 0 {
		height = 20
	}
	if layers <= 0 {
		layers = 1
	}
	return width, height, layers
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV EDITOR_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("EDITOR_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
