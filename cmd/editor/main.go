package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/annel0/dungeon-editor/internal/api"
	"github.com/annel0/dungeon-editor/internal/config"
	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/editor"
	"github.com/annel0/dungeon-editor/internal/eventbus"
	"github.com/annel0/dungeon-editor/internal/logging"
	"github.com/annel0/dungeon-editor/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (или ENV EDITOR_CONFIG)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("editor"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🗺️  Запуск редактора подземелий...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{} // дефолты через Get*-методы
	}

	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	dataDir := cfg.Storage.GetDataDir()
	logging.Info("📡 Конфигурация: REST API=%s, данные=%s", restPort, dataDir)

	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===

	// Шина событий редактора (события мутаций, загрузок, сохранений)
	bus := eventbus.NewMemoryBus(1024)
	eventbus.Init(bus)
	if err := eventbus.StartLoggingListener(bus); err != nil {
		logging.Error("Ошибка подписки логгера на шину событий: %v", err)
	}
	busMetrics := eventbus.NewMetricsExporter(bus)
	busMetrics.Start()

	// Хранилище документов (BadgerDB)
	logging.Debug("Открытие хранилища документов...")
	store, err := storage.NewDocumentStorage(dataDir)
	if err != nil {
		logging.Error("❌ Ошибка открытия хранилища: %v", err)
		log.Fatalf("❌ Ошибка открытия хранилища: %v", err)
	}
	defer store.Close()

	// Файловый экспорт/импорт (YAML, опционально gzip)
	files, err := storage.NewFileStorage(filepath.Join(dataDir, "export"), cfg.Storage.CompressExports)
	if err != nil {
		logging.Error("❌ Ошибка каталога экспорта: %v", err)
		log.Fatalf("❌ Ошибка каталога экспорта: %v", err)
	}

	// Сессия редактирования
	session := editor.NewSession(cfg.Editor.GetHistoryDepth())

	// Автосохранение живого документа
	var autosaver *storage.Autosaver
	if sec := cfg.Storage.GetAutosaveSeconds(); sec > 0 {
		autosaver = storage.NewAutosaver(store, session, time.Duration(sec)*time.Second)
		autosaver.Start()
		logging.Info("💾 Автосохранение каждые %dс", sec)
	}

	// REST API
	logging.Debug("Создание REST API сервера...")
	defW, defH, defL := cfg.Editor.GetDefaultDimensions()
	restServer := api.NewRestServer(api.Config{
		Port:     restPort,
		Session:  session,
		Store:    store,
		Files:    files,
		Defaults: dungeon.Dimensions{Width: defW, Height: defH, Layers: defL},
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- restServer.Start()
	}()

	logging.Info("✅ Редактор запущен")
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("💡 Примеры:")
	logging.Info("   curl http://localhost%s/api/dungeons", restPort)
	logging.Info("   curl -X POST http://localhost%s/api/dungeons -d '{\"id\":\"crypt\",\"width\":20,\"height\":20,\"layers\":2}'", restPort)

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
	case err := <-errCh:
		logging.Error("❌ REST API завершился с ошибкой: %v", err)
	}

	// === GRACEFUL SHUTDOWN ===
	if autosaver != nil {
		logging.Debug("Остановка автосохранения...")
		autosaver.Stop()
	}
	busMetrics.Stop()

	// Финальный снимок документа, чтобы не потерять несохранённую работу
	if doc := session.Document(); doc != nil {
		if err := store.SaveAutosave(doc); err != nil {
			logging.Error("Ошибка финального автосохранения: %v", err)
		}
	}

	logging.Info("👋 Редактор остановлен")
}
