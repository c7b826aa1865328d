package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/annel0/dungeon-editor/internal/dungeon"
	"github.com/annel0/dungeon-editor/internal/exits"
	"github.com/annel0/dungeon-editor/internal/storage"
	"github.com/annel0/dungeon-editor/internal/vec"
)

// dungeon-cli — офлайн-утилита для работы с хранилищем подземелий:
// список, просмотр, импорт/экспорт YAML без запуска REST сервера.

func main() {
	var (
		dataDir = flag.String("data", "data", "Каталог хранилища BadgerDB")
		command = flag.String("cmd", "list", "Команда: list, show, import, export, delete")
		id      = flag.String("id", "", "Идентификатор подземелья")
		file    = flag.String("file", "", "YAML файл для import/export (.yaml или .yaml.gz)")
		layer   = flag.Int("layer", 0, "Этаж для show (снизу вверх)")
	)
	flag.Parse()

	store, err := storage.NewDocumentStorage(*dataDir)
	if err != nil {
		log.Fatalf("❌ Ошибка открытия хранилища: %v", err)
	}
	defer store.Close()

	switch *command {
	case "list":
		if err := listDungeons(store); err != nil {
			log.Fatalf("❌ list: %v", err)
		}

	case "show":
		if err := showDungeon(store, *id, *layer); err != nil {
			log.Fatalf("❌ show: %v", err)
		}

	case "import":
		if err := importDungeon(store, *file); err != nil {
			log.Fatalf("❌ import: %v", err)
		}

	case "export":
		if err := exportDungeon(store, *id, *file); err != nil {
			log.Fatalf("❌ export: %v", err)
		}

	case "delete":
		if *id == "" {
			log.Fatal("❌ delete: требуется -id")
		}
		if err := store.DeleteDungeon(*id); err != nil {
			log.Fatalf("❌ delete: %v", err)
		}
		fmt.Printf("🗑️  Подземелье %s удалено\n", *id)

	default:
		fmt.Fprintf(os.Stderr, "Неизвестная команда: %s\n", *command)
		flag.Usage()
		os.Exit(1)
	}
}

func listDungeons(store *storage.DocumentStorage) error {
	ids, err := store.ListDungeons()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("Хранилище пусто")
		return nil
	}
	fmt.Printf("Подземелий: %d\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	return nil
}

// showDungeon печатает этаж в виде текстовой карты: символ MapText
// шаблона комнаты либо точка для пустой клетки.
func showDungeon(store *storage.DocumentStorage, id string, layer int) error {
	if id == "" {
		return fmt.Errorf("требуется -id")
	}
	d, err := store.LoadDungeon(id)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("подземелье %s не найдено", id)
	}
	if layer < 0 || layer >= d.Dimensions.Layers {
		return fmt.Errorf("этаж %d вне диапазона [0..%d]", layer, d.Dimensions.Layers-1)
	}

	fmt.Printf("📋 %s (%s): %dx%dx%d, комнат=%d, шаблонов=%d, ресетов=%d\n",
		d.ID, d.Display, d.Dimensions.Width, d.Dimensions.Height, d.Dimensions.Layers,
		len(d.Rooms), len(d.Templates), len(d.Resets))
	fmt.Printf("Этаж %d:\n", layer)
	for _, line := range renderFloor(d, layer) {
		fmt.Println(line)
	}
	return nil
}

// renderFloor строит текстовую карту этажа: символ MapText шаблона
// комнаты либо точка для пустой клетки, с пометкой односторонних
// выходов на восток.
func renderFloor(d *dungeon.Dungeon, layer int) []string {
	lines := make([]string, 0, d.Dimensions.Height)
	for y := 0; y < d.Dimensions.Height; y++ {
		var row strings.Builder
		for x := 0; x < d.Dimensions.Width; x++ {
			pos := vec.Vec3{X: x, Y: y, Z: layer}
			room, ok := d.RoomAt(pos)
			switch {
			case !ok:
				row.WriteString(".")
			case room.MapText != "":
				row.WriteString(room.MapText)
			default:
				row.WriteString("#")
			}

			cls := exits.Classify(d, pos)
			switch cls.At(dungeon.East) {
			case exits.OneWayExit, exits.OneWayBlocked:
				row.WriteString(">")
			default:
				row.WriteString(" ")
			}
		}
		lines = append(lines, row.String())
	}
	return lines
}

func importDungeon(store *storage.DocumentStorage, file string) error {
	if file == "" {
		return fmt.Errorf("требуется -file")
	}
	d, err := storage.ReadDungeonFile(file)
	if err != nil {
		return err
	}
	if err := store.SaveDungeon(d); err != nil {
		return err
	}
	fmt.Printf("✅ Импортировано: %s (%dx%dx%d)\n",
		d.ID, d.Dimensions.Width, d.Dimensions.Height, d.Dimensions.Layers)
	return nil
}

func exportDungeon(store *storage.DocumentStorage, id, file string) error {
	if id == "" || file == "" {
		return fmt.Errorf("требуются -id и -file")
	}
	d, err := store.LoadDungeon(id)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("подземелье %s не найдено", id)
	}
	if err := storage.WriteDungeonFile(file, d); err != nil {
		return err
	}
	fmt.Printf("✅ Экспортировано: %s -> %s\n", id, file)
	return nil
}
