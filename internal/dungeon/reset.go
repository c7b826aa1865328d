package dungeon

import (
	"fmt"
	"strings"

	"github.com/annel0/dungeon-editor/internal/vec"
)

// Reset описывает правило спауна: привязку шаблона моба/предмета
// к конкретной клетке подземелья с минимальным/максимальным количеством.
type Reset struct {
	TemplateID string   `yaml:"template_id" json:"template_id"`
	RoomRef    string   `yaml:"room_ref" json:"room_ref"`
	MinCount   int      `yaml:"min_count" json:"min_count"`
	MaxCount   int      `yaml:"max_count" json:"max_count"`
	Equipped   []string `yaml:"equipped,omitempty" json:"equipped,omitempty"`
	Inventory  []string `yaml:"inventory,omitempty" json:"inventory,omitempty"`
}

// Clone возвращает глубокую копию ресета
func (r Reset) Clone() Reset {
	if r.Equipped != nil {
		r.Equipped = append([]string(nil), r.Equipped...)
	}
	if r.Inventory != nil {
		r.Inventory = append([]string(nil), r.Inventory...)
	}
	return r
}

// FormatRoomRef кодирует ссылку на клетку в строку вида @{dungeonId}{x,y,z}.
// Формат фиксирован: он хранится в персистентных документах и является
// единственной связью ресета с геометрией.
func FormatRoomRef(dungeonID string, pos vec.Vec3) string {
	return fmt.Sprintf("@%s{%d,%d,%d}", dungeonID, pos.X, pos.Y, pos.Z)
}

// ParseRoomRef разбирает строку вида @{dungeonId}{x,y,z}
func ParseRoomRef(ref string) (dungeonID string, pos vec.Vec3, err error) {
	if !strings.HasPrefix(ref, "@") {
		return "", vec.Vec3{}, fmt.Errorf("ссылка на комнату должна начинаться с '@': %q", ref)
	}
	open := strings.LastIndex(ref, "{")
	if open < 0 || !strings.HasSuffix(ref, "}") {
		return "", vec.Vec3{}, fmt.Errorf("некорректный формат ссылки на комнату: %q", ref)
	}

	dungeonID = ref[1:open]
	coords := ref[open+1 : len(ref)-1]
	if _, serr := fmt.Sscanf(coords, "%d,%d,%d", &pos.X, &pos.Y, &pos.Z); serr != nil {
		return "", vec.Vec3{}, fmt.Errorf("некорректные координаты в ссылке %q: %w", ref, serr)
	}
	return dungeonID, pos, nil
}

// FormatTemplateRef кодирует межподземельную ссылку на шаблон: @{dungeonId}:{templateId}
func FormatTemplateRef(dungeonID, templateID string) string {
	return fmt.Sprintf("@%s:%s", dungeonID, templateID)
}

// ParseTemplateRef разбирает строку вида @{dungeonId}:{templateId}
func ParseTemplateRef(ref string) (dungeonID, templateID string, err error) {
	if !strings.HasPrefix(ref, "@") {
		return "", "", fmt.Errorf("ссылка на шаблон должна начинаться с '@': %q", ref)
	}
	sep := strings.Index(ref, ":")
	if sep < 0 {
		return "", "", fmt.Errorf("некорректный формат ссылки на шаблон: %q", ref)
	}
	return ref[1:sep], ref[sep+1:], nil
}
