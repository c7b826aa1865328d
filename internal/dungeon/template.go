package dungeon

// TemplateType тип шаблона сущности
type TemplateType string

const (
	TemplateMob    TemplateType = "mob"
	TemplateObject TemplateType = "object"
)

// Template описывает шаблон моба или предмета. Для ядра редактора
// значимы только ID и Type; остальные атрибуты (раса, бонусы и т.п.)
// хранятся как непрозрачная карта и редактируются внешними формами.
type Template struct {
	ID         string                 `yaml:"id" json:"id"`
	Type       TemplateType           `yaml:"type" json:"type"`
	Display    string                 `yaml:"display,omitempty" json:"display,omitempty"`
	Attributes map[string]interface{} `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// clone возвращает глубокую копию шаблона
func (t Template) clone() Template {
	if t.Attributes != nil {
		attrs := make(map[string]interface{}, len(t.Attributes))
		for k, v := range t.Attributes {
			attrs[k] = deepCopyValue(v)
		}
		t.Attributes = attrs
	}
	return t
}

// deepCopyValue рекурсивно копирует значения, пришедшие из YAML/JSON
// (карты, списки, скаляры). Снимки истории не должны разделять
// вложенные структуры с живым документом.
func deepCopyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[k] = deepCopyValue(item)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(val))
		for i, item := range val {
			s[i] = deepCopyValue(item)
		}
		return s
	default:
		return v
	}
}
