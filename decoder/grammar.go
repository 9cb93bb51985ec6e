// Package decoder реализует расшифровку артикулов отрезных дисков.
//
// Артикул — строка из упорядоченных сегментов фиксированной ширины либо
// разделенных символом-разделителем. Каждый сегмент отображается в одно
// структурное поле диска через словарь условных обозначений или числовое
// преобразование. Грамматика — конфигурационные данные: реальные форматы
// артикулов поставщиков задаются отдельно (см. importer.LoadGrammarCSV),
// встроенная грамматика служит значением по умолчанию.
package decoder

import (
	"strings"
)

// Field структурное поле диска, в которое расшифровывается сегмент
type Field string

const (
	FieldMaterial      Field = "material"
	FieldCutType       Field = "cut_type"
	FieldThickness     Field = "thickness_microns"
	FieldKerfWidth     Field = "kerf_width_microns"
	FieldHubDiameter   Field = "hub_diameter_mm"
	FieldOuterDiameter Field = "outer_diameter_mm"
	FieldGrainSize     Field = "grain_size"
)

// SegmentKind способ интерпретации сегмента
type SegmentKind int

const (
	// SegmentVocab значение ищется в словаре условных обозначений
	SegmentVocab SegmentKind = iota
	// SegmentNumeric сегмент содержит число
	SegmentNumeric
	// SegmentPrefixedNumeric буквенный префикс и число, например "H08" -> 8
	SegmentPrefixedNumeric
)

// SegmentSpec описание одного сегмента артикула
type SegmentSpec struct {
	Name  string      // человекочитаемое имя сегмента
	Field Field       // целевое поле
	Kind  SegmentKind // способ интерпретации
	Width int         // ширина в символах; 0 — переменная (только для разделенных грамматик)

	// Required — поле обязательно для последующей фильтрации (материал,
	// тип резки). Нечитаемое значение такого числового сегмента приводит к
	// MalformedCodeError, необязательные поля деградируют до предупреждений.
	Required bool

	// Vocab словарь токен -> значение для SegmentVocab
	Vocab map[string]string
	// Prefix ожидаемый буквенный префикс для SegmentPrefixedNumeric
	Prefix string
	// Scale множитель для числовых сегментов (1, если не задан)
	Scale float64
}

// Grammar грамматика артикула: упорядоченный набор сегментов.
// Delimiter пустой — сегменты фиксированной ширины, иначе артикул
// разбивается по разделителю.
type Grammar struct {
	Delimiter string
	Segments  []SegmentSpec
}

// SegmentCount количество сегментов грамматики
func (g *Grammar) SegmentCount() int {
	return len(g.Segments)
}

// Segment возвращает описание сегмента по индексу
func (g *Grammar) Segment(i int) SegmentSpec {
	return g.Segments[i]
}

// TotalWidth суммарная ширина артикула для грамматики фиксированной ширины
func (g *Grammar) TotalWidth() int {
	total := 0
	for _, s := range g.Segments {
		total += s.Width
	}
	return total
}

// IsValidSegmentValue проверяет, допустимо ли сырое значение для сегмента
func (g *Grammar) IsValidSegmentValue(i int, raw string) bool {
	if i < 0 || i >= len(g.Segments) {
		return false
	}
	seg := g.Segments[i]
	raw = strings.ToUpper(strings.TrimSpace(raw))
	switch seg.Kind {
	case SegmentVocab:
		_, ok := seg.Vocab[raw]
		return ok
	case SegmentNumeric:
		_, err := parseNumeric(raw)
		return err == nil
	case SegmentPrefixedNumeric:
		if !strings.HasPrefix(raw, seg.Prefix) {
			return false
		}
		_, err := parseNumeric(strings.TrimPrefix(raw, seg.Prefix))
		return err == nil
	}
	return false
}

// DefaultGrammar встроенная грамматика вида MAT-TTT-KK-HXX:
// материал, толщина пластины (мкм), ширина реза (мкм), диаметр ступицы (мм).
func DefaultGrammar() *Grammar {
	return &Grammar{
		Delimiter: "-",
		Segments: []SegmentSpec{
			{
				Name:     "материал",
				Field:    FieldMaterial,
				Kind:     SegmentVocab,
				Required: true,
				Vocab: map[string]string{
					"SI":  "Silicon",
					"SIC": "SiC",
					"GAA": "GaAs",
					"SAP": "Sapphire",
					"GAN": "GaN",
					"GLS": "Glass",
				},
			},
			{
				Name:  "толщина пластины",
				Field: FieldThickness,
				Kind:  SegmentNumeric,
				Scale: 1,
			},
			{
				Name:  "ширина реза",
				Field: FieldKerfWidth,
				Kind:  SegmentNumeric,
				Scale: 1,
			},
			{
				Name:   "ступица",
				Field:  FieldHubDiameter,
				Kind:   SegmentPrefixedNumeric,
				Width:  3, // H + две цифры, кодирование дополняет нулем
				Prefix: "H",
				Scale:  1,
			},
		},
	}
}
