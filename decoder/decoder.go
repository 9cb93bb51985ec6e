package decoder

import (
	"fmt"
	"strconv"
	"strings"

	"dicingserver/catalog"
)

// MalformedCodeError артикул не разбирается: не совпала общая структура либо
// не читается сегмент, обязательный для последующей фильтрации.
type MalformedCodeError struct {
	Code    string
	Segment int // индекс сегмента; -1, если не совпала структура целиком
	Reason  string
}

func (e *MalformedCodeError) Error() string {
	if e.Segment < 0 {
		return fmt.Sprintf("некорректный артикул %q: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("некорректный артикул %q: сегмент %d: %s", e.Code, e.Segment, e.Reason)
}

// UnencodableValueError значение поля не имеет токена в грамматике
type UnencodableValueError struct {
	Field Field
	Value string
}

func (e *UnencodableValueError) Error() string {
	return fmt.Sprintf("значение %q поля %s не представимо в грамматике", e.Value, e.Field)
}

// DiscSpec структурная расшифровка артикула. Создается только декодером,
// используется вызывающим кодом только для чтения и не сохраняется.
type DiscSpec struct {
	RawCode          string           `json:"raw_code"`
	Material         catalog.Material `json:"material"`
	CutType          catalog.CutType  `json:"cut_type"`
	ThicknessMicrons float64          `json:"thickness_microns"`
	KerfWidthMicrons float64          `json:"kerf_width_microns"`
	HubDiameterMm    float64          `json:"hub_diameter_mm"`
	OuterDiameterMm  float64          `json:"outer_diameter_mm"`
	GrainSize        int              `json:"grain_size"`

	// Warnings предупреждения расшифровки в порядке сегментов.
	// Непустой список не означает ошибку: расшифровка best-effort,
	// испорченный сегмент не обесценивает уже разобранные.
	Warnings []string `json:"warnings"`
}

// StructuralEqual сравнивает структурные поля двух расшифровок,
// игнорируя исходную строку и предупреждения
func (s DiscSpec) StructuralEqual(other DiscSpec) bool {
	return s.Material == other.Material &&
		s.CutType == other.CutType &&
		s.ThicknessMicrons == other.ThicknessMicrons &&
		s.KerfWidthMicrons == other.KerfWidthMicrons &&
		s.HubDiameterMm == other.HubDiameterMm &&
		s.OuterDiameterMm == other.OuterDiameterMm &&
		s.GrainSize == other.GrainSize
}

// Decoder расшифровывает артикулы по заданной грамматике
type Decoder struct {
	grammar *Grammar
}

// NewDecoder создает декодер. При nil используется встроенная грамматика.
func NewDecoder(g *Grammar) *Decoder {
	if g == nil {
		g = DefaultGrammar()
	}
	return &Decoder{grammar: g}
}

// Grammar возвращает грамматику декодера
func (d *Decoder) Grammar() *Grammar {
	return d.grammar
}

// Decode разбирает артикул в DiscSpec.
// Структурное несовпадение (длина, число разделителей) и нечитаемые
// обязательные сегменты дают MalformedCodeError; неизвестные токены словаря
// и нечитаемые необязательные числа дают предупреждение и нейтральное
// значение поля, разбор остальных сегментов продолжается.
func (d *Decoder) Decode(rawCode string) (DiscSpec, error) {
	normalized := strings.ToUpper(strings.TrimSpace(rawCode))
	spec := DiscSpec{RawCode: normalized}

	parts, err := d.split(normalized)
	if err != nil {
		return DiscSpec{}, err
	}

	for i, seg := range d.grammar.Segments {
		raw := strings.TrimSpace(parts[i])
		switch seg.Kind {
		case SegmentVocab:
			value, ok := seg.Vocab[raw]
			if !ok {
				spec.Warnings = append(spec.Warnings,
					fmt.Sprintf("сегмент %d (%s): неизвестное обозначение %q", i, seg.Name, raw))
				continue
			}
			spec.assignString(seg.Field, value)

		case SegmentNumeric:
			num, perr := parseNumeric(raw)
			if perr != nil {
				if seg.Required {
					return DiscSpec{}, &MalformedCodeError{
						Code: normalized, Segment: i,
						Reason: fmt.Sprintf("%s: не число: %q", seg.Name, raw),
					}
				}
				spec.Warnings = append(spec.Warnings,
					fmt.Sprintf("сегмент %d (%s): не число: %q", i, seg.Name, raw))
				continue
			}
			spec.assignNumeric(seg.Field, num*scaleOf(seg))

		case SegmentPrefixedNumeric:
			if !strings.HasPrefix(raw, seg.Prefix) {
				spec.Warnings = append(spec.Warnings,
					fmt.Sprintf("сегмент %d (%s): ожидался префикс %q: %q", i, seg.Name, seg.Prefix, raw))
				continue
			}
			num, perr := parseNumeric(strings.TrimPrefix(raw, seg.Prefix))
			if perr != nil {
				spec.Warnings = append(spec.Warnings,
					fmt.Sprintf("сегмент %d (%s): не число после префикса: %q", i, seg.Name, raw))
				continue
			}
			spec.assignNumeric(seg.Field, num*scaleOf(seg))
		}
	}

	return spec, nil
}

// DecodeResult результат расшифровки одного артикула из пакета
type DecodeResult struct {
	Code string   `json:"code"`
	Spec DiscSpec `json:"spec"`
	Err  error    `json:"-"`
}

// DecodeBatch расшифровывает пакет артикулов.
// Ошибка локализуется в своем артикуле и не прерывает пакет.
func (d *Decoder) DecodeBatch(codes []string) []DecodeResult {
	results := make([]DecodeResult, 0, len(codes))
	for _, code := range codes {
		spec, err := d.Decode(code)
		results = append(results, DecodeResult{Code: code, Spec: spec, Err: err})
	}
	return results
}

// Validate проверяет, соответствует ли артикул грамматике без предупреждений
func (d *Decoder) Validate(rawCode string) bool {
	spec, err := d.Decode(rawCode)
	return err == nil && len(spec.Warnings) == 0
}

// Encode восстанавливает артикул из расшифровки, обращая словари сегментов.
// Значение без токена в грамматике дает UnencodableValueError.
func (d *Decoder) Encode(spec DiscSpec) (string, error) {
	parts := make([]string, 0, len(d.grammar.Segments))
	for _, seg := range d.grammar.Segments {
		switch seg.Kind {
		case SegmentVocab:
			value := spec.fieldString(seg.Field)
			token, ok := reverseLookup(seg.Vocab, value)
			if !ok {
				return "", &UnencodableValueError{Field: seg.Field, Value: value}
			}
			parts = append(parts, token)

		case SegmentNumeric:
			num := spec.fieldNumeric(seg.Field) / scaleOf(seg)
			parts = append(parts, formatNumeric(num, seg.Width))

		case SegmentPrefixedNumeric:
			num := spec.fieldNumeric(seg.Field) / scaleOf(seg)
			width := seg.Width - len(seg.Prefix)
			parts = append(parts, seg.Prefix+formatNumeric(num, width))
		}
	}
	if d.grammar.Delimiter != "" {
		return strings.Join(parts, d.grammar.Delimiter), nil
	}
	return strings.Join(parts, ""), nil
}

// split разбивает нормализованный артикул на сырые сегменты
func (d *Decoder) split(code string) ([]string, error) {
	g := d.grammar
	if g.Delimiter != "" {
		parts := strings.Split(code, g.Delimiter)
		if len(parts) != g.SegmentCount() {
			return nil, &MalformedCodeError{
				Code: code, Segment: -1,
				Reason: fmt.Sprintf("ожидалось %d сегментов, получено %d", g.SegmentCount(), len(parts)),
			}
		}
		return parts, nil
	}

	if len(code) != g.TotalWidth() {
		return nil, &MalformedCodeError{
			Code: code, Segment: -1,
			Reason: fmt.Sprintf("ожидалась длина %d, получено %d", g.TotalWidth(), len(code)),
		}
	}
	parts := make([]string, 0, g.SegmentCount())
	offset := 0
	for _, seg := range g.Segments {
		parts = append(parts, code[offset:offset+seg.Width])
		offset += seg.Width
	}
	return parts, nil
}

// assignString записывает словарное значение в поле расшифровки
func (s *DiscSpec) assignString(field Field, value string) {
	switch field {
	case FieldMaterial:
		if m, ok := catalog.ParseMaterial(value); ok {
			s.Material = m
		} else {
			s.Material = catalog.Material(value)
		}
	case FieldCutType:
		if ct, ok := catalog.ParseCutType(value); ok {
			s.CutType = ct
		} else {
			s.CutType = catalog.CutType(value)
		}
	}
}

// assignNumeric записывает числовое значение в поле расшифровки
func (s *DiscSpec) assignNumeric(field Field, value float64) {
	switch field {
	case FieldThickness:
		s.ThicknessMicrons = value
	case FieldKerfWidth:
		s.KerfWidthMicrons = value
	case FieldHubDiameter:
		s.HubDiameterMm = value
	case FieldOuterDiameter:
		s.OuterDiameterMm = value
	case FieldGrainSize:
		s.GrainSize = int(value)
	}
}

func (s DiscSpec) fieldString(field Field) string {
	switch field {
	case FieldMaterial:
		return string(s.Material)
	case FieldCutType:
		return string(s.CutType)
	}
	return ""
}

func (s DiscSpec) fieldNumeric(field Field) float64 {
	switch field {
	case FieldThickness:
		return s.ThicknessMicrons
	case FieldKerfWidth:
		return s.KerfWidthMicrons
	case FieldHubDiameter:
		return s.HubDiameterMm
	case FieldOuterDiameter:
		return s.OuterDiameterMm
	case FieldGrainSize:
		return float64(s.GrainSize)
	}
	return 0
}

// parseNumeric толерантный разбор числа: пробелы и запятая как
// десятичный разделитель допустимы
func parseNumeric(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, fmt.Errorf("пустое значение")
	}
	return strconv.ParseFloat(cleaned, 64)
}

// formatNumeric форматирует число сегмента, дополняя нулями до ширины
func formatNumeric(num float64, width int) string {
	var text string
	if num == float64(int64(num)) {
		text = strconv.FormatInt(int64(num), 10)
	} else {
		text = strconv.FormatFloat(num, 'f', -1, 64)
	}
	for width > 0 && len(text) < width {
		text = "0" + text
	}
	return text
}

// reverseLookup ищет токен словаря по значению
func reverseLookup(vocab map[string]string, value string) (string, bool) {
	// Словари взаимно однозначны; при дубликатах для детерминизма
	// берется лексикографически меньший токен
	best := ""
	for token, v := range vocab {
		if v == value && (best == "" || token < best) {
			best = token
		}
	}
	return best, best != ""
}

func scaleOf(seg SegmentSpec) float64 {
	if seg.Scale == 0 {
		return 1
	}
	return seg.Scale
}
