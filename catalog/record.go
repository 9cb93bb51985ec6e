package catalog

import (
	"strings"
)

// Material материал полупроводниковой пластины.
// Внутреннее enum-представление; внешние названия (русские заголовки листов
// и колонок) преобразуются один раз на границе загрузки.
type Material string

const (
	MaterialSilicon  Material = "Silicon"
	MaterialSiC      Material = "SiC"
	MaterialGaAs     Material = "GaAs"
	MaterialSapphire Material = "Sapphire"
	MaterialGaN      Material = "GaN"
	MaterialGlass    Material = "Glass"
	MaterialUnknown  Material = ""
)

// CutType тип резки пластины
type CutType string

const (
	CutTypeFull     CutType = "FullCut"
	CutTypeHalf     CutType = "HalfCut"
	CutTypeGrooving CutType = "Grooving"
	CutTypeUnknown  CutType = ""
)

// materialAliases внешние названия материалов (имена листов книги Excel,
// значения колонок) в нижнем регистре
var materialAliases = map[string]Material{
	"silicon":         MaterialSilicon,
	"si":              MaterialSilicon,
	"кремний":         MaterialSilicon,
	"sic":             MaterialSiC,
	"карбид кремния":  MaterialSiC,
	"gaas":            MaterialGaAs,
	"арсенид галлия":  MaterialGaAs,
	"sapphire":        MaterialSapphire,
	"сапфир":          MaterialSapphire,
	"gan":             MaterialGaN,
	"нитрид галлия":   MaterialGaN,
	"glass":           MaterialGlass,
	"стекло":          MaterialGlass,
}

// cutTypeAliases внешние названия типов резки в нижнем регистре
var cutTypeAliases = map[string]CutType{
	"fullcut":      CutTypeFull,
	"full cut":     CutTypeFull,
	"полный рез":   CutTypeFull,
	"сквозной рез": CutTypeFull,
	"halfcut":      CutTypeHalf,
	"half cut":     CutTypeHalf,
	"полурез":      CutTypeHalf,
	"неполный рез": CutTypeHalf,
	"grooving":     CutTypeGrooving,
	"канавка":      CutTypeGrooving,
	"грувинг":      CutTypeGrooving,
}

// ParseMaterial преобразует внешнее название материала во внутреннее enum.
// Возвращает MaterialUnknown и false, если название не распознано.
func ParseMaterial(raw string) (Material, bool) {
	m, ok := materialAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return MaterialUnknown, false
	}
	return m, true
}

// ParseCutType преобразует внешнее название типа резки во внутреннее enum.
// Возвращает CutTypeUnknown и false, если название не распознано.
func ParseCutType(raw string) (CutType, bool) {
	ct, ok := cutTypeAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return CutTypeUnknown, false
	}
	return ct, true
}

// DiscRecord одна строка каталога отрезных дисков.
// Запись неизменяема после загрузки: фильтрация и обогащение всегда
// создают новые представления, исходные данные не трогаются.
type DiscRecord struct {
	ArticleCode      string   `json:"article_code"`
	Material         Material `json:"material"`
	CutType          CutType  `json:"cut_type"`
	ThicknessMicrons float64  `json:"thickness_microns"`
	KerfWidthMicrons float64  `json:"kerf_width_microns"`
	HubDiameterMm    float64  `json:"hub_diameter_mm"`
	OuterDiameterMm  float64  `json:"outer_diameter_mm"`
	GrainSize        int      `json:"grain_size"`

	// Измеренные показатели
	ChippingMicrons float64 `json:"chipping_microns"`
	CutRateMmPerMin float64 `json:"cut_rate_mm_per_min"`
	LifespanCuts    int     `json:"lifespan_cuts"`
}
