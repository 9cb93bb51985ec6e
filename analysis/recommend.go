package analysis

import (
	"fmt"
	"math"
	"sort"

	"dicingserver/catalog"
)

// Scenario целевой сценарий резки, задаваемый вызывающей стороной.
// CutTypeUnknown означает "любой тип резки".
type Scenario struct {
	Material         catalog.Material `json:"material"`
	ThicknessMicrons float64          `json:"thickness_microns"`
	KerfMinMicrons   float64          `json:"kerf_min_microns"`
	KerfMaxMicrons   float64          `json:"kerf_max_microns"`
	CutType          catalog.CutType  `json:"cut_type,omitempty"`
}

// Recommendation один кандидат ранжированного списка
type Recommendation struct {
	Record    MetricsRecord `json:"record"`
	Rank      int           `json:"rank"` // с единицы
	Score     float64       `json:"score"`
	Rationale []string      `json:"rationale"`
}

// Engine подбирает диски под сценарий по обогащенным записям
type Engine struct {
	// TopK размер возвращаемого списка
	TopK int
	// KerfToleranceMicrons допуск, расширяющий запрошенный диапазон
	// ширины реза с обеих сторон
	KerfToleranceMicrons float64
}

// NewEngine создает движок рекомендаций
func NewEngine(topK int, kerfTolerance float64) *Engine {
	if topK <= 0 {
		topK = 10
	}
	if kerfTolerance < 0 {
		kerfTolerance = 0
	}
	return &Engine{TopK: topK, KerfToleranceMicrons: kerfTolerance}
}

// Recommend ранжирует кандидатов под сценарий.
//
// Материал сравнивается строго, тип резки — если задан. Ширина реза вне
// запрошенного диапазона (с допуском) исключает запись целиком, это жесткое
// ограничение, а не штраф. Оценка: близость по толщине 1/(1+|dt|),
// умноженная на неотрицательную часть интегральной оценки. Порядок полностью
// детерминирован: убывание оценки, затем меньший индекс сколов, затем
// лексикографический артикул.
//
// Пустой результат — корректный исход, не ошибка.
func (e *Engine) Recommend(scenario Scenario, enriched []MetricsRecord) ([]Recommendation, error) {
	if scenario.KerfMinMicrons > scenario.KerfMaxMicrons {
		return nil, &catalog.InvalidRangeError{
			Field: "kerf_range",
			Min:   scenario.KerfMinMicrons,
			Max:   scenario.KerfMaxMicrons,
		}
	}

	kerfMin := scenario.KerfMinMicrons - e.KerfToleranceMicrons
	kerfMax := scenario.KerfMaxMicrons + e.KerfToleranceMicrons

	matches := make([]Recommendation, 0)
	for _, m := range enriched {
		if m.Material != scenario.Material {
			continue
		}
		if scenario.CutType != catalog.CutTypeUnknown && m.CutType != scenario.CutType {
			continue
		}
		if m.KerfWidthMicrons < kerfMin || m.KerfWidthMicrons > kerfMax {
			continue
		}

		proximity := 1 / (1 + math.Abs(m.ThicknessMicrons-scenario.ThicknessMicrons))
		score := proximity * math.Max(m.PerformanceScore, 0)
		matches = append(matches, Recommendation{Record: m, Score: score})
	}

	if len(matches) == 0 {
		return []Recommendation{}, nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Record.ChippingIndex != matches[j].Record.ChippingIndex {
			return matches[i].Record.ChippingIndex < matches[j].Record.ChippingIndex
		}
		return matches[i].Record.ArticleCode < matches[j].Record.ArticleCode
	})

	if len(matches) > e.TopK {
		matches = matches[:e.TopK]
	}

	annotate(matches, scenario)
	for i := range matches {
		matches[i].Rank = i + 1
	}
	return matches, nil
}

// annotate формирует пояснения: какие факторы определили позицию кандидата
func annotate(matches []Recommendation, scenario Scenario) {
	minDistance := math.Inf(1)
	minChipping := math.Inf(1)
	maxPerformance := math.Inf(-1)
	for _, m := range matches {
		d := math.Abs(m.Record.ThicknessMicrons - scenario.ThicknessMicrons)
		if d < minDistance {
			minDistance = d
		}
		if m.Record.ChippingIndex < minChipping {
			minChipping = m.Record.ChippingIndex
		}
		if m.Record.PerformanceScore > maxPerformance {
			maxPerformance = m.Record.PerformanceScore
		}
	}

	for i := range matches {
		m := &matches[i]
		d := math.Abs(m.Record.ThicknessMicrons - scenario.ThicknessMicrons)
		if d == minDistance {
			m.Rationale = append(m.Rationale, "ближайшая толщина пластины")
		}
		if m.Record.ChippingIndex == minChipping {
			m.Rationale = append(m.Rationale, "минимальные сколы среди кандидатов")
		}
		if m.Record.PerformanceScore == maxPerformance {
			m.Rationale = append(m.Rationale, "максимальная интегральная оценка")
		}
		m.Rationale = append(m.Rationale,
			fmt.Sprintf("отклонение толщины %.0f мкм, ширина реза %.0f мкм в допуске",
				d, m.Record.KerfWidthMicrons))
	}
}
