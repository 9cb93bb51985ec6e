package services

import (
	"fmt"

	"dicingserver/analysis"
	"dicingserver/catalog"
	apperrors "dicingserver/server/errors"
	"dicingserver/server/types"
)

// AnalysisService вычисляет показатели и подбирает диски.
// Сервис без собственного состояния, кроме кэша базовых показателей
// внутри агрегатора; представление каталога приходит от CatalogService.
type AnalysisService struct {
	aggregator *analysis.Aggregator
	engine     *analysis.Engine
}

// NewAnalysisService создает аналитический сервис
func NewAnalysisService(cfg analysis.Config, topK int, kerfTolerance float64) *AnalysisService {
	return &AnalysisService{
		aggregator: analysis.NewAggregator(cfg, analysis.NewBaselineCache()),
		engine:     analysis.NewEngine(topK, kerfTolerance),
	}
}

// ApplyFilter применяет параметры фильтра к представлению.
// Фильтры конъюнктивны; неизвестные названия материалов и типов резки
// отклоняются, а не игнорируются.
func ApplyFilter(view *catalog.View, filter types.DiscFilter) (*catalog.View, error) {
	out := view

	if len(filter.Materials) > 0 {
		materials := make([]catalog.Material, 0, len(filter.Materials))
		for _, raw := range filter.Materials {
			m, ok := catalog.ParseMaterial(raw)
			if !ok {
				return nil, apperrors.NewValidationError(
					fmt.Sprintf("неизвестный материал %q", raw), nil)
			}
			materials = append(materials, m)
		}
		out = out.FilterByMaterial(materials...)
	}

	if len(filter.CutTypes) > 0 {
		cutTypes := make([]catalog.CutType, 0, len(filter.CutTypes))
		for _, raw := range filter.CutTypes {
			ct, ok := catalog.ParseCutType(raw)
			if !ok {
				return nil, apperrors.NewValidationError(
					fmt.Sprintf("неизвестный тип резки %q", raw), nil)
			}
			cutTypes = append(cutTypes, ct)
		}
		out = out.FilterByCutType(cutTypes...)
	}

	if filter.ThicknessMin != nil || filter.ThicknessMax != nil {
		min, max := rangeBounds(filter.ThicknessMin, filter.ThicknessMax)
		filtered, err := out.FilterByThicknessRange(min, max)
		if err != nil {
			return nil, err
		}
		out = filtered
	}

	if filter.KerfMin != nil || filter.KerfMax != nil {
		min, max := rangeBounds(filter.KerfMin, filter.KerfMax)
		filtered, err := out.FilterByKerfRange(min, max)
		if err != nil {
			return nil, err
		}
		out = filtered
	}

	return out, nil
}

// rangeBounds подставляет открытые границы полуинтервалов
func rangeBounds(min, max *float64) (float64, float64) {
	lo, hi := 0.0, maxRangeBound
	if min != nil {
		lo = *min
	}
	if max != nil {
		hi = *max
	}
	return lo, hi
}

// Верхняя граница открытого диапазона: толщины и ширины реза в каталоге
// измеряются в микронах и заведомо меньше
const maxRangeBound = 1e12

// Metrics обогащает отфильтрованное представление показателями.
// Базовая линия считается по полному каталогу full.
func (s *AnalysisService) Metrics(full, view *catalog.View) ([]analysis.MetricsRecord, []string) {
	return s.aggregator.Enrich(full, view)
}

// MaterialStats агрегаты по материалам
func (s *AnalysisService) MaterialStats(view *catalog.View) []analysis.GroupRow {
	return analysis.SortedGroups(analysis.AggregateBy(view, analysis.GroupByMaterial))
}

// CutTypeStats агрегаты по парам материал x тип резки
func (s *AnalysisService) CutTypeStats(view *catalog.View) []analysis.GroupRow {
	return analysis.SortedGroups(analysis.AggregateBy(view, analysis.GroupByMaterialCutType))
}

// CompareMaterials сравнение заданных материалов по средним показателям
func (s *AnalysisService) CompareMaterials(view *catalog.View, rawMaterials []string) ([]analysis.GroupRow, error) {
	materials := make([]catalog.Material, 0, len(rawMaterials))
	for _, raw := range rawMaterials {
		m, ok := catalog.ParseMaterial(raw)
		if !ok {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("неизвестный материал %q", raw), nil)
		}
		materials = append(materials, m)
	}
	subset := view.FilterByMaterial(materials...)
	return analysis.SortedGroups(analysis.AggregateBy(subset, analysis.GroupByMaterial)), nil
}

// ThicknessRanges диапазоны толщин для построения фильтров
func (s *AnalysisService) ThicknessRanges(view *catalog.View) []analysis.ThicknessRange {
	// Разрыв больше 50 мкм начинает новый диапазон, как в исходной базе
	return analysis.ThicknessRanges(view, 50)
}

// Trends тренды скорости резки
func (s *AnalysisService) Trends(view *catalog.View) analysis.Trends {
	return analysis.ComputeTrends(view)
}

// Recommend подбирает диски под сценарий по полному каталогу
func (s *AnalysisService) Recommend(full *catalog.View, req types.RecommendRequest) ([]analysis.Recommendation, []string, error) {
	material, ok := catalog.ParseMaterial(req.Material)
	if !ok {
		return nil, nil, apperrors.NewValidationError(
			fmt.Sprintf("неизвестный материал %q", req.Material), nil)
	}

	cutType := catalog.CutTypeUnknown
	if req.CutType != "" {
		ct, ok := catalog.ParseCutType(req.CutType)
		if !ok {
			return nil, nil, apperrors.NewValidationError(
				fmt.Sprintf("неизвестный тип резки %q", req.CutType), nil)
		}
		cutType = ct
	}

	enriched, warnings := s.aggregator.Enrich(full, full)
	scenario := analysis.Scenario{
		Material:         material,
		ThicknessMicrons: req.ThicknessMicrons,
		KerfMinMicrons:   req.KerfMinMicrons,
		KerfMaxMicrons:   req.KerfMaxMicrons,
		CutType:          cutType,
	}
	recommendations, err := s.engine.Recommend(scenario, enriched)
	if err != nil {
		return nil, warnings, err
	}
	return recommendations, warnings, nil
}
