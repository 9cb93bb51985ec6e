package analysis

import (
	"sort"
	"strconv"

	"dicingserver/catalog"
)

// GroupBy набор ключей группировки
type GroupBy int

const (
	// GroupByMaterial группировка по материалу пластины
	GroupByMaterial GroupBy = iota
	// GroupByMaterialCutType группировка по паре материал x тип резки
	GroupByMaterialCutType
)

// GroupKey ключ группы агрегации. CutType пуст при группировке
// только по материалу.
type GroupKey struct {
	Material catalog.Material `json:"material"`
	CutType  catalog.CutType  `json:"cut_type,omitempty"`
}

// GroupStats средние показатели группы записей
type GroupStats struct {
	Count         int     `json:"count"`
	MeanThickness float64 `json:"mean_thickness_microns"`
	MeanChipping  float64 `json:"mean_chipping_microns"`
	MeanCutRate   float64 `json:"mean_cut_rate_mm_per_min"`
	MeanLifespan  float64 `json:"mean_lifespan_cuts"`
}

// AggregateBy агрегирует представление по заданным ключам.
// Группы без записей не порождаются вовсе, NaN в выводе не бывает.
func AggregateBy(view *catalog.View, keys GroupBy) map[GroupKey]GroupStats {
	type accum struct {
		count                                int
		thickness, chipping, rate, lifespan float64
	}
	groups := make(map[GroupKey]*accum)

	for _, r := range view.All() {
		key := GroupKey{Material: r.Material}
		if keys == GroupByMaterialCutType {
			key.CutType = r.CutType
		}
		g, ok := groups[key]
		if !ok {
			g = &accum{}
			groups[key] = g
		}
		g.count++
		g.thickness += r.ThicknessMicrons
		g.chipping += r.ChippingMicrons
		g.rate += r.CutRateMmPerMin
		g.lifespan += float64(r.LifespanCuts)
	}

	out := make(map[GroupKey]GroupStats, len(groups))
	for key, g := range groups {
		n := float64(g.count)
		out[key] = GroupStats{
			Count:         g.count,
			MeanThickness: g.thickness / n,
			MeanChipping:  g.chipping / n,
			MeanCutRate:   g.rate / n,
			MeanLifespan:  g.lifespan / n,
		}
	}
	return out
}

// GroupRow строка агрегата для стабильного вывода наружу
type GroupRow struct {
	GroupKey
	GroupStats
}

// SortedGroups разворачивает агрегат в срез, отсортированный по ключу,
// чтобы ответ API был детерминированным
func SortedGroups(groups map[GroupKey]GroupStats) []GroupRow {
	rows := make([]GroupRow, 0, len(groups))
	for key, stats := range groups {
		rows = append(rows, GroupRow{GroupKey: key, GroupStats: stats})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Material != rows[j].Material {
			return rows[i].Material < rows[j].Material
		}
		return rows[i].CutType < rows[j].CutType
	})
	return rows
}

// ThicknessRange диапазон близких толщин пластин в каталоге
type ThicknessRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ThicknessRanges группирует уникальные толщины каталога в диапазоны:
// разрыв больше gapMicrons начинает новый диапазон. Используется
// презентационным слоем для построения ползунков фильтров.
func ThicknessRanges(view *catalog.View, gapMicrons float64) []ThicknessRange {
	seen := make(map[float64]struct{})
	values := make([]float64, 0)
	for _, r := range view.All() {
		if _, ok := seen[r.ThicknessMicrons]; !ok {
			seen[r.ThicknessMicrons] = struct{}{}
			values = append(values, r.ThicknessMicrons)
		}
	}
	if len(values) == 0 {
		return nil
	}
	sort.Float64s(values)

	ranges := make([]ThicknessRange, 0)
	start, prev := values[0], values[0]
	for _, v := range values[1:] {
		if v-prev > gapMicrons {
			ranges = append(ranges, ThicknessRange{Min: start, Max: prev})
			start = v
		}
		prev = v
	}
	ranges = append(ranges, ThicknessRange{Min: start, Max: prev})
	return ranges
}

// TrendPoint точка тренда: значение группирующего параметра и средняя
// скорость резки по группе
type TrendPoint struct {
	Key         string  `json:"key"`
	MeanCutRate float64 `json:"mean_cut_rate_mm_per_min"`
	Count       int     `json:"count"`
}

// Trends тренды средней скорости резки по толщине, материалу и типу резки
type Trends struct {
	ByThickness []TrendPoint `json:"by_thickness"`
	ByMaterial  []TrendPoint `json:"by_material"`
	ByCutType   []TrendPoint `json:"by_cut_type"`
}

// ComputeTrends вычисляет тренды скорости резки по представлению
func ComputeTrends(view *catalog.View) Trends {
	byThickness := make(map[string]*TrendPoint)
	byMaterial := make(map[string]*TrendPoint)
	byCutType := make(map[string]*TrendPoint)

	add := func(m map[string]*TrendPoint, key string, rate float64) {
		p, ok := m[key]
		if !ok {
			p = &TrendPoint{Key: key}
			m[key] = p
		}
		p.MeanCutRate += rate
		p.Count++
	}

	for _, r := range view.All() {
		add(byThickness, formatThickness(r.ThicknessMicrons), r.CutRateMmPerMin)
		add(byMaterial, string(r.Material), r.CutRateMmPerMin)
		add(byCutType, string(r.CutType), r.CutRateMmPerMin)
	}

	finalize := func(m map[string]*TrendPoint) []TrendPoint {
		out := make([]TrendPoint, 0, len(m))
		for _, p := range m {
			p.MeanCutRate /= float64(p.Count)
			out = append(out, *p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
		return out
	}

	thickness := finalize(byThickness)
	// Толщины сортируются численно, лексикографический порядок строк
	// поставил бы "1000" раньше "300"
	sort.Slice(thickness, func(i, j int) bool {
		vi, _ := strconv.ParseFloat(thickness[i].Key, 64)
		vj, _ := strconv.ParseFloat(thickness[j].Key, 64)
		return vi < vj
	})

	return Trends{
		ByThickness: thickness,
		ByMaterial:  finalize(byMaterial),
		ByCutType:   finalize(byCutType),
	}
}

func formatThickness(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
