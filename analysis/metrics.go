// Package analysis вычисляет производные показатели каталога дисков и
// подбирает диски под сценарий резки. Все операции чистые и синхронные;
// единственное разделяемое состояние — кэш базовых показателей по
// отпечатку содержимого каталога.
package analysis

import (
	"fmt"
	"sort"
	"sync"

	"dicingserver/catalog"
)

// Weights веса составляющих интегральной оценки диска
type Weights struct {
	CutRate         float64 `json:"cut_rate"`
	Lifespan        float64 `json:"lifespan"`
	ChippingPenalty float64 `json:"chipping_penalty"`
}

// DefaultWeights документированные веса по умолчанию
func DefaultWeights() Weights {
	return Weights{CutRate: 0.5, Lifespan: 0.3, ChippingPenalty: 0.2}
}

// Config настройки вычисления показателей
type Config struct {
	// AssumedCutsPerHour принятая интенсивность работы для перевода
	// ресурса диска из резов в часы. Строго больше нуля.
	AssumedCutsPerHour float64
	Weights            Weights
}

// DefaultConfig настройки по умолчанию
func DefaultConfig() Config {
	return Config{AssumedCutsPerHour: 120, Weights: DefaultWeights()}
}

// MetricsRecord запись каталога, обогащенная производными показателями
type MetricsRecord struct {
	catalog.DiscRecord

	// ChippingIndex нормированные сколы относительно медианы материала
	// по полному каталогу, в диапазоне [0, 1]; 0.5 — на уровне медианы
	ChippingIndex float64 `json:"chipping_index"`
	// PerformanceScore взвешенная оценка скорости и ресурса со штрафом за сколы
	PerformanceScore float64 `json:"performance_score"`
	// EstimatedLifespanHours оценка ресурса диска в часах работы
	EstimatedLifespanHours float64 `json:"estimated_lifespan_hours"`
}

// Baselines базовые показатели каталога: медианы сколов по материалам и
// максимумы для нормировки. Вычисляются по полному каталогу один раз,
// дорогие и потому кэшируются по отпечатку содержимого.
type Baselines struct {
	Fingerprint    string
	MedianChipping map[catalog.Material]float64
	MaxCutRate     float64
	MaxLifespan    float64
}

// BaselineCache кэш базовых показателей по отпечатку каталога.
// Смена каталога инвалидирует кэш неявно: новый отпечаток — новая запись,
// старые становятся недостижимыми вместе со старым представлением.
type BaselineCache struct {
	mu      sync.RWMutex
	entries map[string]*Baselines
}

// NewBaselineCache создает пустой кэш
func NewBaselineCache() *BaselineCache {
	return &BaselineCache{entries: make(map[string]*Baselines)}
}

// For возвращает базовые показатели для каталога, вычисляя их при
// отсутствии в кэше. Два каталога с одинаковым содержимым делят запись.
func (c *BaselineCache) For(full *catalog.View) *Baselines {
	fp := full.Fingerprint()

	c.mu.RLock()
	if b, ok := c.entries[fp]; ok {
		c.mu.RUnlock()
		return b
	}
	c.mu.RUnlock()

	b := ComputeBaselines(full)

	c.mu.Lock()
	c.entries[fp] = b
	c.mu.Unlock()
	return b
}

// ComputeBaselines вычисляет базовые показатели по полному каталогу
func ComputeBaselines(full *catalog.View) *Baselines {
	b := &Baselines{
		Fingerprint:    full.Fingerprint(),
		MedianChipping: make(map[catalog.Material]float64),
	}

	byMaterial := make(map[catalog.Material][]float64)
	for _, r := range full.All() {
		if r.ChippingMicrons > 0 {
			byMaterial[r.Material] = append(byMaterial[r.Material], r.ChippingMicrons)
		}
		if r.CutRateMmPerMin > b.MaxCutRate {
			b.MaxCutRate = r.CutRateMmPerMin
		}
		if float64(r.LifespanCuts) > b.MaxLifespan {
			b.MaxLifespan = float64(r.LifespanCuts)
		}
	}
	for material, values := range byMaterial {
		b.MedianChipping[material] = median(values)
	}
	return b
}

// Aggregator вычисляет производные показатели записей каталога
type Aggregator struct {
	cfg   Config
	cache *BaselineCache
}

// NewAggregator создает агрегатор. При nil-кэше создается собственный.
func NewAggregator(cfg Config, cache *BaselineCache) *Aggregator {
	if cfg.AssumedCutsPerHour <= 0 {
		cfg.AssumedCutsPerHour = DefaultConfig().AssumedCutsPerHour
	}
	if cache == nil {
		cache = NewBaselineCache()
	}
	return &Aggregator{cfg: cfg, cache: cache}
}

// Enrich обогащает записи представления производными показателями.
// Базовые показатели берутся по полному каталогу full, а не по
// отфильтрованному view: фильтрация не должна смещать нормировку.
// Возвращаемые предупреждения сопровождают результат, а не заменяют его.
func (a *Aggregator) Enrich(full, view *catalog.View) ([]MetricsRecord, []string) {
	baselines := a.cache.For(full)
	warned := make(map[catalog.Material]bool)

	records := view.All()
	out := make([]MetricsRecord, 0, len(records))
	var warnings []string

	for _, r := range records {
		m := MetricsRecord{DiscRecord: r}

		baseline, ok := baselines.MedianChipping[r.Material]
		if !ok || baseline <= 0 {
			// Политика нейтрального значения: ранжирование остается тотальным
			// даже без базовой линии по материалу
			m.ChippingIndex = 0.5
			if !warned[r.Material] {
				warned[r.Material] = true
				warnings = append(warnings,
					fmt.Sprintf("нет базовой линии сколов для материала %s, использовано нейтральное значение 0.5", r.Material))
			}
		} else {
			m.ChippingIndex = clamp01(r.ChippingMicrons / (2 * baseline))
		}

		normCutRate := safeRatio(r.CutRateMmPerMin, baselines.MaxCutRate)
		normLifespan := safeRatio(float64(r.LifespanCuts), baselines.MaxLifespan)
		w := a.cfg.Weights
		m.PerformanceScore = w.CutRate*normCutRate + w.Lifespan*normLifespan - w.ChippingPenalty*m.ChippingIndex

		m.EstimatedLifespanHours = float64(r.LifespanCuts) / a.cfg.AssumedCutsPerHour

		out = append(out, m)
	}
	return out, warnings
}

// median медиана непустого среза; 0 для пустого
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// safeRatio отношение value/max; 0 при нулевом максимуме, никогда не NaN
func safeRatio(value, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return clamp01(value / max)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
