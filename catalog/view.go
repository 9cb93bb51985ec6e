package catalog

import (
	"fmt"
)

// InvalidRangeError ошибка диапазона фильтра: минимум больше максимума.
// Проверяется на границе вызова, до начала вычислений.
type InvalidRangeError struct {
	Field string
	Min   float64
	Max   float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("некорректный диапазон %s: min %.2f > max %.2f", e.Field, e.Min, e.Max)
}

// View неизменяемое представление каталога дисков.
// Фильтры конъюнктивны при цепочке вызовов и всегда возвращают новое
// представление; порядок записей соответствует порядку загрузки.
type View struct {
	records []DiscRecord
}

// NewView создает представление над уже загруженными записями.
// Срез копируется, чтобы владельцем данных оставалось представление.
func NewView(records []DiscRecord) *View {
	copied := make([]DiscRecord, len(records))
	copy(copied, records)
	return &View{records: copied}
}

// All возвращает записи в порядке загрузки
func (v *View) All() []DiscRecord {
	out := make([]DiscRecord, len(v.records))
	copy(out, v.records)
	return out
}

// Len количество записей в представлении
func (v *View) Len() int {
	return len(v.records)
}

// filter возвращает новое представление из записей, прошедших предикат.
// Пустой результат не ошибка.
func (v *View) filter(keep func(DiscRecord) bool) *View {
	out := make([]DiscRecord, 0, len(v.records))
	for _, r := range v.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return &View{records: out}
}

// FilterByMaterial оставляет записи с материалом из заданного множества
func (v *View) FilterByMaterial(materials ...Material) *View {
	set := make(map[Material]struct{}, len(materials))
	for _, m := range materials {
		set[m] = struct{}{}
	}
	return v.filter(func(r DiscRecord) bool {
		_, ok := set[r.Material]
		return ok
	})
}

// FilterByCutType оставляет записи с типом резки из заданного множества
func (v *View) FilterByCutType(cutTypes ...CutType) *View {
	set := make(map[CutType]struct{}, len(cutTypes))
	for _, ct := range cutTypes {
		set[ct] = struct{}{}
	}
	return v.filter(func(r DiscRecord) bool {
		_, ok := set[r.CutType]
		return ok
	})
}

// FilterByThicknessRange оставляет записи с толщиной пластины в [min, max].
// Возвращает InvalidRangeError при min > max.
func (v *View) FilterByThicknessRange(min, max float64) (*View, error) {
	if min > max {
		return nil, &InvalidRangeError{Field: "thickness_microns", Min: min, Max: max}
	}
	return v.filter(func(r DiscRecord) bool {
		return r.ThicknessMicrons >= min && r.ThicknessMicrons <= max
	}), nil
}

// FilterByKerfRange оставляет записи с шириной реза в [min, max].
// Возвращает InvalidRangeError при min > max.
func (v *View) FilterByKerfRange(min, max float64) (*View, error) {
	if min > max {
		return nil, &InvalidRangeError{Field: "kerf_width_microns", Min: min, Max: max}
	}
	return v.filter(func(r DiscRecord) bool {
		return r.KerfWidthMicrons >= min && r.KerfWidthMicrons <= max
	}), nil
}

// Materials возвращает уникальные материалы представления в порядке появления
func (v *View) Materials() []Material {
	seen := make(map[Material]struct{})
	out := make([]Material, 0)
	for _, r := range v.records {
		if _, ok := seen[r.Material]; !ok {
			seen[r.Material] = struct{}{}
			out = append(out, r.Material)
		}
	}
	return out
}

// CutTypes возвращает уникальные типы резки представления в порядке появления
func (v *View) CutTypes() []CutType {
	seen := make(map[CutType]struct{})
	out := make([]CutType, 0)
	for _, r := range v.records {
		if _, ok := seen[r.CutType]; !ok {
			seen[r.CutType] = struct{}{}
			out = append(out, r.CutType)
		}
	}
	return out
}
