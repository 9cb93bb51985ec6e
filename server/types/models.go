// Package types содержит структуры запросов и ответов HTTP API.
// Выход API — упорядоченные последовательности структурированных данных
// без форматирования: представление остается за клиентом.
package types

import (
	"dicingserver/analysis"
	"dicingserver/catalog"
	"dicingserver/database"
	"dicingserver/decoder"
)

// DiscFilter параметры фильтрации каталога из query-строки.
// Диапазоны опциональны; заданный min больше max отклоняется до вычислений.
type DiscFilter struct {
	Materials    []string `form:"materials"`
	CutTypes     []string `form:"cut_types"`
	ThicknessMin *float64 `form:"thickness_min"`
	ThicknessMax *float64 `form:"thickness_max"`
	KerfMin      *float64 `form:"kerf_min"`
	KerfMax      *float64 `form:"kerf_max"`
}

// DiscListResponse список записей каталога
type DiscListResponse struct {
	CatalogUUID string               `json:"catalog_uuid"`
	Total       int                  `json:"total"`
	Records     []catalog.DiscRecord `json:"records"`
}

// MetricsResponse обогащенные записи с предупреждениями вычислений
type MetricsResponse struct {
	CatalogUUID string                   `json:"catalog_uuid"`
	Total       int                      `json:"total"`
	Records     []analysis.MetricsRecord `json:"records"`
	Warnings    []string                 `json:"warnings,omitempty"`
}

// StatsResponse агрегированные показатели по группам
type StatsResponse struct {
	CatalogUUID string             `json:"catalog_uuid"`
	Groups      []analysis.GroupRow `json:"groups"`
}

// TrendsResponse тренды скорости резки
type TrendsResponse struct {
	CatalogUUID string          `json:"catalog_uuid"`
	Trends      analysis.Trends `json:"trends"`
}

// ThicknessRangesResponse диапазоны толщин каталога
type ThicknessRangesResponse struct {
	CatalogUUID string                    `json:"catalog_uuid"`
	Ranges      []analysis.ThicknessRange `json:"ranges"`
}

// RecommendRequest тело запроса подбора дисков
type RecommendRequest struct {
	Material         string  `json:"material" binding:"required"`
	ThicknessMicrons float64 `json:"thickness_microns" binding:"required"`
	KerfMinMicrons   float64 `json:"kerf_min_microns"`
	KerfMaxMicrons   float64 `json:"kerf_max_microns"`
	CutType          string  `json:"cut_type"`
}

// RecommendResponse ранжированный список кандидатов.
// Пустой список с сообщением — корректный исход, не ошибка.
type RecommendResponse struct {
	CatalogUUID     string                    `json:"catalog_uuid"`
	Recommendations []analysis.Recommendation `json:"recommendations"`
	Warnings        []string                  `json:"warnings,omitempty"`
	Message         string                    `json:"message,omitempty"`
}

// DecodeRequest запрос расшифровки артикулов
type DecodeRequest struct {
	Code  string   `json:"code"`
	Codes []string `json:"codes"`
}

// DecodeResponse расшифровка одного артикула
type DecodeResponse struct {
	Spec decoder.DiscSpec `json:"spec"`
}

// BatchDecodeItem результат расшифровки артикула из пакета
type BatchDecodeItem struct {
	Code  string            `json:"code"`
	Spec  *decoder.DiscSpec `json:"spec,omitempty"`
	Error string            `json:"error,omitempty"`
}

// BatchDecodeResponse результаты пакетной расшифровки.
// Ошибка локализована в своем артикуле и не прерывает пакет.
type BatchDecodeResponse struct {
	Results []BatchDecodeItem `json:"results"`
}

// ValidateResponse результат проверки формата артикула
type ValidateResponse struct {
	Code  string `json:"code"`
	Valid bool   `json:"valid"`
}

// UploadResponse результат загрузки каталога
type UploadResponse struct {
	Catalog  database.CatalogMeta `json:"catalog"`
	Warnings []string             `json:"warnings,omitempty"`
}

// CatalogListResponse список сохраненных каталогов
type CatalogListResponse struct {
	Catalogs []database.CatalogMeta `json:"catalogs"`
}

// HealthResponse состояние сервера
type HealthResponse struct {
	Status        string `json:"status"`
	ActiveCatalog string `json:"active_catalog,omitempty"`
	RecordCount   int    `json:"record_count"`
}
