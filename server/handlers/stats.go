package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dicingserver/server/errors"
	"dicingserver/server/middleware"
	"dicingserver/server/services"
	"dicingserver/server/types"
)

// StatsHandler обработчики агрегированной статистики
type StatsHandler struct {
	catalogs *services.CatalogService
	analysis *services.AnalysisService
}

// NewStatsHandler создает обработчик статистики
func NewStatsHandler(catalogs *services.CatalogService, analysis *services.AnalysisService) *StatsHandler {
	return &StatsHandler{catalogs: catalogs, analysis: analysis}
}

// HandleMaterialStats средние показатели по материалам
// @Summary Статистика по материалам
// @Tags stats
// @Produce json
// @Success 200 {object} types.StatsResponse
// @Failure 404 {object} middleware.ErrorResponse "Каталог не загружен"
// @Router /api/stats/materials [get]
func (h *StatsHandler) HandleMaterialStats(c *gin.Context) {
	view, meta, err := h.catalogs.ActiveView()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.StatsResponse{
		CatalogUUID: meta.UUID,
		Groups:      h.analysis.MaterialStats(view),
	})
}

// HandleCutTypeStats средние показатели по парам материал x тип резки
// @Summary Статистика по типам резки
// @Tags stats
// @Produce json
// @Success 200 {object} types.StatsResponse
// @Failure 404 {object} middleware.ErrorResponse "Каталог не загружен"
// @Router /api/stats/cut-types [get]
func (h *StatsHandler) HandleCutTypeStats(c *gin.Context) {
	view, meta, err := h.catalogs.ActiveView()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.StatsResponse{
		CatalogUUID: meta.UUID,
		Groups:      h.analysis.CutTypeStats(view),
	})
}

// HandleCompare сравнение заданных материалов
// @Summary Сравнение материалов
// @Tags stats
// @Produce json
// @Param materials query []string true "Материалы для сравнения"
// @Success 200 {object} types.StatsResponse
// @Failure 400 {object} middleware.ErrorResponse "Неизвестный материал"
// @Failure 404 {object} middleware.ErrorResponse "Каталог не загружен"
// @Router /api/stats/compare [get]
func (h *StatsHandler) HandleCompare(c *gin.Context) {
	view, meta, err := h.catalogs.ActiveView()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	materials := c.QueryArray("materials")
	if len(materials) == 0 {
		middleware.AbortWithError(c, apperrors.NewValidationError("не заданы материалы для сравнения", nil))
		return
	}
	groups, err := h.analysis.CompareMaterials(view, materials)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.StatsResponse{CatalogUUID: meta.UUID, Groups: groups})
}

// HandleThicknessRanges диапазоны толщин каталога
// @Summary Диапазоны толщин
// @Description Уникальные толщины каталога, сгруппированные в диапазоны с разрывом более 50 мкм. Используется для построения ползунков фильтров.
// @Tags stats
// @Produce json
// @Success 200 {object} types.ThicknessRangesResponse
// @Failure 404 {object} middleware.ErrorResponse "Каталог не загружен"
// @Router /api/stats/thickness-ranges [get]
func (h *StatsHandler) HandleThicknessRanges(c *gin.Context) {
	view, meta, err := h.catalogs.ActiveView()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ThicknessRangesResponse{
		CatalogUUID: meta.UUID,
		Ranges:      h.analysis.ThicknessRanges(view),
	})
}

// HandleTrends тренды скорости резки
// @Summary Тренды скорости резки
// @Tags stats
// @Produce json
// @Success 200 {object} types.TrendsResponse
// @Failure 404 {object} middleware.ErrorResponse "Каталог не загружен"
// @Router /api/stats/trends [get]
func (h *StatsHandler) HandleTrends(c *gin.Context) {
	view, meta, err := h.catalogs.ActiveView()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.TrendsResponse{
		CatalogUUID: meta.UUID,
		Trends:      h.analysis.Trends(view),
	})
}

// HandleErrorMetrics метрики ошибок сервера
// @Summary Метрики ошибок
// @Tags monitoring
// @Produce json
// @Success 200 {object} errors.ErrorMetricsSnapshot
// @Router /api/monitoring/errors [get]
func (h *StatsHandler) HandleErrorMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetErrorMetrics().Snapshot())
}
