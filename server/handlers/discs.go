package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dicingserver/server/errors"
	"dicingserver/server/middleware"
	"dicingserver/server/services"
	"dicingserver/server/types"
)

// DiscHandler обработчики выборки и показателей дисков
type DiscHandler struct {
	catalogs *services.CatalogService
	analysis *services.AnalysisService
}

// NewDiscHandler создает обработчик дисков
func NewDiscHandler(catalogs *services.CatalogService, analysis *services.AnalysisService) *DiscHandler {
	return &DiscHandler{catalogs: catalogs, analysis: analysis}
}

// bindFilter разбирает параметры фильтра из query-строки
func bindFilter(c *gin.Context) (types.DiscFilter, error) {
	var filter types.DiscFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		return types.DiscFilter{}, apperrors.NewValidationError("некорректные параметры фильтра", err)
	}
	return filter, nil
}

// HandleList возвращает отфильтрованные записи активного каталога
// @Summary Выборка дисков
// @Description Фильтры конъюнктивны: материал, тип резки, диапазоны толщины и ширины реза. Пустой результат — не ошибка.
// @Tags discs
// @Produce json
// @Param materials query []string false "Материалы пластин"
// @Param cut_types query []string false "Типы резки"
// @Param thickness_min query number false "Минимальная толщина, мкм"
// @Param thickness_max query number false "Максимальная толщина, мкм"
// @Param kerf_min query number false "Минимальная ширина реза, мкм"
// @Param kerf_max query number false "Максимальная ширина реза, мкм"
// @Success 200 {object} types.DiscListResponse
// @Failure 400 {object} middleware.ErrorResponse "Некорректный диапазон"
// @Failure 404 {object} middleware.ErrorResponse "Каталог не загружен"
// @Router /api/discs [get]
func (h *DiscHandler) HandleList(c *gin.Context) {
	view, meta, err := h.catalogs.ActiveView()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	filter, err := bindFilter(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	filtered, err := services.ApplyFilter(view, filter)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	records := filtered.All()
	c.JSON(http.StatusOK, types.DiscListResponse{
		CatalogUUID: meta.UUID,
		Total:       len(records),
		Records:     records,
	})
}

// HandleMetrics возвращает обогащенные записи с производными показателями
// @Summary Показатели дисков
// @Description Индекс сколов, интегральная оценка и оценка ресурса в часах по отфильтрованной выборке. Базовая линия сколов считается по полному каталогу. Предупреждения вычислений возвращаются вместе с результатом.
// @Tags discs
// @Produce json
// @Param materials query []string false "Материалы пластин"
// @Param cut_types query []string false "Типы резки"
// @Param thickness_min query number false "Минимальная толщина, мкм"
// @Param thickness_max query number false "Максимальная толщина, мкм"
// @Param kerf_min query number false "Минимальная ширина реза, мкм"
// @Param kerf_max query number false "Максимальная ширина реза, мкм"
// @Success 200 {object} types.MetricsResponse
// @Failure 400 {object} middleware.ErrorResponse "Некорректный диапазон"
// @Failure 404 {object} middleware.ErrorResponse "Каталог не загружен"
// @Router /api/discs/metrics [get]
func (h *DiscHandler) HandleMetrics(c *gin.Context) {
	view, meta, err := h.catalogs.ActiveView()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	filter, err := bindFilter(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	filtered, err := services.ApplyFilter(view, filter)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	records, warnings := h.analysis.Metrics(view, filtered)
	c.JSON(http.StatusOK, types.MetricsResponse{
		CatalogUUID: meta.UUID,
		Total:       len(records),
		Records:     records,
		Warnings:    warnings,
	})
}
