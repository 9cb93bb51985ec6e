package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dicingserver/server/errors"
	"dicingserver/server/middleware"
	"dicingserver/server/services"
	"dicingserver/server/types"
)

// RecommendHandler обработчик подбора дисков
type RecommendHandler struct {
	catalogs *services.CatalogService
	analysis *services.AnalysisService
}

// NewRecommendHandler создает обработчик подбора
func NewRecommendHandler(catalogs *services.CatalogService, analysis *services.AnalysisService) *RecommendHandler {
	return &RecommendHandler{catalogs: catalogs, analysis: analysis}
}

// HandleRecommend подбирает диски под сценарий резки
// @Summary Подбор дисков под сценарий
// @Description Ранжирует диски активного каталога: строгое совпадение материала, опциональный тип резки, жесткий допуск по ширине реза, близость по толщине с учетом интегральной оценки. Пустой список кандидатов — корректный исход.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param scenario body types.RecommendRequest true "Целевой сценарий резки"
// @Success 200 {object} types.RecommendResponse
// @Failure 400 {object} middleware.ErrorResponse "Некорректный сценарий"
// @Failure 404 {object} middleware.ErrorResponse "Каталог не загружен"
// @Router /api/recommendations [post]
func (h *RecommendHandler) HandleRecommend(c *gin.Context) {
	view, meta, err := h.catalogs.ActiveView()
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	var req types.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("некорректное тело запроса", err))
		return
	}

	recommendations, warnings, err := h.analysis.Recommend(view, req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	resp := types.RecommendResponse{
		CatalogUUID:     meta.UUID,
		Recommendations: recommendations,
		Warnings:        warnings,
	}
	if len(recommendations) == 0 {
		resp.Message = "подходящих дисков не найдено"
	}
	c.JSON(http.StatusOK, resp)
}
