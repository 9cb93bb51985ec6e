package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dicingserver/server/services"
	"dicingserver/server/types"
)

// HealthHandler проверка работоспособности сервера
type HealthHandler struct {
	catalogs *services.CatalogService
}

// NewHealthHandler создает обработчик проверки работоспособности
func NewHealthHandler(catalogs *services.CatalogService) *HealthHandler {
	return &HealthHandler{catalogs: catalogs}
}

// HandleHealth возвращает состояние сервера
// @Summary Проверка работоспособности
// @Description Сервер работоспособен и без активного каталога: аналитические маршруты в этом случае отвечают 404.
// @Tags monitoring
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Router /health [get]
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	resp := types.HealthResponse{Status: "ok"}
	if view, meta, err := h.catalogs.ActiveView(); err == nil {
		resp.ActiveCatalog = meta.UUID
		resp.RecordCount = view.Len()
	}
	c.JSON(http.StatusOK, resp)
}
